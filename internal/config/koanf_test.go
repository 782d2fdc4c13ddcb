package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/internal/xdg"
)

// setenv sets an environment variable for the current test only.
func setenv(key, value string) {
	prev, had := os.LookupEnv(key)

	Expect(os.Setenv(key, value)).To(Succeed())

	DeferCleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

// unsetenv removes an environment variable for the current test only.
func unsetenv(key string) {
	prev, had := os.LookupEnv(key)
	if !had {
		return
	}

	Expect(os.Unsetenv(key)).To(Succeed())

	DeferCleanup(func() {
		_ = os.Setenv(key, prev)
	})
}

var _ = Describe("KoanfLoader", func() {
	var (
		homeDir   string
		configDir string
		loader    *KoanfLoader
	)

	writeFile := func(path, content string, mode os.FileMode) {
		Expect(os.MkdirAll(filepath.Dir(path), 0o700)).To(Succeed())
		Expect(os.WriteFile(path, []byte(content), mode)).To(Succeed())
		Expect(os.Chmod(path, mode)).To(Succeed())
	}

	BeforeEach(func() {
		homeDir = GinkgoT().TempDir()
		configDir = filepath.Join(homeDir, ".config", "ccbridge")
		loader = NewKoanfLoaderWithResolver(xdg.ResolverFor(homeDir))

		unsetenv(EnvFileVar)
		unsetenv("CCBRIDGE_SERVER_PORT")
		unsetenv("CCBRIDGE_SERVER_AUTH_TOKEN")
		unsetenv("CCBRIDGE_SESSION_OVERRIDE_ID")
		unsetenv("CCBRIDGE_LOG_FILE")
	})

	Context("with no files", func() {
		It("should return the defaults", func() {
			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.GetServer().GetPort()).To(Equal("3100"))
			Expect(cfg.GetServer().GetAuthToken()).To(BeEmpty())
			Expect(cfg.GetServer().GetNotifyTimeout()).To(Equal(5 * time.Second))
			Expect(cfg.GetServer().GetOverrideTimeout()).To(Equal(3 * time.Second))
			Expect(cfg.GetSession().GetPrefix()).To(Equal("cc-"))
			Expect(cfg.GetSession().GetTimeout()).To(Equal(5 * time.Second))
			Expect(cfg.GetTranscript().GetWindow()).To(Equal(50))
			Expect(cfg.GetTranscript().GetMaxLineBytes()).To(Equal(1 << 20))
			Expect(loader.EnvFilePath()).To(BeEmpty())
			Expect(loader.ConfigFilePath()).To(BeEmpty())
		})
	})

	Context("with a .env file in the config dir", func() {
		BeforeEach(func() {
			writeFile(filepath.Join(configDir, ".env"), "PORT=4200\nNTFY_AUTH_TOKEN=tok\n", 0o600)
		})

		It("should read port and token", func() {
			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetServer().GetPort()).To(Equal("4200"))
			Expect(cfg.GetServer().GetAuthToken()).To(Equal("tok"))
			Expect(loader.EnvFilePath()).To(Equal(filepath.Join(configDir, ".env")))
		})

		It("should let env vars override the .env file", func() {
			setenv("CCBRIDGE_SERVER_PORT", "4300")

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetServer().GetPort()).To(Equal("4300"))
			Expect(cfg.GetServer().GetAuthToken()).To(Equal("tok"))
		})

		It("should override the global TOML config", func() {
			writeFile(filepath.Join(configDir, "config.toml"), `
[server]
port = "4000"
auth_token = "from-toml"
notify_timeout = "2s"
`, 0o600)

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetServer().GetPort()).To(Equal("4200"))
			Expect(cfg.GetServer().GetAuthToken()).To(Equal("tok"))
			Expect(cfg.GetServer().GetNotifyTimeout()).To(Equal(2 * time.Second))
		})
	})

	Context("with explicit paths", func() {
		It("should prefer the env-file flag over CCBRIDGE_ENV_FILE", func() {
			flagPath := filepath.Join(homeDir, "flag.env")
			varPath := filepath.Join(homeDir, "var.env")
			writeFile(flagPath, "PORT=5001\n", 0o600)
			writeFile(varPath, "PORT=5002\n", 0o600)
			setenv(EnvFileVar, varPath)

			cfg, err := loader.Load(map[string]any{FlagEnvFile: flagPath})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetServer().GetPort()).To(Equal("5001"))
		})

		It("should use CCBRIDGE_ENV_FILE when no flag is given", func() {
			varPath := filepath.Join(homeDir, "var.env")
			writeFile(varPath, "PORT=5002\n", 0o600)
			setenv(EnvFileVar, varPath)

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetServer().GetPort()).To(Equal("5002"))
		})

		It("should fail when an explicit .env file is missing", func() {
			_, err := loader.Load(map[string]any{FlagEnvFile: filepath.Join(homeDir, "nope")})
			Expect(errors.Is(err, ErrConfigNotFound)).To(BeTrue())
		})

		It("should read an explicit TOML config", func() {
			path := filepath.Join(homeDir, "custom.toml")
			writeFile(path, "[transcript]\nwindow = 10\n", 0o600)

			cfg, err := loader.Load(map[string]any{FlagConfig: path})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetTranscript().GetWindow()).To(Equal(10))
			Expect(loader.ConfigFilePath()).To(Equal(path))
		})
	})

	Context("with world-writable files", func() {
		It("should reject a world-writable .env", func() {
			writeFile(filepath.Join(configDir, ".env"), "PORT=4200\n", 0o666)

			_, err := loader.Load(nil)
			Expect(errors.Is(err, ErrInvalidPermissions)).To(BeTrue())
		})

		It("should reject a world-writable TOML config", func() {
			writeFile(filepath.Join(configDir, "config.toml"), "", 0o646)

			_, err := loader.Load(nil)
			Expect(errors.Is(err, ErrInvalidPermissions)).To(BeTrue())
		})
	})

	Context("with environment variables", func() {
		It("should keep underscores after the section", func() {
			setenv("CCBRIDGE_SESSION_OVERRIDE_ID", "abc")
			setenv("CCBRIDGE_SERVER_AUTH_TOKEN", "env-token")

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetSession().GetOverrideID()).To(Equal("abc"))
			Expect(cfg.GetServer().GetAuthToken()).To(Equal("env-token"))
		})

		It("should reject an invalid port", func() {
			setenv("CCBRIDGE_SERVER_PORT", "99999")

			_, err := loader.Load(nil)
			Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		})

		It("should reject an empty prefix", func() {
			writeFile(filepath.Join(configDir, "config.toml"), "[session]\nprefix = \"\"\n", 0o600)

			_, err := loader.Load(nil)
			Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		})
	})

	Context("with flags", func() {
		It("should map debug to the info level", func() {
			cfg, err := loader.Load(map[string]any{FlagDebug: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetLog().GetLevel()).To(Equal("info"))
		})

		It("should let trace win over debug", func() {
			cfg, err := loader.Load(map[string]any{FlagDebug: true, FlagTrace: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetLog().GetLevel()).To(Equal("debug"))
		})

		It("should map log-file onto log.file", func() {
			cfg, err := loader.Load(map[string]any{"log-file": "/tmp/x.log"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetLog().GetFile()).To(Equal("/tmp/x.log"))
		})

		It("should ignore a false debug flag", func() {
			cfg, err := loader.Load(map[string]any{FlagDebug: false})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetLog().GetLevel()).To(BeEmpty())
		})
	})

	Describe("envKeyToPath", func() {
		DescribeTable("mapping",
			func(key, expected string) {
				Expect(envKeyToPath(key)).To(Equal(expected))
			},
			Entry("server port", "CCBRIDGE_SERVER_PORT", "server.port"),
			Entry("multi-word key", "CCBRIDGE_TRANSCRIPT_MAX_LINE_BYTES", "transcript.max_line_bytes"),
			Entry("unknown section", "CCBRIDGE_ENV_FILE", ""),
			Entry("no key", "CCBRIDGE_SERVER", ""),
			Entry("no prefix", "SERVER_PORT", ""),
		)
	})
})
