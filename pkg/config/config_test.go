package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/pkg/config"
)

var _ = Describe("Config defaults", func() {
	Context("with a nil config", func() {
		var cfg *config.Config

		It("returns the documented server defaults", func() {
			server := cfg.GetServer()

			Expect(server.GetPort()).To(Equal("3100"))
			Expect(server.GetAuthToken()).To(BeEmpty())
			Expect(server.BaseURL()).To(Equal("http://localhost:3100"))
			Expect(server.GetNotifyTimeout()).To(Equal(5 * time.Second))
			Expect(server.GetOverrideTimeout()).To(Equal(3 * time.Second))
		})

		It("returns the documented session defaults", func() {
			session := cfg.GetSession()

			Expect(session.GetPrefix()).To(Equal("cc-"))
			Expect(session.GetTimeout()).To(Equal(5 * time.Second))
			Expect(session.GetTmuxBin()).To(Equal("tmux"))
			Expect(session.GetOverrideID()).To(BeEmpty())
		})

		It("returns the documented transcript defaults", func() {
			transcript := cfg.GetTranscript()

			Expect(transcript.GetWindow()).To(Equal(50))
			Expect(transcript.GetMaxLineBytes()).To(Equal(1 << 20))
		})

		It("returns an empty log section", func() {
			Expect(cfg.GetLog().GetFile()).To(BeEmpty())
			Expect(cfg.GetLog().GetLevel()).To(BeEmpty())
		})
	})

	Context("with explicit values", func() {
		It("prefers configured values", func() {
			cfg := &config.Config{
				Server: &config.ServerConfig{
					Port:            "4200",
					AuthToken:       "s3cret",
					NotifyTimeout:   config.Duration(time.Second),
					OverrideTimeout: config.Duration(2 * time.Second),
				},
				Session: &config.SessionConfig{
					Prefix:     "cmd-",
					TmuxBin:    "/opt/bin/tmux",
					OverrideID: "fixed",
				},
				Transcript: &config.TranscriptConfig{Window: 10, MaxLineBytes: 4096},
			}

			Expect(cfg.GetServer().BaseURL()).To(Equal("http://localhost:4200"))
			Expect(cfg.GetServer().GetAuthToken()).To(Equal("s3cret"))
			Expect(cfg.GetServer().GetNotifyTimeout()).To(Equal(time.Second))
			Expect(cfg.GetServer().GetOverrideTimeout()).To(Equal(2 * time.Second))
			Expect(cfg.GetSession().GetPrefix()).To(Equal("cmd-"))
			Expect(cfg.GetSession().GetTmuxBin()).To(Equal("/opt/bin/tmux"))
			Expect(cfg.GetSession().GetOverrideID()).To(Equal("fixed"))
			Expect(cfg.GetTranscript().GetWindow()).To(Equal(10))
			Expect(cfg.GetTranscript().GetMaxLineBytes()).To(Equal(4096))
		})
	})
})
