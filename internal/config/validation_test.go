package config

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/pkg/config"
)

var _ = Describe("Validator", func() {
	var validator *Validator

	BeforeEach(func() {
		validator = NewValidator()
	})

	It("should return error when config is nil", func() {
		err := validator.Validate(nil)
		Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("config is nil"))
	})

	It("should pass for an empty config", func() {
		Expect(validator.Validate(&config.Config{})).To(Succeed())
	})

	It("should pass for the defaults", func() {
		Expect(validator.validateLoaded(DefaultConfig())).To(Succeed())
	})

	DescribeTable("ports",
		func(port string, valid bool) {
			err := validator.Validate(&config.Config{Server: &config.ServerConfig{Port: port}})
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
			}
		},
		Entry("lowest", "1", true),
		Entry("highest", "65535", true),
		Entry("zero", "0", false),
		Entry("too high", "65536", false),
		Entry("not a number", "http", false),
		Entry("negative", "-3100", false),
	)

	It("should collect multiple errors", func() {
		cfg := &config.Config{
			Server:     &config.ServerConfig{Port: "x", NotifyTimeout: -1},
			Transcript: &config.TranscriptConfig{Window: -1},
		}

		err := validator.Validate(cfg)
		Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("3 error(s)"))
	})

	It("should reject zero values after loading", func() {
		cfg := DefaultConfig()
		cfg.Transcript.Window = 0
		cfg.Session.Prefix = ""

		err := validator.validateLoaded(cfg)
		Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("2 error(s)"))
	})
})
