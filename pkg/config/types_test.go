package config_test

import (
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/pkg/config"
)

var _ = Describe("Duration", func() {
	It("parses Go duration strings", func() {
		var d config.Duration

		Expect(d.UnmarshalText([]byte("3s"))).To(Succeed())
		Expect(d.ToDuration()).To(Equal(3 * time.Second))
		Expect(d.String()).To(Equal("3s"))
	})

	It("round-trips through MarshalText", func() {
		d := config.Duration(1500 * time.Millisecond)

		text, err := d.MarshalText()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(text)).To(Equal("1.5s"))
	})

	It("rejects negative durations", func() {
		var d config.Duration

		err := d.UnmarshalText([]byte("-1s"))
		Expect(errors.Is(err, config.ErrNegativeDuration)).To(BeTrue())
	})

	It("rejects garbage", func() {
		var d config.Duration

		Expect(d.UnmarshalText([]byte("soon"))).NotTo(Succeed())
	})
})
