package hookresponse_test

import (
	"bytes"
	"testing/iotest"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/internal/hookresponse"
)

var _ = Describe("Allow", func() {
	It("builds an allow decision", func() {
		resp := hookresponse.Allow("Rocket mode enabled")
		Expect(resp.HookSpecificOutput).NotTo(BeNil())
		Expect(resp.HookSpecificOutput.PermissionDecision).To(Equal(hookresponse.DecisionAllow))
		Expect(resp.HookSpecificOutput.PermissionDecisionReason).To(Equal("Rocket mode enabled"))
		Expect(resp.HookSpecificOutput.HookEventName).To(BeEmpty())
	})
})

var _ = Describe("Write", func() {
	It("writes the exact protocol bytes without a newline", func() {
		var buf bytes.Buffer

		Expect(hookresponse.Write(&buf, hookresponse.Allow("Rocket mode enabled"))).To(Succeed())
		Expect(buf.String()).To(Equal(
			`{"hookSpecificOutput":{"permissionDecision":"allow","permissionDecisionReason":"Rocket mode enabled"}}`,
		))
	})

	It("includes the event name when set", func() {
		resp := hookresponse.Allow("ok")
		resp.HookSpecificOutput.HookEventName = "PreToolUse"

		data, err := hookresponse.Marshal(resp)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(MatchJSON(`{"hookSpecificOutput":{"hookEventName":"PreToolUse","permissionDecision":"allow","permissionDecisionReason":"ok"}}`))
	})

	It("writes nothing for a nil response", func() {
		var buf bytes.Buffer

		Expect(hookresponse.Write(&buf, nil)).To(Succeed())
		Expect(buf.Len()).To(BeZero())
	})

	It("reports write failures", func() {
		failing := &failingWriter{err: iotest.ErrTimeout}

		err := hookresponse.Write(failing, hookresponse.Allow("x"))
		Expect(errors.Is(err, iotest.ErrTimeout)).To(BeTrue())
	})
})

type failingWriter struct {
	err error
}

func (f *failingWriter) Write([]byte) (int, error) {
	return 0, f.err
}
