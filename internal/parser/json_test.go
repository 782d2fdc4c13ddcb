package parser_test

import (
	"strings"
	"testing/iotest"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/internal/parser"
)

var _ = Describe("JSONParser", func() {
	Describe("ParseNotification", func() {
		It("parses real-world Claude Code notification JSON", func() {
			input := `{
				"session_id": "d267099c-6c3a-45ed-997c-2fa4c8ec9b39",
				"transcript_path": "/Users/test/.claude/projects/app/d267099c-6c3a-45ed-997c-2fa4c8ec9b39.jsonl",
				"cwd": "/Users/test/projects/app",
				"permission_mode": "default",
				"hook_event_name": "Notification",
				"message": "Claude needs your permission to use Bash",
				"title": "Claude Code",
				"notification_type": "permission_prompt"
			}`

			in, err := parser.NewJSONParser(strings.NewReader(input)).ParseNotification()

			Expect(err).NotTo(HaveOccurred())
			Expect(in.TranscriptPath).To(Equal(
				"/Users/test/.claude/projects/app/d267099c-6c3a-45ed-997c-2fa4c8ec9b39.jsonl",
			))
			Expect(in.HasTranscript()).To(BeTrue())
			Expect(in.SessionID).To(Equal("d267099c-6c3a-45ed-997c-2fa4c8ec9b39"))
			Expect(in.Message).To(Equal("Claude needs your permission to use Bash"))
			Expect(in.NotificationType).To(Equal("permission_prompt"))
			Expect(in.PermissionMode).To(Equal("default"))
		})

		It("accepts a payload without transcript_path", func() {
			in, err := parser.NewJSONParser(strings.NewReader(`{"message":"idle"}`)).ParseNotification()

			Expect(err).NotTo(HaveOccurred())
			Expect(in.HasTranscript()).To(BeFalse())
		})

		It("ignores unknown fields", func() {
			in, err := parser.NewJSONParser(
				strings.NewReader(`{"transcript_path":"/tmp/t.jsonl","future_field":{"a":1}}`),
			).ParseNotification()

			Expect(err).NotTo(HaveOccurred())
			Expect(in.TranscriptPath).To(Equal("/tmp/t.jsonl"))
		})

		It("returns ErrEmptyInput for empty or whitespace input", func() {
			_, err := parser.NewJSONParser(strings.NewReader("  \n")).ParseNotification()

			Expect(err).To(MatchError(parser.ErrEmptyInput))
		})

		DescribeTable("rejects input that is not a JSON object",
			func(input string) {
				in, err := parser.NewJSONParser(strings.NewReader(input)).ParseNotification()

				Expect(in).To(BeNil())
				Expect(errors.Is(err, parser.ErrInvalidJSON)).To(BeTrue(), "got %v", err)
			},
			Entry("truncated object", `{"transcript_path": "/tmp/t`),
			Entry("array", `[]`),
			Entry("null", `null`),
			Entry("string", `"hello"`),
			Entry("wrong field type", `{"transcript_path": 42}`),
		)

		It("wraps read failures", func() {
			_, err := parser.NewJSONParser(iotest.ErrReader(errors.New("boom"))).ParseNotification()

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failed to read input"))
		})
	})
})
