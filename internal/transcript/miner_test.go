package transcript_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/internal/transcript"
	"github.com/smykla-skalski/ccbridge/pkg/config"
	"github.com/smykla-skalski/ccbridge/pkg/hook"
)

const (
	textLine = `{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"hello"}]}}`
	userLine = `{"type":"user","message":{"role":"user","content":"plain string content"}}`
)

func toolLine(name, input string) string {
	return `{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":"toolu_1","name":"` +
		name + `","input":` + input + `}]}}`
}

var _ = Describe("Miner", func() {
	var (
		dir   string
		miner *transcript.Miner
	)

	write := func(lines ...string) string {
		path := filepath.Join(dir, "session.jsonl")
		Expect(os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600)).To(Succeed())

		return path
	}

	repeat := func(line string, n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = line
		}

		return out
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		miner = transcript.NewMiner(nil)
	})

	It("should return the tool_use block from the last line", func() {
		path := write(textLine, toolLine("Bash", `{"command":"ls -la"}`))

		inv := miner.Mine(path)
		Expect(inv.Name).To(Equal("Bash"))
		Expect(inv.Input).To(Equal(map[string]any{"command": "ls -la"}))
	})

	It("should prefer the most recent line", func() {
		path := write(toolLine("Read", `{"file_path":"/a"}`), textLine, toolLine("Edit", `{"file_path":"/b"}`), textLine)

		Expect(miner.Mine(path).Name).To(Equal("Edit"))
	})

	It("should walk content blocks backward within an entry", func() {
		line := `{"message":{"content":[` +
			`{"type":"tool_use","name":"First","input":{}},` +
			`{"type":"tool_use","name":"Second","input":{"n":1}},` +
			`{"type":"text","text":"trailing"}]}}`
		path := write(line)

		inv := miner.Mine(path)
		Expect(inv.Name).To(Equal("Second"))
		Expect(inv.Input).To(HaveKeyWithValue("n", BeNumerically("==", 1)))
	})

	It("should skip malformed lines", func() {
		path := write(toolLine("Bash", `{"command":"make"}`), `{"message":`, "not json at all", userLine)

		Expect(miner.Mine(path).Name).To(Equal("Bash"))
	})

	It("should find a block exactly at the window edge", func() {
		lines := append([]string{toolLine("Write", `{}`)}, repeat(textLine, 49)...)
		path := write(lines...)

		Expect(miner.Mine(path).Name).To(Equal("Write"))
	})

	It("should not look past the window", func() {
		lines := append([]string{toolLine("Write", `{}`)}, repeat(textLine, 50)...)
		path := write(lines...)

		Expect(miner.Mine(path).IsEmpty()).To(BeTrue())
	})

	It("should count blank lines toward the window", func() {
		lines := append([]string{toolLine("Write", `{}`)}, repeat("", 50)...)
		path := write(lines...)

		Expect(miner.Mine(path).IsEmpty()).To(BeTrue())
	})

	It("should honor a configured window", func() {
		miner = transcript.NewMiner(&config.TranscriptConfig{Window: 2})
		path := write(toolLine("Write", `{}`), textLine, textLine)

		Expect(miner.Mine(path).IsEmpty()).To(BeTrue())
	})

	It("should default a null input to an empty map", func() {
		path := write(toolLine("Glob", `null`))

		inv := miner.Mine(path)
		Expect(inv.Name).To(Equal("Glob"))
		Expect(inv.Input).To(BeEmpty())
		Expect(inv.Input).NotTo(BeNil())
	})

	It("should default a missing input to an empty map", func() {
		path := write(`{"message":{"content":[{"type":"tool_use","name":"TodoWrite"}]}}`)

		inv := miner.Mine(path)
		Expect(inv.Name).To(Equal("TodoWrite"))
		Expect(inv.Input).To(Equal(map[string]any{}))
	})

	It("should skip an entry whose tool_use block has no name", func() {
		path := write(toolLine("Bash", `{}`), `{"message":{"content":[{"type":"tool_use","input":{}}]}}`)

		Expect(miner.Mine(path).Name).To(Equal("Bash"))
	})

	It("should handle a file without a trailing newline", func() {
		path := filepath.Join(dir, "t.jsonl")
		Expect(os.WriteFile(path, []byte(textLine+"\n"+toolLine("Grep", `{"pattern":"x"}`)), 0o600)).To(Succeed())

		Expect(miner.Mine(path).Name).To(Equal("Grep"))
	})

	It("should skip lines over the size cap but count them", func() {
		miner = transcript.NewMiner(&config.TranscriptConfig{Window: 2, MaxLineBytes: 200})
		huge := toolLine("Huge", `{"data":"`+strings.Repeat("x", 500)+`"}`)
		path := write(toolLine("Old", `{}`), textLine, huge)

		Expect(miner.Mine(path).IsEmpty()).To(BeTrue())

		path = write(toolLine("Old", `{}`), huge)
		Expect(miner.Mine(path).Name).To(Equal("Old"))
	})

	It("should read lines spanning several chunks", func() {
		big := toolLine("Big", `{"content":"`+strings.Repeat("y", 200<<10)+`"}`)
		path := write(textLine, big, textLine)

		inv := miner.Mine(path)
		Expect(inv.Name).To(Equal("Big"))
		Expect(inv.Input["content"]).To(HaveLen(200 << 10))
	})

	It("should search only the tail of a long transcript", func() {
		lines := append(repeat(textLine, 5000), toolLine("Tail", `{}`))
		lines = append(lines, repeat(userLine, 10)...)
		path := write(lines...)

		Expect(miner.Mine(path).Name).To(Equal("Tail"))
	})

	DescribeTable("unreadable transcripts yield an empty invocation",
		func(setup func() string) {
			Expect(miner.Mine(setup())).To(Equal(hook.ToolInvocation{}))
		},
		Entry("missing file", func() string { return filepath.Join(dir, "missing.jsonl") }),
		Entry("directory", func() string { return dir }),
		Entry("empty file", func() string {
			path := filepath.Join(dir, "empty.jsonl")
			Expect(os.WriteFile(path, nil, 0o600)).To(Succeed())

			return path
		}),
		Entry("only blank lines", func() string { return write("", "", "") }),
	)

	It("should expose the read error through MineFile", func() {
		_, err := miner.MineFile(dir)
		Expect(err).To(MatchError(transcript.ErrNotRegularFile))
	})
})

var _ = Describe("Entry", func() {
	It("should ignore entries without a message", func() {
		entry, err := transcript.ParseEntry([]byte(`{"type":"summary","summary":"x"}`))
		Expect(err).NotTo(HaveOccurred())

		_, ok := entry.LastToolUse()
		Expect(ok).To(BeFalse())
	})

	It("should reject content that is not a block list", func() {
		_, err := transcript.ParseEntry([]byte(userLine))
		Expect(err).To(HaveOccurred())
	})

	It("should treat a non-object input as empty", func() {
		entry, err := transcript.ParseEntry([]byte(toolLine("Odd", `[1,2]`)))
		Expect(err).NotTo(HaveOccurred())

		inv, ok := entry.LastToolUse()
		Expect(ok).To(BeTrue())
		Expect(inv.Input).To(BeEmpty())
	})
})
