package schema_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/internal/schema"
)

var _ = Describe("Generate", func() {
	var s map[string]any

	BeforeEach(func() {
		data, err := schema.GenerateJSON(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(data, &s)).To(Succeed())
	})

	It("sets the $schema URI", func() {
		Expect(s["$schema"]).To(Equal("https://json-schema.org/draft/2020-12/schema"))
	})

	It("sets the title", func() {
		Expect(s["title"]).To(Equal("ccbridge configuration"))
	})

	It("includes top-level sections", func() {
		props, ok := s["properties"].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(props).To(HaveKey("server"))
		Expect(props).To(HaveKey("session"))
		Expect(props).To(HaveKey("transcript"))
		Expect(props).To(HaveKey("log"))
	})

	It("names server keys by their config names", func() {
		server := navigateProps(s, s, "server")
		Expect(server).NotTo(BeNil())

		props, ok := server["properties"].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(props).To(HaveKey("port"))
		Expect(props).To(HaveKey("auth_token"))
		Expect(props).To(HaveKey("notify_timeout"))
		Expect(props).To(HaveKey("override_timeout"))
	})

	It("defines Duration as a string with pattern", func() {
		defs, ok := s["$defs"].(map[string]any)
		Expect(ok).To(BeTrue())

		dur, ok := defs["Duration"].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(dur["type"]).To(Equal("string"))
		Expect(dur["pattern"]).NotTo(BeEmpty())
	})

	It("restricts the log level", func() {
		level := navigateProps(s, s, "log", "level")
		Expect(level).NotTo(BeNil())
		Expect(level["enum"]).To(ConsistOf("debug", "info", "error"))
	})

	Describe("GenerateJSON", func() {
		It("produces a single line when indent is false", func() {
			data, err := schema.GenerateJSON(false)
			Expect(err).NotTo(HaveOccurred())
			Expect(bytes.Count(data, []byte("\n"))).To(Equal(1))
			Expect(data).To(HaveSuffix("\n"))
		})

		It("produces indented JSON when indent is true", func() {
			data, err := schema.GenerateJSON(true)
			Expect(err).NotTo(HaveOccurred())
			Expect(bytes.Count(data, []byte("\n"))).To(BeNumerically(">", 10))
		})
	})
})

// navigateProps follows a property path through a schema, resolving $refs as needed.
func navigateProps(current, root map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		resolved := resolveRef(current, root)
		if resolved == nil {
			return nil
		}

		props, ok := resolved["properties"].(map[string]any)
		if !ok {
			return nil
		}

		next, ok := props[key].(map[string]any)
		if !ok {
			return nil
		}

		current = next
	}

	return resolveRef(current, root)
}

// resolveRef follows a $ref if present in the schema node.
func resolveRef(node, root map[string]any) map[string]any {
	ref, ok := node["$ref"].(string)
	if !ok {
		return node
	}

	const prefix = "#/$defs/"
	if len(ref) <= len(prefix) {
		return nil
	}

	defs, ok := root["$defs"].(map[string]any)
	if !ok {
		return nil
	}

	resolved, ok := defs[ref[len(prefix):]].(map[string]any)
	if !ok {
		return nil
	}

	return resolved
}
