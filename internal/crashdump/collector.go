// Package crashdump records diagnostics when a hook panics.
package crashdump

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/smykla-skalski/ccbridge/pkg/config"
)

const (
	// shortIDLength is the length of the short ID suffix.
	shortIDLength = 8

	panicNilStr = "panic(nil)"
)

// CrashInfo is the content of one crash dump file.
type CrashInfo struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Event      string         `json:"event,omitempty"`
	PanicValue string         `json:"panic_value"`
	StackTrace string         `json:"stack_trace"`
	Runtime    RuntimeInfo    `json:"runtime"`
	Metadata   DumpMetadata   `json:"metadata"`
	Config     map[string]any `json:"config,omitempty"`
}

// RuntimeInfo describes the Go runtime at crash time.
type RuntimeInfo struct {
	GOOS         string `json:"goos"`
	GOARCH       string `json:"goarch"`
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
}

// DumpMetadata holds process details useful when triaging a dump.
type DumpMetadata struct {
	Version    string `json:"version"`
	Hostname   string `json:"hostname,omitempty"`
	WorkingDir string `json:"working_dir,omitempty"`
}

// Collector builds CrashInfo values.
type Collector struct {
	version   string
	sanitizer *Sanitizer
	now       func() time.Time
}

// NewCollector creates a collector stamping dumps with version.
func NewCollector(version string) *Collector {
	return &Collector{
		version:   version,
		sanitizer: NewSanitizer(),
		now:       time.Now,
	}
}

// Collect gathers crash information for a recovered panic value and the stack
// captured at recovery. cfg may be nil.
func (c *Collector) Collect(recovered any, stack []byte, event string, cfg *config.Config) *CrashInfo {
	now := c.now()
	panicValue := formatPanicValue(recovered)

	info := &CrashInfo{
		ID:         generateCrashID(now, panicValue),
		Timestamp:  now,
		Event:      event,
		PanicValue: panicValue,
		StackTrace: string(stack),
		Runtime: RuntimeInfo{
			GOOS:         runtime.GOOS,
			GOARCH:       runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
		},
		Metadata: DumpMetadata{Version: c.version},
	}

	if hostname, err := os.Hostname(); err == nil {
		info.Metadata.Hostname = hostname
	}

	if wd, err := os.Getwd(); err == nil {
		info.Metadata.WorkingDir = wd
	}

	if cfg != nil {
		info.Config = c.sanitizer.SanitizeConfig(cfg)
	}

	return info
}

// formatPanicValue renders a recovered value. panic(nil) surfaces as
// *runtime.PanicNilError since Go 1.21.
func formatPanicValue(v any) string {
	if v == nil {
		return panicNilStr
	}

	if _, ok := v.(*runtime.PanicNilError); ok {
		return panicNilStr
	}

	if err, ok := v.(error); ok {
		return err.Error()
	}

	return fmt.Sprintf("%v", v)
}

// generateCrashID returns crash-{timestamp}-{shortHash}.
func generateCrashID(timestamp time.Time, panicValue string) string {
	data := fmt.Sprintf("%d-%s", timestamp.UnixNano(), panicValue)
	hash := sha256.Sum256([]byte(data))
	shortHash := hex.EncodeToString(hash[:])[:shortIDLength]

	return fmt.Sprintf("crash-%s-%s", timestamp.UTC().Format("20060102T150405"), shortHash)
}
