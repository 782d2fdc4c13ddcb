package exec

import "os/exec"

// ToolChecker checks for tool availability in PATH.
type ToolChecker interface {
	// IsAvailable checks if a tool is available in PATH.
	IsAvailable(tool string) bool

	// Lookup returns the resolved path of tool.
	Lookup(tool string) (string, bool)

	// RequireTool returns an error if the tool is not available.
	RequireTool(tool string) error
}

// toolChecker implements ToolChecker.
type toolChecker struct{}

// NewToolChecker creates a new ToolChecker.
func NewToolChecker() ToolChecker {
	return toolChecker{}
}

// IsAvailable checks if a tool is available in PATH.
func (t toolChecker) IsAvailable(tool string) bool {
	_, ok := t.Lookup(tool)

	return ok
}

// Lookup returns the resolved path of tool.
func (toolChecker) Lookup(tool string) (string, bool) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", false
	}

	return path, true
}

// RequireTool returns an error if the tool is not available.
func (t toolChecker) RequireTool(tool string) error {
	if !t.IsAvailable(tool) {
		return &ToolNotFoundError{Tool: tool}
	}

	return nil
}

// ToolNotFoundError is returned when a required tool is not found.
type ToolNotFoundError struct {
	Tool string
}

// Error returns the error message.
func (e *ToolNotFoundError) Error() string {
	return "tool not found in PATH: " + e.Tool
}
