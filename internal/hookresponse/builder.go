package hookresponse

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
)

// Allow builds an allow decision with the given reason.
func Allow(reason string) *HookResponse {
	return &HookResponse{
		HookSpecificOutput: &HookSpecificOutput{
			PermissionDecision:       DecisionAllow,
			PermissionDecisionReason: reason,
		},
	}
}

// Marshal encodes resp as a single JSON object without a trailing newline.
func Marshal(resp *HookResponse) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, errors.Wrap(err, "marshal hook response")
	}

	return data, nil
}

// Write encodes resp to w in one write. A nil response writes nothing.
func Write(w io.Writer, resp *HookResponse) error {
	if resp == nil {
		return nil
	}

	data, err := Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write hook response")
	}

	return nil
}
