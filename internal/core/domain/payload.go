package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// InitPayload is the bootstrap document handed to the managed runner.
// The runner reads it from the command line argument following InitFlag.
type InitPayload struct {
	// Config is the full configuration snapshot the task runs under.
	Config *Config `json:"config"`

	// Build is the resolved build specification for the task.
	Build *BuildSpec `json:"build"`
}

// Encode returns the payload as a single-line JSON argument.
// Map keys are emitted in sorted order, so equal payloads encode identically.
func (p InitPayload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", zerr.Wrap(err, ErrPayloadEncodeFailed.Error())
	}
	return string(raw), nil
}
