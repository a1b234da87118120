package render

import (
	"encoding/json"

	"github.com/dkoosis/statbar/pkg/scene"
)

// JSON renders scene frames as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Version string      `json:"version"`
	Frame   scene.Frame `json:"frame"`
}

// Render formats the frame as indented JSON.
func (j *JSON) Render(frame scene.Frame) string {
	out := jsonOutput{Version: "1.0", Frame: frame}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
