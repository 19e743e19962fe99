package fileutil

import (
	"encoding/json"
	"io"
)

// PrintJSON writes value to w as indented JSON with a trailing newline.
func PrintJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
