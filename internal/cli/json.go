package cli

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v as indented JSON followed by a newline. All --json
// output goes through here so the formatting stays consistent.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
