package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, map[string]interface{}{
		"targets": 3,
		"groups":  []string{"db"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"), "output ends with newline")
	assert.Contains(t, out, "  \"targets\": 3", "output is indented")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(3), decoded["targets"])
}
