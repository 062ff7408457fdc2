package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modeldesk/internal/cmd/table"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)

	auto, err := ParseFormat("auto")
	require.NoError(t, err)
	assert.Contains(t, []Format{FormatTable, FormatJSON}, auto)
}

func TestDetectFormat_Explicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, map[string]int{"records": 2}))
	assert.Equal(t, "{\n  \"records\": 2\n}\n", buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, map[string]any{"tags": []string{"a", "b"}}))
	assert.Equal(t, "tags:\n- a\n- b\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{
		Headers: []string{"Key", "Name"},
		Rows:    [][]string{{"llama3-coder", "Llama 3 Coder"}},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "llama3-coder")
	assert.Contains(t, buf.String(), "Llama 3 Coder")
}

func TestTableFormatter_Structs(t *testing.T) {
	type row struct {
		Flag  string `json:"capability_flag"`
		Label string `json:"label"`
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{"web_search", "Web Search"}}))
	out := buf.String()
	assert.Contains(t, out, "web_search")
	assert.Contains(t, out, "Web Search")
}

func TestFormatIsTable(t *testing.T) {
	assert.True(t, FormatWide.IsTable())
	assert.True(t, Format("").IsTable())
	assert.False(t, FormatJSON.IsTable())
}
