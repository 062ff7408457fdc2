package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/records"
)

// Format is an export format.
type Format string

// Export formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatOpenAI   Format = "openai"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatOpenAI}

// ParseFormat parses a format name. An empty name selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "openai":
		return FormatOpenAI, nil
	default:
		return "", errors.NewValidationError("format", s,
			fmt.Sprintf("unsupported export format (want one of %v)", Formats))
	}
}

// Write renders merged documents in the given format. Only JSON is lossless;
// the other formats are views for review and downstream tooling.
func Write(w io.Writer, format Format, docs []map[string]any, label Labeler) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		data, err := ToYAML(docs)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatMarkdown:
		return WriteMarkdown(w, normalizeAll(docs), label)
	case FormatOpenAI:
		data, err := json.MarshalIndent(ToOpenAIModels(normalizeAll(docs)), "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return errors.NewValidationError("format", string(format), "unsupported export format")
	}
}

func normalizeAll(docs []map[string]any) []records.Record {
	rs := make([]records.Record, len(docs))
	for i, d := range docs {
		rs[i] = records.Normalize(d)
	}
	return rs
}
