package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modeldesk/internal/jsonvalue"
	"github.com/agentstation/modeldesk/pkg/errors"
)

const fullRecord = `{
  "id": "gpt-4o-research",
  "name": "Research Assistant",
  "base_model_id": "gpt-4o",
  "owned_by": "openai",
  "user_id": "u-1",
  "is_active": true,
  "access_control": {"read": {"group_ids": ["g1"]}},
  "created_at": 1717000000,
  "updated_at": 1717000500,
  "meta": {
    "profile_image_url": "/static/favicon.png",
    "description": "Long-form research",
    "capabilities": {"vision": true, "citations": false},
    "suggestion_prompts": [{"content": "Summarize this paper"}],
    "tags": [{"name": "research"}, {"name": "writing"}],
    "knowledge": [{"id": "kb-1"}],
    "toolIds": ["web_search"],
    "filterIds": [],
    "actionIds": ["export"]
  },
  "params": {
    "system": "You are careful.",
    "temperature": 0.2,
    "top_p": 0.9,
    "top_k": 40,
    "max_tokens": 4096,
    "seed": 7,
    "frequency_penalty": 0.5,
    "reasoning_effort": "high",
    "function_calling": "native",
    "stop": ["###"]
  },
  "openai": {"id": "gpt-4o", "object": "model", "created": 1715367049, "owned_by": "system"}
}`

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	obj, err := jsonvalue.DecodeObject([]byte(s))
	require.NoError(t, err)
	return obj
}

func TestNormalize_Defaults(t *testing.T) {
	r := Normalize(map[string]any{})

	assert.Equal(t, "", r.ID)
	assert.Nil(t, r.BaseModelID)
	assert.False(t, r.IsActive)
	assert.Nil(t, r.AccessControl)
	assert.Nil(t, r.CreatedAt)
	assert.NotNil(t, r.Meta.Capabilities)
	assert.Empty(t, r.Meta.Capabilities)
	assert.NotNil(t, r.Meta.Tags)
	assert.NotNil(t, r.Params.Stop)
	assert.Nil(t, r.Params.Temperature)
	assert.Nil(t, r.OpenAI.Created)

	assert.True(t, r.Equal(Defaults()))
	assert.True(t, Normalize(nil).Equal(Defaults()))
}

func TestNormalize_FullRecord(t *testing.T) {
	r := Normalize(decode(t, fullRecord))

	assert.Equal(t, "gpt-4o-research", r.ID)
	require.NotNil(t, r.BaseModelID)
	assert.Equal(t, "gpt-4o", *r.BaseModelID)
	assert.True(t, r.IsActive)
	require.NotNil(t, r.CreatedAt)
	assert.Equal(t, int64(1717000000), *r.CreatedAt)

	assert.Equal(t, map[string]bool{"vision": true, "citations": false}, r.Meta.Capabilities)
	assert.Equal(t, []string{"research", "writing"}, r.TagNames())
	assert.Equal(t, []string{"web_search"}, r.Meta.ToolIDs)

	require.NotNil(t, r.Params.Temperature)
	assert.Equal(t, 0.2, *r.Params.Temperature)
	require.NotNil(t, r.Params.TopK)
	assert.Equal(t, int64(40), *r.Params.TopK)
	assert.Equal(t, []string{"###"}, r.Params.Stop)

	assert.Equal(t, "model", r.OpenAI.Object)
	require.NotNil(t, r.OpenAI.Created)
	assert.Equal(t, int64(1715367049), *r.OpenAI.Created)
}

func TestNormalize_Permissive(t *testing.T) {
	raw := decode(t, `{
	  "id": 12,
	  "is_active": "yes",
	  "access_control": "private",
	  "meta": {"capabilities": {"vision": "on", "usage": true}, "tags": ["a", {"name": "b"}, 3], "toolIds": ["x", 1]},
	  "params": "nope",
	  "openai": {"created": 1.5}
	}`)

	r := Normalize(raw)
	assert.Equal(t, "", r.ID)
	assert.False(t, r.IsActive)
	assert.Nil(t, r.AccessControl)
	assert.Equal(t, map[string]bool{"usage": true}, r.Meta.Capabilities)
	assert.Equal(t, []string{"a", "b"}, r.TagNames())
	assert.Equal(t, []string{"x"}, r.Meta.ToolIDs)
	assert.True(t, r.Params.Stop != nil && len(r.Params.Stop) == 0)
	assert.Nil(t, r.OpenAI.Created)
}

func TestNormalize_DoesNotAliasRaw(t *testing.T) {
	raw := decode(t, fullRecord)
	r := Normalize(raw)

	r.Meta.SuggestionPrompts[0].(map[string]any)["content"] = "changed"
	r.AccessControl.(map[string]any)["read"] = nil

	again := Normalize(raw)
	assert.Equal(t, "Summarize this paper", again.Meta.SuggestionPrompts[0].(map[string]any)["content"])
	assert.NotNil(t, again.AccessControl.(map[string]any)["read"])
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	r := Normalize(decode(t, fullRecord))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, fullRecord, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, r.Equal(back))
}

func TestRecord_Clone(t *testing.T) {
	r := Normalize(decode(t, fullRecord))
	c := r.Clone()
	require.True(t, r.Equal(c))

	c.Meta.Capabilities["vision"] = false
	c.Params.Stop[0] = "END"
	*c.Params.Temperature = 1.5

	assert.True(t, r.Meta.Capabilities["vision"])
	assert.Equal(t, "###", r.Params.Stop[0])
	assert.Equal(t, 0.2, *r.Params.Temperature)
}

func TestSetField(t *testing.T) {
	base := Normalize(decode(t, fullRecord))

	tests := []struct {
		name    string
		path    string
		value   any
		check   func(t *testing.T, r Record)
		wantErr bool
	}{
		{
			name:  "top-level scalar",
			path:  "name",
			value: "Renamed",
			check: func(t *testing.T, r Record) { assert.Equal(t, "Renamed", r.Name) },
		},
		{
			name:  "nested number",
			path:  "params.temperature",
			value: ParseValue("0.9"),
			check: func(t *testing.T, r Record) { assert.Equal(t, 0.9, *r.Params.Temperature) },
		},
		{
			name:  "clear nested",
			path:  "params.temperature",
			value: nil,
			check: func(t *testing.T, r Record) { assert.Nil(t, r.Params.Temperature) },
		},
		{
			name:  "capability flag",
			path:  "meta.capabilities.image_generation",
			value: true,
			check: func(t *testing.T, r Record) { assert.True(t, r.Meta.Capabilities["image_generation"]) },
		},
		{
			name:  "tags from strings",
			path:  "meta.tags",
			value: ParseValue(`["fast"]`),
			check: func(t *testing.T, r Record) { assert.Equal(t, []string{"fast"}, r.TagNames()) },
		},
		{name: "unknown top-level", path: "color", value: "red", wantErr: true},
		{name: "unknown nested", path: "params.mirostat", value: 1, wantErr: true},
		{name: "wrong type", path: "params.top_k", value: "many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SetField(base, tt.path, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				assert.True(t, got.Equal(base))
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}

	// base is never modified
	assert.Equal(t, "Research Assistant", base.Name)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, json.Number("3"), ParseValue("3"))
	assert.Equal(t, true, ParseValue("true"))
	assert.Nil(t, ParseValue("null"))
	assert.Equal(t, "hello world", ParseValue("hello world"))
	assert.Equal(t, "gpt-4o", ParseValue(`"gpt-4o"`))
}

func TestGetField(t *testing.T) {
	r := Normalize(decode(t, fullRecord))
	assert.Equal(t, "high", GetField(r, "params.reasoning_effort"))
	assert.Equal(t, true, GetField(r, "meta.capabilities.vision"))
	assert.Nil(t, GetField(r, "params.unknown"))
	assert.Nil(t, GetField(r, "name.deeper"))
}
