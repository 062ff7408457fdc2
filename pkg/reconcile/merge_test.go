package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modeldesk/internal/jsonvalue"
	"github.com/agentstation/modeldesk/pkg/records"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	obj, err := jsonvalue.DecodeObject([]byte(s))
	require.NoError(t, err)
	return obj
}

func encode(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

const rawWithExtras = `{
  "id": "llama3:8b",
  "name": "Llama 3",
  "is_active": true,
  "pipe": {"type": "manifold"},
  "meta": {
    "description": "Local model",
    "capabilities": {"vision": false},
    "hidden": true
  },
  "params": {
    "temperature": 0.8,
    "num_ctx": 8192
  },
  "openai": {"id": "llama3:8b", "object": "model", "owned_by": "ollama", "ollama": {"digest": "abc"}}
}`

func TestMergeToRaw_RoundTrip(t *testing.T) {
	raw := decode(t, rawWithExtras)
	merged := MergeToRaw(raw, records.Normalize(raw))
	assert.JSONEq(t, rawWithExtras, encode(t, merged))
}

func TestMergeToRaw_PreservesUnknownFields(t *testing.T) {
	raw := decode(t, rawWithExtras)

	edited := records.Normalize(raw)
	edited.Name = "Llama 3 8B"
	edited.Meta.Description = ""
	edited.Params.Temperature = nil
	edited.OpenAI = records.OpenAI{}

	merged := MergeToRaw(raw, edited)

	assert.Equal(t, map[string]any{"type": "manifold"}, merged["pipe"])
	meta := merged["meta"].(map[string]any)
	assert.Equal(t, true, meta["hidden"])
	params := merged["params"].(map[string]any)
	assert.Equal(t, json.Number("8192"), params["num_ctx"])
	oa := merged["openai"].(map[string]any)
	assert.Equal(t, map[string]any{"digest": "abc"}, oa["ollama"])
}

func TestMergeToRaw_FieldRules(t *testing.T) {
	raw := decode(t, rawWithExtras)
	edited := records.Normalize(raw)

	// non-empty edit overwrites
	edited.Name = "Renamed"
	// cleared edit overwrites because raw had a value
	edited.Meta.Description = ""
	edited.Params.Temperature = nil
	// cleared edit on a field raw never had stays absent
	edited.Params.System = ""
	// new non-empty value on a field raw never had is added
	edited.Params.Stop = []string{"</s>"}
	edited.Meta.Tags = []records.Tag{{Name: "local"}}

	merged := MergeToRaw(raw, edited)

	assert.Equal(t, "Renamed", merged["name"])

	meta := merged["meta"].(map[string]any)
	assert.Equal(t, "", meta["description"])
	assert.Equal(t, []any{map[string]any{"name": "local"}}, meta["tags"])
	_, hasPrompts := meta["suggestion_prompts"]
	assert.False(t, hasPrompts, "empty default must not be introduced")

	params := merged["params"].(map[string]any)
	v, present := params["temperature"]
	assert.True(t, present)
	assert.Nil(t, v)
	_, hasSystem := params["system"]
	assert.False(t, hasSystem)
	assert.Equal(t, []any{"</s>"}, params["stop"])

	_, hasBase := merged["base_model_id"]
	assert.False(t, hasBase)
}

func TestMergeToRaw_ClearedFlagOverwrites(t *testing.T) {
	raw := decode(t, `{"id": "m", "is_active": true}`)
	edited := records.Normalize(raw)
	edited.IsActive = false

	merged := MergeToRaw(raw, edited)
	assert.Equal(t, false, merged["is_active"])
}

func TestMergeToRaw_MissingBlocks(t *testing.T) {
	raw := decode(t, `{"id": "m"}`)

	t.Run("untouched blocks stay absent", func(t *testing.T) {
		merged := MergeToRaw(raw, records.Normalize(raw))
		assert.JSONEq(t, `{"id": "m"}`, encode(t, merged))
	})

	t.Run("filled block is created with only set fields", func(t *testing.T) {
		edited := records.Normalize(raw)
		edited.Params.System = "Be brief."
		merged := MergeToRaw(raw, edited)
		assert.JSONEq(t, `{"id": "m", "params": {"system": "Be brief."}}`, encode(t, merged))
	})

	t.Run("non-object block is replaced only when filled", func(t *testing.T) {
		raw := decode(t, `{"id": "m", "meta": null}`)
		merged := MergeToRaw(raw, records.Normalize(raw))
		assert.JSONEq(t, `{"id": "m", "meta": null}`, encode(t, merged))
	})
}

func TestMergeToRaw_KeepsRawNumberSpelling(t *testing.T) {
	raw := decode(t, `{"params": {"temperature": 1.0, "max_tokens": 2e3}}`)
	merged := MergeToRaw(raw, records.Normalize(raw))

	params := merged["params"].(map[string]any)
	assert.Equal(t, json.Number("1.0"), params["temperature"])
	assert.Equal(t, json.Number("2e3"), params["max_tokens"])
}

func TestMergeToRaw_UneditedWrongTypesSurvive(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "string temperature", raw: `{"params": {"temperature": "0.7"}}`},
		{name: "string stop", raw: `{"params": {"stop": "###"}}`},
		{name: "numeric flag", raw: `{"is_active": 1}`},
		{name: "non-boolean capability", raw: `{"meta": {"capabilities": {"vision": true, "note": "x"}}}`},
		{name: "seed beyond int64", raw: `{"params": {"seed": 18446744073709551615}}`},
		{name: "bare string tags", raw: `{"meta": {"tags": ["t"]}}`},
		{name: "tag with extra keys", raw: `{"meta": {"tags": [{"name": "t", "color": "red"}]}}`},
		{name: "string block", raw: `{"params": "none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, tt.raw)
			merged := MergeToRaw(raw, records.Normalize(raw))
			assert.JSONEq(t, tt.raw, encode(t, merged))
		})
	}
}

func TestMergeToRaw_EditBesideWrongTypes(t *testing.T) {
	raw := decode(t, `{"params": {"temperature": "0.7", "system": "old"}}`)
	edited := records.Normalize(raw)
	edited.Params.System = "new"

	merged := MergeToRaw(raw, edited)
	assert.JSONEq(t, `{"params": {"temperature": "0.7", "system": "new"}}`, encode(t, merged))

	temp := 0.2
	edited.Params.Temperature = &temp
	merged = MergeToRaw(raw, edited)
	assert.Equal(t, 0.2, merged["params"].(map[string]any)["temperature"])
}

func TestMergeToRaw_CapabilityEditKeepsOtherEntries(t *testing.T) {
	raw := decode(t, `{"meta": {"capabilities": {"vision": true, "usage": false, "note": "x"}}}`)
	edited := records.Normalize(raw)
	edited.Meta.Capabilities["vision"] = false
	edited.Meta.Capabilities["citations"] = true
	delete(edited.Meta.Capabilities, "usage")

	merged := MergeToRaw(raw, edited)
	assert.JSONEq(t, `{"meta": {"capabilities": {"vision": false, "citations": true, "note": "x"}}}`, encode(t, merged))
}

func TestMergeToRaw_TagEditKeepsTagObjects(t *testing.T) {
	raw := decode(t, `{"meta": {"tags": [{"name": "a", "color": "red"}, {"name": "b"}]}}`)
	edited := records.Normalize(raw)
	edited.Meta.Tags = []records.Tag{{Name: "a"}, {Name: "c"}}

	merged := MergeToRaw(raw, edited)
	assert.JSONEq(t, `{"meta": {"tags": [{"name": "a", "color": "red"}, {"name": "c"}]}}`, encode(t, merged))
}

func TestMergeToRaw_NewRecordVerbatim(t *testing.T) {
	edited := records.Defaults()
	edited.ID = "fresh"
	edited.Name = "Fresh"

	merged := MergeToRaw(nil, edited)
	assert.Equal(t, edited.ToMap(), merged)
	assert.True(t, records.Normalize(merged).Equal(edited))
}

func TestMergeToRaw_DoesNotMutateRaw(t *testing.T) {
	raw := decode(t, rawWithExtras)
	before := encode(t, raw)

	edited := records.Normalize(raw)
	edited.Meta.Capabilities["vision"] = true
	edited.Params.System = "x"
	merged := MergeToRaw(raw, edited)
	merged["meta"].(map[string]any)["hidden"] = false

	assert.Equal(t, before, encode(t, raw))
}

func TestMergeAll(t *testing.T) {
	store := NewRawStore()
	rawA := decode(t, `{"id": "a", "name": "A", "x": 1}`)
	rawB := decode(t, `{"id": "b", "name": "B"}`)
	store.Capture("a", rawA)
	store.Capture("b", rawB)

	b := records.Normalize(rawB)
	b.Name = "B2"
	fresh := records.Defaults()
	fresh.ID = "c"

	result := MergeAll(store, []Entry{
		{Key: "a", Record: records.Normalize(rawA)},
		{Key: "b", Record: b},
		{Key: "c", Record: fresh},
	})

	require.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Modified)
	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, 1, result.PreservedFields)
	assert.Equal(t, "B2", result.Records[1]["name"])
	assert.Contains(t, result.Summary(), "3 records (1 new, 1 modified, 1 unchanged)")

	data, err := result.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","name":"A","x":1},{"id":"b","name":"B2"},`+encode(t, fresh.ToMap())+`]`, string(data))
}

func TestUnknownFields(t *testing.T) {
	raw := decode(t, rawWithExtras)
	assert.Equal(t, []string{"meta.hidden", "openai.ollama", "params.num_ctx", "pipe"}, UnknownFields(raw))
}
