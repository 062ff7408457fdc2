package records

import (
	"github.com/agentstation/modeldesk/internal/jsonvalue"
)

// Normalize builds a fully-defaulted Record from a raw JSON object.
// Values of the wrong type are treated as absent; Normalize never fails.
// The raw object is not modified and nothing in the result aliases it.
func Normalize(raw map[string]any) Record {
	r := Defaults()
	if raw == nil {
		return r
	}

	r.ID = str(raw[KeyID])
	r.Name = str(raw[KeyName])
	r.BaseModelID = strPtr(raw[KeyBaseModelID])
	r.OwnedBy = str(raw[KeyOwnedBy])
	r.UserID = str(raw[KeyUserID])
	r.IsActive = boolean(raw[KeyIsActive])
	if ac, ok := raw[KeyAccessControl].(map[string]any); ok {
		r.AccessControl = jsonvalue.CopyObject(ac)
	}
	r.CreatedAt = intPtr(raw[KeyCreatedAt])
	r.UpdatedAt = intPtr(raw[KeyUpdatedAt])

	if meta, ok := raw[KeyMeta].(map[string]any); ok {
		r.Meta = normalizeMeta(meta)
	}
	if params, ok := raw[KeyParams].(map[string]any); ok {
		r.Params = normalizeParams(params)
	}
	if oa, ok := raw[KeyOpenAI].(map[string]any); ok {
		r.OpenAI = OpenAI{
			ID:      str(oa[OpenAIID]),
			Object:  str(oa[OpenAIObject]),
			Created: intPtr(oa[OpenAICreated]),
			OwnedBy: str(oa[OpenAIOwnedBy]),
		}
	}
	return r
}

func normalizeMeta(m map[string]any) Meta {
	meta := Defaults().Meta
	meta.ProfileImageURL = str(m[MetaProfileImageURL])
	meta.Description = str(m[MetaDescription])

	if caps, ok := m[MetaCapabilities].(map[string]any); ok {
		for name, v := range caps {
			if b, ok := v.(bool); ok {
				meta.Capabilities[name] = b
			}
		}
	}

	meta.SuggestionPrompts = anyList(m[MetaSuggestionPrompts])
	meta.Knowledge = anyList(m[MetaKnowledge])
	meta.Tags = tags(m[MetaTags])
	meta.ToolIDs = strList(m[MetaToolIDs])
	meta.FilterIDs = strList(m[MetaFilterIDs])
	meta.ActionIDs = strList(m[MetaActionIDs])
	return meta
}

func normalizeParams(m map[string]any) Params {
	return Params{
		System:           str(m[ParamSystem]),
		Temperature:      floatPtr(m[ParamTemperature]),
		TopP:             floatPtr(m[ParamTopP]),
		TopK:             intPtr(m[ParamTopK]),
		MaxTokens:        intPtr(m[ParamMaxTokens]),
		Seed:             intPtr(m[ParamSeed]),
		FrequencyPenalty: floatPtr(m[ParamFrequencyPenalty]),
		ReasoningEffort:  str(m[ParamReasoningEffort]),
		FunctionCalling:  str(m[ParamFunctionCalling]),
		Stop:             strList(m[ParamStop]),
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strPtr(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func boolean(v any) bool {
	b, _ := v.(bool)
	return b
}

func intPtr(v any) *int64 {
	i, ok := jsonvalue.Int64(v)
	if !ok {
		return nil
	}
	return &i
}

func floatPtr(v any) *float64 {
	f, ok := jsonvalue.Float64(v)
	if !ok {
		return nil
	}
	return &f
}

func strList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func anyList(v any) []any {
	items, ok := v.([]any)
	if !ok {
		return []any{}
	}
	return jsonvalue.Copy(items).([]any)
}

// tags accepts both {"name": "..."} objects and bare strings.
func tags(v any) []Tag {
	items, _ := v.([]any)
	out := make([]Tag, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, Tag{Name: t})
		case map[string]any:
			if name, ok := t[TagName].(string); ok {
				out = append(out, Tag{Name: name})
			}
		}
	}
	return out
}
