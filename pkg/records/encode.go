package records

import (
	"encoding/json"

	"github.com/agentstation/modeldesk/internal/jsonvalue"
)

// TagName is the key of a tag object's name.
const TagName = "name"

// ToMap renders the record as a generic JSON object containing every known
// field. Only JSON-generic Go types are used (map[string]any, []any,
// string, bool, int64, float64, nil) so the result can be merged and
// compared with decoded raw documents.
func (r Record) ToMap() map[string]any {
	return map[string]any{
		KeyID:            r.ID,
		KeyName:          r.Name,
		KeyBaseModelID:   optString(r.BaseModelID),
		KeyOwnedBy:       r.OwnedBy,
		KeyUserID:        r.UserID,
		KeyIsActive:      r.IsActive,
		KeyAccessControl: jsonvalue.Copy(r.AccessControl),
		KeyCreatedAt:     optInt(r.CreatedAt),
		KeyUpdatedAt:     optInt(r.UpdatedAt),
		KeyMeta:          r.Meta.ToMap(),
		KeyParams:        r.Params.ToMap(),
		KeyOpenAI:        r.OpenAI.ToMap(),
	}
}

// ToMap renders the meta block.
func (m Meta) ToMap() map[string]any {
	caps := make(map[string]any, len(m.Capabilities))
	for name, on := range m.Capabilities {
		caps[name] = on
	}

	tags := make([]any, 0, len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, map[string]any{TagName: t.Name})
	}

	return map[string]any{
		MetaProfileImageURL:   m.ProfileImageURL,
		MetaDescription:       m.Description,
		MetaCapabilities:      caps,
		MetaSuggestionPrompts: copyList(m.SuggestionPrompts),
		MetaTags:              tags,
		MetaKnowledge:         copyList(m.Knowledge),
		MetaToolIDs:           stringList(m.ToolIDs),
		MetaFilterIDs:         stringList(m.FilterIDs),
		MetaActionIDs:         stringList(m.ActionIDs),
	}
}

// ToMap renders the params block.
func (p Params) ToMap() map[string]any {
	return map[string]any{
		ParamSystem:           p.System,
		ParamTemperature:      optFloat(p.Temperature),
		ParamTopP:             optFloat(p.TopP),
		ParamTopK:             optInt(p.TopK),
		ParamMaxTokens:        optInt(p.MaxTokens),
		ParamSeed:             optInt(p.Seed),
		ParamFrequencyPenalty: optFloat(p.FrequencyPenalty),
		ParamReasoningEffort:  p.ReasoningEffort,
		ParamFunctionCalling:  p.FunctionCalling,
		ParamStop:             stringList(p.Stop),
	}
}

// ToMap renders the openai block.
func (o OpenAI) ToMap() map[string]any {
	return map[string]any{
		OpenAIID:      o.ID,
		OpenAIObject:  o.Object,
		OpenAICreated: optInt(o.Created),
		OpenAIOwnedBy: o.OwnedBy,
	}
}

// MarshalJSON encodes the full normalized object.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// UnmarshalJSON decodes any JSON object through Normalize.
func (r *Record) UnmarshalJSON(data []byte) error {
	obj, err := jsonvalue.DecodeObject(data)
	if err != nil {
		return err
	}
	*r = Normalize(obj)
	return nil
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	return Normalize(r.ToMap())
}

// Equal reports whether two records hold the same values.
func (r Record) Equal(o Record) bool {
	return jsonvalue.Equivalent(r.ToMap(), o.ToMap())
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optInt(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}

func optFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func stringList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func copyList(items []any) []any {
	if items == nil {
		return []any{}
	}
	return jsonvalue.Copy(items).([]any)
}
