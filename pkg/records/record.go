// Package records defines the normalized model-definition record edited by
// modeldesk, along with permissive normalization from raw JSON objects.
//
// A Record always carries every field the editor knows about, each set to an
// explicit default when the raw input omitted it. Fields the editor does not
// know are not represented here; they live only in the raw copy kept by the
// reconcile package.
package records

// Top-level JSON keys of a record.
const (
	KeyID            = "id"
	KeyName          = "name"
	KeyBaseModelID   = "base_model_id"
	KeyOwnedBy       = "owned_by"
	KeyUserID        = "user_id"
	KeyIsActive      = "is_active"
	KeyAccessControl = "access_control"
	KeyCreatedAt     = "created_at"
	KeyUpdatedAt     = "updated_at"
	KeyMeta          = "meta"
	KeyParams        = "params"
	KeyOpenAI        = "openai"
)

// ScalarKeys lists the top-level keys that are overwritten as a whole.
var ScalarKeys = []string{
	KeyID,
	KeyName,
	KeyBaseModelID,
	KeyOwnedBy,
	KeyUserID,
	KeyIsActive,
	KeyAccessControl,
	KeyCreatedAt,
	KeyUpdatedAt,
}

// NestedKeys lists the top-level objects merged field by field.
var NestedKeys = []string{KeyMeta, KeyParams, KeyOpenAI}

// Record is a normalized model definition.
type Record struct {
	ID            string  // Unique model identifier
	Name          string  // Display name
	BaseModelID   *string // Model this definition wraps; nil for base models
	OwnedBy       string  // Owning connection ("openai", "ollama", ...)
	UserID        string  // Creator
	IsActive      bool    // Whether the model is offered to users
	AccessControl any     // Opaque access-control object; nil means public
	CreatedAt     *int64  // Unix seconds
	UpdatedAt     *int64  // Unix seconds

	Meta   Meta
	Params Params
	OpenAI OpenAI
}

// Meta holds presentation and capability settings.
type Meta struct {
	ProfileImageURL   string
	Description       string
	Capabilities      map[string]bool // Capability flags such as vision or citations
	SuggestionPrompts []any           // Opaque prompt objects
	Tags              []Tag
	Knowledge         []any // Opaque knowledge references
	ToolIDs           []string
	FilterIDs         []string
	ActionIDs         []string
}

// Meta JSON keys.
const (
	MetaProfileImageURL   = "profile_image_url"
	MetaDescription       = "description"
	MetaCapabilities      = "capabilities"
	MetaSuggestionPrompts = "suggestion_prompts"
	MetaTags              = "tags"
	MetaKnowledge         = "knowledge"
	MetaToolIDs           = "toolIds"
	MetaFilterIDs         = "filterIds"
	MetaActionIDs         = "actionIds"
)

// Tag is a named label attached to a model.
type Tag struct {
	Name string
}

// Params holds generation parameters applied to every request.
type Params struct {
	System           string
	Temperature      *float64
	TopP             *float64
	TopK             *int64
	MaxTokens        *int64
	Seed             *int64
	FrequencyPenalty *float64
	ReasoningEffort  string
	FunctionCalling  string
	Stop             []string
}

// Params JSON keys.
const (
	ParamSystem           = "system"
	ParamTemperature      = "temperature"
	ParamTopP             = "top_p"
	ParamTopK             = "top_k"
	ParamMaxTokens        = "max_tokens"
	ParamSeed             = "seed"
	ParamFrequencyPenalty = "frequency_penalty"
	ParamReasoningEffort  = "reasoning_effort"
	ParamFunctionCalling  = "function_calling"
	ParamStop             = "stop"
)

// OpenAI mirrors the OpenAI-compatible model object reported by the
// upstream connection.
type OpenAI struct {
	ID      string
	Object  string
	Created *int64
	OwnedBy string
}

// OpenAI block JSON keys.
const (
	OpenAIID      = "id"
	OpenAIObject  = "object"
	OpenAICreated = "created"
	OpenAIOwnedBy = "owned_by"
)

// Defaults returns a record with every field set to its default.
func Defaults() Record {
	return Record{
		Meta: Meta{
			Capabilities:      map[string]bool{},
			SuggestionPrompts: []any{},
			Tags:              []Tag{},
			Knowledge:         []any{},
			ToolIDs:           []string{},
			FilterIDs:         []string{},
			ActionIDs:         []string{},
		},
		Params: Params{
			Stop: []string{},
		},
	}
}

// TagNames returns the names of the record's tags in order.
func (r Record) TagNames() []string {
	names := make([]string, 0, len(r.Meta.Tags))
	for _, t := range r.Meta.Tags {
		names = append(names, t.Name)
	}
	return names
}

// HasTag reports whether the record carries a tag with the given name.
func (r Record) HasTag(name string) bool {
	for _, t := range r.Meta.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// DisplayName returns the name, falling back to the id.
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// MetaKeys lists the known keys of the meta block.
var MetaKeys = []string{
	MetaProfileImageURL,
	MetaDescription,
	MetaCapabilities,
	MetaSuggestionPrompts,
	MetaTags,
	MetaKnowledge,
	MetaToolIDs,
	MetaFilterIDs,
	MetaActionIDs,
}

// ParamKeys lists the known keys of the params block.
var ParamKeys = []string{
	ParamSystem,
	ParamTemperature,
	ParamTopP,
	ParamTopK,
	ParamMaxTokens,
	ParamSeed,
	ParamFrequencyPenalty,
	ParamReasoningEffort,
	ParamFunctionCalling,
	ParamStop,
}

// OpenAIKeys lists the known keys of the openai block.
var OpenAIKeys = []string{OpenAIID, OpenAIObject, OpenAICreated, OpenAIOwnedBy}

// KnownKeys returns the known keys of a nested block, or nil when block is
// not one of NestedKeys.
func KnownKeys(block string) []string {
	switch block {
	case KeyMeta:
		return MetaKeys
	case KeyParams:
		return ParamKeys
	case KeyOpenAI:
		return OpenAIKeys
	default:
		return nil
	}
}
