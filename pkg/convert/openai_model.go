package convert

import (
	"github.com/agentstation/modeldesk/pkg/records"
)

// OpenAIModel represents a model in OpenAI API format.
// Field order matches the OpenAI API response schema.
type OpenAIModel struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// OpenAIModelsResponse represents the root response object for OpenAI models list API.
type OpenAIModelsResponse struct {
	Object string        `json:"object"`
	Data   []OpenAIModel `json:"data"`
}

// ToOpenAIModel projects a record onto the OpenAI model schema. Values from
// the record's openai block win; the top-level id, created_at and owned_by
// fill the gaps.
func ToOpenAIModel(r records.Record) OpenAIModel {
	m := OpenAIModel{
		ID:      r.OpenAI.ID,
		Object:  r.OpenAI.Object,
		OwnedBy: r.OpenAI.OwnedBy,
	}
	if m.ID == "" {
		m.ID = r.ID
	}
	if m.Object == "" {
		m.Object = "model"
	}
	switch {
	case r.OpenAI.Created != nil:
		m.Created = *r.OpenAI.Created
	case r.CreatedAt != nil:
		m.Created = *r.CreatedAt
	}
	if m.OwnedBy == "" {
		m.OwnedBy = r.OwnedBy
	}
	if m.OwnedBy == "" {
		m.OwnedBy = "system"
	}
	return m
}

// ToOpenAIModels builds a models list response.
func ToOpenAIModels(rs []records.Record) OpenAIModelsResponse {
	resp := OpenAIModelsResponse{
		Object: "list",
		Data:   make([]OpenAIModel, 0, len(rs)),
	}
	for _, r := range rs {
		resp.Data = append(resp.Data, ToOpenAIModel(r))
	}
	return resp
}
