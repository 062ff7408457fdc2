// Package convert renders merged model records in the formats the export
// command offers: canonical JSON, YAML for review, a Markdown summary table
// and the OpenAI /v1/models list projection.
package convert
