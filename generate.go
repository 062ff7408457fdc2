//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/modeldesk --repository.default-branch master --repository.path /

// Package modeldesk edits model-definition records for an LLM gateway.
//
// A Workspace keeps a pristine copy of every imported record, applies edits
// to a normalized form of each record, and merges the edits back onto the
// pristine copy on export so fields the editor does not model survive the
// round trip. Every mutation first pushes a snapshot onto a bounded undo
// history.
package modeldesk
