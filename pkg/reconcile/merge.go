package reconcile

import (
	"github.com/agentstation/modeldesk/internal/jsonvalue"
	"github.com/agentstation/modeldesk/pkg/records"
)

// MergeToRaw merges an edited record onto its raw counterpart.
//
// A nil raw means the record was created in the editor; its full
// normalized object is returned. Otherwise the result starts from a copy of
// raw and only fields whose edited value differs from Normalize(raw) are
// considered. Such a field is written when the edited value is non-empty, or
// when it is empty and raw held a non-empty value there. Keys unknown to the
// schema are never touched. raw itself is not modified.
func MergeToRaw(raw map[string]any, edited records.Record) map[string]any {
	edit := edited.ToMap()
	if raw == nil {
		return edit
	}
	base := records.Normalize(raw).ToMap()

	out := jsonvalue.CopyObject(raw)
	for _, key := range records.ScalarKeys {
		if !jsonvalue.Equivalent(edit[key], base[key]) {
			mergeKey(out, key, edit[key])
		}
	}

	for _, block := range records.NestedKeys {
		editBlock := edit[block].(map[string]any)
		baseBlock := base[block].(map[string]any)
		rawBlock, isObject := out[block].(map[string]any)
		if !isObject {
			rawBlock = map[string]any{}
		}

		for _, key := range records.KnownKeys(block) {
			value := editBlock[key]
			if jsonvalue.Equivalent(value, baseBlock[key]) {
				continue
			}
			switch {
			case block == records.KeyMeta && key == records.MetaCapabilities:
				value = mergeCapabilities(rawBlock[key], value.(map[string]any), baseBlock[key].(map[string]any))
			case block == records.KeyMeta && key == records.MetaTags:
				value = mergeTags(rawBlock[key], value.([]any))
			}
			mergeKey(rawBlock, key, value)
		}

		// A block the raw never had only appears when the edit filled it in.
		if isObject || len(rawBlock) > 0 {
			out[block] = rawBlock
		}
	}
	return out
}

func mergeKey(dst map[string]any, key string, value any) {
	current, present := dst[key]
	switch {
	case present && jsonvalue.Equivalent(current, value):
		// Unchanged: keep the raw spelling of the value.
	case !jsonvalue.IsEmpty(value):
		dst[key] = value
	case present && !jsonvalue.IsEmpty(current):
		dst[key] = value
	}
}

// mergeCapabilities applies flag changes onto the raw capabilities object,
// keeping entries that are not boolean flags.
func mergeCapabilities(raw any, edit, base map[string]any) any {
	rawCaps, ok := raw.(map[string]any)
	if !ok {
		return edit
	}
	out := jsonvalue.CopyObject(rawCaps)
	for flag, on := range edit {
		if !jsonvalue.Equivalent(base[flag], on) {
			out[flag] = on
		}
	}
	for flag := range base {
		if _, kept := edit[flag]; !kept {
			delete(out, flag)
		}
	}
	return out
}

// mergeTags reuses the raw tag object for every edited tag whose name was
// already present, so extra keys on those tags survive.
func mergeTags(raw any, edit []any) []any {
	rawTags, _ := raw.([]any)
	byName := make(map[string]map[string]any, len(rawTags))
	for _, item := range rawTags {
		if t, ok := item.(map[string]any); ok {
			if name, ok := t[records.TagName].(string); ok {
				if _, seen := byName[name]; !seen {
					byName[name] = t
				}
			}
		}
	}

	out := make([]any, len(edit))
	for i, item := range edit {
		out[i] = item
		name, _ := item.(map[string]any)[records.TagName].(string)
		if t, ok := byName[name]; ok {
			out[i] = jsonvalue.CopyObject(t)
		}
	}
	return out
}

// Entry pairs a record with the key it was imported under.
type Entry struct {
	Key    string
	Record records.Record
}

// MergeAll merges every entry against the store, preserving entry order.
func MergeAll(store *RawStore, entries []Entry) *Result {
	result := &Result{Records: make([]map[string]any, 0, len(entries))}
	for _, e := range entries {
		raw, ok := store.Get(e.Key)
		if !ok {
			result.Created++
			result.Records = append(result.Records, MergeToRaw(nil, e.Record))
			continue
		}

		merged := MergeToRaw(raw, e.Record)
		if jsonvalue.Equivalent(raw, merged) {
			result.Unchanged++
		} else {
			result.Modified++
		}
		result.PreservedFields += len(UnknownFields(raw))
		result.Records = append(result.Records, merged)
	}
	return result
}

// UnknownFields lists the dotted paths in raw the editor does not model.
func UnknownFields(raw map[string]any) []string {
	var paths []string
	known := make(map[string]bool, len(records.ScalarKeys)+len(records.NestedKeys))
	for _, k := range records.ScalarKeys {
		known[k] = true
	}
	for _, k := range records.NestedKeys {
		known[k] = true
	}

	for _, k := range sortedKeys(raw) {
		if !known[k] {
			paths = append(paths, k)
			continue
		}
		block, ok := raw[k].(map[string]any)
		if !ok || records.KnownKeys(k) == nil {
			continue
		}
		inner := make(map[string]bool)
		for _, ik := range records.KnownKeys(k) {
			inner[ik] = true
		}
		for _, ik := range sortedKeys(block) {
			if !inner[ik] {
				paths = append(paths, k+"."+ik)
			}
		}
	}
	return paths
}
