package form

// Reconcile deep-merges a loaded document onto the current defaults,
// both expressed as decoded JSON. The rules are fixed per value kind:
//
//   - a keyed record recurses, so fields the document never knew about
//     keep their defaults;
//   - an ordered sequence replaces the default wholesale, never
//     element-wise, so row counts follow the document;
//   - any scalar (string, number, bool, null) overwrites.
//
// Keys in the loaded document with no counterpart in the defaults are
// carried through; decoding the merged map into State drops them, which
// is how a newer document loads into an older reader without error.
// Neither input is mutated.
func Reconcile(defaults, loaded map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults))
	for k, v := range defaults {
		merged[k] = cloneValue(v)
	}
	for k, lv := range loaded {
		merged[k] = mergeValue(merged[k], lv)
	}
	return merged
}

func mergeValue(def, loaded any) any {
	switch lv := loaded.(type) {
	case map[string]any:
		dm, ok := def.(map[string]any)
		if !ok {
			dm = map[string]any{}
		}
		return Reconcile(dm, lv)
	case []any:
		return cloneValue(lv)
	default:
		return lv
	}
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
