package ims

import "maps"

// MergeShallow returns the union of existing and patch. Keys present in both
// take the value from patch. Nested mappings are replaced, not merged.
// Neither input is modified.
func MergeShallow(existing, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(patch))
	maps.Copy(merged, existing)
	maps.Copy(merged, patch)
	return merged
}

// asMapping reports whether v is context data that can be merged.
func asMapping(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}
