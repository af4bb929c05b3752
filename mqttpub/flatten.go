package mqttpub

// Flatten collapses a nested string-keyed map into a single level,
// joining nested keys with sep. Non-map values, slices included, pass
// through unchanged:
//
//	{"a": 1, "c": {"b": {"x": 5}}}  ->  {"a": 1, "c.b.x": 5}
func Flatten(d map[string]interface{}, sep string) map[string]interface{} {
	out := make(map[string]interface{}, len(d))
	flattenInto(out, d, sep, "")
	return out
}

func flattenInto(out, d map[string]interface{}, sep, parent string) {
	for k, v := range d {
		key := k
		if parent != "" {
			key = parent + sep + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flattenInto(out, nested, sep, key)
			continue
		}
		out[key] = v
	}
}
