package entities

// Result is an ordered set of decoded fields from one query. Iteration
// order follows the query descriptor's field list so rendered output is
// stable across runs.
type Result struct {
	keys []string
	vals map[string]Value
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{vals: make(map[string]Value)}
}

// Set stores a value, appending the key to the iteration order on first
// insert.
func (r *Result) Set(key string, v Value) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Get returns the value for key and whether it is present.
func (r *Result) Get(key string) (Value, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Keys returns the field keys in insertion order.
func (r *Result) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of fields.
func (r *Result) Len() int {
	return len(r.keys)
}

// Map returns key to plain Go value, for JSON and MQTT consumers.
func (r *Result) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.keys))
	for k, v := range r.vals {
		m[k] = v.Interface()
	}
	return m
}

// FormatFields zips keys positionally with the raw reply fields and
// coerces each one per its entity definition.
//
// Raw fields beyond the key list are ignored; a reply shorter than the
// key list fails with a FormattingError naming the first missing key.
// When addUnits is set, fields whose entity defines a unit are rendered
// as text with the unit suffixed, replacing the typed value.
func FormatFields(keys, raw []string, addUnits bool) (*Result, error) {
	res := NewResult()
	for i, key := range keys {
		ent, ok := Entities[key]
		if !ok {
			return nil, &FormattingError{Key: key, Reason: "no entity definition"}
		}
		if i >= len(raw) {
			return nil, &FormattingError{Key: key, Reason: "response field missing"}
		}

		v, err := ent.Coerce.Apply(raw[i])
		if err != nil {
			return nil, &FormattingError{Key: key, Reason: err.Error()}
		}
		if addUnits && ent.Unit != "" {
			v = TextValue(v.String() + ent.Unit)
		}
		res.Set(key, v)
	}
	return res, nil
}
