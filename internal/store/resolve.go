package store

// Table is a flat, ordered VersionKey → VersionValue mapping. Order is
// insertion order, which keeps resolver output and changelogs deterministic.
type Table struct {
	keys []string
	m    map[string]string
}

// NewTable builds a Table from key/value pairs in the given order.
// Panics on an odd number of arguments (programmer error, test helper).
func NewTable(pairs ...string) Table {
	if len(pairs)%2 != 0 {
		panic("store: NewTable requires key/value pairs")
	}
	t := Table{m: map[string]string{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.put(pairs[i], pairs[i+1])
	}
	return t
}

func (t *Table) put(key, value string) {
	if t.m == nil {
		t.m = map[string]string{}
	}
	if _, seen := t.m[key]; !seen {
		t.keys = append(t.keys, key)
	}
	t.m[key] = value
}

// Get returns the value for key and whether it is present.
func (t Table) Get(key string) (string, bool) {
	v, ok := t.m[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (t Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of keys.
func (t Table) Len() int { return len(t.keys) }

// Resolve merges a global table with a per-recipe override table. For every
// global key the override value wins when present; keys that exist only in
// the override are appended afterwards. Resolve is pure: the inputs are not
// modified and the same inputs always produce the same output.
func Resolve(global, override Table) Table {
	out := Table{m: make(map[string]string, len(global.keys)+len(override.keys))}
	for _, k := range global.keys {
		if v, ok := override.Get(k); ok {
			out.put(k, v)
			continue
		}
		out.put(k, global.m[k])
	}
	for _, k := range override.keys {
		if _, ok := global.m[k]; !ok {
			out.put(k, override.m[k])
		}
	}
	return out
}
