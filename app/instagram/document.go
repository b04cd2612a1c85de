package instagram

import (
	"encoding/json"
)

// document is a decoded JSON object with get-or-default accessors. The
// upstream GraphQL payload is undocumented and drifts, so every leaf read
// tolerates a missing or retyped field by returning its zero value instead
// of failing.
type document map[string]json.RawMessage

func (d document) raw(key string) json.RawMessage {
	if d == nil {
		return nil
	}
	return d[key]
}

func (d document) doc(key string) document {
	var out document
	if err := json.Unmarshal(d.raw(key), &out); err != nil {
		return nil
	}
	return out
}

func (d document) str(key string) *string {
	var out string
	if err := json.Unmarshal(d.raw(key), &out); err != nil {
		return nil
	}
	return &out
}

// stringish reads a field that upstream serves either as a string or as a
// bare number (e.g. user.pk) and returns it as a string.
func (d document) stringish(key string) *string {
	if s := d.str(key); s != nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(d.raw(key), &n); err != nil {
		return nil
	}
	s := n.String()
	return &s
}

func (d document) int64v(key string) *int64 {
	var out int64
	if err := json.Unmarshal(d.raw(key), &out); err != nil {
		return nil
	}
	return &out
}

func (d document) intv(key string) *int {
	var out int
	if err := json.Unmarshal(d.raw(key), &out); err != nil {
		return nil
	}
	return &out
}

func (d document) boolOr(key string, def bool) bool {
	var out bool
	if err := json.Unmarshal(d.raw(key), &out); err != nil {
		return def
	}
	return out
}
