// Package jsonx implements the unknown-field preservation used by every API
// model: JSON keys a server sends beyond a struct's declared schema are kept
// in a side bag on decode and merged back on encode, so round trips lose
// nothing when talking to a newer server.
package jsonx

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var declaredKeysCache sync.Map // reflect.Type -> map[string]struct{}

// MarshalExtra encodes v and merges extra keys into the resulting object.
// Declared fields win on collision: an extra key is only written when the
// encoded struct did not already produce it.
func MarshalExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return encoded, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &obj); err != nil {
		return nil, err
	}
	for key, raw := range extra {
		if _, declared := obj[key]; !declared {
			obj[key] = raw
		}
	}
	return json.Marshal(obj)
}

// UnmarshalExtra decodes data into v and returns every object key not
// declared by v's struct tags. Returns nil when no unknown keys remain.
// v must be a non-nil pointer to a struct.
func UnmarshalExtra(data []byte, v any) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	declared := declaredKeys(reflect.TypeOf(v).Elem())
	for key := range declared {
		delete(obj, key)
	}
	if len(obj) == 0 {
		return nil, nil
	}
	return obj, nil
}

// declaredKeys returns the set of JSON object keys the struct type declares,
// including keys promoted from embedded structs.
func declaredKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := declaredKeysCache.Load(t); ok {
		return cached.(map[string]struct{})
	}
	keys := make(map[string]struct{})
	collectKeys(t, keys)
	declaredKeysCache.Store(t, keys)
	return keys
}

func collectKeys(t reflect.Type, keys map[string]struct{}) {
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue // unexported
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if field.Anonymous && name == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			collectKeys(embedded, keys)
			continue
		}
		if name == "" {
			name = field.Name
		}
		keys[name] = struct{}{}
	}
}
