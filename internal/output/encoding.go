// Package output produces deterministic serialized views of analysis results.
// Running the pipeline twice on an unchanged file set must yield byte-identical
// documents, so encoding normalizes key order and float formatting.
package output

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"sort"
)

// DeterministicEncode produces byte-identical JSON output
// - Stable key ordering (sorted alphabetically)
// - Float formatting: max 6 decimal places
// - Nil fields omitted entirely
func DeterministicEncode(v interface{}) ([]byte, error) {
	normalized := normalizeValue(v)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(normalized); err != nil {
		return nil, err
	}

	// Remove the trailing newline added by Encode
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	return result, nil
}

// DeterministicEncodeIndented produces indented byte-identical JSON output
func DeterministicEncodeIndented(v interface{}, indent string) ([]byte, error) {
	normalized := normalizeValue(v)

	result, err := json.MarshalIndent(normalized, "", indent)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RoundFloat rounds a float to 6 decimal places so repeated runs do not
// differ in insignificant digits.
func RoundFloat(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

// normalizeValue recursively normalizes a value for deterministic encoding
func normalizeValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}

	val := reflect.ValueOf(v)

	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Map:
		return normalizeMap(val)
	case reflect.Slice, reflect.Array:
		return normalizeSlice(val)
	case reflect.Struct:
		return normalizeStruct(val)
	case reflect.Float32, reflect.Float64:
		return RoundFloat(val.Float())
	case reflect.Interface:
		if val.IsNil() {
			return nil
		}
		return normalizeValue(val.Interface())
	default:
		return v
	}
}

// normalizeMap converts a map into a key-sorted representation
func normalizeMap(val reflect.Value) interface{} {
	if val.IsNil() {
		return nil
	}

	keys := make([]string, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)

	result := make(map[string]interface{}, len(keys))
	for _, key := range keys {
		value := normalizeValue(val.MapIndex(reflect.ValueOf(key).Convert(val.Type().Key())).Interface())
		if value != nil {
			result[key] = value
		}
	}

	return result
}

// normalizeSlice normalizes each element of a slice or array
func normalizeSlice(val reflect.Value) interface{} {
	if val.Kind() == reflect.Slice && val.IsNil() {
		return []interface{}{}
	}

	length := val.Len()
	result := make([]interface{}, length)
	for i := 0; i < length; i++ {
		result[i] = normalizeValue(val.Index(i).Interface())
	}
	return result
}

// normalizeStruct normalizes struct fields, honoring json tags
func normalizeStruct(val reflect.Value) interface{} {
	t := val.Type()
	result := make(map[string]interface{})

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}

		name := field.Name
		omitempty := false
		if tag, ok := field.Tag.Lookup("json"); ok {
			parts := splitTag(tag)
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, p := range parts[1:] {
				if p == "omitempty" {
					omitempty = true
				}
			}
		}

		fv := val.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}

		normalized := normalizeValue(fv.Interface())
		if normalized == nil && omitempty {
			continue
		}
		result[name] = normalized
	}

	return result
}

func splitTag(tag string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(tag); i++ {
		if i == len(tag) || tag[i] == ',' {
			parts = append(parts, tag[start:i])
			start = i + 1
		}
	}
	return parts
}
