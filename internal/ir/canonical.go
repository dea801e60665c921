package ir

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces deterministic JSON: same value, byte-identical
// output. The emitter relies on this for reproducible runtime configs.
//
// Rules, following RFC 8785 canonical JSON:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Floats must be finite; NaN and Inf return an error naming the path
//  5. No null (absent fields are omitted, never emitted as null)
func MarshalCanonical(v any) ([]byte, error) {
	return marshalCanonical(v, "$")
}

// NonFiniteError reports a NaN or infinite number encountered during
// canonical marshaling, with the JSON path of the offending field.
type NonFiniteError struct {
	Path  string
	Value float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("%s: non-finite number %v cannot be represented in JSON", e.Path, e.Value)
}

func marshalCanonical(v any, path string) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("%s: null is forbidden in canonical JSON", path)
	case string:
		return marshalCanonicalString(val), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case int64:
		return strconv.AppendInt(nil, val, 10), nil
	case float64:
		return marshalCanonicalNumber(val, path)
	case []any:
		return marshalCanonicalArray(val, path)
	case map[string]any:
		return marshalCanonicalObject(val, path)
	default:
		return nil, fmt.Errorf("%s: unsupported type for canonical JSON: %T", path, v)
	}
}

// marshalCanonicalNumber formats a finite float. Integral values print
// without a fractional part so 5.0 and int 5 serialize identically.
func marshalCanonicalNumber(v float64, path string) ([]byte, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &NonFiniteError{Path: path, Value: v}
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.AppendInt(nil, int64(v), 10), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func marshalCanonicalArray(arr []any, path string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalCanonical(elem, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any, path string) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	// RFC 8785 UTF-16 code unit ordering.
	sort.Slice(keys, func(i, j int) bool {
		return lessUTF16(keys[i], keys[j])
	})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(marshalCanonicalString(k))
		buf.WriteByte(':')
		valBytes, err := marshalCanonical(obj[k], path+"."+k)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// lessUTF16 compares strings by UTF-16 code units as RFC 8785 requires;
// this differs from byte order only for characters outside the BMP.
func lessUTF16(a, b string) bool {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}

// marshalCanonicalString emits an NFC-normalized JSON string escaping only
// control characters, backslash, and quote. HTML-significant characters
// and U+2028/U+2029 pass through literally per RFC 8785.
func marshalCanonicalString(s string) []byte {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range normalized {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.Bytes()
}
