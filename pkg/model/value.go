// pkg/model/value.go
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DateLayout is the canonical DD/MM/YYYY rendering of dates throughout
// the pipeline, from repaired records down to the database sink.
const DateLayout = "02/01/2006"

// IsMissing reports whether a scalar counts as absent: nil, the empty
// string, or a whitespace-only string.
func IsMissing(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// AsString converts a scalar to its string form; nil becomes "".
func AsString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// AsInt attempts to convert a scalar to int64.
func AsInt(v interface{}) (int64, error) {
	if v == nil {
		return 0, errors.New("nil value")
	}
	switch val := v.(type) {
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case float64:
		return int64(val), nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, errors.New("empty string")
		}
		if i, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
			return i, nil
		}
		// Values like "42.0" arrive as strings from the source files.
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	case []byte:
		return AsInt(string(val))
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

// AsFloat attempts to convert a scalar to float64.
func AsFloat(v interface{}) (float64, error) {
	if v == nil {
		return 0, errors.New("nil value")
	}
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, errors.New("empty string")
		}
		// Source files use a comma decimal separator in places.
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		return strconv.ParseFloat(cleaned, 64)
	case []byte:
		return AsFloat(string(val))
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}
