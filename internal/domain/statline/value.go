package statline

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
)

// Value is a nullable stat number. A blank Value means "did not play" and is
// distinct from zero: it renders as absent (JSON null, SQL NULL) but counts
// as 0 inside arithmetic so partial sums still converge.
type Value struct {
	value float64
	valid bool
}

func Blank() Value {
	return Value{}
}

func Of(v float64) Value {
	return Value{value: v, valid: true}
}

func OfInt(n int) Value {
	return Of(float64(n))
}

func (v Value) IsBlank() bool {
	return !v.valid
}

// Float64 returns the numeric value, treating blank as 0.
func (v Value) Float64() float64 {
	if !v.valid {
		return 0
	}
	return v.value
}

// Add sums two values. Blank plus blank stays blank; otherwise blank
// contributes 0 and the result is non-blank.
func (v Value) Add(other Value) Value {
	if !v.valid && !other.valid {
		return Blank()
	}
	return Of(v.Float64() + other.Float64())
}

// Round rounds to the given number of decimal places. Blank stays blank.
func (v Value) Round(places int) Value {
	if !v.valid {
		return v
	}
	factor := math.Pow(10, float64(places))
	return Of(math.Round(v.value*factor) / factor)
}

func (v Value) String() string {
	if !v.valid {
		return ""
	}
	return strconv.FormatFloat(v.value, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v.value, 'f', -1, 64)), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" || text == `""` {
		*v = Blank()
		return nil
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("parse stat value %q: %w", text, err)
	}
	*v = Of(parsed)
	return nil
}

func (v Value) Value() (driver.Value, error) {
	if !v.valid {
		return nil, nil
	}
	return v.value, nil
}

func (v *Value) Scan(src any) error {
	if src == nil {
		*v = Blank()
		return nil
	}
	switch typed := src.(type) {
	case float64:
		*v = Of(typed)
	case int64:
		*v = Of(float64(typed))
	case []byte:
		parsed, err := strconv.ParseFloat(string(typed), 64)
		if err != nil {
			return fmt.Errorf("scan stat value %q: %w", string(typed), err)
		}
		*v = Of(parsed)
	case string:
		parsed, err := strconv.ParseFloat(typed, 64)
		if err != nil {
			return fmt.Errorf("scan stat value %q: %w", typed, err)
		}
		*v = Of(parsed)
	default:
		return fmt.Errorf("unsupported stat value type %T", src)
	}
	return nil
}
