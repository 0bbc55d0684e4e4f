package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a money or rate field parsed leniently from JSON. The rule API
// serializes decimals as strings ("50000.00"), older clients send numbers, and
// some omit fields entirely. A value that cannot be parsed is treated as unset
// rather than failing the request; callers supply the fallback via Or.
type Amount struct {
	value float64
	set   bool
}

func AmountOf(v float64) Amount {
	return Amount{value: v, set: true}
}

// Or returns the parsed value, or def when the field was absent, unparseable,
// negative, or not finite.
func (a Amount) Or(def float64) float64 {
	if !a.set || a.value < 0 || math.IsNaN(a.value) || math.IsInf(a.value, 0) {
		return def
	}
	return a.value
}

func (a Amount) IsSet() bool {
	return a.set
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*a = Amount{}
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = Amount{}
		return nil
	}
	*a = Amount{value: v, set: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}
