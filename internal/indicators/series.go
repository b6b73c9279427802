package indicators

import "encoding/json"

// Value is a single indicator reading. Valid is false during warm-up.
type Value struct {
	Value float64
	Valid bool
}

// Undefined returns a warm-up entry
func Undefined() Value {
	return Value{}
}

// Defined returns a valid entry holding v
func Defined(v float64) Value {
	return Value{Value: v, Valid: true}
}

// MarshalJSON encodes undefined entries as null
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

// UnmarshalJSON decodes null as an undefined entry
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Undefined()
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Defined(f)
	return nil
}

// Series is an indicator output aligned 1:1 with its input sequence.
type Series []Value

// newUndefinedSeries returns n undefined entries
func newUndefinedSeries(n int) Series {
	return make(Series, n)
}

// At returns the entry at i. Indices outside the series are undefined.
func (s Series) At(i int) Value {
	if i < 0 || i >= len(s) {
		return Undefined()
	}
	return s[i]
}

// Last returns the final entry, undefined for an empty series
func (s Series) Last() Value {
	return s.At(len(s) - 1)
}

// FirstDefined returns the index of the first valid entry, or -1
func (s Series) FirstDefined() int {
	for i, v := range s {
		if v.Valid {
			return i
		}
	}
	return -1
}

// CountDefined returns how many entries are valid
func (s Series) CountDefined() int {
	n := 0
	for _, v := range s {
		if v.Valid {
			n++
		}
	}
	return n
}

// Floats returns the raw values and a parallel validity mask
func (s Series) Floats() ([]float64, []bool) {
	values := make([]float64, len(s))
	valid := make([]bool, len(s))
	for i, v := range s {
		values[i] = v.Value
		valid[i] = v.Valid
	}
	return values, valid
}

// seriesFromValues wraps plain values as a fully defined series
func seriesFromValues(values []float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Defined(v)
	}
	return s
}
