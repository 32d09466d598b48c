package scoring

import "maps"

// Answers maps question id to the recorded answer. A nil value is an
// explicit skip; a missing key means the question was never reached.
// The JSON form is {"1":true,"2":null}.
type Answers map[int]*bool

// Yes returns a fresh affirmative answer for use in an Answers map.
func Yes() *bool {
	v := true
	return &v
}

// No returns a fresh negative answer for use in an Answers map.
func No() *bool {
	v := false
	return &v
}

// Clone returns a copy that shares no answer pointers with a.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for id, v := range a {
		if v != nil {
			b := *v
			out[id] = &b
		} else {
			out[id] = nil
		}
	}
	return out
}

// Has reports whether id occupies a slot, answered or skipped.
func (a Answers) Has(id int) bool {
	_, ok := a[id]
	return ok
}

// Value returns the boolean answer for id and whether it was answered.
// Skipped and missing questions report false, false.
func (a Answers) Value(id int) (bool, bool) {
	v := a[id]
	if v == nil {
		return false, false
	}
	return *v, true
}

// Answered counts entries with a yes/no value.
func (a Answers) Answered() int {
	n := 0
	for _, v := range a {
		if v != nil {
			n++
		}
	}
	return n
}

// Skipped counts entries recorded as explicit skips.
func (a Answers) Skipped() int {
	return len(a) - a.Answered()
}

// Equal reports whether a and b hold the same slots and values.
func (a Answers) Equal(b Answers) bool {
	return maps.EqualFunc(a, b, func(x, y *bool) bool {
		if x == nil || y == nil {
			return x == nil && y == nil
		}
		return *x == *y
	})
}
