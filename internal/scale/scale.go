// Package scale maps data values onto screen ranges: linear, square-root,
// time and ordinal scales.
package scale

import (
	"math"
	"time"
)

// Linear maps a continuous domain onto a continuous range
type Linear struct {
	Domain [2]float64
	Range  [2]float64
	Clamp  bool
}

// NewLinear creates a linear scale
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Map returns the range value for v. A collapsed domain maps to the range
// midpoint.
func (s Linear) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d0 == d1 {
		return (r0 + r1) / 2
	}
	t := (v - d0) / (d1 - d0)
	if s.Clamp {
		t = clamp01(t)
	}
	return r0 + t*(r1-r0)
}

// Invert returns the domain value for a range value
func (s Linear) Invert(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if r0 == r1 {
		return (d0 + d1) / 2
	}
	t := (v - r0) / (r1 - r0)
	if s.Clamp {
		t = clamp01(t)
	}
	return d0 + t*(d1-d0)
}

// Sqrt is a power scale with exponent 0.5
type Sqrt struct {
	Domain [2]float64
	Range  [2]float64
}

// NewSqrt creates a square-root scale
func NewSqrt(d0, d1, r0, r1 float64) Sqrt {
	return Sqrt{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Map returns the range value for v
func (s Sqrt) Map(v float64) float64 {
	lin := Linear{
		Domain: [2]float64{signedSqrt(s.Domain[0]), signedSqrt(s.Domain[1])},
		Range:  s.Range,
	}
	return lin.Map(signedSqrt(v))
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// Time maps an interval of instants onto a continuous range
type Time struct {
	Domain [2]time.Time
	Range  [2]float64
}

// NewTime creates a time scale
func NewTime(t0, t1 time.Time, r0, r1 float64) Time {
	return Time{Domain: [2]time.Time{t0, t1}, Range: [2]float64{r0, r1}}
}

// Map returns the range value for t
func (s Time) Map(t time.Time) float64 {
	span := s.Domain[1].Sub(s.Domain[0])
	if span == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	frac := float64(t.Sub(s.Domain[0])) / float64(span)
	return s.Range[0] + frac*(s.Range[1]-s.Range[0])
}

// Invert returns the instant for a range value. The range endpoints invert
// exactly to the domain endpoints.
func (s Time) Invert(v float64) time.Time {
	r0, r1 := s.Range[0], s.Range[1]
	switch {
	case v == r1:
		return s.Domain[1]
	case v == r0 || r0 == r1:
		return s.Domain[0]
	}
	frac := (v - r0) / (r1 - r0)
	span := s.Domain[1].Sub(s.Domain[0])
	return s.Domain[0].Add(time.Duration(frac * float64(span)))
}

// Ticks returns up to n evenly spaced instants across the domain, endpoints
// included
func (s Time) Ticks(n int) []time.Time {
	if n < 2 {
		return []time.Time{s.Domain[0]}
	}
	span := s.Domain[1].Sub(s.Domain[0])
	ticks := make([]time.Time, n)
	for i := range ticks {
		ticks[i] = s.Domain[0].Add(time.Duration(float64(span) * float64(i) / float64(n-1)))
	}
	ticks[n-1] = s.Domain[1]
	return ticks
}

// PadDays widens an instant extent by days before and hours after, the way
// the initial scatter render pads its x domain
func PadDays(t0, t1 time.Time, daysBefore, hoursAfter int) (time.Time, time.Time) {
	return t0.AddDate(0, 0, -daysBefore), t1.Add(time.Duration(hoursAfter) * time.Hour)
}

// Extent returns the min and max of values; ok is false for empty input
func Extent[T any](values []T, key func(T) float64) (lo, hi float64, ok bool) {
	for i, v := range values {
		k := key(v)
		if i == 0 || k < lo {
			lo = k
		}
		if i == 0 || k > hi {
			hi = k
		}
	}
	return lo, hi, len(values) > 0
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
