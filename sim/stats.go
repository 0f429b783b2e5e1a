package sim

// Stats accumulates ticks-to-destination samples of delivered passengers.
// Record is a commutative reduction: the result does not depend on the order
// of the samples.
type Stats struct {
	Count int64 `json:"count"`
	Sum   int64 `json:"sum"`
	Min   int   `json:"min"`
	Max   int   `json:"max"`
}

// Record adds one delivered passenger's travel time.
func (s *Stats) Record(ticks int) {
	if s.Count == 0 || ticks < s.Min {
		s.Min = ticks
	}
	if s.Count == 0 || ticks > s.Max {
		s.Max = ticks
	}
	s.Count++
	s.Sum += int64(ticks)
}

// Merge folds another aggregate into s.
func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 || o.Min < s.Min {
		s.Min = o.Min
	}
	if s.Count == 0 || o.Max > s.Max {
		s.Max = o.Max
	}
	s.Count += o.Count
	s.Sum += o.Sum
}

// Average returns the mean travel time. ok is false when nothing was recorded.
func (s Stats) Average() (avg float64, ok bool) {
	if s.Count == 0 {
		return 0, false
	}
	return float64(s.Sum) / float64(s.Count), true
}
