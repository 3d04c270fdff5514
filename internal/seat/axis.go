package seat

import "github.com/bnema/waycore/internal/scene"

// PendingScroll accumulates one scroll frame's worth of axis events
// across both axes until Frame finalizes it, indexed `0..2` so a frame
// with both a horizontal and a vertical component delivers both.
type PendingScroll struct {
	Source      int32
	HasSource   bool
	Discrete    [2]int32
	HasDiscrete [2]bool
	Value       [2]int32 // 24.8 fixed-point
	HasValue    [2]bool
	Stop        [2]bool
}

func (p *PendingScroll) reset() {
	*p = PendingScroll{}
}

// HandleAxisSource records the scroll source (wheel, finger, continuous,
// wheel-tilt) for the in-progress frame.
func (s *Seat) HandleAxisSource(source int32) {
	s.Pending.Source = source
	s.Pending.HasSource = true
}

// HandleAxisDiscrete records a wheel-click count for one axis.
func (s *Seat) HandleAxisDiscrete(axis int32, discrete int32) {
	if axis < 0 || axis > 1 {
		return
	}
	s.Pending.Discrete[axis] = discrete
	s.Pending.HasDiscrete[axis] = true
}

// HandleAxis records a continuous scroll value for one axis.
func (s *Seat) HandleAxis(axis int32, value int32) {
	if axis < 0 || axis > 1 {
		return
	}
	s.Pending.Value[axis] = value
	s.Pending.HasValue[axis] = true
}

// HandleAxisStop marks one axis as having come to rest this frame.
func (s *Seat) HandleAxisStop(axis int32) {
	if axis < 0 || axis > 1 {
		return
	}
	s.Pending.Stop[axis] = true
}

// HandleFrame finalizes the pending scroll accumulator and delivers it to
// the current pointer target in one AxisEvent, covering both axes.
func (s *Seat) HandleFrame() {
	target := s.currentPointerTarget()
	if target == nil || target.OnAxis == nil {
		s.Pending.reset()
		return
	}
	ev := scene.AxisEvent{
		Source:    s.Pending.Source,
		HasSource: s.Pending.HasSource,
	}
	for axis := 0; axis < 2; axis++ {
		ev.Value[axis] = s.Pending.Value[axis]
		ev.HasValue[axis] = s.Pending.HasValue[axis]
		ev.Discrete[axis] = s.Pending.Discrete[axis]
		ev.HasDiscrete[axis] = s.Pending.HasDiscrete[axis]
		ev.Stop[axis] = s.Pending.Stop[axis]
	}
	target.OnAxis(s.ID, ev)
	s.Pending.reset()
}
