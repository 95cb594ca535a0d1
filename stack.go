package cartesian

import (
	"math"
)

type StackMode int

const (
	// StackNormal piles values on top of each other.
	StackNormal StackMode = iota
	// StackExpand piles values as a share of the total at each secondary
	// value, giving a 100% stacked chart.
	StackExpand
)

// StackedValue is the position of a point inside its stack. Total is the
// sum of the values of the same sign at the same secondary value.
type StackedValue struct {
	Start float64
	End   float64
	Total float64
}

type stackKey struct {
	kind  SeriesKind
	group int
}

// StackContext is created for each measure pass of a chart. It hands out
// one Stacker per stacked series kind and stack group.
type StackContext struct {
	stackers map[stackKey]*Stacker
}

func NewStackContext() *StackContext {
	return &StackContext{
		stackers: make(map[stackKey]*Stacker),
	}
}

func (c *StackContext) GetStacker(kind SeriesKind, group int, mode StackMode) *Stacker {
	k := stackKey{
		kind:  kind,
		group: group,
	}
	s, ok := c.stackers[k]
	if !ok {
		s = newStacker(mode)
		c.stackers[k] = s
	}
	return s
}

// Len gives the number of stacks created so far.
func (c *StackContext) Len() int {
	return len(c.stackers)
}

type sums struct {
	positive float64
	negative float64
}

// Stacker accumulates the values of the series registered to it. Positive
// and negative values build two separate piles for each secondary value.
type Stacker struct {
	mode      StackMode
	positions map[int]int
	values    []map[int]StackedValue
	running   map[float64]*sums
}

func newStacker(mode StackMode) *Stacker {
	return &Stacker{
		mode:      mode,
		positions: make(map[int]int),
		running:   make(map[float64]*sums),
	}
}

// Register returns the position of a series inside the stack. The
// boolean is false when the series was already registered.
func (s *Stacker) Register(id int) (StackPosition, bool) {
	if p, ok := s.positions[id]; ok {
		return StackPosition{stacker: s, Position: p}, false
	}
	p := len(s.values)
	s.positions[id] = p
	s.values = append(s.values, make(map[int]StackedValue))
	return StackPosition{stacker: s, Position: p}, true
}

func (s *Stacker) Len() int {
	return len(s.values)
}

func (s *Stacker) push(pos int, pt ChartPoint) StackedValue {
	if pt.IsEmpty() {
		return StackedValue{}
	}
	sm, ok := s.running[pt.Secondary]
	if !ok {
		sm = &sums{}
		s.running[pt.Secondary] = sm
	}
	var sv StackedValue
	if pt.Primary >= 0 {
		sv.Start = sm.positive
		sm.positive += pt.Primary
		sv.End = sm.positive
	} else {
		sv.Start = sm.negative
		sm.negative += pt.Primary
		sv.End = sm.negative
	}
	s.values[pos][pt.Index] = sv
	return sv
}

func (s *Stacker) get(pos int, pt ChartPoint) (StackedValue, bool) {
	sv, ok := s.values[pos][pt.Index]
	if !ok {
		return sv, false
	}
	sm := s.running[pt.Secondary]
	if sm == nil {
		return sv, true
	}
	if sv.End >= 0 && sv.Start >= 0 {
		sv.Total = sm.positive
	} else {
		sv.Total = sm.negative
	}
	if s.mode == StackExpand && sv.Total != 0 {
		total := math.Abs(sv.Total)
		sv.Start /= total
		sv.End /= total
	}
	return sv, true
}

// StackPosition is the slot of one series inside a Stacker.
type StackPosition struct {
	stacker  *Stacker
	Position int
}

// StackPoint pushes the value of pt on the stack and returns where it
// lands. Values are not normalized yet: totals are only known once every
// series of the stack was pushed.
func (p StackPosition) StackPoint(pt ChartPoint) StackedValue {
	return p.stacker.push(p.Position, pt)
}

// Get returns the final stacked value of pt, normalized for StackExpand.
func (p StackPosition) Get(pt ChartPoint) (StackedValue, bool) {
	return p.stacker.get(p.Position, pt)
}

func (p StackPosition) Stacker() *Stacker {
	return p.stacker
}
