package cartesian

import (
	"sort"
	"sync"
)

// Canvas holds the paint tasks of a chart. Any change to the set of paints
// or to their geometries done through the canvas bumps its version, which
// lets a drawing context skip frames that did not change.
type Canvas struct {
	mu      sync.Mutex
	paints  []*Paint
	version uint64
	drawn   uint64
}

func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) AddPaint(p *Paint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.addPaint(p) {
		c.version++
	}
}

func (c *Canvas) RemovePaint(p *Paint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.removePaint(p) {
		c.version++
	}
}

// ReplacePaint swaps old for p keeping the geometries old was drawing.
func (c *Canvas) ReplacePaint(old, p *Paint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		c.version++
	}()
	if old == p {
		c.addPaint(p)
		return
	}
	if old != nil {
		c.removePaint(old)
		if p != nil {
			old.transfer(p)
		}
	}
	if p != nil {
		c.addPaint(p)
	}
}

func (c *Canvas) HasPaint(p *Paint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexOf(p) >= 0
}

// Paints returns the paints ordered by z-index, then by insertion.
func (c *Canvas) Paints() []*Paint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorted()
}

func (c *Canvas) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

func (c *Canvas) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
}

// IsDirty reports whether the canvas changed since it was last drawn.
func (c *Canvas) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version != c.drawn
}

// Draw draws every paint of the canvas with dc.
func (c *Canvas) Draw(dc DrawingContext, width, height float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := dc.Begin(width, height); err != nil {
		return err
	}
	for _, p := range c.sorted() {
		if len(p.geometries) == 0 {
			continue
		}
		if err := dc.BeginPaint(p); err != nil {
			return err
		}
		for _, g := range p.geometries {
			if err := g.Draw(dc, p); err != nil {
				return err
			}
		}
		if err := dc.EndPaint(p); err != nil {
			return err
		}
	}
	if err := dc.End(); err != nil {
		return err
	}
	c.drawn = c.version
	return nil
}

// DrawIfDirty draws the canvas only when it changed since the last draw.
func (c *Canvas) DrawIfDirty(dc DrawingContext, width, height float64) (bool, error) {
	if !c.IsDirty() {
		return false, nil
	}
	return true, c.Draw(dc, width, height)
}

// update runs fn with the canvas locked and bumps the version afterwards.
func (c *Canvas) update(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		c.version++
	}()
	return fn()
}

func (c *Canvas) addPaint(p *Paint) bool {
	if p == nil || c.indexOf(p) >= 0 {
		return false
	}
	c.paints = append(c.paints, p)
	return true
}

func (c *Canvas) removePaint(p *Paint) bool {
	i := c.indexOf(p)
	if i < 0 {
		return false
	}
	c.paints = append(c.paints[:i], c.paints[i+1:]...)
	return true
}

func (c *Canvas) indexOf(p *Paint) int {
	for i := range c.paints {
		if c.paints[i] == p {
			return i
		}
	}
	return -1
}

func (c *Canvas) sorted() []*Paint {
	list := make([]*Paint, len(c.paints))
	copy(list, c.paints)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ZIndex < list[j].ZIndex
	})
	return list
}
