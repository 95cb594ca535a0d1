package cartesian

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stackPoint(index int, x, y float64) ChartPoint {
	return ChartPoint{
		Coordinate: NewCoordinate(x, y),
		Index:      index,
	}
}

func TestStackContext(t *testing.T) {
	t.Parallel()

	ctx := NewStackContext()
	a := ctx.GetStacker(KindStackedColumn, 0, StackNormal)
	assert.Same(t, a, ctx.GetStacker(KindStackedColumn, 0, StackNormal))
	assert.NotSame(t, a, ctx.GetStacker(KindStackedColumn, 1, StackNormal))
	assert.NotSame(t, a, ctx.GetStacker(KindStackedArea, 0, StackNormal))
	assert.Equal(t, 3, ctx.Len())
}

func TestStackerRegister(t *testing.T) {
	t.Parallel()

	s := newStacker(StackNormal)
	first, fresh := s.Register(10)
	require.True(t, fresh)
	second, fresh := s.Register(4)
	require.True(t, fresh)
	again, fresh := s.Register(10)
	require.False(t, fresh)

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, first.Position, again.Position)
	assert.Same(t, s, again.Stacker())
	assert.Equal(t, 2, s.Len())
}

func TestStackerValues(t *testing.T) {
	t.Parallel()

	build := func(mode StackMode) (StackPosition, StackPosition) {
		s := newStacker(mode)
		a, _ := s.Register(0)
		b, _ := s.Register(1)
		a.StackPoint(stackPoint(0, 0, 2))
		a.StackPoint(stackPoint(1, 1, -1))
		b.StackPoint(stackPoint(0, 0, 3))
		b.StackPoint(stackPoint(1, 1, -2))
		return a, b
	}

	t.Run("normal", func(t *testing.T) {
		t.Parallel()
		a, b := build(StackNormal)
		var got []StackedValue
		for _, pos := range []StackPosition{a, b} {
			for i := range 2 {
				sv, ok := pos.Get(stackPoint(i, float64(i), 0))
				require.True(t, ok)
				got = append(got, sv)
			}
		}
		want := []StackedValue{
			{Start: 0, End: 2, Total: 5},
			{Start: 0, End: -1, Total: -3},
			{Start: 2, End: 5, Total: 5},
			{Start: -1, End: -3, Total: -3},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("stacked values mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("expand", func(t *testing.T) {
		t.Parallel()
		_, b := build(StackExpand)
		top, _ := b.Get(stackPoint(0, 0, 0))
		bottom, _ := b.Get(stackPoint(1, 1, 0))
		opts := cmpopts.EquateApprox(0, 1e-9)
		if diff := cmp.Diff(StackedValue{Start: 0.4, End: 1, Total: 5}, top, opts); diff != "" {
			t.Errorf("positive pile mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(StackedValue{Start: -1.0 / 3, End: -1, Total: -3}, bottom, opts); diff != "" {
			t.Errorf("negative pile mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("signs pile separately", func(t *testing.T) {
		t.Parallel()
		s := newStacker(StackNormal)
		a, _ := s.Register(0)
		b, _ := s.Register(1)
		c, _ := s.Register(2)
		a.StackPoint(stackPoint(0, 0, 2))
		b.StackPoint(stackPoint(0, 0, -1))
		sv := c.StackPoint(stackPoint(0, 0, 3))
		assert.Equal(t, StackedValue{Start: 2, End: 5}, sv)
	})

	t.Run("gaps are not stacked", func(t *testing.T) {
		t.Parallel()
		s := newStacker(StackNormal)
		a, _ := s.Register(0)
		a.StackPoint(ChartPoint{Coordinate: EmptyCoordinate()})
		_, ok := a.Get(ChartPoint{Coordinate: EmptyCoordinate()})
		assert.False(t, ok)
	})
}
