package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/scrollstage/pkg/components"
)

func newTestSampler(maxScroll float64) *ScrollSampler {
	s := NewScrollSampler(DefaultMaxVelocity)
	s.SetMaxScroll(maxScroll)
	return s
}

func TestScrollSampler_Velocity(t *testing.T) {
	s := newTestSampler(10000)

	first := s.Tick(0)
	if first.Velocity != 0 {
		t.Errorf("first tick velocity = %v, want 0", first.Velocity)
	}

	s.Push(100)
	sample := s.Tick(0.1)
	if math.Abs(sample.Velocity-1000) > 1e-9 {
		t.Errorf("velocity = %v, want 1000", sample.Velocity)
	}

	// 向回滚动速度为负
	s.Push(50)
	sample = s.Tick(0.2)
	if math.Abs(sample.Velocity+500) > 1e-9 {
		t.Errorf("velocity = %v, want -500", sample.Velocity)
	}

	// 没有新位置：速度归零
	sample = s.Tick(0.3)
	if sample.Velocity != 0 {
		t.Errorf("idle velocity = %v, want 0", sample.Velocity)
	}
}

func TestScrollSampler_VelocityClampedAndZeroDt(t *testing.T) {
	s := newTestSampler(100000)
	s.Tick(1)

	s.Push(50000)
	if v := s.Tick(1.01).Velocity; v != DefaultMaxVelocity {
		t.Errorf("velocity = %v, want clamp %v", v, DefaultMaxVelocity)
	}

	s.Push(10)
	if v := s.Tick(1.01).Velocity; v != 0 {
		t.Errorf("dt = 0 must yield velocity 0, got %v", v)
	}
}

// TestScrollSampler_CoalescesPushes 一帧内多次滚动事件只取最后一个
func TestScrollSampler_CoalescesPushes(t *testing.T) {
	s := newTestSampler(1000)
	calls := 0
	if _, err := s.Observe(Region{Start: 0, End: 1000}, func(components.ScrollSample) { calls++ }); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	s.Push(10)
	s.Push(20)
	s.Push(30)
	sample := s.Tick(0.016)
	if sample.Position != 30 {
		t.Errorf("position = %v, want 30", sample.Position)
	}
	if calls != 1 {
		t.Errorf("observer called %d times, want 1", calls)
	}
}

func TestScrollSampler_ClampsToDocument(t *testing.T) {
	s := newTestSampler(500)
	s.Push(900)
	if got := s.Tick(0).Position; got != 500 {
		t.Errorf("position = %v, want 500", got)
	}
	s.Push(-20)
	if got := s.Tick(0.1).Position; got != 0 {
		t.Errorf("position = %v, want 0", got)
	}
	s.PushDelta(120)
	s.PushDelta(120)
	if got := s.Tick(0.2).Position; got != 240 {
		t.Errorf("position = %v, want 240", got)
	}
	if got := s.Last().Progress; math.Abs(got-0.48) > 1e-12 {
		t.Errorf("page progress = %v, want 0.48", got)
	}
}

// TestScrollSampler_ShrinkDocumentNoVelocity 文档变短把位置拉回时不产生速度
func TestScrollSampler_ShrinkDocumentNoVelocity(t *testing.T) {
	s := newTestSampler(6000)
	s.Push(5488)
	s.Tick(0)
	s.Tick(0.016)

	s.SetMaxScroll(4000)
	sample := s.Tick(0.032)
	if sample.Position != 4000 {
		t.Errorf("position = %v, want 4000", sample.Position)
	}
	if sample.Velocity != 0 {
		t.Errorf("velocity after shrink = %v, want 0", sample.Velocity)
	}

	// 之后的真实滚动照常计算速度
	s.Push(3900)
	if v := s.Tick(0.132).Velocity; math.Abs(v+1000) > 1e-9 {
		t.Errorf("velocity = %v, want -1000", v)
	}
}

func TestScrollSampler_ObserveInvalidRegion(t *testing.T) {
	s := newTestSampler(1000)
	regions := []Region{
		{Start: 100, End: 100},
		{Start: 200, End: 100},
		{Start: -10, End: 100},
		{Start: 0, End: math.Inf(1)},
		{Start: math.NaN(), End: 10},
	}
	for _, r := range regions {
		h, err := s.Observe(r, func(components.ScrollSample) {})
		if !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("region %+v: expected ErrInvalidRegion, got %v", r, err)
		}
		if h != nil {
			t.Errorf("region %+v: expected nil handle", r)
		}
	}
	if n := s.ObserverCount(); n != 0 {
		t.Errorf("observer count = %d, want 0", n)
	}
}

// TestScrollSampler_JumpAcrossRegionDeliversBoundary 一帧跳过整个区间时观察者收到精确的 1 和 0
func TestScrollSampler_JumpAcrossRegionDeliversBoundary(t *testing.T) {
	s := newTestSampler(5000)
	var got []float64
	if _, err := s.Observe(Region{Start: 1000, End: 2000}, func(sample components.ScrollSample) {
		got = append(got, sample.Progress)
	}); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	s.Tick(0)
	if len(got) != 0 {
		t.Fatalf("observer called before region: %v", got)
	}

	s.Push(4000)
	s.Tick(0.016)
	s.Push(4500)
	s.Tick(0.032)
	s.Push(10)
	s.Tick(0.048)

	want := []float64{1, 0}
	if len(got) != len(want) {
		t.Fatalf("progress deliveries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestScrollSampler_LeavingAtStartDelivers 在起点停留后向回离开，进度不变也要通知
func TestScrollSampler_LeavingAtStartDelivers(t *testing.T) {
	s := newTestSampler(5000)
	var positions []float64
	if _, err := s.Observe(Region{Start: 1000, End: 2000}, func(sample components.ScrollSample) {
		positions = append(positions, sample.Position)
	}); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	s.Push(1000)
	s.Tick(0.016)
	s.Push(900)
	s.Tick(0.032)
	s.Push(800)
	s.Tick(0.048)

	if len(positions) != 2 || positions[1] != 900 {
		t.Errorf("deliveries = %v, want [1000 900]", positions)
	}
}

func TestScrollSampler_DetachInsideCallback(t *testing.T) {
	s := newTestSampler(1000)
	calls := 0
	var h *TriggerHandle
	h, err := s.Observe(Region{Start: 0, End: 1000}, func(components.ScrollSample) {
		calls++
		h.Detach()
		h.Detach()
	})
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}

	s.Push(10)
	s.Tick(0.016)
	s.Push(20)
	s.Tick(0.032)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !h.Detached() {
		t.Error("handle should be detached")
	}
	if n := s.ObserverCount(); n != 0 {
		t.Errorf("observer count = %d, want 0", n)
	}
}
