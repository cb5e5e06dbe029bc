package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/utils"
)

// DefaultMaxVelocity 速度限幅（像素/秒）
const DefaultMaxVelocity = 6000.0

// ErrInvalidRegion 观察区间无效（端点非有限值、为负或 start >= end）
var ErrInvalidRegion = errors.New("invalid scroll region")

// Region 文档滚动坐标上的观察区间 [Start, End]
type Region struct {
	Start float64
	End   float64
}

// Validate 检查区间是否可观察
func (r Region) Validate() error {
	if !utils.IsFinite(r.Start) || !utils.IsFinite(r.End) {
		return fmt.Errorf("%w: non-finite bounds [%v, %v]", ErrInvalidRegion, r.Start, r.End)
	}
	if r.Start < 0 {
		return fmt.Errorf("%w: negative start %v", ErrInvalidRegion, r.Start)
	}
	if !(r.Start < r.End) {
		return fmt.Errorf("%w: start %v >= end %v", ErrInvalidRegion, r.Start, r.End)
	}
	return nil
}

// ObserverFunc 区间观察回调，sample.Progress 为区间内进度
type ObserverFunc func(sample components.ScrollSample)

// TriggerHandle 观察注册句柄
//
// Detach 幂等，可以在回调内部调用。
type TriggerHandle struct {
	sampler *ScrollSampler
	region  Region
	fn      ObserverFunc

	lastProgress float64
	wasInside    bool
	detached     bool
}

// Region 返回注册时的区间
func (h *TriggerHandle) Region() Region {
	return h.region
}

// Detach 取消观察
func (h *TriggerHandle) Detach() {
	if h == nil || h.detached {
		return
	}
	h.detached = true
	h.sampler.removeDetached()
}

// Detached 是否已取消
func (h *TriggerHandle) Detached() bool {
	return h == nil || h.detached
}

// ScrollSampler 把原始滚动事件转换为逐帧采样并分发给区间观察者
//
// 一帧内多次 Push 只保留最后一个位置；Tick 时才计算速度并分发。
// 采样器不接触任何渲染状态。
type ScrollSampler struct {
	// MaxVelocity 速度限幅，<= 0 时使用 DefaultMaxVelocity
	MaxVelocity float64

	position   float64
	pending    float64
	hasPending bool
	maxScroll  float64

	lastPosition float64
	lastTime     float64
	hasLast      bool

	last components.ScrollSample

	observers   []*TriggerHandle
	dispatching bool
}

// NewScrollSampler 创建滚动采样器
func NewScrollSampler(maxVelocity float64) *ScrollSampler {
	return &ScrollSampler{MaxVelocity: maxVelocity}
}

// Push 记录一次原始滚动位置（非有限值被忽略）
func (s *ScrollSampler) Push(position float64) {
	if !utils.IsFinite(position) {
		return
	}
	s.pending = position
	s.hasPending = true
}

// PushDelta 在当前（或待处理）位置上增加滚动量
func (s *ScrollSampler) PushDelta(delta float64) {
	base := s.position
	if s.hasPending {
		base = s.pending
	}
	s.Push(s.clampPosition(base + delta))
}

// SetMaxScroll 设置文档最大滚动距离，并把当前位置限制到新范围
//
// 上一帧位置同样被限制，文档变短造成的位置跳变不计入速度。
func (s *ScrollSampler) SetMaxScroll(maxScroll float64) {
	if !(maxScroll > 0) || !utils.IsFinite(maxScroll) {
		maxScroll = 0
	}
	s.maxScroll = maxScroll
	s.position = s.clampPosition(s.position)
	s.lastPosition = s.clampPosition(s.lastPosition)
	if s.hasPending {
		s.pending = s.clampPosition(s.pending)
	}
}

// MaxScroll 文档最大滚动距离
func (s *ScrollSampler) MaxScroll() float64 {
	return s.maxScroll
}

// Position 最近一次 Tick 应用的位置
func (s *ScrollSampler) Position() float64 {
	return s.position
}

// Last 最近一次 Tick 的采样
func (s *ScrollSampler) Last() components.ScrollSample {
	return s.last
}

// Tick 消费待处理位置，计算速度并分发给观察者
//
// 参数:
//   - now: 当前时间（秒，单调递增）
//
// 速度 = Δposition / Δt，限幅到 ±MaxVelocity；Δt <= 0 或首帧时速度为 0。
func (s *ScrollSampler) Tick(now float64) components.ScrollSample {
	if s.hasPending {
		s.position = s.clampPosition(s.pending)
		s.hasPending = false
	}

	velocity := 0.0
	if s.hasLast {
		dt := now - s.lastTime
		if dt > 0 {
			velocity = (s.position - s.lastPosition) / dt
		}
	}
	maxV := s.maxVelocity()
	velocity = utils.Clamp(velocity, -maxV, maxV)

	s.lastPosition = s.position
	s.lastTime = now
	s.hasLast = true

	progress := 0.0
	if s.maxScroll > 0 {
		progress = utils.Clamp01(s.position / s.maxScroll)
	}
	s.last = components.ScrollSample{
		Position: s.position,
		Progress: progress,
		Velocity: velocity,
		Time:     now,
	}

	s.dispatch(s.last)
	return s.last
}

// Observe 注册区间观察者
//
// 位置在 [Start, End] 内时每次 Tick 都会回调；此外，进入/离开区间或区间内进度
// 发生变化时也会回调一次，因此一帧跳过整个区间时观察者依然能收到精确的 0 或 1。
func (s *ScrollSampler) Observe(region Region, fn ObserverFunc) (*TriggerHandle, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil observer", ErrInvalidRegion)
	}

	h := &TriggerHandle{
		sampler:      s,
		region:       region,
		fn:           fn,
		lastProgress: utils.ProgressBetween(s.position, region.Start, region.End),
		wasInside:    s.position >= region.Start && s.position <= region.End,
	}
	s.observers = append(s.observers, h)
	return h, nil
}

// ObserverCount 当前有效观察者数量
func (s *ScrollSampler) ObserverCount() int {
	n := 0
	for _, h := range s.observers {
		if !h.detached {
			n++
		}
	}
	return n
}

func (s *ScrollSampler) dispatch(sample components.ScrollSample) {
	s.dispatching = true
	// 回调中可能注册或取消观察者，遍历快照
	observers := append([]*TriggerHandle(nil), s.observers...)
	for _, h := range observers {
		if h.detached {
			continue
		}
		inside := sample.Position >= h.region.Start && sample.Position <= h.region.End
		progress := utils.ProgressBetween(sample.Position, h.region.Start, h.region.End)
		if !inside && inside == h.wasInside && progress == h.lastProgress {
			continue
		}
		h.wasInside = inside
		h.lastProgress = progress

		local := sample
		local.Progress = progress
		h.fn(local)
	}
	s.dispatching = false
	s.removeDetached()
}

func (s *ScrollSampler) removeDetached() {
	if s.dispatching {
		return
	}
	kept := s.observers[:0]
	for _, h := range s.observers {
		if !h.detached {
			kept = append(kept, h)
		}
	}
	for i := len(kept); i < len(s.observers); i++ {
		s.observers[i] = nil
	}
	s.observers = kept
}

func (s *ScrollSampler) clampPosition(position float64) float64 {
	return utils.Clamp(position, 0, s.maxScroll)
}

func (s *ScrollSampler) maxVelocity() float64 {
	if s.MaxVelocity > 0 && !math.IsInf(s.MaxVelocity, 0) {
		return s.MaxVelocity
	}
	return DefaultMaxVelocity
}
