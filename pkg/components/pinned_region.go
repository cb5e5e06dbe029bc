package components

import "github.com/decker502/scrollstage/pkg/utils"

// PinPhase 触发区间的阶段
//
// 对钉住区块而言三个阶段依次对应：未钉住（区间之前）→ 钉住 → 已释放（越过终点）。
// 只跟随滚动的区块（Pin=false）使用同样的阶段描述"是否处于区间内"。
type PinPhase int

const (
	// PhaseBefore 滚动位置在触发起点之前（未钉住）
	PhaseBefore PinPhase = iota
	// PhaseActive 滚动位置位于 [起点, 终点] 内（钉住中）
	PhaseActive
	// PhaseAfter 滚动位置越过终点（已释放，向回滚动可重新进入）
	PhaseAfter
)

// String 返回阶段名称（日志用）
func (p PinPhase) String() string {
	switch p {
	case PhaseBefore:
		return "unpinned"
	case PhaseActive:
		return "pinned"
	case PhaseAfter:
		return "released"
	}
	return "unknown"
}

// PinTransition 一次更新引起的阶段切换
type PinTransition int

const (
	// TransitionNone 阶段未变化
	TransitionNone PinTransition = iota
	// TransitionEnter 向前越过起点
	TransitionEnter
	// TransitionLeave 向前越过终点（包括一帧内从起点之前直接跳到终点之后）
	TransitionLeave
	// TransitionEnterBack 向后越过终点
	TransitionEnterBack
	// TransitionLeaveBack 向后越过起点（包括一帧内从终点之后直接跳回起点之前）
	TransitionLeaveBack
)

// String 返回切换名称（日志用）
func (t PinTransition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionEnter:
		return "enter"
	case TransitionLeave:
		return "leave"
	case TransitionEnterBack:
		return "enterBack"
	case TransitionLeaveBack:
		return "leaveBack"
	}
	return "unknown"
}

// PinnedRegion 滚动触发区间（"滚动擦洗 + 钉住"语义）
//
// 滚动位置位于 [TriggerStart, TriggerEnd] 时区块冻结在视口内，Progress 从 0 平滑推进到 1；
// 区间外区块正常滚动。Progress 始终等于 clamp((s - start) / (end - start), 0, 1)。
//
// 区间长度 <= 0 或布局尚未测量时：Progress 固定为 0，永不钉住。
// 边界只能通过 Remeasure 整体替换，不做局部修补。
type PinnedRegion struct {
	// TriggerStart 触发起点（文档滚动坐标，像素）
	TriggerStart float64

	// TriggerEnd 触发终点（文档滚动坐标，像素）
	TriggerEnd float64

	// Pin 区间内是否冻结区块位置；false 表示只跟随进度（视差等）
	Pin bool

	// Measured 布局是否已可测量
	Measured bool

	// Phase 当前阶段
	Phase PinPhase

	// Progress 区间内进度 ∈ [0, 1]
	Progress float64

	// ScrollPosition 最近一次应用的滚动位置
	ScrollPosition float64
}

// Length 触发区间长度
func (r *PinnedRegion) Length() float64 {
	return r.TriggerEnd - r.TriggerStart
}

// Degenerate 区间是否退化（长度 <= 0 或端点非有限值）
func (r *PinnedRegion) Degenerate() bool {
	length := r.Length()
	return !(length > 0) || !utils.IsFinite(length) || !utils.IsFinite(r.TriggerStart)
}

// Usable 区间是否可以参与计算（已测量且未退化）
func (r *PinnedRegion) Usable() bool {
	return r.Measured && !r.Degenerate()
}

// IsPinned 当前是否处于钉住状态
func (r *PinnedRegion) IsPinned() bool {
	return r.Pin && r.Usable() && r.Phase == PhaseActive
}

// HeldDistance 区块被钉住后已"吞掉"的滚动距离 ∈ [0, Length]
//
// 渲染层用它抵消滚动，使钉住期间区块保持在视口固定位置。
func (r *PinnedRegion) HeldDistance() float64 {
	if !r.Pin || !r.Usable() {
		return 0
	}
	return utils.Clamp(r.ScrollPosition-r.TriggerStart, 0, r.Length())
}

// Update 应用新的滚动位置，返回阶段切换
func (r *PinnedRegion) Update(position float64) PinTransition {
	r.ScrollPosition = position

	if !r.Usable() {
		r.Progress = 0
		r.Phase = PhaseBefore
		return TransitionNone
	}

	prev := r.Phase
	r.Progress = utils.ProgressBetween(position, r.TriggerStart, r.TriggerEnd)
	switch {
	case position < r.TriggerStart:
		r.Phase = PhaseBefore
	case position > r.TriggerEnd:
		r.Phase = PhaseAfter
	default:
		r.Phase = PhaseActive
	}
	return transitionBetween(prev, r.Phase)
}

// Remeasure 用新测量的边界整体替换旧边界，并按当前滚动位置重新计算阶段与进度
//
// 边界与进度在同一次调用内完成更新，调用结束后 Progress 不会引用过期的分母。
func (r *PinnedRegion) Remeasure(start, end, position float64) PinTransition {
	r.TriggerStart = start
	r.TriggerEnd = end
	r.Measured = true
	return r.Update(position)
}

// Invalidate 布局不可测量（区块卸载、尺寸为零），回到未钉住状态
func (r *PinnedRegion) Invalidate() {
	r.Measured = false
	r.Phase = PhaseBefore
	r.Progress = 0
}

func transitionBetween(prev, next PinPhase) PinTransition {
	if prev == next {
		return TransitionNone
	}
	switch {
	case prev == PhaseBefore && next == PhaseActive:
		return TransitionEnter
	case prev == PhaseActive && next == PhaseAfter, prev == PhaseBefore && next == PhaseAfter:
		return TransitionLeave
	case prev == PhaseAfter && next == PhaseActive:
		return TransitionEnterBack
	default:
		// Active → Before 或 After → Before
		return TransitionLeaveBack
	}
}
