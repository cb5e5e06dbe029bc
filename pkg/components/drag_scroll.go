package components

import (
	"math"

	"github.com/decker502/scrollstage/pkg/utils"
)

// DefaultDragGain 拖拽增益（放大拖拽手感）
const DefaultDragGain = 2.0

// DragPhase 拖拽条状态
type DragPhase int

const (
	// DragIdle 空闲
	DragIdle DragPhase = iota
	// DragDragging 拖拽中
	DragDragging
)

// DragScroll 可横向拖拽的卡片条
//
// 状态机：Idle --按下--> Dragging --释放/离开--> Idle。
// 拖拽中 ScrollOffset = AnchorScrollOffset - (x - AnchorPointerX) * Gain，
// 并限制在 [0, MaxScrollOffset]。释放后没有惯性。
type DragScroll struct {
	Phase DragPhase

	// AnchorPointerX 按下时的指针X
	AnchorPointerX float64

	// AnchorScrollOffset 按下时的滚动偏移
	AnchorScrollOffset float64

	// ScrollOffset 当前滚动偏移（像素，>= 0）
	ScrollOffset float64

	// MaxScrollOffset 最大滚动偏移（内容宽度 - 可视宽度）
	MaxScrollOffset float64

	// Gain 拖拽增益，<= 0 时使用 DefaultDragGain
	Gain float64
}

// IsDragging 是否正在拖拽
func (d *DragScroll) IsDragging() bool {
	return d.Phase == DragDragging
}

// PointerDown 按下：记录锚点，进入拖拽
func (d *DragScroll) PointerDown(x float64) {
	d.Phase = DragDragging
	d.AnchorPointerX = x
	d.AnchorScrollOffset = d.ScrollOffset
}

// PointerMove 拖拽中移动，返回偏移是否改变
func (d *DragScroll) PointerMove(x float64) bool {
	if d.Phase != DragDragging {
		return false
	}
	walk := (x - d.AnchorPointerX) * d.gain()
	next := d.clampOffset(d.AnchorScrollOffset - walk)
	changed := next != d.ScrollOffset
	d.ScrollOffset = next
	return changed
}

// Release 释放（指针抬起或离开），无条件回到空闲
func (d *DragScroll) Release() {
	d.Phase = DragIdle
	d.AnchorPointerX = 0
	d.AnchorScrollOffset = 0
}

// SetMaxScrollOffset 更新最大偏移并重新限制当前偏移
func (d *DragScroll) SetMaxScrollOffset(max float64) {
	if max < 0 {
		max = 0
	}
	d.MaxScrollOffset = max
	d.ScrollOffset = d.clampOffset(d.ScrollOffset)
}

// ScrollTo 直接设置偏移（点击卡片、上一项/下一项）
func (d *DragScroll) ScrollTo(offset float64) {
	d.ScrollOffset = d.clampOffset(offset)
}

func (d *DragScroll) gain() float64 {
	if d.Gain > 0 {
		return d.Gain
	}
	return DefaultDragGain
}

func (d *DragScroll) clampOffset(offset float64) float64 {
	if !utils.IsFinite(offset) {
		return d.ScrollOffset
	}
	return utils.Clamp(offset, 0, d.MaxScrollOffset)
}

// CardStrip 拖拽条中的等宽卡片排列
type CardStrip struct {
	Count     int
	CardWidth float64
	Gap       float64

	// VisibleWidth 拖拽条可视宽度
	VisibleWidth float64
}

// Stride 相邻卡片左缘间距
func (c *CardStrip) Stride() float64 {
	return c.CardWidth + c.Gap
}

// ContentWidth 全部卡片的总宽度
func (c *CardStrip) ContentWidth() float64 {
	if c.Count <= 0 {
		return 0
	}
	return float64(c.Count)*c.CardWidth + float64(c.Count-1)*c.Gap
}

// MaxOffset 最大滚动偏移
func (c *CardStrip) MaxOffset() float64 {
	return math.Max(0, c.ContentWidth()-c.VisibleWidth)
}
