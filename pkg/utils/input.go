// Package utils 提供进度映射、缓动与输入适配等通用工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	// PointerDown 按下
	PointerDown PointerEventKind = iota
	// PointerMove 移动（按住或悬停）
	PointerMove
	// PointerUp 释放
	PointerUp
	// PointerLeave 指针离开目标区域
	PointerLeave
)

// String 返回事件名称（日志用）
func (k PointerEventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	}
	return "unknown"
}

// PointerEvent 归一化后的指针事件（鼠标与触摸统一）
type PointerEvent struct {
	Kind PointerEventKind
	X, Y float64
}

// PointerSnapshot 某一帧的原始指针状态
type PointerSnapshot struct {
	Pressed bool
	X, Y    int
	// IsTouch 是否来自触摸
	IsTouch bool
}

// PollPointer 读取当前帧的指针状态
// 优先返回触摸，没有触摸时返回鼠标左键状态
func PollPointer() PointerSnapshot {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = x, y
		return PointerSnapshot{Pressed: true, X: x, Y: y, IsTouch: true}
	}

	// 触摸刚释放时沿用最后位置，否则坐标会跳到 (0,0)
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return PointerSnapshot{Pressed: false, X: lastTouchX, Y: lastTouchY, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerSnapshot{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
	}
}

// 保存最后一次触摸位置（用于触摸释放时获取位置）
var lastTouchX, lastTouchY int

// Rect 轴对齐矩形（屏幕坐标）
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PointerTracker 把逐帧的指针快照转换为针对某个矩形区域的事件序列
//
// 状态只有上一帧的按下位、区域内位和坐标，
// 因此同一个快照序列总是产生同样的事件序列，便于测试。
type PointerTracker struct {
	// Hover 为 true 时未按下的指针在区域内进入或移动也产生 PointerMove（悬停）
	Hover bool

	wasPressed bool
	wasInside  bool
	lastX      float64
	lastY      float64
}

// Feed 输入一帧快照，返回该帧针对 area 的事件
//
// 规则：
//   - 区域内由未按下变为按下：PointerDown
//   - 按下期间区域内移动：PointerMove
//   - 由按下变为未按下：PointerUp
//   - 由区域内移到区域外：PointerLeave（无论是否按下）
//   - Hover 模式下未按下时进入区域或在区域内移动：PointerMove
func (pt *PointerTracker) Feed(snap PointerSnapshot, area Rect) []PointerEvent {
	x, y := float64(snap.X), float64(snap.Y)
	inside := area.Contains(x, y)
	events := make([]PointerEvent, 0, 2)

	switch {
	case pt.wasInside && !inside:
		events = append(events, PointerEvent{Kind: PointerLeave, X: x, Y: y})
	case inside && snap.Pressed && !pt.wasPressed:
		events = append(events, PointerEvent{Kind: PointerDown, X: x, Y: y})
	case inside && snap.Pressed:
		events = append(events, PointerEvent{Kind: PointerMove, X: x, Y: y})
	case pt.Hover && inside && (!pt.wasInside || x != pt.lastX || y != pt.lastY):
		events = append(events, PointerEvent{Kind: PointerMove, X: x, Y: y})
	}

	if pt.wasPressed && !snap.Pressed && inside {
		events = append(events, PointerEvent{Kind: PointerUp, X: x, Y: y})
	}

	pt.wasPressed = snap.Pressed
	pt.wasInside = inside
	pt.lastX, pt.lastY = x, y
	return events
}

// Reset 清空跟踪状态
func (pt *PointerTracker) Reset() {
	pt.wasPressed = false
	pt.wasInside = false
	pt.lastX, pt.lastY = 0, 0
}
