package systems

import (
	"log"
	"math"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/utils"
)

// DragScrollSystem 可拖拽卡片条（DJ 轮播）
//
// 独立于页面滚动：直接由指针事件驱动条内偏移。
// 指针抬起或离开条区域时无条件结束拖拽，没有惯性。
type DragScrollSystem struct {
	entityManager *ecs.EntityManager
}

// NewDragScrollSystem 创建拖拽系统
func NewDragScrollSystem(em *ecs.EntityManager) *DragScrollSystem {
	return &DragScrollSystem{entityManager: em}
}

// Resize 按新的可视宽度重新计算最大偏移
func (s *DragScrollSystem) Resize(visibleWidth float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.DragScroll, *components.CardStrip](s.entityManager) {
		drag, _ := ecs.GetComponent[*components.DragScroll](s.entityManager, id)
		strip, _ := ecs.GetComponent[*components.CardStrip](s.entityManager, id)
		strip.VisibleWidth = math.Max(0, visibleWidth)
		drag.SetMaxScrollOffset(strip.MaxOffset())
	}
}

// HandlePointer 把一帧的指针事件应用到指定拖拽条
func (s *DragScrollSystem) HandlePointer(id ecs.EntityID, events []utils.PointerEvent) {
	drag, ok := ecs.GetComponent[*components.DragScroll](s.entityManager, id)
	if !ok {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case utils.PointerDown:
			drag.PointerDown(ev.X)
		case utils.PointerMove:
			drag.PointerMove(ev.X)
		case utils.PointerUp, utils.PointerLeave:
			if drag.IsDragging() {
				log.Printf("[DragScrollSystem] entity %d released by %s at offset %.0f", id, ev.Kind, drag.ScrollOffset)
			}
			drag.Release()
		}
	}
}

// Next 选中下一项（末项之后回到首项），并把该卡片滚入可视区
func (s *DragScrollSystem) Next(id ecs.EntityID) {
	s.step(id, 1)
}

// Prev 选中上一项（首项之前回到末项）
func (s *DragScrollSystem) Prev(id ecs.EntityID) {
	s.step(id, -1)
}

// Select 直接选中第 index 项（点击卡片）
func (s *DragScrollSystem) Select(id ecs.EntityID, index int) {
	sel, ok := ecs.GetComponent[*components.IndexSelection](s.entityManager, id)
	if !ok || sel.Count <= 0 {
		return
	}
	s.selectIndex(id, sel, utils.WrapIndex(index, sel.Count))
}

// CardAt 返回条内横坐标 x（相对条左缘）处的卡片序号
func (s *DragScrollSystem) CardAt(id ecs.EntityID, x float64) (int, bool) {
	drag, ok1 := ecs.GetComponent[*components.DragScroll](s.entityManager, id)
	strip, ok2 := ecs.GetComponent[*components.CardStrip](s.entityManager, id)
	if !ok1 || !ok2 || strip.Stride() <= 0 {
		return 0, false
	}
	content := x + drag.ScrollOffset
	if content < 0 {
		return 0, false
	}
	index := int(content / strip.Stride())
	// 落在卡片间隙里不算命中
	if index >= strip.Count || content-float64(index)*strip.Stride() > strip.CardWidth {
		return 0, false
	}
	return index, true
}

func (s *DragScrollSystem) step(id ecs.EntityID, delta int) {
	sel, ok := ecs.GetComponent[*components.IndexSelection](s.entityManager, id)
	if !ok || sel.Count <= 0 {
		return
	}
	s.selectIndex(id, sel, utils.WrapIndex(sel.Index+delta, sel.Count))
}

func (s *DragScrollSystem) selectIndex(id ecs.EntityID, sel *components.IndexSelection, index int) {
	sel.Changed = sel.Index != index
	sel.Index = index

	drag, ok1 := ecs.GetComponent[*components.DragScroll](s.entityManager, id)
	strip, ok2 := ecs.GetComponent[*components.CardStrip](s.entityManager, id)
	if ok1 && ok2 {
		drag.ScrollTo(float64(index) * strip.Stride())
	}
}
