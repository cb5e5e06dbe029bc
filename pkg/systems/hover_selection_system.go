package systems

import (
	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/utils"
)

// HoverSelectionSystem 指针悬停选择列表行（演出日程）
//
// 指针在某一行上时该行成为当前项；移到行间距、移出列表或离开区域时回到首项。
// 事件坐标相对列表左上角。
type HoverSelectionSystem struct {
	entityManager *ecs.EntityManager
}

// NewHoverSelectionSystem 创建悬停选择系统
func NewHoverSelectionSystem(em *ecs.EntityManager) *HoverSelectionSystem {
	return &HoverSelectionSystem{entityManager: em}
}

// HandlePointer 把一帧的指针事件应用到指定列表
func (s *HoverSelectionSystem) HandlePointer(id ecs.EntityID, events []utils.PointerEvent) {
	list, ok1 := ecs.GetComponent[*components.HoverList](s.entityManager, id)
	sel, ok2 := ecs.GetComponent[*components.IndexSelection](s.entityManager, id)
	if !ok1 || !ok2 {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case utils.PointerDown, utils.PointerMove:
			if row, hit := list.RowAt(ev.Y); hit {
				s.hover(list, sel, row)
			} else {
				s.hover(list, sel, -1)
			}
		case utils.PointerLeave:
			s.hover(list, sel, -1)
		}
	}
}

// Clear 取消悬停（例如区块滚出视口）
func (s *HoverSelectionSystem) Clear(id ecs.EntityID) {
	list, ok1 := ecs.GetComponent[*components.HoverList](s.entityManager, id)
	sel, ok2 := ecs.GetComponent[*components.IndexSelection](s.entityManager, id)
	if ok1 && ok2 {
		s.hover(list, sel, -1)
	}
}

// hover 设置悬停行；row < 0 表示没有悬停，当前项回到首项
func (s *HoverSelectionSystem) hover(list *components.HoverList, sel *components.IndexSelection, row int) {
	index := row
	if row < 0 {
		index = 0
	}
	if sel.Count > 0 && index >= sel.Count {
		index = sel.Count - 1
	}
	list.Hovered = row
	sel.Changed = sel.Index != index
	sel.Index = index
}
