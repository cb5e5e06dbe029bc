package systems

import (
	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/types"
	"github.com/decker502/scrollstage/pkg/utils"
)

// IndexSelectionSystem 从连续进度选出"当前项"
//
// 策略逐区块配置：
//   - floor: clamp(floor(p*N), 0, N-1)
//   - fixedDivisor: min(floor(p*D), N-1)
//   - nearest: 拖拽中跟随最近的卡片；空闲时保持按钮或点击选中的项
//   - hover: 由 HoverSelectionSystem 设置，这里不改动
type IndexSelectionSystem struct {
	entityManager *ecs.EntityManager
}

// NewIndexSelectionSystem 创建选择系统
func NewIndexSelectionSystem(em *ecs.EntityManager) *IndexSelectionSystem {
	return &IndexSelectionSystem{entityManager: em}
}

// Update 按快照更新每个区块的当前项
func (s *IndexSelectionSystem) Update(snapshot *FrameSnapshot) {
	for _, id := range ecs.GetEntitiesWith1[*components.IndexSelection](s.entityManager) {
		sel, _ := ecs.GetComponent[*components.IndexSelection](s.entityManager, id)
		prev := sel.Index
		p := snapshot.Region(id).Progress

		switch sel.Strategy {
		case types.SelectFixedDivisor:
			sel.Index = utils.SelectIndexFixedDivisor(p, sel.Divisor, sel.Count)
		case types.SelectNearest:
			drag, hasDrag := ecs.GetComponent[*components.DragScroll](s.entityManager, id)
			strip, hasStrip := ecs.GetComponent[*components.CardStrip](s.entityManager, id)
			if hasStrip {
				sel.Stride = strip.Stride()
			}
			if hasDrag && drag.IsDragging() {
				sel.Index = utils.SelectIndexNearest(drag.ScrollOffset, sel.Stride, sel.Count)
			}
		case types.SelectHover:
			continue
		default:
			sel.Index = utils.SelectIndex(p, sel.Count)
		}

		sel.Changed = sel.Index != prev
	}
}
