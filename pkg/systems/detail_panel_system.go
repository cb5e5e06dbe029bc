package systems

import (
	"log"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
)

// DetailPanelSystem 立方体详情面板的打开、关闭与淡入淡出
type DetailPanelSystem struct {
	entityManager *ecs.EntityManager
}

// NewDetailPanelSystem 创建详情面板系统
func NewDetailPanelSystem(em *ecs.EntityManager) *DetailPanelSystem {
	return &DetailPanelSystem{entityManager: em}
}

// Open 打开面板并锁定区块当前项；没有面板时返回 false
func (s *DetailPanelSystem) Open(id ecs.EntityID) bool {
	panel, ok := ecs.GetComponent[*components.DetailPanel](s.entityManager, id)
	if !ok {
		return false
	}
	if sel, ok := ecs.GetComponent[*components.IndexSelection](s.entityManager, id); ok {
		panel.Item = sel.Index
	}
	if !panel.Open {
		log.Printf("[DetailPanelSystem] entity %d opened item %d", id, panel.Item)
	}
	panel.Open = true
	return true
}

// Close 关闭面板（幂等）
func (s *DetailPanelSystem) Close(id ecs.EntityID) {
	if panel, ok := ecs.GetComponent[*components.DetailPanel](s.entityManager, id); ok {
		panel.Open = false
	}
}

// Update 推进淡入淡出
func (s *DetailPanelSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.DetailPanel](s.entityManager) {
		panel, _ := ecs.GetComponent[*components.DetailPanel](s.entityManager, id)
		if panel.Open {
			panel.Opacity.SetTarget(1)
		} else {
			panel.Opacity.SetTarget(0)
		}
		panel.Opacity.Advance(dt)
	}
}
