package systems

import (
	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
)

// RevealSystem 区块首次进入触发区间后淡入，之后保持可见
type RevealSystem struct {
	entityManager *ecs.EntityManager
}

// NewRevealSystem 创建淡入系统
func NewRevealSystem(em *ecs.EntityManager) *RevealSystem {
	return &RevealSystem{entityManager: em}
}

// Update 区间离开 Before 阶段即锁定可见
func (s *RevealSystem) Update(snapshot *FrameSnapshot, dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.Reveal](s.entityManager) {
		reveal, _ := ecs.GetComponent[*components.Reveal](s.entityManager, id)
		region := snapshot.Region(id)
		if region.Measured && region.Phase != components.PhaseBefore {
			reveal.Visible = true
		}
		if reveal.Visible {
			reveal.Opacity.SetTarget(1)
		}
		reveal.Opacity.Advance(dt)
	}
}
