package systems

import (
	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/utils"
)

// ParallaxSystem 视差图层：Value = Ease(progress) * Scale + Offset
//
// 图层直接跟随进度，不做额外平滑。
type ParallaxSystem struct {
	entityManager *ecs.EntityManager
}

// NewParallaxSystem 创建视差系统
func NewParallaxSystem(em *ecs.EntityManager) *ParallaxSystem {
	return &ParallaxSystem{entityManager: em}
}

// Update 按快照进度计算各图层位移
func (s *ParallaxSystem) Update(snapshot *FrameSnapshot) {
	for _, id := range ecs.GetEntitiesWith1[*components.ParallaxStack](s.entityManager) {
		stack, _ := ecs.GetComponent[*components.ParallaxStack](s.entityManager, id)
		p := snapshot.Region(id).Progress
		for i := range stack.Layers {
			layer := &stack.Layers[i]
			layer.Value = utils.Ease(layer.Easing, p)*layer.Scale + layer.Offset
		}
	}
}
