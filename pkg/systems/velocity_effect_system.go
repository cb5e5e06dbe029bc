package systems

import (
	"math"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
)

// VelocityEffectSystem 由滚动速度驱动模糊与字距
type VelocityEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewVelocityEffectSystem 创建速度效果系统
func NewVelocityEffectSystem(em *ecs.EntityManager) *VelocityEffectSystem {
	return &VelocityEffectSystem{entityManager: em}
}

// Update 目标 = min(|v| * scale, max)，两个效果独立平滑
func (s *VelocityEffectSystem) Update(snapshot *FrameSnapshot, dt float64) {
	speed := math.Abs(snapshot.Velocity)
	for _, id := range ecs.GetEntitiesWith1[*components.VelocityEffect](s.entityManager) {
		effect, _ := ecs.GetComponent[*components.VelocityEffect](s.entityManager, id)

		effect.Blur.SetTarget(math.Min(speed*effect.BlurScale, effect.MaxBlur))
		effect.LetterSpacing.SetTarget(math.Min(speed*effect.SpacingScale, effect.MaxSpacing))
		effect.Blur.Advance(dt)
		effect.LetterSpacing.Advance(dt)
	}
}
