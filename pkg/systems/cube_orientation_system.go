package systems

import (
	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/utils"
)

// CubeOrientationSystem 立方体朝向
//
// 每帧把区间进度换算为目标角度（Y 轴转满一圈，X 轴装饰性摆动），
// 然后推进两个 AnimatedValue。滚动停止后仍然每帧推进，直到精确到达目标。
type CubeOrientationSystem struct {
	entityManager *ecs.EntityManager
}

// NewCubeOrientationSystem 创建立方体朝向系统
func NewCubeOrientationSystem(em *ecs.EntityManager) *CubeOrientationSystem {
	return &CubeOrientationSystem{entityManager: em}
}

// Update 按快照进度设置目标并推进 dt 秒
func (s *CubeOrientationSystem) Update(snapshot *FrameSnapshot, dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CubeOrientation](s.entityManager) {
		cube, _ := ecs.GetComponent[*components.CubeOrientation](s.entityManager, id)
		p := snapshot.Region(id).Progress

		cube.RotY.SetTarget(utils.RotationAngle(p))
		cube.RotX.SetTarget(utils.TiltWobble(p, cube.TiltAmplitude))
		cube.RotY.Advance(dt)
		cube.RotX.Advance(dt)
	}
}
