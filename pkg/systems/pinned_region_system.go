package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
)

// TransitionFunc 区块阶段切换回调
type TransitionFunc func(id ecs.EntityID, transition components.PinTransition)

// PinnedRegionSystem 管理各区块的触发区间
//
// 职责：
//   - 布局变化时整体替换区间边界（Remeasure），并重新注册观察者
//   - 观察回调中按滚动位置推进阶段与进度
//   - 布局不可测量或区间退化时保持未钉住，不注册观察者
//
// 区间状态只由本系统写入，其他系统只读 FrameSnapshot。
type PinnedRegionSystem struct {
	entityManager *ecs.EntityManager
	registry      *ScrollTriggerRegistry
	sampler       *ScrollSampler

	handles      map[ecs.EntityID]*TriggerHandle
	onTransition TransitionFunc
}

// NewPinnedRegionSystem 创建区间系统
func NewPinnedRegionSystem(em *ecs.EntityManager, sampler *ScrollSampler, registry *ScrollTriggerRegistry) *PinnedRegionSystem {
	s := &PinnedRegionSystem{
		entityManager: em,
		registry:      registry,
		sampler:       sampler,
		handles:       make(map[ecs.EntityID]*TriggerHandle),
	}
	em.OnDestroy(s.Detach)
	return s
}

// OnTransition 设置阶段切换回调
func (s *PinnedRegionSystem) OnTransition(fn TransitionFunc) {
	s.onTransition = fn
}

// Remeasure 用新边界整体替换区块的触发区间
//
// 旧观察者先取消，再按当前滚动位置一次算出阶段与进度，最后按新边界注册观察者。
// 区间退化时只更新状态，不注册观察者，也不返回错误。
func (s *PinnedRegionSystem) Remeasure(id ecs.EntityID, start, end float64) error {
	region, ok := ecs.GetComponent[*components.PinnedRegion](s.entityManager, id)
	if !ok {
		return fmt.Errorf("entity %d has no PinnedRegion", id)
	}

	s.Detach(id)
	s.notify(id, region.Remeasure(start, end, s.sampler.Position()))

	if !region.Usable() {
		log.Printf("[PinnedRegionSystem] entity %d degenerate range [%.1f, %.1f], not observed", id, start, end)
		return nil
	}

	// 观察区间起点不能为负；区块在文档顶部附近时用 0 代替，进度仍按真实边界计算
	observed := Region{Start: math.Max(0, start), End: end}
	if observed.Start >= observed.End {
		return nil
	}

	h, err := s.registry.Register(observed, func(sample components.ScrollSample) {
		s.notify(id, region.Update(sample.Position))
	})
	if err != nil {
		return fmt.Errorf("failed to observe region of entity %d: %w", id, err)
	}
	s.handles[id] = h
	return nil
}

// Invalidate 布局不可测量：取消观察，区间回到未钉住
func (s *PinnedRegionSystem) Invalidate(id ecs.EntityID) {
	s.Detach(id)
	if region, ok := ecs.GetComponent[*components.PinnedRegion](s.entityManager, id); ok {
		region.Invalidate()
	}
}

// Detach 取消实体的观察者（幂等）
func (s *PinnedRegionSystem) Detach(id ecs.EntityID) {
	if h, ok := s.handles[id]; ok {
		h.Detach()
		delete(s.handles, id)
	}
}

// Observed 实体当前是否有观察者
func (s *PinnedRegionSystem) Observed(id ecs.EntityID) bool {
	h, ok := s.handles[id]
	return ok && !h.Detached()
}

// ObservedCount 当前观察中的区间数量
func (s *PinnedRegionSystem) ObservedCount() int {
	n := 0
	for _, h := range s.handles {
		if !h.Detached() {
			n++
		}
	}
	return n
}

func (s *PinnedRegionSystem) notify(id ecs.EntityID, transition components.PinTransition) {
	if transition == components.TransitionNone {
		return
	}
	log.Printf("[PinnedRegionSystem] entity %d: %s", id, transition)
	if s.onTransition != nil {
		s.onTransition(id, transition)
	}
}
