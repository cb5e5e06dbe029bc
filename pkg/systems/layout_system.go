package systems

import (
	"errors"
	"log"
	"math"
	"sort"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
)

// LayoutSystem 计算区块在文档中的位置与各触发区间的边界
//
// 每次视口变化都整体重算：
//  1. 横向轨道按新宽度重新测量
//  2. 按顺序累加区块高度；钉住区块额外占用 (end - start) 的滚动距离，向后推移后续区块
//  3. 设置文档最大滚动距离
//  4. 用新边界替换每个触发区间
//
// 视口为 0×0 时所有区间回到未测量状态，不注册任何观察者。
type LayoutSystem struct {
	entityManager *ecs.EntityManager
	sampler       *ScrollSampler
	pins          *PinnedRegionSystem
	tracks        *HorizontalTrackSystem

	viewportWidth  float64
	viewportHeight float64
	documentHeight float64
}

// NewLayoutSystem 创建布局系统
func NewLayoutSystem(em *ecs.EntityManager, sampler *ScrollSampler, pins *PinnedRegionSystem, tracks *HorizontalTrackSystem) *LayoutSystem {
	return &LayoutSystem{
		entityManager: em,
		sampler:       sampler,
		pins:          pins,
		tracks:        tracks,
	}
}

type pendingBounds struct {
	id         ecs.EntityID
	start, end float64
}

// Resize 以新的视口尺寸重算布局
func (s *LayoutSystem) Resize(viewportWidth, viewportHeight float64) error {
	s.viewportWidth = viewportWidth
	s.viewportHeight = viewportHeight

	sections := s.orderedSections()

	if !(viewportWidth > 0) || !(viewportHeight > 0) {
		for _, id := range sections {
			s.pins.Invalidate(id)
		}
		s.documentHeight = 0
		s.sampler.SetMaxScroll(0)
		log.Printf("[LayoutSystem] viewport %.0fx%.0f not measurable, all regions invalidated", viewportWidth, viewportHeight)
		return nil
	}

	s.tracks.Measure(viewportWidth)

	var pending []pendingBounds
	cursor := 0.0
	for _, id := range sections {
		sec, _ := ecs.GetComponent[*components.Section](s.entityManager, id)
		sec.Top = cursor
		sec.Height = math.Max(sec.HeightVH*viewportHeight, sec.MinHeight)
		sec.PinSpacing = 0

		trigger, hasTrigger := ecs.GetComponent[*components.Trigger](s.entityManager, id)
		region, hasRegion := ecs.GetComponent[*components.PinnedRegion](s.entityManager, id)
		if hasTrigger && hasRegion {
			start := trigger.Start.Resolve(sec.Top, sec.Height, viewportHeight)
			end := trigger.End.Resolve(start, sec.Top, sec.Height, viewportHeight, s.tracks.Distance(id))
			if region.Pin && end > start {
				sec.PinSpacing = end - start
			}
			pending = append(pending, pendingBounds{id: id, start: start, end: end})
		}

		cursor += sec.Height + sec.PinSpacing
	}

	s.documentHeight = cursor
	s.sampler.SetMaxScroll(math.Max(0, cursor-viewportHeight))

	var errs []error
	for _, b := range pending {
		if err := s.pins.Remeasure(b.id, b.start, b.end); err != nil {
			errs = append(errs, err)
		}
	}

	log.Printf("[LayoutSystem] viewport %.0fx%.0f: document %.0f, max scroll %.0f, %d regions",
		viewportWidth, viewportHeight, s.documentHeight, s.sampler.MaxScroll(), len(pending))
	return errors.Join(errs...)
}

// Viewport 最近一次的视口尺寸
func (s *LayoutSystem) Viewport() (float64, float64) {
	return s.viewportWidth, s.viewportHeight
}

// DocumentHeight 文档总高度（含钉住间距）
func (s *LayoutSystem) DocumentHeight() float64 {
	return s.documentHeight
}

// SectionScrollTarget 跳转到区块时的滚动位置（区块顶部对齐视口顶部）
func (s *LayoutSystem) SectionScrollTarget(sectionID string) (float64, bool) {
	for _, id := range s.orderedSections() {
		sec, _ := ecs.GetComponent[*components.Section](s.entityManager, id)
		if sec.ID == sectionID {
			return math.Min(sec.Top, s.sampler.MaxScroll()), true
		}
	}
	return 0, false
}

func (s *LayoutSystem) orderedSections() []ecs.EntityID {
	ids := ecs.GetEntitiesWith1[*components.Section](s.entityManager)
	sort.SliceStable(ids, func(i, j int) bool {
		a, _ := ecs.GetComponent[*components.Section](s.entityManager, ids[i])
		b, _ := ecs.GetComponent[*components.Section](s.entityManager, ids[j])
		return a.Order < b.Order
	})
	return ids
}
