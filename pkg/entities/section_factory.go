package entities

import (
	"fmt"
	"time"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/types"
	"github.com/decker502/scrollstage/pkg/utils"
)

// NewSectionEntity 创建区块实体
//
// 参数:
//   - em: 实体管理器
//   - site: 站点配置（提供动画参数和各集合的数量）
//   - order: 区块在 site.Sections 中的序号
//
// 返回:
//   - ecs.EntityID: 区块实体ID
//   - error: 配置无法构造组件时返回错误，此时不会创建实体
//
// 组件按区块种类挂载：
//   - 所有区块：Section；配置了 trigger 的区块额外挂 Trigger + PinnedRegion
//   - hero: DecodeText
//   - cube: CubeOrientation + VelocityEffect + IndexSelection + DetailPanel
//   - carousel: DragScroll + CardStrip + IndexSelection + Reveal
//   - parallaxStrips: ParallaxStack（每个图片条一层）
//   - horizontalGallery: HorizontalTrack + TrackSizing
//   - schedule: Reveal + HoverList + IndexSelection
//   - footer: ParallaxStack（标题 Y 轴视差）
func NewSectionEntity(em *ecs.EntityManager, site *config.SiteConfig, order int) (ecs.EntityID, error) {
	if order < 0 || order >= len(site.Sections) {
		return 0, fmt.Errorf("section index %d out of range", order)
	}
	sc := site.Sections[order]
	anim := site.Animation

	height := sc.Height
	if height == 0 {
		height = 1
	}

	// 先构造全部组件，确认无误后再创建实体
	comps := []any{
		&components.Section{
			ID:        sc.ID,
			Kind:      sc.Kind,
			Order:     order,
			HeightVH:  height,
			MinHeight: sc.MinHeight,
		},
	}

	if sc.Trigger != nil {
		comps = append(comps,
			&components.Trigger{Start: sc.Trigger.Start, End: sc.Trigger.End},
			&components.PinnedRegion{Pin: sc.Trigger.Pin},
		)
	}

	switch sc.Kind {
	case types.SectionHero:
		text := components.NewDecodeText(site.Hero.DecodeText, site.Hero.DecodeChars)
		if anim.DecodeIntervalMs > 0 {
			text.Interval = time.Duration(anim.DecodeIntervalMs) * time.Millisecond
		}
		comps = append(comps, text)

	case types.SectionCube:
		comps = append(comps,
			components.NewCubeOrientation(anim.CubeSmoothing, anim.TiltAmplitude),
			newVelocityEffect(anim),
			newIndexSelection(sc, site.ItemCount(sc.Kind)),
			components.NewDetailPanel(components.DefaultDetailSmoothing),
		)

	case types.SectionCarousel:
		comps = append(comps,
			&components.DragScroll{Gain: anim.DragGain},
			&components.CardStrip{
				Count:     len(site.DJs.DJs),
				CardWidth: site.DJs.CardWidth,
				Gap:       site.DJs.CardGap,
			},
			newIndexSelection(sc, site.ItemCount(sc.Kind)),
			components.NewReveal(components.DefaultRevealSmoothing),
		)

	case types.SectionParallaxStrips:
		stack := &components.ParallaxStack{}
		for _, strip := range site.Gallery.Strips {
			easing, err := utils.EasingByName(strip.Easing)
			if err != nil {
				return 0, fmt.Errorf("failed to build strip %q: %w", strip.Name, err)
			}
			stack.Layers = append(stack.Layers, components.ParallaxLayer{
				Name:   strip.Name,
				Axis:   components.AxisX,
				Scale:  strip.Scale,
				Offset: strip.Offset,
				Easing: easing,
			})
		}
		comps = append(comps, stack)

	case types.SectionHorizontalGallery:
		comps = append(comps,
			&components.HorizontalTrack{},
			&components.TrackSizing{
				Count:         len(site.Gallery.Images),
				Breakpoints:   site.Gallery.Breakpoints,
				TrailingWidth: site.Gallery.EndCtaWidth,
			},
		)

	case types.SectionSchedule:
		count := site.ItemCount(sc.Kind)
		comps = append(comps,
			components.NewReveal(components.DefaultRevealSmoothing),
			components.NewHoverList(count, config.ScheduleRowHeight, config.ScheduleRowGap),
			newIndexSelection(sc, count),
		)

	case types.SectionFooter:
		comps = append(comps, &components.ParallaxStack{
			Layers: []components.ParallaxLayer{
				{Name: "title", Axis: components.AxisY, Scale: site.Footer.TitleParallax},
			},
		})

	default:
		return 0, fmt.Errorf("section %q has unsupported kind %v", sc.ID, sc.Kind)
	}

	id := em.CreateEntity()
	for _, c := range comps {
		em.AddComponent(id, c)
	}
	return id, nil
}

// NewStageEntities 按配置顺序创建全部区块实体
//
// 任一区块失败时，已创建的实体全部销毁后返回错误。
func NewStageEntities(em *ecs.EntityManager, site *config.SiteConfig) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(site.Sections))
	for i := range site.Sections {
		id, err := NewSectionEntity(em, site, i)
		if err != nil {
			for _, created := range ids {
				em.DestroyEntity(created)
			}
			em.RemoveMarkedEntities()
			return nil, fmt.Errorf("failed to create section %q: %w", site.Sections[i].ID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newVelocityEffect(anim config.AnimationConfig) *components.VelocityEffect {
	return &components.VelocityEffect{
		Blur:          components.NewAnimatedValue(0, anim.VelocitySmoothing),
		LetterSpacing: components.NewAnimatedValue(0, anim.VelocitySmoothing),
		BlurScale:     anim.VelocityToBlurScale,
		SpacingScale:  anim.VelocityToSpacingScale,
		MaxBlur:       anim.MaxBlur,
		MaxSpacing:    anim.MaxLetterSpacing,
	}
}

func newIndexSelection(sc config.SectionConfig, count int) *components.IndexSelection {
	return &components.IndexSelection{
		Count:    count,
		Strategy: sc.Selection.Strategy,
		Divisor:  sc.Selection.Divisor,
	}
}
