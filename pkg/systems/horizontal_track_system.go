package systems

import (
	"log"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
)

// HorizontalTrackSystem 横向画廊：把钉住区间内的纵向滚动转换为轨道横向平移
//
// 视口变化时先按断点重建卡片尺寸并重新计算可滚动距离（Measure），
// 随后由 LayoutSystem 在同一次 Resize 中用新距离替换钉住区间。
type HorizontalTrackSystem struct {
	entityManager *ecs.EntityManager
}

// NewHorizontalTrackSystem 创建横向轨道系统
func NewHorizontalTrackSystem(em *ecs.EntityManager) *HorizontalTrackSystem {
	return &HorizontalTrackSystem{entityManager: em}
}

// Measure 以新的视口宽度重新测量所有轨道
func (s *HorizontalTrackSystem) Measure(viewportWidth float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.HorizontalTrack](s.entityManager) {
		track, _ := ecs.GetComponent[*components.HorizontalTrack](s.entityManager, id)

		if sizing, ok := ecs.GetComponent[*components.TrackSizing](s.entityManager, id); ok {
			metrics := sizing.MetricsFor(viewportWidth)
			widths := make([]float64, 0, sizing.Count)
			if metrics.Width > 0 {
				for i := 0; i < sizing.Count; i++ {
					widths = append(widths, metrics.Width)
				}
			}
			track.ItemWidths = widths
			track.Gap = metrics.Gap
			track.PaddingLeft = metrics.Padding
			track.PaddingRight = metrics.Padding + sizing.TrailingWidth
		}

		distance := track.Measure(viewportWidth)
		log.Printf("[HorizontalTrackSystem] entity %d: content %.0f, viewport %.0f, distance %.0f",
			id, track.ContentWidth(), viewportWidth, distance)
	}
}

// Distance 返回实体轨道的可滚动距离（没有轨道时为 0）
func (s *HorizontalTrackSystem) Distance(id ecs.EntityID) float64 {
	track, ok := ecs.GetComponent[*components.HorizontalTrack](s.entityManager, id)
	if !ok {
		return 0
	}
	return track.TotalScrollableDistance
}

// Update 按本帧快照中的区间进度计算平移
func (s *HorizontalTrackSystem) Update(snapshot *FrameSnapshot) {
	for _, id := range ecs.GetEntitiesWith1[*components.HorizontalTrack](s.entityManager) {
		track, _ := ecs.GetComponent[*components.HorizontalTrack](s.entityManager, id)
		track.TranslateX = track.TranslationAt(snapshot.Region(id).Progress)
	}
}
