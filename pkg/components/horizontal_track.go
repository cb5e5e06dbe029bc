package components

import (
	"math"

	"github.com/decker502/scrollstage/pkg/config"
)

// HorizontalTrack 横向画廊轨道
//
// 总可滚动距离 = max(0, 内容宽度 - 视口宽度)。钉住区间的终点由该距离推出
// （页面滚动一像素对应轨道平移一像素）。
type HorizontalTrack struct {
	// ItemWidths 各卡片宽度（按顺序）
	ItemWidths []float64

	// Gap 相邻卡片间距
	Gap float64

	// PaddingLeft / PaddingRight 轨道内边距（含末尾 CTA 的占位）
	PaddingLeft  float64
	PaddingRight float64

	// ViewportWidth 最近一次测量的视口宽度
	ViewportWidth float64

	// TotalScrollableDistance 最近一次测量得到的可滚动距离
	TotalScrollableDistance float64

	// TranslateX 当前帧的横向平移（<= 0）
	TranslateX float64
}

// ContentWidth 轨道内容总宽度
func (t *HorizontalTrack) ContentWidth() float64 {
	n := len(t.ItemWidths)
	if n == 0 {
		return 0
	}
	width := t.PaddingLeft + t.PaddingRight + t.Gap*float64(n-1)
	for _, w := range t.ItemWidths {
		width += w
	}
	return width
}

// Measurable 是否具备测量条件（有卡片、视口宽度为正）
func (t *HorizontalTrack) Measurable() bool {
	return len(t.ItemWidths) > 0 && t.ViewportWidth > 0
}

// Measure 以新的视口宽度重新计算可滚动距离（整体替换旧值）
func (t *HorizontalTrack) Measure(viewportWidth float64) float64 {
	t.ViewportWidth = viewportWidth
	if !t.Measurable() {
		t.TotalScrollableDistance = 0
		return 0
	}
	t.TotalScrollableDistance = math.Max(0, t.ContentWidth()-viewportWidth)
	return t.TotalScrollableDistance
}

// TranslationAt 进度对应的横向平移：x = -progress * distance
func (t *HorizontalTrack) TranslationAt(progress float64) float64 {
	if progress <= 0 || t.TotalScrollableDistance <= 0 {
		return 0
	}
	if progress >= 1 {
		return -t.TotalScrollableDistance
	}
	return -progress * t.TotalScrollableDistance
}

// ItemOffset 第 i 张卡片相对轨道左缘的位置
func (t *HorizontalTrack) ItemOffset(i int) float64 {
	x := t.PaddingLeft
	for j := 0; j < i && j < len(t.ItemWidths); j++ {
		x += t.ItemWidths[j] + t.Gap
	}
	return x
}

// TrackSizing 横向轨道的响应式尺寸来源
//
// 每次视口变化时按断点重新生成 ItemWidths / Gap / Padding。
type TrackSizing struct {
	// Count 卡片数量
	Count int

	// Breakpoints 按 MinViewport 升序排列的断点
	Breakpoints []config.CardBreakpoint

	// TrailingWidth 末尾 CTA 占位宽度（计入右内边距）
	TrailingWidth float64
}

// MetricsFor 返回视口宽度对应的断点
func (s *TrackSizing) MetricsFor(viewportWidth float64) config.CardBreakpoint {
	g := config.GalleryConfig{Breakpoints: s.Breakpoints}
	return g.CardMetrics(viewportWidth)
}
