package scenes

import (
	"math"

	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/systems"
	"github.com/decker502/scrollstage/pkg/utils"
)

// 区块内部排版常量（相对区块顶部）
const (
	sectionTitleTop   = 56.0
	carouselStripTop  = 150.0
	carouselButtonW   = 44.0
	heroNavHeight     = 44.0
	heroNavGap        = 12.0
	heroNavItemWidth  = 150.0
	scheduleMargin    = 48.0
	scheduleColumnGap = 32.0
	detailPanelMaxW   = 720.0
	detailCloseSize   = 36.0
)

// carouselStripRect 轮播拖拽条在屏幕上的矩形
//
// 宽度与 FrameLoop.Resize 传给拖拽系统的可见宽度一致。
func carouselStripRect(sec systems.SectionOutput, screenWidth float64) utils.Rect {
	return utils.Rect{
		X: config.CarouselStripMargin,
		Y: sec.ScreenY + carouselStripTop,
		W: screenWidth - 2*config.CarouselStripMargin,
		H: config.CarouselStripHeight,
	}
}

// carouselButtonRects 上一项/下一项按钮
func carouselButtonRects(sec systems.SectionOutput, screenWidth float64) (prev, next utils.Rect) {
	y := sec.ScreenY + sectionTitleTop
	next = utils.Rect{X: screenWidth - config.CarouselStripMargin - carouselButtonW, Y: y, W: carouselButtonW, H: carouselButtonW}
	prev = utils.Rect{X: next.X - carouselButtonW - 8, Y: y, W: carouselButtonW, H: carouselButtonW}
	return prev, next
}

// heroNavRects 首屏导航按钮，水平居中排列在首屏下部
func heroNavRects(sec systems.SectionOutput, screenWidth, screenHeight float64, count int) []utils.Rect {
	if count <= 0 {
		return nil
	}
	total := float64(count)*heroNavItemWidth + float64(count-1)*heroNavGap
	x := (screenWidth - total) / 2
	y := sec.ScreenY + screenHeight*0.75
	rects := make([]utils.Rect, count)
	for i := range rects {
		rects[i] = utils.Rect{X: x + float64(i)*(heroNavItemWidth+heroNavGap), Y: y, W: heroNavItemWidth, H: heroNavHeight}
	}
	return rects
}

// galleryCardRect 横向画廊第 i 张卡片（未平移）
func galleryCardRect(sec systems.SectionOutput, metrics config.CardBreakpoint, i int, screenHeight float64) utils.Rect {
	h := screenHeight * 0.55
	return utils.Rect{
		X: metrics.Padding + float64(i)*(metrics.Width+metrics.Gap),
		Y: sec.ScreenY + (screenHeight-h)/2 + 24,
		W: metrics.Width,
		H: h,
	}
}

// scheduleListRect 演出日程列表在屏幕上的矩形，高度恰好容纳 rows 行
//
// 宽屏时左侧留给焦点场馆面板，列表占右侧。
func scheduleListRect(sec systems.SectionOutput, screenWidth float64, rows int) utils.Rect {
	x := scheduleMargin
	if feature, ok := scheduleFeatureRect(sec, screenWidth); ok {
		x = feature.X + feature.W + scheduleColumnGap
	}
	h := 0.0
	if rows > 0 {
		h = float64(rows)*config.ScheduleRowHeight + float64(rows-1)*config.ScheduleRowGap
	}
	return utils.Rect{X: x, Y: sec.ScreenY + config.ScheduleListTop, W: screenWidth - scheduleMargin - x, H: h}
}

// scheduleFeatureRect 焦点场馆面板，窄屏不显示
func scheduleFeatureRect(sec systems.SectionOutput, screenWidth float64) (utils.Rect, bool) {
	if screenWidth < config.ScheduleFeatureMinWidth {
		return utils.Rect{}, false
	}
	w := (screenWidth - 2*scheduleMargin - scheduleColumnGap) * 5 / 12
	return utils.Rect{X: scheduleMargin, Y: sec.ScreenY + config.ScheduleListTop, W: w, H: 360}, true
}

// cubeHitRect 立方体的点击区域（覆盖任意朝向的投影）
func cubeHitRect(sec systems.SectionOutput, screenWidth, screenHeight float64) utils.Rect {
	size := math.Min(screenWidth, screenHeight) * 0.18
	half := size * 1.5
	cx, cy := screenWidth/2, sec.ScreenY+screenHeight*0.45
	return utils.Rect{X: cx - half, Y: cy - half, W: 2 * half, H: 2 * half}
}

// detailPanelRect 详情面板，居中并按 scale 缩放
func detailPanelRect(screenWidth, screenHeight, scale float64) utils.Rect {
	w := math.Min(screenWidth-64, detailPanelMaxW) * scale
	h := (screenHeight - 96) * scale
	return utils.Rect{X: (screenWidth - w) / 2, Y: (screenHeight - h) / 2, W: w, H: h}
}

// detailCloseRect 详情面板右上角的关闭按钮
func detailCloseRect(panel utils.Rect) utils.Rect {
	return utils.Rect{X: panel.X + panel.W - detailCloseSize - 12, Y: panel.Y + 12, W: detailCloseSize, H: detailCloseSize}
}

// sectionVisible 区块是否与视口相交
func sectionVisible(sec systems.SectionOutput, screenHeight float64) bool {
	return sec.ScreenY < screenHeight && sec.ScreenY+sec.Height > 0
}

// point2 投影后的屏幕坐标
type point2 struct {
	X, Y float64
}

// cubeVertices 单位立方体的 8 个顶点
var cubeVertices = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// cubeEdges 立方体的 12 条棱（顶点下标）
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// cameraDistance 透视相机到立方体中心的距离（以半边长为单位）
const cameraDistance = 4.0

// projectCube 先绕 Y 轴旋转 rotY，再绕 X 轴旋转 rotX，然后透视投影
//
// size 为投影后正面半边长的大致像素数，(cx, cy) 为屏幕中心。
func projectCube(rotX, rotY, size, cx, cy float64) [8]point2 {
	var out [8]point2
	sinY, cosY := math.Sincos(rotY)
	sinX, cosX := math.Sincos(rotX)
	for i, v := range cubeVertices {
		x, y, z := v[0], v[1], v[2]

		x, z = x*cosY+z*sinY, -x*sinY+z*cosY
		y, z = y*cosX-z*sinX, y*sinX+z*cosX

		scale := size * (cameraDistance - 1) / (cameraDistance + z)
		out[i] = point2{X: cx + x*scale, Y: cy + y*scale}
	}
	return out
}
