package scenes

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/systems"
	"github.com/decker502/scrollstage/pkg/types"
	"github.com/decker502/scrollstage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 调色板
var (
	colorBackground = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	colorSurface    = color.RGBA{R: 28, G: 28, B: 30, A: 255}
	colorSurfaceHi  = color.RGBA{R: 48, G: 48, B: 52, A: 255}
	colorGold       = color.RGBA{R: 212, G: 175, B: 55, A: 255}
	colorText       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	colorMuted      = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	colorOverlay    = color.RGBA{A: 210}
)

// Draw 绘制当前帧
func (s *StageScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	h := float64(s.height)
	for _, sec := range s.output.Sections {
		if !sectionVisible(sec, h) {
			continue
		}
		switch sec.Kind {
		case types.SectionHero.String():
			s.drawHero(screen, sec)
		case types.SectionCube.String():
			s.drawCube(screen, sec)
		case types.SectionCarousel.String():
			s.drawCarousel(screen, sec)
		case types.SectionParallaxStrips.String():
			s.drawStrips(screen, sec)
		case types.SectionHorizontalGallery.String():
			s.drawGallery(screen, sec)
		case types.SectionSchedule.String():
			s.drawSchedule(screen, sec)
		case types.SectionFooter.String():
			s.drawFooter(screen, sec)
		}
	}

	s.drawPageProgress(screen)
	s.drawDetail(screen)
	if s.debugOverlay {
		s.drawDebugOverlay(screen)
	}
}

func (s *StageScene) drawHero(screen *ebiten.Image, sec systems.SectionOutput) {
	w, h := float64(s.width), float64(s.height)

	textW, _ := text.Measure(sec.DecodeText, s.heroFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((w-textW)/2, sec.ScreenY+h*0.35)
	op.ColorScale.ScaleWithColor(colorText)
	text.Draw(screen, sec.DecodeText, s.heroFace, op)

	drawCenteredText(screen, s.site.Hero.Subtitle, s.bodyFace, w/2, sec.ScreenY+h*0.35+96, colorMuted)

	for i, r := range heroNavRects(sec, w, h, len(s.site.Hero.NavItems)) {
		item := s.site.Hero.NavItems[i]
		drawRect(screen, r, colorSurface)
		strokeRect(screen, r, colorGold)
		label := fmt.Sprintf("%s  %s", item.Icon.Glyph(), item.Label)
		drawCenteredText(screen, label, s.smallFace, r.X+r.W/2, r.Y+(r.H-14)/2, colorText)
	}
}

func (s *StageScene) drawCube(screen *ebiten.Image, sec systems.SectionOutput) {
	w, h := float64(s.width), float64(s.height)
	cx, cy := w/2, sec.ScreenY+h*0.45
	size := math.Min(w, h) * 0.18

	pts := projectCube(sec.RotX, sec.RotY, size, cx, cy)
	for _, e := range cubeEdges {
		a, b := pts[e[0]], pts[e[1]]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, colorGold, true)
	}

	if len(s.site.Albums) == 0 {
		return
	}
	album := s.site.Albums[clampIndex(sec.Index, len(s.site.Albums))]

	// 标题随滚动速度模糊并拉开字距
	titleW := utils.SpacedAdvance(album.Title, s.titleFace, sec.LetterSpacing)
	utils.DrawBlurredText(screen, album.Title, s.titleFace, (w-titleW)/2, sec.ScreenY+h*0.75, sec.LetterSpacing, sec.Blur, colorText)
	drawCenteredText(screen, album.Subtitle, s.bodyFace, w/2, sec.ScreenY+h*0.75+56, colorMuted)

	// 专辑指示点
	n := len(s.site.Albums)
	dotsX := w/2 - float64(n-1)*10
	for i := 0; i < n; i++ {
		clr := colorSurfaceHi
		if i == sec.Index {
			clr = colorGold
		}
		vector.DrawFilledCircle(screen, float32(dotsX+float64(i)*20), float32(sec.ScreenY+h*0.92), 4, clr, true)
	}
}

func (s *StageScene) drawCarousel(screen *ebiten.Image, sec systems.SectionOutput) {
	w := float64(s.width)
	alpha := sec.Opacity

	title := s.site.DJs.SectionTitle
	utils.DrawSpacedText(screen, title, s.titleFace, 48, sec.ScreenY+sectionTitleTop, 0, colorText, alpha)

	prev, next := carouselButtonRects(sec, w)
	for _, r := range []utils.Rect{prev, next} {
		drawRect(screen, r, colorSurface)
		strokeRect(screen, r, colorGold)
	}
	drawCenteredText(screen, "<", s.bodyFace, prev.X+prev.W/2, prev.Y+10, colorText)
	drawCenteredText(screen, ">", s.bodyFace, next.X+next.W/2, next.Y+10, colorText)

	strip := carouselStripRect(sec, w)
	clip, ok := subImage(screen, strip)
	if !ok {
		return
	}
	cardW, gap := s.site.DJs.CardWidth, s.site.DJs.CardGap
	for i, dj := range s.site.DJs.DJs {
		card := utils.Rect{X: strip.X + float64(i)*(cardW+gap) - sec.DragOffset, Y: strip.Y, W: cardW, H: strip.H}
		if card.X+card.W < strip.X || card.X > strip.X+strip.W {
			continue
		}
		fill := colorSurface
		if i == sec.Index {
			fill = colorSurfaceHi
		}
		drawRectAlpha(clip, card, fill, alpha)
		if i == sec.Index {
			strokeRect(clip, card, colorGold)
		}
		utils.DrawSpacedText(clip, dj.Alias, s.bodyFace, card.X+16, card.Y+card.H-72, 0, colorText, alpha)
		utils.DrawSpacedText(clip, dj.Name, s.smallFace, card.X+16, card.Y+card.H-44, 0, colorMuted, alpha)
	}
}

func (s *StageScene) drawStrips(screen *ebiten.Image, sec systems.SectionOutput) {
	rowH := sec.Height * 0.4
	for row, strip := range s.site.Gallery.Strips {
		offset := sec.Parallax[strip.Name]
		y := sec.ScreenY + sec.Height*0.06 + float64(row)*(rowH+sec.Height*0.08)
		tileW := rowH * 1.5
		for i := 0; i < strip.Count; i++ {
			r := utils.Rect{X: -tileW/2 + float64(i)*(tileW+16) + offset, Y: y, W: tileW, H: rowH}
			fill := colorSurface
			if i%2 == 1 {
				fill = colorSurfaceHi
			}
			drawRect(screen, r, fill)
		}
	}
}

func (s *StageScene) drawGallery(screen *ebiten.Image, sec systems.SectionOutput) {
	w, h := float64(s.width), float64(s.height)
	gallery := s.site.Gallery
	metrics := gallery.CardMetrics(w)

	utils.DrawSpacedText(screen, gallery.GalleryTitle, s.titleFace, metrics.Padding, sec.ScreenY+sectionTitleTop, 0, colorText, 1)

	var last utils.Rect
	for i, img := range gallery.Images {
		r := galleryCardRect(sec, metrics, i, h)
		r.X += sec.TrackX
		last = r
		if r.X+r.W < 0 || r.X > w {
			continue
		}
		drawRect(screen, r, colorSurface)
		utils.DrawSpacedText(screen, img.Title, s.bodyFace, r.X+16, r.Y+r.H-64, 0, colorText, 1)
		utils.DrawSpacedText(screen, img.Date, s.smallFace, r.X+16, r.Y+r.H-36, 0, colorMuted, 1)
	}

	if gallery.EndCtaText != "" && len(gallery.Images) > 0 {
		cta := utils.Rect{X: last.X + last.W + metrics.Gap, Y: last.Y, W: gallery.EndCtaWidth, H: last.H}
		strokeRect(screen, cta, colorGold)
		drawCenteredText(screen, gallery.EndCtaText, s.bodyFace, cta.X+cta.W/2, cta.Y+cta.H/2-10, colorGold)
	}
}

func (s *StageScene) drawSchedule(screen *ebiten.Image, sec systems.SectionOutput) {
	w := float64(s.width)
	tour := s.site.Tour
	alpha := sec.Opacity

	utils.DrawSpacedText(screen, tour.SectionTitle, s.titleFace, scheduleMargin, sec.ScreenY+sectionTitleTop, 0, colorText, alpha)
	if len(tour.Dates) == 0 {
		return
	}

	// 焦点场馆跟随当前项
	if feature, ok := scheduleFeatureRect(sec, w); ok {
		date := tour.Dates[clampIndex(sec.Index, len(tour.Dates))]
		drawRectAlpha(screen, feature, colorSurfaceHi, alpha)
		utils.DrawSpacedText(screen, date.Date, s.smallFace, feature.X+24, feature.Y+24, 2, colorGold, alpha)
		for i, line := range utils.WrapText(date.Venue, s.titleFace, feature.W-48) {
			utils.DrawSpacedText(screen, line, s.titleFace, feature.X+24, feature.Y+64+float64(i)*48, 0, colorText, alpha)
		}
		utils.DrawSpacedText(screen, date.City, s.bodyFace, feature.X+24, feature.Y+feature.H-48, 0, colorMuted, alpha)
	}

	list := scheduleListRect(sec, w, len(tour.Dates))
	rowH := config.ScheduleRowHeight
	for i, date := range tour.Dates {
		y := list.Y + float64(i)*(rowH+config.ScheduleRowGap)
		row := utils.Rect{X: list.X, Y: y, W: list.W, H: rowH}
		fill := colorSurface
		if sec.Hovering && i == sec.Index {
			fill = colorSurfaceHi
		}
		drawRectAlpha(screen, row, fill, alpha)
		utils.DrawSpacedText(screen, date.Date, s.bodyFace, row.X+20, y+24, 0, colorGold, alpha)
		utils.DrawSpacedText(screen, date.City+"  /  "+date.Venue, s.bodyFace, row.X+180, y+24, 0, colorText, alpha)

		label := tour.StatusLabels.LabelFor(date.Status)
		badgeW := 150.0
		badge := utils.Rect{X: row.X + row.W - badgeW - 20, Y: y + 18, W: badgeW, H: rowH - 36}
		drawRectAlpha(screen, badge, date.Status.Color(), alpha)
		drawCenteredText(screen, label, s.smallFace, badge.X+badge.W/2, badge.Y+(badge.H-14)/2, colorBackground)
	}
}

// drawDetail 立方体详情面板：遮罩、专辑介绍与服务套餐
func (s *StageScene) drawDetail(screen *ebiten.Image) {
	if s.cubeID == "" || len(s.site.Albums) == 0 {
		return
	}
	sec, ok := s.output.Section(s.cubeID)
	if !ok || sec.DetailOpacity <= 0 {
		return
	}
	w, h := float64(s.width), float64(s.height)
	alpha := utils.Clamp01(sec.DetailOpacity)
	album := s.site.Albums[clampIndex(sec.DetailItem, len(s.site.Albums))]

	drawRectAlpha(screen, utils.Rect{W: w, H: h}, colorOverlay, alpha)
	panel := detailPanelRect(w, h, sec.DetailScale)
	drawRectAlpha(screen, panel, colorSurface, alpha)

	closeBtn := detailCloseRect(panel)
	drawRectAlpha(screen, closeBtn, colorSurfaceHi, alpha)
	drawCenteredText(screen, "X", s.bodyFace, closeBtn.X+closeBtn.W/2, closeBtn.Y+(closeBtn.H-20)/2, colorText)

	x, y := panel.X+32, panel.Y+32
	maxW := panel.W - 64
	utils.DrawSpacedText(screen, album.Subtitle, s.smallFace, x, y, 2, colorGold, alpha)
	y += 28
	utils.DrawSpacedText(screen, album.Title, s.titleFace, x, y, 0, colorText, alpha)
	y += 60
	for _, line := range utils.WrapText(album.Description, s.bodyFace, maxW) {
		utils.DrawSpacedText(screen, line, s.bodyFace, x, y, 0, colorMuted, alpha)
		y += 28
	}
	y += 16

	for _, pack := range album.Packages {
		if y > panel.Y+panel.H-48 {
			break
		}
		drawRectAlpha(screen, utils.Rect{X: x, Y: y, W: maxW, H: 1}, colorSurfaceHi, alpha)
		y += 12
		utils.DrawSpacedText(screen, pack.Name, s.bodyFace, x, y, 0, colorText, alpha)
		priceW := utils.SpacedAdvance(pack.Price, s.bodyFace, 0)
		utils.DrawSpacedText(screen, pack.Price, s.bodyFace, x+maxW-priceW, y, 0, colorGold, alpha)
		y += 28
		utils.DrawSpacedText(screen, pack.Description, s.smallFace, x, y, 0, colorMuted, alpha)
		y += 22
		for _, feature := range pack.Features {
			utils.DrawSpacedText(screen, "+ "+feature, s.smallFace, x+12, y, 0, colorText, alpha)
			y += 20
		}
		y += 8
	}
}

func (s *StageScene) drawFooter(screen *ebiten.Image, sec systems.SectionOutput) {
	w, h := float64(s.width), float64(s.height)
	footer := s.site.Footer

	titleY := sec.ScreenY + h*0.3 + sec.Parallax["title"]
	drawCenteredText(screen, footer.HeroTitle, s.footerFace, w/2, titleY, colorGold)
	drawCenteredText(screen, footer.BrandName, s.titleFace, w/2, sec.ScreenY+h*0.62, colorText)
	drawCenteredText(screen, footer.Copyright, s.smallFace, w/2, sec.ScreenY+sec.Height-48, colorMuted)
}

func (s *StageScene) drawPageProgress(screen *ebiten.Image) {
	w := float32(float64(s.width) * utils.Clamp01(s.output.PageProgress))
	vector.DrawFilledRect(screen, 0, 0, w, 3, colorGold, false)
}

// drawCenteredText 以 (cx, y) 为顶部中点绘制文本
func drawCenteredText(dst *ebiten.Image, str string, face *text.GoTextFace, cx, y float64, clr color.Color) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}

func drawRect(dst *ebiten.Image, r utils.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, true)
}

func drawRectAlpha(dst *ebiten.Image, r utils.Rect, clr color.RGBA, alpha float64) {
	a := utils.Clamp01(alpha)
	faded := color.RGBA{
		R: uint8(float64(clr.R) * a),
		G: uint8(float64(clr.G) * a),
		B: uint8(float64(clr.B) * a),
		A: uint8(float64(clr.A) * a),
	}
	drawRect(dst, r, faded)
}

func strokeRect(dst *ebiten.Image, r utils.Rect, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1.5, clr, true)
}

// subImage 返回裁剪到 r 的子图（坐标系与 dst 相同）
func subImage(dst *ebiten.Image, r utils.Rect) (*ebiten.Image, bool) {
	rect := image.Rect(int(r.X), int(r.Y), int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H))).Intersect(dst.Bounds())
	if rect.Empty() {
		return nil, false
	}
	return dst.SubImage(rect).(*ebiten.Image), true
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
