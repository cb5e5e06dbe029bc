package scenes

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/game"
	"github.com/decker502/scrollstage/pkg/systems"
	"github.com/decker502/scrollstage/pkg/types"
	"github.com/decker502/scrollstage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// SiteSource 提供站点配置（嵌入文件或 --config 指定的文件）
type SiteSource func() (*config.SiteConfig, error)

// ErrUnknownScene 工厂不认识的场景名称
var ErrUnknownScene = errors.New("unknown scene")

func errUnknownScene(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// clickSlop 按下与释放之间的最大水平位移，超过即视为拖拽而不是点击
const clickSlop = 4.0

// StageScene 滚动舞台场景
//
// 场景只负责输入适配与绘制：滚轮、键盘、指针被翻译为 FrameLoop 的调用，
// 绘制只读取 FrameLoop.Tick 返回的 FrameOutput。
type StageScene struct {
	site     *config.SiteConfig
	settings *game.SettingsManager // 可为 nil

	entityManager *ecs.EntityManager
	loop          *systems.FrameLoop

	fonts      *utils.FontSet
	heroFace   *text.GoTextFace
	titleFace  *text.GoTextFace
	bodyFace   *text.GoTextFace
	smallFace  *text.GoTextFace
	footerFace *text.GoTextFace

	width, height int
	output        systems.FrameOutput

	// 指针状态
	stripPointer    utils.PointerTracker
	schedulePointer utils.PointerTracker
	pressX          float64
	wasPressed      bool
	carouselID      string
	scheduleID      string
	cubeID          string
	navTargets      []string
	debugOverlay    bool
	resizeFailure   error
}

// NewStageScene 创建舞台场景
//
// 参数:
//   - site: 已验证的站点配置
//   - settings: 观看器设置，可为 nil（使用默认滚轮步长）
func NewStageScene(site *config.SiteConfig, settings *game.SettingsManager) (*StageScene, error) {
	if site == nil {
		return nil, fmt.Errorf("failed to create stage scene: nil site config")
	}

	em := ecs.NewEntityManager()
	loop, err := systems.NewFrameLoop(em, site, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage scene: %w", err)
	}

	fonts, err := utils.LoadFontSet()
	if err != nil {
		loop.Teardown()
		return nil, fmt.Errorf("failed to create stage scene: %w", err)
	}

	scene := &StageScene{
		site:            site,
		settings:        settings,
		entityManager:   em,
		loop:            loop,
		fonts:           fonts,
		heroFace:        fonts.Face(fonts.Mono, 64),
		titleFace:       fonts.Face(fonts.Bold, 40),
		bodyFace:        fonts.Face(fonts.Regular, 20),
		smallFace:       fonts.Face(fonts.Regular, 14),
		footerFace:      fonts.Face(fonts.Bold, 96),
		schedulePointer: utils.PointerTracker{Hover: true},
	}

	for _, sc := range site.Sections {
		switch {
		case sc.Kind == types.SectionCarousel && scene.carouselID == "":
			scene.carouselID = sc.ID
		case sc.Kind == types.SectionSchedule && scene.scheduleID == "":
			scene.scheduleID = sc.ID
		case sc.Kind == types.SectionCube && scene.cubeID == "":
			scene.cubeID = sc.ID
		}
	}
	for _, item := range site.Hero.NavItems {
		scene.navTargets = append(scene.navTargets, item.SectionID)
	}
	if settings != nil {
		scene.debugOverlay = settings.GetSettings().DebugOverlay
	}

	log.Printf("[StageScene] created with %d sections", len(site.Sections))
	return scene, nil
}

// Resize 逻辑屏幕尺寸变化时重算布局
func (s *StageScene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.resizeFailure = s.loop.Resize(float64(width), float64(height))
	if s.resizeFailure != nil {
		log.Printf("[StageScene] Warning: %v", s.resizeFailure)
	}
}

// Dispose 取消全部滚动观察者
func (s *StageScene) Dispose() {
	s.loop.Teardown()
}

// Update 处理输入并推进一帧
func (s *StageScene) Update(deltaTime float64) {
	if s.loop.TornDown() {
		return
	}
	s.handleKeyboard()
	s.handleWheel()
	s.handlePointer()
	s.output = s.loop.Tick(deltaTime)
}

// Output 最近一帧的变换值
func (s *StageScene) Output() systems.FrameOutput {
	return s.output
}

func (s *StageScene) wheelStep() float64 {
	if s.settings == nil {
		return config.DefaultWheelStep
	}
	return s.settings.GetSettings().WheelStep
}

func (s *StageScene) handleWheel() {
	_, dy := ebiten.Wheel()
	if dy != 0 {
		// 滚轮向上为正，页面向下滚动为正
		s.loop.ScrollBy(-dy * s.wheelStep())
	}
}

func (s *StageScene) handleKeyboard() {
	vh := float64(s.height)

	if s.detailOpen() && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.loop.CloseDetail(s.cubeID)
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		s.loop.ScrollBy(config.KeyboardScrollStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		s.loop.ScrollBy(-config.KeyboardScrollStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.loop.ScrollBy(vh * 0.9)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		s.loop.ScrollBy(-vh * 0.9)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		s.loop.ScrollTo(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		s.loop.ScrollTo(s.loop.Sampler().MaxScroll())
	}

	if s.carouselID != "" {
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
			s.loop.NextCard(s.carouselID)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
			s.loop.PrevCard(s.carouselID)
		}
	}

	// 数字键跳转到导航项
	for i, target := range s.navTargets {
		if i >= 9 {
			break
		}
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			s.loop.JumpToSection(target)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.toggleDebugOverlay()
	}
}

func (s *StageScene) toggleDebugOverlay() {
	if s.settings == nil {
		s.debugOverlay = !s.debugOverlay
		return
	}
	s.debugOverlay = s.settings.ToggleDebugOverlay()
	if err := s.settings.Save(); err != nil {
		log.Printf("[StageScene] Warning: failed to save settings: %v", err)
	}
}

func (s *StageScene) handlePointer() {
	snap := utils.PollPointer()
	x, y := float64(snap.X), float64(snap.Y)
	justPressed := snap.Pressed && !s.wasPressed
	s.wasPressed = snap.Pressed

	// 详情面板打开时独占指针
	if s.detailOpen() {
		if justPressed {
			s.handleDetailClick(x, y)
		}
		return
	}

	if justPressed && s.handleButtons(x, y) {
		s.stripPointer.Reset()
		return
	}

	s.handleScheduleHover(snap)
	s.handleCarouselDrag(snap)
}

// detailOpen 立方体详情面板是否打开
func (s *StageScene) detailOpen() bool {
	if s.cubeID == "" {
		return false
	}
	sec, ok := s.output.Section(s.cubeID)
	return ok && sec.DetailOpen
}

// handleDetailClick 点击关闭按钮或面板外部时关闭面板
func (s *StageScene) handleDetailClick(x, y float64) {
	panel := detailPanelRect(float64(s.width), float64(s.height), 1)
	if detailCloseRect(panel).Contains(x, y) || !panel.Contains(x, y) {
		s.loop.CloseDetail(s.cubeID)
	}
}

// handleScheduleHover 日程列表的悬停，事件坐标换算为相对列表左上角
func (s *StageScene) handleScheduleHover(snap utils.PointerSnapshot) {
	if s.scheduleID == "" {
		return
	}
	sec, ok := s.output.Section(s.scheduleID)
	if !ok {
		return
	}
	list := scheduleListRect(*sec, float64(s.width), len(s.site.Tour.Dates))
	events := s.schedulePointer.Feed(snap, list)
	if len(events) == 0 {
		return
	}
	for i := range events {
		events[i].X -= list.X
		events[i].Y -= list.Y
	}
	s.loop.HoverRows(s.scheduleID, events)
}

func (s *StageScene) handleCarouselDrag(snap utils.PointerSnapshot) {
	if s.carouselID == "" {
		return
	}
	sec, ok := s.output.Section(s.carouselID)
	if !ok {
		return
	}
	strip := carouselStripRect(*sec, float64(s.width))
	events := s.stripPointer.Feed(snap, strip)
	if len(events) == 0 {
		return
	}
	s.loop.HandlePointer(s.carouselID, events)

	for _, ev := range events {
		switch ev.Kind {
		case utils.PointerDown:
			s.pressX = ev.X
		case utils.PointerUp:
			if math.Abs(ev.X-s.pressX) < clickSlop {
				s.loop.SelectCardAt(s.carouselID, ev.X-strip.X)
			}
		}
	}
}

// handleButtons 处理导航与轮播按钮点击，命中时返回 true
func (s *StageScene) handleButtons(x, y float64) bool {
	for _, sec := range s.output.Sections {
		switch sec.Kind {
		case types.SectionHero.String():
			for i, r := range heroNavRects(sec, float64(s.width), float64(s.height), len(s.navTargets)) {
				if r.Contains(x, y) {
					log.Printf("[StageScene] nav -> %s", s.navTargets[i])
					s.loop.JumpToSection(s.navTargets[i])
					return true
				}
			}
		case types.SectionCube.String():
			if sectionVisible(sec, float64(s.height)) && cubeHitRect(sec, float64(s.width), float64(s.height)).Contains(x, y) {
				if s.loop.OpenDetail(sec.ID) {
					s.schedulePointer.Reset()
					s.loop.ClearHover(s.scheduleID)
					return true
				}
			}
		case types.SectionCarousel.String():
			prev, next := carouselButtonRects(sec, float64(s.width))
			if prev.Contains(x, y) {
				s.loop.PrevCard(sec.ID)
				return true
			}
			if next.Contains(x, y) {
				s.loop.NextCard(sec.ID)
				return true
			}
		}
	}
	return false
}
