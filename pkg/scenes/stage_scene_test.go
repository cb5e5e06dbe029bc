package scenes

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/game"
	"github.com/decker502/scrollstage/pkg/systems"
)

func loadTestSite(t *testing.T) *config.SiteConfig {
	t.Helper()
	site, err := config.LoadSiteConfig("../../data/site.yaml")
	if err != nil {
		t.Fatalf("LoadSiteConfig: %v", err)
	}
	return site
}

// TestProjectCube 测试立方体投影
func TestProjectCube(t *testing.T) {
	const size, cx, cy = 100.0, 640.0, 360.0

	rest := projectCube(0, 0, size, cx, cy)
	// 正面（z = -1）四个顶点恰好落在 size 处
	front := []point2{{cx - size, cy - size}, {cx + size, cy - size}, {cx + size, cy + size}, {cx - size, cy + size}}
	for i, want := range front {
		if math.Abs(rest[i].X-want.X) > 1e-9 || math.Abs(rest[i].Y-want.Y) > 1e-9 {
			t.Errorf("vertex %d = %+v, want %+v", i, rest[i], want)
		}
	}
	// 背面透视缩小
	if back := rest[4]; back.X <= cx-size || back.X >= cx {
		t.Errorf("back vertex x = %v, want between %v and %v", back.X, cx-size, cx)
	}

	// 转一整圈回到原位
	full := projectCube(0, 2*math.Pi, size, cx, cy)
	for i := range rest {
		if math.Abs(full[i].X-rest[i].X) > 1e-6 || math.Abs(full[i].Y-rest[i].Y) > 1e-6 {
			t.Errorf("vertex %d after full turn = %+v, want %+v", i, full[i], rest[i])
		}
	}
}

func TestCarouselStripRect(t *testing.T) {
	sec := systems.SectionOutput{ScreenY: 100}
	r := carouselStripRect(sec, 1280)
	if r.X != config.CarouselStripMargin || r.W != 1280-2*config.CarouselStripMargin {
		t.Errorf("strip x/w = %v/%v", r.X, r.W)
	}
	if r.Y != 100+carouselStripTop || r.H != config.CarouselStripHeight {
		t.Errorf("strip y/h = %v/%v", r.Y, r.H)
	}

	prev, next := carouselButtonRects(sec, 1280)
	if prev.X+prev.W > next.X {
		t.Error("prev button overlaps next button")
	}
	if next.X+next.W > 1280-config.CarouselStripMargin+1e-9 {
		t.Error("next button exceeds the strip margin")
	}
}

func TestHeroNavRects(t *testing.T) {
	sec := systems.SectionOutput{ScreenY: 0}
	rects := heroNavRects(sec, 1280, 720, 4)
	if len(rects) != 4 {
		t.Fatalf("len = %d, want 4", len(rects))
	}
	// 水平居中
	left := rects[0].X
	right := 1280 - (rects[3].X + rects[3].W)
	if math.Abs(left-right) > 1e-9 {
		t.Errorf("nav not centered: left %v right %v", left, right)
	}
	for i := 1; i < len(rects); i++ {
		if rects[i].X < rects[i-1].X+rects[i-1].W {
			t.Errorf("nav %d overlaps %d", i, i-1)
		}
	}
	if heroNavRects(sec, 1280, 720, 0) != nil {
		t.Error("no nav items should give no rects")
	}
}

func TestScheduleLayout(t *testing.T) {
	sec := systems.SectionOutput{ScreenY: 200}

	tests := []struct {
		name        string
		width       float64
		wantFeature bool
	}{
		{"宽屏显示焦点场馆", 1280, true},
		{"窄屏只有列表", 800, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := scheduleListRect(sec, tt.width, 3)
			if list.Y != 200+config.ScheduleListTop {
				t.Errorf("list y = %v", list.Y)
			}
			wantH := 3*config.ScheduleRowHeight + 2*config.ScheduleRowGap
			if list.H != wantH {
				t.Errorf("list h = %v, want %v", list.H, wantH)
			}
			if math.Abs(list.X+list.W-(tt.width-scheduleMargin)) > 1e-9 {
				t.Errorf("list right edge = %v, want %v", list.X+list.W, tt.width-scheduleMargin)
			}

			feature, ok := scheduleFeatureRect(sec, tt.width)
			if ok != tt.wantFeature {
				t.Fatalf("feature shown = %v, want %v", ok, tt.wantFeature)
			}
			if !ok {
				if list.X != scheduleMargin {
					t.Errorf("list x = %v, want %v", list.X, scheduleMargin)
				}
				return
			}
			if feature.X+feature.W+scheduleColumnGap != list.X {
				t.Errorf("feature right %v + gap should meet list x %v", feature.X+feature.W, list.X)
			}
		})
	}

	if r := scheduleListRect(sec, 1280, 0); r.H != 0 {
		t.Errorf("empty list h = %v, want 0", r.H)
	}
}

// TestCubeHitRectCoversProjection 任意朝向的投影都落在点击区域内
func TestCubeHitRectCoversProjection(t *testing.T) {
	const w, h = 1280.0, 720.0
	sec := systems.SectionOutput{ScreenY: 0}
	hit := cubeHitRect(sec, w, h)
	size := math.Min(w, h) * 0.18

	for _, rot := range [][2]float64{{0, 0}, {0.3, math.Pi / 4}, {-0.3, 1.1}, {0.5, math.Pi}} {
		for i, p := range projectCube(rot[0], rot[1], size, w/2, h*0.45) {
			if !hit.Contains(p.X, p.Y) {
				t.Errorf("rot %v vertex %d = %+v outside %+v", rot, i, p, hit)
			}
		}
	}
}

func TestDetailPanelRect(t *testing.T) {
	full := detailPanelRect(1280, 720, 1)
	if full.W != detailPanelMaxW || full.X != (1280-detailPanelMaxW)/2 {
		t.Errorf("panel = %+v, want centered %v wide", full, detailPanelMaxW)
	}

	// 缩放保持居中
	small := detailPanelRect(1280, 720, 0.95)
	if math.Abs(small.X+small.W/2-640) > 1e-9 || math.Abs(small.Y+small.H/2-360) > 1e-9 {
		t.Errorf("scaled panel not centered: %+v", small)
	}
	if small.W >= full.W {
		t.Error("scaled panel should be smaller")
	}

	// 窄屏留出边距
	if narrow := detailPanelRect(600, 720, 1); narrow.W != 600-64 {
		t.Errorf("narrow panel w = %v, want %v", narrow.W, 600-64)
	}

	closeBtn := detailCloseRect(full)
	if !full.Contains(closeBtn.X, closeBtn.Y) || !full.Contains(closeBtn.X+closeBtn.W-1, closeBtn.Y+closeBtn.H-1) {
		t.Errorf("close button %+v outside panel %+v", closeBtn, full)
	}
}

func TestSectionVisible(t *testing.T) {
	tests := []struct {
		name    string
		screenY float64
		height  float64
		want    bool
	}{
		{"在视口内", 0, 720, true},
		{"完全在下方", 720, 500, false},
		{"完全在上方", -500, 500, false},
		{"部分可见", -499, 500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := systems.SectionOutput{ScreenY: tt.screenY, Height: tt.height}
			if got := sectionVisible(sec, 720); got != tt.want {
				t.Errorf("sectionVisible = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestStageSceneLifecycle 测试场景创建、布局与释放
func TestStageSceneLifecycle(t *testing.T) {
	site := loadTestSite(t)
	settings, _ := game.NewSettingsManager(nil)

	scene, err := NewStageScene(site, settings)
	if err != nil {
		t.Fatalf("NewStageScene: %v", err)
	}
	if scene.carouselID != "djs" || scene.scheduleID != "tour" || scene.cubeID != "albums" {
		t.Errorf("section ids = %q/%q/%q, want djs/tour/albums", scene.carouselID, scene.scheduleID, scene.cubeID)
	}
	if !scene.schedulePointer.Hover {
		t.Error("schedule pointer must track hover")
	}
	if len(scene.navTargets) != len(site.Hero.NavItems) {
		t.Errorf("navTargets = %v", scene.navTargets)
	}

	scene.Resize(1280, 720)
	if scene.resizeFailure != nil {
		t.Fatalf("Resize: %v", scene.resizeFailure)
	}
	if scene.loop.Registry().Len() == 0 {
		t.Error("expected observers after layout")
	}

	scene.Dispose()
	if scene.loop.Registry().Len() != 0 {
		t.Errorf("observers after dispose = %d, want 0", scene.loop.Registry().Len())
	}
	scene.Dispose()
}

func TestSceneFactory(t *testing.T) {
	site := loadTestSite(t)
	factory := NewSceneFactory(func() (*config.SiteConfig, error) { return site, nil }, nil)

	scene, err := factory(StageSceneName)
	if err != nil {
		t.Fatalf("factory(stage): %v", err)
	}
	stage, ok := scene.(*StageScene)
	if !ok {
		t.Fatalf("factory returned %T", scene)
	}
	stage.Dispose()

	if _, err := factory("menu"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}

	failing := NewSceneFactory(func() (*config.SiteConfig, error) { return nil, errors.New("broken") }, nil)
	if _, err := failing(StageSceneName); err == nil {
		t.Error("expected site source error")
	}
}
