package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/scrollstage/pkg/types"
)

const minimalSiteYAML = `
sections:
  - id: hero
    kind: hero
    height: 1
  - id: albums
    kind: cube
    height: 1
    trigger:
      start: "top top"
      end: "+=300%"
      pin: true
    selection:
      strategy: fixedDivisor
      divisor: 4
albums:
  - { id: 1, title: "A" }
  - { id: 2, title: "B" }
  - { id: 3, title: "C" }
`

func TestParseSiteConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *SiteConfig)
	}{
		{
			name:        "最小配置填充默认动画参数",
			yamlContent: minimalSiteYAML,
			validate: func(t *testing.T, cfg *SiteConfig) {
				want := DefaultAnimationConfig()
				if cfg.Animation != want {
					t.Errorf("animation = %+v, want defaults %+v", cfg.Animation, want)
				}
				if len(cfg.Sections) != 2 {
					t.Fatalf("expected 2 sections, got %d", len(cfg.Sections))
				}
				albums := cfg.Sections[1]
				if albums.Kind != types.SectionCube {
					t.Errorf("kind = %v, want cube", albums.Kind)
				}
				if albums.Trigger == nil || !albums.Trigger.Pin {
					t.Fatal("expected pinned trigger on albums")
				}
				if albums.Selection.Strategy != types.SelectFixedDivisor || albums.Selection.Divisor != 4 {
					t.Errorf("selection = %+v", albums.Selection)
				}
				if cfg.Sections[0].Trigger != nil {
					t.Error("hero should have no trigger")
				}
				if got := cfg.ItemCount(types.SectionCube); got != 3 {
					t.Errorf("ItemCount(cube) = %d, want 3", got)
				}
			},
		},
		{
			name: "显式动画参数不被默认值覆盖",
			yamlContent: minimalSiteYAML + `
animation:
  cubeSmoothing: 0.5
  dragGain: 3
`,
			validate: func(t *testing.T, cfg *SiteConfig) {
				if cfg.Animation.CubeSmoothing != 0.5 {
					t.Errorf("cubeSmoothing = %v, want 0.5", cfg.Animation.CubeSmoothing)
				}
				if cfg.Animation.DragGain != 3 {
					t.Errorf("dragGain = %v, want 3", cfg.Animation.DragGain)
				}
				if cfg.Animation.VelocitySmoothing != 0.2 {
					t.Errorf("velocitySmoothing = %v, want default 0.2", cfg.Animation.VelocitySmoothing)
				}
			},
		},
		{
			name:        "没有区块",
			yamlContent: "albums: []\n",
			wantErr:     true,
			errContains: "no sections",
		},
		{
			name: "区块ID重复",
			yamlContent: `
sections:
  - { id: a, kind: hero }
  - { id: a, kind: footer }
`,
			wantErr:     true,
			errContains: "duplicate section id",
		},
		{
			name: "未知区块类型",
			yamlContent: `
sections:
  - { id: a, kind: banner }
`,
			wantErr:     true,
			errContains: "unknown section kind",
		},
		{
			name: "fixedDivisor 缺少除数",
			yamlContent: `
sections:
  - id: a
    kind: cube
    selection: { strategy: fixedDivisor }
`,
			wantErr:     true,
			errContains: "divisor",
		},
		{
			name: "+=track 只能用于横向画廊",
			yamlContent: `
sections:
  - id: a
    kind: cube
    trigger: { start: "top top", end: "+=track", pin: true }
`,
			wantErr:     true,
			errContains: "+=track",
		},
		{
			name: "导航指向不存在的区块",
			yamlContent: minimalSiteYAML + `
hero:
  navItems:
    - { label: "X", sectionId: "missing", icon: "disc" }
`,
			wantErr:     true,
			errContains: "unknown section",
		},
		{
			name: "平滑系数越界",
			yamlContent: minimalSiteYAML + `
animation:
  cubeSmoothing: 1.5
`,
			wantErr:     true,
			errContains: "cubeSmoothing",
		},
		{
			name: "未知缓动",
			yamlContent: minimalSiteYAML + `
gallery:
  strips:
    - { name: top, count: 3, scale: -300, easing: "bounce" }
`,
			wantErr:     true,
			errContains: "unknown easing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseSiteConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadSiteConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte(minimalSiteYAML), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("LoadSiteConfig: %v", err)
	}
	if _, ok := cfg.SectionByID("albums"); !ok {
		t.Error("expected albums section")
	}
	if _, ok := cfg.SectionByID("nope"); ok {
		t.Error("unexpected section nope")
	}

	if _, err := LoadSiteConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	} else if !strings.Contains(err.Error(), "failed to read site config") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestLoadShippedSiteConfig 确保随程序发布的配置始终可解析
func TestLoadShippedSiteConfig(t *testing.T) {
	cfg, err := LoadSiteConfig(filepath.Join("..", "..", "data", "site.yaml"))
	if err != nil {
		t.Fatalf("shipped site.yaml invalid: %v", err)
	}

	gallery, ok := cfg.SectionByID("gallery")
	if !ok || gallery.Trigger == nil || gallery.Trigger.End.Kind != EndTrackDistance {
		t.Error("gallery section must end at +=track")
	}
	if got := cfg.ItemCount(types.SectionCarousel); got != len(cfg.DJs.DJs) || got == 0 {
		t.Errorf("carousel count = %d", got)
	}
}

func TestGalleryCardMetrics(t *testing.T) {
	g := GalleryConfig{
		Breakpoints: []CardBreakpoint{
			{MinViewport: 0, Width: 280, Gap: 16},
			{MinViewport: 640, Width: 350, Gap: 16},
			{MinViewport: 768, Width: 400, Gap: 32},
			{MinViewport: 1024, Width: 450, Gap: 32},
		},
	}

	tests := []struct {
		name      string
		viewport  float64
		wantWidth float64
		wantGap   float64
	}{
		{name: "手机", viewport: 375, wantWidth: 280, wantGap: 16},
		{name: "断点边界 640", viewport: 640, wantWidth: 350, wantGap: 16},
		{name: "平板", viewport: 800, wantWidth: 400, wantGap: 32},
		{name: "桌面", viewport: 1280, wantWidth: 450, wantGap: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.CardMetrics(tt.viewport)
			if got.Width != tt.wantWidth || got.Gap != tt.wantGap {
				t.Errorf("CardMetrics(%v) = %+v, want width %v gap %v", tt.viewport, got, tt.wantWidth, tt.wantGap)
			}
		})
	}

	empty := GalleryConfig{}
	if got := empty.CardMetrics(1280); got.Width != 0 {
		t.Errorf("expected zero metrics without breakpoints, got %+v", got)
	}
}

// TestTourStatusLabels 测试状态徽章文字回落到默认
func TestTourStatusLabels(t *testing.T) {
	labels := TourStatusLabels{OnSale: "EN VENTA", SoldOut: "AGOTADO", Default: "DISPONIBLE"}

	tests := []struct {
		status types.TourStatus
		want   string
	}{
		{types.TourStatusOnSale, "EN VENTA"},
		{types.TourStatusSoldOut, "AGOTADO"},
		{types.TourStatusComingSoon, "DISPONIBLE"},
		{types.TourStatusDefault, "DISPONIBLE"},
	}
	for _, tt := range tests {
		if got := labels.LabelFor(tt.status); got != tt.want {
			t.Errorf("LabelFor(%v) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
