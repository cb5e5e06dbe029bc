package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/decker502/scrollstage/pkg/types"
	"github.com/decker502/scrollstage/pkg/utils"
	"gopkg.in/yaml.v3"
)

// SiteConfig 站点配置根节点
//
// 配置文件位置: data/site.yaml
// 内容数据（标题、文案）只用于渲染；动画编排只关心各集合的数量与触发规格。
type SiteConfig struct {
	Site      SiteMeta        `yaml:"site"`
	Animation AnimationConfig `yaml:"animation"`
	Hero      HeroConfig      `yaml:"hero"`
	Sections  []SectionConfig `yaml:"sections"`
	Albums    []AlbumConfig   `yaml:"albums"`
	DJs       DJsConfig       `yaml:"djs"`
	Gallery   GalleryConfig   `yaml:"gallery"`
	Tour      TourConfig      `yaml:"tour"`
	Footer    FooterConfig    `yaml:"footer"`
}

// SiteMeta 站点元信息
type SiteMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
}

// AnimationConfig 动画可调参数
type AnimationConfig struct {
	// CubeSmoothing 立方体朝向每帧收敛比例 (0,1]
	CubeSmoothing float64 `yaml:"cubeSmoothing"`
	// VelocitySmoothing 模糊/字距每帧收敛比例 (0,1]
	VelocitySmoothing float64 `yaml:"velocitySmoothing"`
	// DragGain 拖拽增益
	DragGain float64 `yaml:"dragGain"`
	// VelocityToBlurScale 速度 -> 模糊半径比例
	VelocityToBlurScale float64 `yaml:"velocityToBlurScale"`
	// VelocityToSpacingScale 速度 -> 字距比例
	VelocityToSpacingScale float64 `yaml:"velocityToSpacingScale"`
	// MaxBlur 模糊半径上限
	MaxBlur float64 `yaml:"maxBlur"`
	// MaxLetterSpacing 字距上限
	MaxLetterSpacing float64 `yaml:"maxLetterSpacing"`
	// MaxVelocity 速度限幅（像素/秒）
	MaxVelocity float64 `yaml:"maxVelocity"`
	// TiltAmplitude 立方体俯仰摆动幅度（弧度）
	TiltAmplitude float64 `yaml:"tiltAmplitude"`
	// DecodeIntervalMs 解码文字迭代间隔（毫秒）
	DecodeIntervalMs int `yaml:"decodeIntervalMs"`
}

// DefaultAnimationConfig 返回默认动画参数
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		CubeSmoothing:          0.1,
		VelocitySmoothing:      0.2,
		DragGain:               2,
		VelocityToBlurScale:    1.0 / 500,
		VelocityToSpacingScale: 1.0 / 100,
		MaxBlur:                8,
		MaxLetterSpacing:       30,
		MaxVelocity:            6000,
		TiltAmplitude:          0.3,
		DecodeIntervalMs:       40,
	}
}

// applyDefaults 为未设置（零值）的字段填入默认值
func (a *AnimationConfig) applyDefaults() {
	d := DefaultAnimationConfig()
	if a.CubeSmoothing == 0 {
		a.CubeSmoothing = d.CubeSmoothing
	}
	if a.VelocitySmoothing == 0 {
		a.VelocitySmoothing = d.VelocitySmoothing
	}
	if a.DragGain == 0 {
		a.DragGain = d.DragGain
	}
	if a.VelocityToBlurScale == 0 {
		a.VelocityToBlurScale = d.VelocityToBlurScale
	}
	if a.VelocityToSpacingScale == 0 {
		a.VelocityToSpacingScale = d.VelocityToSpacingScale
	}
	if a.MaxBlur == 0 {
		a.MaxBlur = d.MaxBlur
	}
	if a.MaxLetterSpacing == 0 {
		a.MaxLetterSpacing = d.MaxLetterSpacing
	}
	if a.MaxVelocity == 0 {
		a.MaxVelocity = d.MaxVelocity
	}
	if a.TiltAmplitude == 0 {
		a.TiltAmplitude = d.TiltAmplitude
	}
	if a.DecodeIntervalMs == 0 {
		a.DecodeIntervalMs = d.DecodeIntervalMs
	}
}

// Validate 验证动画参数
func (a *AnimationConfig) Validate() error {
	if a.CubeSmoothing <= 0 || a.CubeSmoothing > 1 {
		return fmt.Errorf("cubeSmoothing must be in (0,1], got %v", a.CubeSmoothing)
	}
	if a.VelocitySmoothing <= 0 || a.VelocitySmoothing > 1 {
		return fmt.Errorf("velocitySmoothing must be in (0,1], got %v", a.VelocitySmoothing)
	}
	if a.DragGain <= 0 {
		return fmt.Errorf("dragGain must be > 0, got %v", a.DragGain)
	}
	if a.VelocityToBlurScale < 0 || a.VelocityToSpacingScale < 0 {
		return fmt.Errorf("velocity scales must be >= 0")
	}
	if a.MaxBlur < 0 || a.MaxLetterSpacing < 0 {
		return fmt.Errorf("effect ceilings must be >= 0")
	}
	if a.MaxVelocity <= 0 {
		return fmt.Errorf("maxVelocity must be > 0, got %v", a.MaxVelocity)
	}
	if a.DecodeIntervalMs < 0 {
		return fmt.Errorf("decodeIntervalMs must be >= 0, got %d", a.DecodeIntervalMs)
	}
	return nil
}

// HeroNavItem 导航项
type HeroNavItem struct {
	Label     string         `yaml:"label"`
	SectionID string         `yaml:"sectionId"`
	Icon      types.IconType `yaml:"icon"`
}

// HeroConfig 首屏配置
type HeroConfig struct {
	BrandName   string        `yaml:"brandName"`
	DecodeText  string        `yaml:"decodeText"`
	DecodeChars string        `yaml:"decodeChars"`
	Subtitle    string        `yaml:"subtitle"`
	NavItems    []HeroNavItem `yaml:"navItems"`
}

// TriggerConfig 区块触发规格
type TriggerConfig struct {
	Start TriggerAnchor `yaml:"start"`
	End   TriggerEnd    `yaml:"end"`
	Pin   bool          `yaml:"pin"`
}

// SelectionConfig 区块"当前项"选择方式
type SelectionConfig struct {
	Strategy types.SelectionStrategy `yaml:"strategy"`
	Divisor  int                     `yaml:"divisor"`
}

// SectionConfig 区块配置
type SectionConfig struct {
	ID string `yaml:"id"`

	Kind types.SectionKind `yaml:"kind"`

	// Height 区块高度（视口高度的倍数）
	Height float64 `yaml:"height"`

	// MinHeight 区块最小高度（像素）
	MinHeight float64 `yaml:"minHeight"`

	// Trigger 为空表示该区块不参与滚动编排
	Trigger *TriggerConfig `yaml:"trigger"`

	Selection SelectionConfig `yaml:"selection"`
}

// ServicePackage 服务详情中的单个套餐
type ServicePackage struct {
	Name        string   `yaml:"name"`
	Price       string   `yaml:"price"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

// AlbumConfig 立方体区块的单个服务（专辑）
// 点击立方体时在详情面板中展示 Description 与 Packages
type AlbumConfig struct {
	ID          int              `yaml:"id"`
	Title       string           `yaml:"title"`
	Subtitle    string           `yaml:"subtitle"`
	Description string           `yaml:"description"`
	Packages    []ServicePackage `yaml:"packages"`
}

// DJConfig 单个 DJ
type DJConfig struct {
	Name   string   `yaml:"name"`
	Alias  string   `yaml:"alias"`
	Genres []string `yaml:"genres"`
}

// DJsConfig DJ 轮播配置
type DJsConfig struct {
	SectionTitle string     `yaml:"sectionTitle"`
	CardWidth    float64    `yaml:"cardWidth"`
	CardGap      float64    `yaml:"cardGap"`
	DJs          []DJConfig `yaml:"djs"`
}

// CardBreakpoint 响应式卡片尺寸：视口宽度 >= MinViewport 时生效
type CardBreakpoint struct {
	MinViewport float64 `yaml:"minViewport"`
	Width       float64 `yaml:"width"`
	Gap         float64 `yaml:"gap"`
	Padding     float64 `yaml:"padding"`
}

// GalleryImage 横向画廊图片
type GalleryImage struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

// ParallaxStripConfig 视差图片条
type ParallaxStripConfig struct {
	Name   string  `yaml:"name"`
	Count  int     `yaml:"count"`
	Scale  float64 `yaml:"scale"`
	Offset float64 `yaml:"offset"`
	Easing string  `yaml:"easing"`
}

// GalleryConfig 视差条 + 横向画廊配置
type GalleryConfig struct {
	SectionTitle string                `yaml:"sectionTitle"`
	GalleryTitle string                `yaml:"galleryTitle"`
	EndCtaText   string                `yaml:"endCtaText"`
	EndCtaWidth  float64               `yaml:"endCtaWidth"`
	Strips       []ParallaxStripConfig `yaml:"strips"`
	Images       []GalleryImage        `yaml:"images"`
	Breakpoints  []CardBreakpoint      `yaml:"breakpoints"`
}

// CardMetrics 返回指定视口宽度下生效的卡片尺寸
// 断点按 MinViewport 升序匹配最后一个满足条件的断点；没有断点时返回零值
func (g *GalleryConfig) CardMetrics(viewportWidth float64) CardBreakpoint {
	var active CardBreakpoint
	for _, bp := range g.Breakpoints {
		if viewportWidth >= bp.MinViewport {
			active = bp
		}
	}
	return active
}

// TourDate 演出日期
type TourDate struct {
	Date   string           `yaml:"date"`
	City   string           `yaml:"city"`
	Venue  string           `yaml:"venue"`
	Status types.TourStatus `yaml:"status"`
}

// TourConfig 演出日程配置
type TourConfig struct {
	SectionTitle string           `yaml:"sectionTitle"`
	StatusLabels TourStatusLabels `yaml:"statusLabels"`
	Dates        []TourDate       `yaml:"dates"`
}

// TourStatusLabels 售票状态徽章文字
type TourStatusLabels struct {
	OnSale     string `yaml:"onSale"`
	SoldOut    string `yaml:"soldOut"`
	ComingSoon string `yaml:"comingSoon"`
	Default    string `yaml:"default"`
}

// LabelFor 返回状态对应的徽章文字，未配置时使用默认文字
func (l TourStatusLabels) LabelFor(status types.TourStatus) string {
	var label string
	switch status {
	case types.TourStatusOnSale:
		label = l.OnSale
	case types.TourStatusSoldOut:
		label = l.SoldOut
	case types.TourStatusComingSoon:
		label = l.ComingSoon
	}
	if label == "" {
		return l.Default
	}
	return label
}

// FooterConfig 页脚配置
type FooterConfig struct {
	BrandName string `yaml:"brandName"`
	HeroTitle string `yaml:"heroTitle"`
	Copyright string `yaml:"copyright"`

	// TitleParallax 页脚标题沿 Y 轴的视差位移（像素）
	TitleParallax float64 `yaml:"titleParallax"`
}

// LoadSiteConfig 从磁盘加载站点配置
//
// 参数:
//   - path: 配置文件路径（如 "data/site.yaml"）
//
// 返回:
//   - *SiteConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadSiteConfig(path string) (*SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}
	return ParseSiteConfig(data)
}

// ParseSiteConfig 从 YAML 数据解析站点配置
func ParseSiteConfig(data []byte) (*SiteConfig, error) {
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse site config: %w", err)
	}

	cfg.Animation.applyDefaults()
	sort.SliceStable(cfg.Gallery.Breakpoints, func(i, j int) bool {
		return cfg.Gallery.Breakpoints[i].MinViewport < cfg.Gallery.Breakpoints[j].MinViewport
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 至少一个区块，区块ID唯一且非空
//   - 区块高度 >= 0
//   - 横向画廊区块必须使用 "+=track" 或显式终点
//   - 选择策略为 fixedDivisor 时除数 > 0
//   - 动画参数在合理范围内
func (c *SiteConfig) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("no sections configured")
	}

	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("section %d has empty id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true

		if s.Height < 0 || s.MinHeight < 0 {
			return fmt.Errorf("section %q has negative height", s.ID)
		}
		if s.Kind == types.SectionUnknown {
			return fmt.Errorf("section %q has no kind", s.ID)
		}
		if s.Selection.Strategy == types.SelectFixedDivisor && s.Selection.Divisor <= 0 {
			return fmt.Errorf("section %q: fixedDivisor strategy needs divisor > 0", s.ID)
		}
		if s.Trigger != nil && s.Trigger.End.Kind == EndTrackDistance && s.Kind != types.SectionHorizontalGallery {
			return fmt.Errorf("section %q: \"+=track\" end is only valid for horizontalGallery", s.ID)
		}
	}

	for _, item := range c.Hero.NavItems {
		if !seen[item.SectionID] {
			return fmt.Errorf("nav item %q targets unknown section %q", item.Label, item.SectionID)
		}
	}

	for _, strip := range c.Gallery.Strips {
		if strip.Count < 0 {
			return fmt.Errorf("strip %q has negative count", strip.Name)
		}
		if _, err := utils.EasingByName(strip.Easing); err != nil {
			return fmt.Errorf("strip %q: %w", strip.Name, err)
		}
	}

	for _, bp := range c.Gallery.Breakpoints {
		if bp.Width <= 0 || bp.Gap < 0 || bp.Padding < 0 {
			return fmt.Errorf("gallery breakpoint at %v has invalid metrics", bp.MinViewport)
		}
	}

	if err := c.Animation.Validate(); err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	return nil
}

// SectionByID 按ID查找区块配置
func (c *SiteConfig) SectionByID(id string) (*SectionConfig, bool) {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i], true
		}
	}
	return nil, false
}

// ItemCount 返回区块对应集合的项数（用于离散选择）
func (c *SiteConfig) ItemCount(kind types.SectionKind) int {
	switch kind {
	case types.SectionCube:
		return len(c.Albums)
	case types.SectionCarousel:
		return len(c.DJs.DJs)
	case types.SectionHorizontalGallery:
		return len(c.Gallery.Images)
	case types.SectionSchedule:
		return len(c.Tour.Dates)
	}
	return 0
}
