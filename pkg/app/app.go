// Package app 提供舞台应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，main.go 只负责解析参数和启动循环。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/embedded"
	"github.com/decker502/scrollstage/pkg/game"
	"github.com/decker502/scrollstage/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// DefaultSiteConfigPath 嵌入的默认站点配置
const DefaultSiteConfigPath = "data/site.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 磁盘上的站点配置文件，为空则使用嵌入的 data/site.yaml
	ConfigPath string
	// AppName gdata 存储目录名，为空则不持久化设置
	AppName string
}

// App 是舞台应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	verbose         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadSite 按启动配置加载站点配置
func LoadSite(cfg Config) (*config.SiteConfig, error) {
	if cfg.ConfigPath != "" {
		log.Printf("[Config] 加载站点配置: %s", cfg.ConfigPath)
		return config.LoadSiteConfig(cfg.ConfigPath)
	}
	data, err := embedded.ReadFile(DefaultSiteConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded site config: %w", err)
	}
	log.Printf("[Config] 加载嵌入站点配置: %s", DefaultSiteConfigPath)
	return config.ParseSiteConfig(data)
}

// NewApp 创建并初始化舞台应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源（使用 ConfigPath 时除外）。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 设置存储：打开失败时降级为仅内存
	var gdataManager *gdata.Manager
	if cfg.AppName != "" {
		m, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		} else {
			gdataManager = m
		}
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings manager: %w", err)
	}

	// 启动前校验配置，失败直接返回
	site, err := LoadSite(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load site config: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewSceneFactory(func() (*config.SiteConfig, error) {
		return site, nil
	}, settingsManager))
	sceneManager.Resize(config.StageWidth, config.StageHeight)

	if err := sceneManager.Load(scenes.StageSceneName); err != nil {
		return nil, err
	}

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Stage ready: %q (%d sections)", site.Site.Title, len(site.Sections))
	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新舞台逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.StageWidth, config.StageHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.StageWidth, config.StageHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制舞台画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 逻辑尺寸跟随窗口，窗口变化时舞台重新布局（断点与钉住距离都依赖视口）。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 释放当前场景
func (a *App) Close() {
	a.sceneManager.Dispose()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
