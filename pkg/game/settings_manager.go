package game

import (
	"fmt"
	"log"

	"github.com/decker502/scrollstage/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 滚轮步长允许的范围（像素/格）
const (
	MinWheelStep = 10.0
	MaxWheelStep = 1000.0
)

// ViewerSettings 观看器设置
// 注意：这些设置是全局的，与站点配置无关
type ViewerSettings struct {
	// 显示设置
	Fullscreen   bool `yaml:"fullscreen"`   // 启动时是否全屏
	DebugOverlay bool `yaml:"debugOverlay"` // 是否显示触发区间调试层

	// 输入设置
	WheelStep float64 `yaml:"wheelStep"` // 滚轮每格滚动的像素数
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		Fullscreen:   false,
		DebugOverlay: false,
		WheelStep:    config.DefaultWheelStep,
	}
}

// SettingsManager 设置管理器
// 负责观看器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方，加载失败不影响创建
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 已保存的滚轮步长超出范围时会被修正。
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始解码，旧文件缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.WheelStep = clampWheelStep(loaded.WheelStep)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetDebugOverlay 设置调试层开关
func (sm *SettingsManager) SetDebugOverlay(enabled bool) {
	sm.settings.DebugOverlay = enabled
}

// ToggleDebugOverlay 切换调试层并返回新状态
func (sm *SettingsManager) ToggleDebugOverlay() bool {
	sm.settings.DebugOverlay = !sm.settings.DebugOverlay
	return sm.settings.DebugOverlay
}

// SetWheelStep 设置滚轮步长
//
// 步长会被限制在 [MinWheelStep, MaxWheelStep] 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetWheelStep(step float64) {
	sm.settings.WheelStep = clampWheelStep(step)
}

// clampWheelStep 将滚轮步长限制在有效范围内，非正值回退为默认值
func clampWheelStep(step float64) float64 {
	if step <= 0 {
		return DefaultSettings().WheelStep
	}
	if step < MinWheelStep {
		return MinWheelStep
	}
	if step > MaxWheelStep {
		return MaxWheelStep
	}
	return step
}
