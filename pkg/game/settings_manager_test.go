package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 管理器
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.WheelStep != 120 {
		t.Errorf("WheelStep: got %v, want 120", settings.WheelStep)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.DebugOverlay {
		t.Error("DebugOverlay: got true, want false")
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	sm, err := NewSettingsManager(openTestGdata(t, "test_settings"))
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil after initialization")
	}
	if settings.WheelStep != 120 {
		t.Errorf("Initial WheelStep: got %v, want 120", settings.WheelStep)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	sm.SetWheelStep(200)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if got := sm.GetSettings().WheelStep; got != 200 {
		t.Errorf("WheelStep: got %v, want 200", got)
	}

	// 降级模式下重新加载回到默认值
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if got := sm.GetSettings().WheelStep; got != 120 {
		t.Errorf("WheelStep after reload: got %v, want 120", got)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_settings_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetWheelStep(80)
	sm1.SetFullscreen(true)
	sm1.SetDebugOverlay(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.WheelStep != 80 {
		t.Errorf("Loaded WheelStep: got %v, want 80", settings.WheelStep)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if !settings.DebugOverlay {
		t.Error("Loaded DebugOverlay: got false, want true")
	}
}

// TestSettingsLoadCorrupted 测试损坏的设置文件回退到默认值
func TestSettingsLoadCorrupted(t *testing.T) {
	gdataManager := openTestGdata(t, "test_settings_corrupted")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("wheelStep: [not a number")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &SettingsManager{gdataManager: gdataManager, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("expected error loading corrupted settings")
	}
	if got := sm.GetSettings().WheelStep; got != 120 {
		t.Errorf("WheelStep after corrupted load: got %v, want 120", got)
	}
}

// TestSettingsLoadClampsWheelStep 测试已保存的越界步长在加载时被修正
func TestSettingsLoadClampsWheelStep(t *testing.T) {
	gdataManager := openTestGdata(t, "test_settings_clamp")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("wheelStep: 5000\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	if got := sm.GetSettings().WheelStep; got != MaxWheelStep {
		t.Errorf("WheelStep: got %v, want %v", got, MaxWheelStep)
	}
}

// TestSetWheelStep 测试步长限制
func TestSetWheelStep(t *testing.T) {
	tests := []struct {
		name string
		step float64
		want float64
	}{
		{"normal", 60, 60},
		{"below min", 1, MinWheelStep},
		{"above max", 9999, MaxWheelStep},
		{"zero falls back to default", 0, 120},
		{"negative falls back to default", -40, 120},
	}

	sm, _ := NewSettingsManager(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetWheelStep(tt.step)
			if got := sm.GetSettings().WheelStep; got != tt.want {
				t.Errorf("SetWheelStep(%v): got %v, want %v", tt.step, got, tt.want)
			}
		})
	}
}

func TestToggleDebugOverlay(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	if !sm.ToggleDebugOverlay() {
		t.Error("first toggle should enable the overlay")
	}
	if sm.ToggleDebugOverlay() {
		t.Error("second toggle should disable the overlay")
	}
}
