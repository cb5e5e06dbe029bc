package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按名称创建场景，避免 game 包依赖具体场景实现
type SceneFactory func(name string) (Scene, error)

// SceneManager manages the stage's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景

	width, height int // 最近一次的逻辑屏幕尺寸
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// 旧场景实现 Disposable 时先释放；新场景实现 Resizable 时立即收到当前尺寸。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		if d, ok := sm.currentScene.(Disposable); ok {
			d.Dispose()
		}
	}
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Load 通过工厂创建指定名称的场景并切换过去
//
// 创建失败时保持当前场景不变。
func (sm *SceneManager) Load(name string) error {
	log.Printf("[SceneManager] 加载场景: %s", name)

	if sm.sceneFactory == nil {
		return fmt.Errorf("failed to load scene %q: scene factory not set", name)
	}

	newScene, err := sm.sceneFactory(name)
	if err != nil {
		return fmt.Errorf("failed to load scene %q: %w", name, err)
	}
	if newScene == nil {
		return fmt.Errorf("failed to load scene %q: factory returned nil", name)
	}

	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 成功切换到场景: %s", name)
	return nil
}

// Resize 记录逻辑屏幕尺寸，尺寸变化时转发给当前场景
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Dispose 释放当前场景（程序退出时调用）
func (sm *SceneManager) Dispose() {
	if d, ok := sm.currentScene.(Disposable); ok {
		d.Dispose()
	}
	sm.currentScene = nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
