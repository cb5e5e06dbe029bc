package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a stage scene (e.g., the scroll stage, a settings overlay).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景需要感知逻辑屏幕尺寸变化时实现
//
// SceneManager 在切换场景和每次尺寸变化时调用 Resize。
type Resizable interface {
	Resize(width, height int)
}

// Disposable 是一个可选接口，用于在场景被替换或程序退出时释放资源
//
// 舞台场景在这里取消全部滚动观察者，保证不留下悬挂的回调。
type Disposable interface {
	Dispose()
}
