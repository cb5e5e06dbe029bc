package scenes

import (
	"github.com/decker502/scrollstage/pkg/game"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// StageSceneName 舞台场景在 SceneFactory 中的名称
const StageSceneName = "stage"

// NewSceneFactory 返回按名称创建场景的工厂
func NewSceneFactory(site SiteSource, settings *game.SettingsManager) game.SceneFactory {
	return func(name string) (game.Scene, error) {
		switch name {
		case StageSceneName:
			cfg, err := site()
			if err != nil {
				return nil, err
			}
			return NewStageScene(cfg, settings)
		}
		return nil, errUnknownScene(name)
	}
}
