package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/scrollstage/pkg/app"
	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "站点配置文件路径（默认使用内置 data/site.yaml）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	stage, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		AppName:    "scrollstage",
	})
	if err != nil {
		// 非 verbose 模式下 log 已被丢弃，错误直接写 stderr
		fmt.Fprintf(os.Stderr, "舞台初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer stage.Close()

	ebiten.SetWindowSize(config.StageWidth, config.StageHeight)
	ebiten.SetWindowTitle("Scroll Stage")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(stage); err != nil {
		log.Fatal(err)
	}
}
