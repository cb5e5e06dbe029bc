package scenes

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebugOverlay 显示采样值与每个区块的触发状态（F3 切换）
func (s *StageScene) drawDebugOverlay(screen *ebiten.Image) {
	out := s.output
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.0f  TPS %.0f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	fmt.Fprintf(&b, "pos %.0f / %.0f  v %.0f px/s  page %.3f\n", out.Position, out.MaxScroll, out.Velocity, out.PageProgress)
	fmt.Fprintf(&b, "observers %d\n", s.loop.Registry().Len())
	if s.resizeFailure != nil {
		fmt.Fprintf(&b, "layout: %v\n", s.resizeFailure)
	}
	for _, sec := range out.Sections {
		if sec.Phase == "" {
			fmt.Fprintf(&b, "%-10s y=%6.0f\n", sec.ID, sec.ScreenY)
			continue
		}
		fmt.Fprintf(&b, "%-10s y=%6.0f %-7s p=%.3f held=%.0f\n", sec.ID, sec.ScreenY, sec.Phase, sec.Progress, sec.HeldDistance)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 8, 10)
}
