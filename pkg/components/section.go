package components

import "github.com/decker502/scrollstage/pkg/types"

// Section 页面区块
//
// Top/Height 由布局系统在每次视口变化时整体重算；
// PinSpacing 是钉住区块向后推移后续内容的距离。
type Section struct {
	// ID 区块锚点ID（如 "albums"）
	ID string

	Kind types.SectionKind

	// Order 区块在页面中的顺序
	Order int

	// HeightVH 区块高度（视口高度的倍数）
	HeightVH float64

	// MinHeight 区块最小高度（像素）
	MinHeight float64

	// Top 区块在文档中的顶部位置（像素）
	Top float64

	// Height 区块实际高度（像素）
	Height float64

	// PinSpacing 钉住占用的额外滚动距离（像素）
	PinSpacing float64
}

// Bottom 区块底部位置（不含钉住间距）
func (s *Section) Bottom() float64 {
	return s.Top + s.Height
}
