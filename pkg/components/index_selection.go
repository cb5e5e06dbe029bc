package components

import "github.com/decker502/scrollstage/pkg/types"

// IndexSelection 从连续进度（或拖拽偏移）选出的"当前项"
type IndexSelection struct {
	// Count 候选项数量
	Count int

	// Strategy 选择策略（逐区块配置）
	Strategy types.SelectionStrategy

	// Divisor SelectFixedDivisor 使用的固定除数
	Divisor int

	// Stride SelectNearest 使用的卡片步长（宽度 + 间距）
	Stride float64

	// Index 当前项
	Index int

	// Changed 本帧 Index 是否变化
	Changed bool
}
