package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SelectionStrategy 决定区块如何从连续进度中选出"当前项"
//
// 不同区块的节奏不同：立方体历史上固定按 4 等分取整，
// 轮播则跟随拖拽偏移取最近的卡片，日程列表跟随指针悬停的行。这里保留逐区块可配。
type SelectionStrategy int

const (
	// SelectFloor clamp(floor(p*N), 0, N-1)
	SelectFloor SelectionStrategy = iota
	// SelectFixedDivisor min(floor(p*D), N-1)，D 为配置的固定除数
	SelectFixedDivisor
	// SelectNearest round(offset/stride)，用于拖拽条
	SelectNearest
	// SelectHover 悬停的行为当前项，指针离开后回到首项
	SelectHover
)

var selectionStrategyNames = map[string]SelectionStrategy{
	"floor":        SelectFloor,
	"fixedDivisor": SelectFixedDivisor,
	"nearest":      SelectNearest,
	"hover":        SelectHover,
}

// ParseSelectionStrategy 将配置字符串解析为 SelectionStrategy
func ParseSelectionStrategy(s string) (SelectionStrategy, error) {
	if s == "" {
		return SelectFloor, nil
	}
	if strategy, ok := selectionStrategyNames[s]; ok {
		return strategy, nil
	}
	return SelectFloor, fmt.Errorf("unknown selection strategy %q (valid: %v)", s, sortedKeys(selectionStrategyNames))
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (s *SelectionStrategy) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	strategy, err := ParseSelectionStrategy(str)
	if err != nil {
		return err
	}
	*s = strategy
	return nil
}
