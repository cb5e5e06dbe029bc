package components

import "github.com/decker502/scrollstage/pkg/utils"

// ParallaxAxis 视差层位移方向
type ParallaxAxis int

const (
	AxisX ParallaxAxis = iota
	AxisY
)

// ParallaxLayer 跟随区块进度平移的图层
//
// Value = Ease(progress) * Scale + Offset，例如：
// 上排图片条 Scale=-300，下排 Scale=300、Offset=-150，页脚标题沿 Y 轴 Scale=-100。
type ParallaxLayer struct {
	// Name 图层名（用于渲染查找）
	Name string

	Axis   ParallaxAxis
	Scale  float64
	Offset float64

	// Easing 可选缓动，nil 为线性
	Easing utils.EasingFunc

	// Value 当前帧位移
	Value float64
}

// ParallaxStack 同一区块上的多个视差图层（如上下两排图片条）
type ParallaxStack struct {
	Layers []ParallaxLayer
}

// Layer 按名称查找图层
func (s *ParallaxStack) Layer(name string) (*ParallaxLayer, bool) {
	for i := range s.Layers {
		if s.Layers[i].Name == name {
			return &s.Layers[i], true
		}
	}
	return nil, false
}
