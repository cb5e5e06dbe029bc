package components

// DefaultRevealSmoothing 淡入每帧收敛比例
const DefaultRevealSmoothing = 0.1

// Reveal 区块首次进入触发区间时的淡入
//
// Visible 一旦为 true 就不再回退（向回滚动不会重新隐藏）。
type Reveal struct {
	Visible bool

	// Opacity 0 -> 1 的淡入
	Opacity AnimatedValue
}

// NewReveal 创建淡入组件
func NewReveal(smoothing float64) *Reveal {
	return &Reveal{Opacity: NewAnimatedValue(0, smoothing)}
}
