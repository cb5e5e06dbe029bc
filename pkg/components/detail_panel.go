package components

// DefaultDetailSmoothing 详情面板淡入淡出每帧收敛比例
const DefaultDetailSmoothing = 0.25

// DetailPanel 点击后弹出的详情面板（立方体服务详情）
//
// Open 只由点击与关闭操作改变，与滚动无关。
// Opacity 在打开时收敛到 1、关闭时收敛到 0；关闭后淡出完成前面板仍然绘制。
type DetailPanel struct {
	Open bool

	// Item 打开时锁定的项序号
	Item int

	Opacity AnimatedValue
}

// NewDetailPanel 创建关闭状态的详情面板
func NewDetailPanel(smoothing float64) *DetailPanel {
	return &DetailPanel{Opacity: NewAnimatedValue(0, smoothing)}
}

// Scale 面板缩放：从 0.95 随不透明度放大到 1
func (p *DetailPanel) Scale() float64 {
	return 0.95 + 0.05*p.Opacity.Current
}

// Visible 是否需要绘制
func (p *DetailPanel) Visible() bool {
	return p.Open || p.Opacity.Current > 0
}
