package components

// DefaultCubeSmoothing 立方体朝向每帧收敛比例
const DefaultCubeSmoothing = 0.1

// CubeOrientation 立方体朝向
//
// RotY 跟随进度转满一圈，RotX 为装饰性的俯仰摆动。
// 两个轴各自持有独立的 AnimatedValue，每帧都推进（滚动停止后继续收敛）。
type CubeOrientation struct {
	RotX AnimatedValue
	RotY AnimatedValue

	// TiltAmplitude 俯仰摆动幅度（弧度）
	TiltAmplitude float64
}

// NewCubeOrientation 创建立方体朝向组件
func NewCubeOrientation(smoothing, tiltAmplitude float64) *CubeOrientation {
	return &CubeOrientation{
		RotX:          NewAnimatedValue(0, smoothing),
		RotY:          NewAnimatedValue(0, smoothing),
		TiltAmplitude: tiltAmplitude,
	}
}
