package components

// ScrollSample 某一帧的滚动采样结果
//
// 每帧重新计算，不做持久化。页面级采样的 Progress 为 Position / MaxScroll；
// 分发给区块观察者时 Progress 替换为区块内进度。
type ScrollSample struct {
	// Position 原始滚动位置（像素）
	Position float64

	// Progress 归一化进度 ∈ [0, 1]
	Progress float64

	// Velocity 滚动速度（像素/秒，带符号，已限幅）
	Velocity float64

	// Time 采样时间（秒）
	Time float64
}
