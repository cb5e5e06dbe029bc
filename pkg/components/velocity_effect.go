package components

// VelocityEffect 由滚动速度派生的次级效果（模糊半径、字距）
//
// 目标值 = min(|v| * Scale, Max)；模糊与字距各自独立平滑。
// 速度归零后两者都收敛到精确的 0。
type VelocityEffect struct {
	Blur          AnimatedValue
	LetterSpacing AnimatedValue

	// BlurScale 速度 -> 模糊半径的比例（默认 1/500）
	BlurScale float64
	// SpacingScale 速度 -> 字距的比例（默认 1/100）
	SpacingScale float64
	// MaxBlur 模糊半径上限（像素）
	MaxBlur float64
	// MaxSpacing 字距上限（像素）
	MaxSpacing float64
}
