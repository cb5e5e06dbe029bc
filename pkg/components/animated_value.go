package components

import "math"

// DefaultSnapEpsilon 与目标的差值小于该阈值时直接吸附到目标
const DefaultSnapEpsilon = 1e-4

// referenceFrameRate 平滑系数按 60 帧/秒定义
const referenceFrameRate = 60.0

// AnimatedValue 持续向目标做指数收敛的数值
//
// 每帧更新规则：Current += (Target - Current) * SmoothingFactor。
// 由唯一驱动它的系统持有（旋转、模糊、字距各自一个实例）。
//
// 不变式：SmoothingFactor ∈ (0, 1] 且目标固定时，Current 单调逼近 Target，
// 不会越过目标；差值小于 SnapEpsilon 时吸附，因此最终精确等于目标。
type AnimatedValue struct {
	// Current 当前值
	Current float64

	// Target 目标值
	Target float64

	// SmoothingFactor 每个参考帧（1/60 秒）的收敛比例
	SmoothingFactor float64

	// SnapEpsilon 吸附阈值，<= 0 时使用 DefaultSnapEpsilon
	SnapEpsilon float64
}

// NewAnimatedValue 创建一个从 initial 开始、目标同为 initial 的动画值
func NewAnimatedValue(initial, smoothingFactor float64) AnimatedValue {
	return AnimatedValue{
		Current:         initial,
		Target:          initial,
		SmoothingFactor: smoothingFactor,
	}
}

// SetTarget 设置新的目标值（非有限值被忽略）
func (v *AnimatedValue) SetTarget(target float64) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return
	}
	v.Target = target
}

// Step 按一个参考帧推进
func (v *AnimatedValue) Step() {
	v.stepWithFactor(v.factor())
}

// Advance 按 dt 秒推进，帧率无关
//
// 等效系数 f' = 1 - (1 - f)^(dt*60)：dt = 1/60 时与 Step 完全一致，
// dt 较大时 f' 趋近 1 但不会超过 1，因此依然不会越过目标。
// dt <= 0 时不推进。
func (v *AnimatedValue) Advance(dt float64) {
	if !(dt > 0) {
		return
	}
	f := v.factor()
	if f < 1 {
		f = 1 - math.Pow(1-f, dt*referenceFrameRate)
	}
	v.stepWithFactor(f)
}

// Snap 立即跳到目标
func (v *AnimatedValue) Snap() {
	v.Current = v.Target
}

// Settled 是否已精确到达目标
func (v *AnimatedValue) Settled() bool {
	return v.Current == v.Target
}

func (v *AnimatedValue) factor() float64 {
	f := v.SmoothingFactor
	if !(f > 0) || f > 1 {
		return 1
	}
	return f
}

func (v *AnimatedValue) snapEpsilon() float64 {
	if v.SnapEpsilon > 0 {
		return v.SnapEpsilon
	}
	return DefaultSnapEpsilon
}

func (v *AnimatedValue) stepWithFactor(f float64) {
	delta := v.Target - v.Current
	if f >= 1 || math.Abs(delta) < v.snapEpsilon() {
		v.Current = v.Target
		return
	}

	next := v.Current + delta*f
	// 浮点舍入可能跨过目标一个 ulp，跨过即吸附
	if (v.Target-next)*delta <= 0 {
		next = v.Target
	}
	v.Current = next
}
