package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 用于把区块进度重新塑形后再映射到位移。所有函数接受 t ∈ [0, 1]，
// 返回值 ∈ [0, 1]，且 f(0)=0、f(1)=1，保证进度边界在缓动后依然精确。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数签名
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)，t=1 时强制返回 1
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// easingTable 配置名 -> 缓动函数
var easingTable = map[string]EasingFunc{
	"":             EaseLinear,
	"none":         EaseLinear,
	"linear":       EaseLinear,
	"power2.in":    EaseInQuad,
	"power2.out":   EaseOutQuad,
	"power3.in":    EaseInCubic,
	"power3.out":   EaseOutCubic,
	"power3.inOut": EaseInOutCubic,
	"expo.out":     EaseOutExpo,
}

// EasingByName 按配置名查找缓动函数
func EasingByName(name string) (EasingFunc, error) {
	if fn, ok := easingTable[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

// Ease 先把 t 限制到 [0,1] 再应用缓动，fn 为 nil 时按线性处理
func Ease(fn EasingFunc, t float64) float64 {
	t = Clamp01(t)
	if fn == nil {
		return t
	}
	return fn(t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
