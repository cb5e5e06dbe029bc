package utils

import "math"

// ========================================
// 进度映射（纯函数，无状态）
// ========================================

// DefaultTiltAmplitude 立方体俯仰摆动幅度（弧度）
const DefaultTiltAmplitude = 0.3

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 范围内，NaN 视为 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// IsFinite 判断数值既不是 NaN 也不是 ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ProgressBetween 计算 position 在 [start, end] 区间内的归一化进度
//
// 区间长度 <= 0（或端点非有限值）时返回 0，绝不做除法。
// 区间有效时 start 处精确为 0，end 处精确为 1，中间单调不减。
func ProgressBetween(position, start, end float64) float64 {
	length := end - start
	if !(length > 0) || !IsFinite(length) || !IsFinite(position) {
		return 0
	}
	if position <= start {
		return 0
	}
	if position >= end {
		return 1
	}
	return Clamp01((position - start) / length)
}

// RotationAngle 整段进度对应一整圈：angle = p * 2π
func RotationAngle(progress float64) float64 {
	return Clamp01(progress) * 2 * math.Pi
}

// TiltWobble 俯仰轴的装饰性摆动：sin(p * π) * k
// 进度两端为 0，中点达到峰值 k
func TiltWobble(progress, amplitude float64) float64 {
	return math.Sin(Clamp01(progress)*math.Pi) * amplitude
}

// SelectIndex 从连续进度选出 N 项中的当前项：clamp(floor(p*N), 0, N-1)
//
// p=1 时返回 N-1（最后一项在终点精确可达），N <= 0 时返回 0。
func SelectIndex(progress float64, count int) int {
	if count <= 0 {
		return 0
	}
	return clampIndex(int(math.Floor(Clamp01(progress)*float64(count))), count)
}

// SelectIndexFixedDivisor 用固定除数分段：min(floor(p*D), N-1)
//
// 当配置项数与除数不一致时，节奏由除数决定（例如 3 项配 4 段时，
// 最后一项会占据最后两段）。divisor <= 0 时退化为 SelectIndex。
func SelectIndexFixedDivisor(progress float64, divisor, count int) int {
	if divisor <= 0 {
		return SelectIndex(progress, count)
	}
	if count <= 0 {
		return 0
	}
	return clampIndex(int(math.Floor(Clamp01(progress)*float64(divisor))), count)
}

// SelectIndexNearest 根据滚动偏移选出最近的卡片：round(offset/stride)
func SelectIndexNearest(offset, stride float64, count int) int {
	if count <= 0 || !(stride > 0) || !IsFinite(offset) {
		return 0
	}
	return clampIndex(int(math.Round(offset/stride)), count)
}

// WrapIndex 环形索引：用于上一项/下一项按钮
func WrapIndex(index, count int) int {
	if count <= 0 {
		return 0
	}
	index %= count
	if index < 0 {
		index += count
	}
	return index
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if index > count-1 {
		return count - 1
	}
	return index
}
