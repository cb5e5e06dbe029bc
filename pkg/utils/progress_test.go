package utils

import (
	"math"
	"testing"
)

// TestProgressBetweenBoundaries 测试进度边界精确：起点 0，终点 1
func TestProgressBetweenBoundaries(t *testing.T) {
	ranges := [][2]float64{
		{0, 1},
		{100, 2500},
		{0.1, 0.3},
		{1337.25, 4049.75},
		{1e6, 1e6 + 7},
	}

	for _, r := range ranges {
		start, end := r[0], r[1]
		if got := ProgressBetween(start, start, end); got != 0 {
			t.Errorf("ProgressBetween(start=%v) = %v, 期望精确 0", start, got)
		}
		if got := ProgressBetween(end, start, end); got != 1 {
			t.Errorf("ProgressBetween(end=%v) = %v, 期望精确 1", end, got)
		}
	}
}

// TestProgressBetweenMonotonic 测试区间内单调不减
func TestProgressBetweenMonotonic(t *testing.T) {
	start, end := 800.0, 3200.0
	prev := -1.0
	for s := start - 100; s <= end+100; s += 0.5 {
		p := ProgressBetween(s, start, end)
		if p < prev {
			t.Fatalf("progress(%v) = %v < 上一帧 %v", s, p, prev)
		}
		if p < 0 || p > 1 {
			t.Fatalf("progress(%v) = %v 超出 [0,1]", s, p)
		}
		prev = p
	}
}

// TestProgressBetweenDegenerate 测试零长度/负长度区间不产生 NaN
func TestProgressBetweenDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
	}{
		{"零长度", 500, 500},
		{"负长度", 500, 300},
		{"非有限端点", 0, math.Inf(1)},
		{"NaN端点", math.NaN(), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range []float64{-1e9, 0, 300, 500, 1e9} {
				got := ProgressBetween(s, tt.start, tt.end)
				if got != 0 {
					t.Errorf("ProgressBetween(%v, %v, %v) = %v, 期望 0", s, tt.start, tt.end, got)
				}
			}
		})
	}
}

// TestSelectIndexBoundary 测试离散选择在上边界不越界
func TestSelectIndexBoundary(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		count    int
		expected int
	}{
		{"起点", 0, 4, 0},
		{"第一段末尾", 0.2499, 4, 0},
		{"第二段起点", 0.25, 4, 1},
		{"接近终点", 0.999, 4, 3},
		{"终点", 1.0, 4, 3},
		{"越过终点", 1.5, 4, 3},
		{"负进度", -0.2, 4, 0},
		{"单项", 0.7, 1, 0},
		{"空集合", 0.7, 0, 0},
		{"NaN进度", math.NaN(), 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectIndex(tt.progress, tt.count); got != tt.expected {
				t.Errorf("SelectIndex(%v, %d) = %d, 期望 %d", tt.progress, tt.count, got, tt.expected)
			}
		})
	}
}

// TestSelectIndexReachesEveryItem 测试每一项都能被选中
func TestSelectIndexReachesEveryItem(t *testing.T) {
	for n := 1; n <= 9; n++ {
		seen := make(map[int]bool)
		for i := 0; i <= 1000; i++ {
			seen[SelectIndex(float64(i)/1000, n)] = true
		}
		if len(seen) != n {
			t.Errorf("N=%d: 只选中了 %d 项", n, len(seen))
		}
	}
}

// TestSelectIndexFixedDivisor 测试固定除数分段（3 项配 4 段）
func TestSelectIndexFixedDivisor(t *testing.T) {
	tests := []struct {
		progress float64
		expected int
	}{
		{0, 0},
		{0.3, 1},
		{0.6, 2},
		{0.8, 2}, // floor(3.2)=3 被限制到 N-1=2
		{1.0, 2},
	}

	for _, tt := range tests {
		if got := SelectIndexFixedDivisor(tt.progress, 4, 3); got != tt.expected {
			t.Errorf("SelectIndexFixedDivisor(%v, 4, 3) = %d, 期望 %d", tt.progress, got, tt.expected)
		}
	}

	// 除数无效时退化为 SelectIndex
	if got := SelectIndexFixedDivisor(1, 0, 5); got != 4 {
		t.Errorf("divisor=0 时 = %d, 期望 4", got)
	}
}

// TestSelectIndexNearest 测试拖拽偏移取最近卡片
func TestSelectIndexNearest(t *testing.T) {
	stride := 176.0 // 160 宽 + 16 间距
	tests := []struct {
		offset   float64
		expected int
	}{
		{0, 0},
		{87, 0},
		{89, 1},
		{352, 2},
		{10000, 4},
		{-50, 0},
	}

	for _, tt := range tests {
		if got := SelectIndexNearest(tt.offset, stride, 5); got != tt.expected {
			t.Errorf("SelectIndexNearest(%v) = %d, 期望 %d", tt.offset, got, tt.expected)
		}
	}
	if got := SelectIndexNearest(100, 0, 5); got != 0 {
		t.Errorf("stride=0 时 = %d, 期望 0", got)
	}
}

// TestWrapIndex 测试环形索引
func TestWrapIndex(t *testing.T) {
	if got := WrapIndex(-1, 5); got != 4 {
		t.Errorf("WrapIndex(-1, 5) = %d, 期望 4", got)
	}
	if got := WrapIndex(5, 5); got != 0 {
		t.Errorf("WrapIndex(5, 5) = %d, 期望 0", got)
	}
	if got := WrapIndex(3, 0); got != 0 {
		t.Errorf("WrapIndex(3, 0) = %d, 期望 0", got)
	}
}

// TestRotationMapping 测试旋转角度与摆动
func TestRotationMapping(t *testing.T) {
	if got := RotationAngle(0); got != 0 {
		t.Errorf("RotationAngle(0) = %v", got)
	}
	if got := RotationAngle(1); math.Abs(got-2*math.Pi) > 1e-12 {
		t.Errorf("RotationAngle(1) = %v, 期望 2π", got)
	}
	if got := RotationAngle(0.25); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("RotationAngle(0.25) = %v, 期望 π/2", got)
	}

	if got := TiltWobble(0.5, DefaultTiltAmplitude); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("TiltWobble(0.5) = %v, 期望 0.3", got)
	}
	for _, p := range []float64{0, 1} {
		if got := TiltWobble(p, DefaultTiltAmplitude); math.Abs(got) > 1e-12 {
			t.Errorf("TiltWobble(%v) = %v, 期望 0", p, got)
		}
	}
	// 对称：wobble(p) == wobble(1-p)
	if a, b := TiltWobble(0.2, 1), TiltWobble(0.8, 1); math.Abs(a-b) > 1e-12 {
		t.Errorf("TiltWobble 不对称: %v vs %v", a, b)
	}
}
