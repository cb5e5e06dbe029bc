package components

// HoverList 纵向排列的等高行（演出日程列表）
//
// 行 i 的纵向范围为 [i*(RowHeight+RowGap), i*(RowHeight+RowGap)+RowHeight)，
// 坐标相对列表顶部。行间距不属于任何一行。
type HoverList struct {
	Count     int
	RowHeight float64
	RowGap    float64

	// Hovered 当前悬停的行，-1 表示没有
	Hovered int
}

// NewHoverList 创建悬停列表，初始没有悬停行
func NewHoverList(count int, rowHeight, rowGap float64) *HoverList {
	return &HoverList{Count: count, RowHeight: rowHeight, RowGap: rowGap, Hovered: -1}
}

// RowAt 返回纵坐标 y 处的行号
func (l *HoverList) RowAt(y float64) (int, bool) {
	stride := l.RowHeight + l.RowGap
	if l.Count <= 0 || l.RowHeight <= 0 || y < 0 {
		return 0, false
	}
	row := int(y / stride)
	if row >= l.Count || y-float64(row)*stride >= l.RowHeight {
		return 0, false
	}
	return row, true
}

// Height 列表总高度
func (l *HoverList) Height() float64 {
	if l.Count <= 0 {
		return 0
	}
	return float64(l.Count)*l.RowHeight + float64(l.Count-1)*l.RowGap
}
