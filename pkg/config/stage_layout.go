package config

// 舞台布局常量
// 默认窗口尺寸；逻辑屏幕尺寸跟随窗口，布局在尺寸变化时重算
const (
	// StageWidth 默认逻辑宽度
	StageWidth = 1280

	// StageHeight 默认逻辑高度
	StageHeight = 720

	// DefaultWheelStep 鼠标滚轮一格对应的滚动像素
	DefaultWheelStep = 120.0

	// KeyboardScrollStep 方向键一次滚动的像素
	KeyboardScrollStep = 40.0

	// CarouselStripHeight DJ 拖拽条高度
	CarouselStripHeight = 220.0

	// CarouselStripMargin DJ 拖拽条左右留白
	CarouselStripMargin = 48.0

	// ScheduleListTop 日程列表相对区块顶部的偏移
	ScheduleListTop = 140.0

	// ScheduleRowHeight / ScheduleRowGap 日程行高与行距
	ScheduleRowHeight = 72.0
	ScheduleRowGap    = 12.0

	// ScheduleFeatureMinWidth 视口不小于该宽度时显示左侧场地预览
	ScheduleFeatureMinWidth = 1024.0
)
