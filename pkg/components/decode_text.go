package components

import "time"

// 解码文字默认参数
const (
	DefaultDecodeInterval   = 40 * time.Millisecond
	DefaultDecodeRevealRate = 8 // 每揭示一个字符需要的迭代次数
	DefaultDecodeCharset    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()"
)

// DecodeText 首屏"解码"文字效果
//
// 每个间隔推进一次迭代；第 i 个字符在 i < Iteration/RevealRate 时显示真实字符，
// 否则显示字符集中的随机字符。Iteration 达到 len*RevealRate 时结束并显示完整文本。
type DecodeText struct {
	Target  []rune
	Charset []rune

	Interval   time.Duration
	RevealRate int

	Iteration int
	Elapsed   time.Duration

	// Display 当前帧显示内容
	Display []rune

	// Done 是否已完成
	Done bool
}

// NewDecodeText 创建解码文字组件，初始显示为等长空格
func NewDecodeText(target, charset string) *DecodeText {
	if charset == "" {
		charset = DefaultDecodeCharset
	}
	runes := []rune(target)
	display := make([]rune, len(runes))
	for i := range display {
		display[i] = ' '
	}
	return &DecodeText{
		Target:     runes,
		Charset:    []rune(charset),
		Interval:   DefaultDecodeInterval,
		RevealRate: DefaultDecodeRevealRate,
		Display:    display,
		Done:       len(runes) == 0,
	}
}

// MaxIterations 完成所需的迭代次数
func (d *DecodeText) MaxIterations() int {
	return len(d.Target) * d.RevealRate
}

// String 当前显示文本
func (d *DecodeText) String() string {
	return string(d.Display)
}
