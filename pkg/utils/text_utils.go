package utils

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FontSet 舞台使用的字体源
type FontSet struct {
	Regular *text.GoTextFaceSource
	Bold    *text.GoTextFaceSource
	Mono    *text.GoTextFaceSource
}

// LoadFontSet 加载内置的 Go 字体
func LoadFontSet() (*FontSet, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for regular: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for bold: %w", err)
	}
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for mono: %w", err)
	}
	return &FontSet{Regular: regular, Bold: bold, Mono: mono}, nil
}

// Face 以指定字号创建字体
func (fs *FontSet) Face(source *text.GoTextFaceSource, size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: source, Size: size}
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || font.Source == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if measureTextWidth(candidate, font) <= maxWidth {
			currentLine = candidate
			continue
		}
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
		// 单词本身超宽：按字符强制断行
		currentLine = ""
		for len(word) > 0 {
			r, size := utf8.DecodeRuneInString(word)
			test := currentLine + string(r)
			if currentLine != "" && measureTextWidth(test, font) > maxWidth {
				lines = append(lines, currentLine)
				test = string(r)
			}
			currentLine = test
			word = word[size:]
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}

// SpacedAdvance 计算带字间距的文本宽度
//
// 字间距加在字符之间，不加在末尾，与 CSS letter-spacing 在居中标题上的视觉一致。
func SpacedAdvance(textStr string, font *text.GoTextFace, spacing float64) float64 {
	n := utf8.RuneCountInString(textStr)
	if n == 0 {
		return 0
	}
	return measureTextWidth(textStr, font) + spacing*float64(n-1)
}

// DrawSpacedText 逐字绘制带字间距的文本
//
// (x, y) 是首字左上角；alpha 作用于颜色整体。
func DrawSpacedText(dst *ebiten.Image, textStr string, font *text.GoTextFace, x, y, spacing float64, clr color.Color, alpha float64) {
	if textStr == "" || font == nil || font.Source == nil {
		return
	}
	cursor := x
	for _, r := range textStr {
		ch := string(r)
		op := &text.DrawOptions{}
		op.GeoM.Translate(cursor, y)
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(float32(Clamp01(alpha)))
		text.Draw(dst, ch, font, op)
		cursor += text.Advance(ch, font) + spacing
	}
}

// DrawBlurredText 用多次偏移叠加近似模糊的文本
//
// radius 为 0 时等同于单次绘制。
func DrawBlurredText(dst *ebiten.Image, textStr string, font *text.GoTextFace, x, y, spacing, radius float64, clr color.Color) {
	if radius <= 0.5 {
		DrawSpacedText(dst, textStr, font, x, y, spacing, clr, 1)
		return
	}
	offsets := [...]float64{-1, -0.5, 0, 0.5, 1}
	alpha := 1.0 / float64(len(offsets)) * 1.6
	for _, o := range offsets {
		DrawSpacedText(dst, textStr, font, x+o*radius, y, spacing, clr, alpha)
	}
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil || font.Source == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
