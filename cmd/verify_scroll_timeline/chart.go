package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// 图表尺寸（输出像素）与超采样倍数
const (
	chartWidth   = 1200
	chartHeight  = 600
	chartMargin  = 48
	chartSamples = 2
)

var (
	chartBackground = color.RGBA{R: 16, G: 16, B: 18, A: 255}
	chartGrid       = color.RGBA{R: 52, G: 52, B: 58, A: 255}
	chartPage       = color.RGBA{R: 212, G: 175, B: 55, A: 255}
	chartLabel      = color.RGBA{R: 220, G: 220, B: 220, A: 255}

	// 区块曲线按顺序轮换使用
	chartPalette = []color.RGBA{
		{R: 96, G: 165, B: 250, A: 255},
		{R: 52, G: 211, B: 153, A: 255},
		{R: 244, G: 114, B: 182, A: 255},
		{R: 251, G: 146, B: 60, A: 255},
		{R: 167, G: 139, B: 250, A: 255},
	}
)

// series 一条曲线
type series struct {
	Name   string
	Color  color.RGBA
	Values []float64 // [0,1]
}

// chartSeries 从回放结果提取曲线：页面进度加上每个有触发区间的区块进度
func chartSeries(trace *Trace) []series {
	if len(trace.Frames) == 0 {
		return nil
	}
	page := series{Name: "page", Color: chartPage}
	var sections []series
	index := map[string]int{}

	for _, frame := range trace.Frames {
		page.Values = append(page.Values, frame.PageProgress)
		for _, sec := range frame.Sections {
			if sec.Phase == "" {
				continue
			}
			i, ok := index[sec.ID]
			if !ok {
				i = len(sections)
				index[sec.ID] = i
				sections = append(sections, series{Name: sec.ID, Color: chartPalette[i%len(chartPalette)]})
			}
			sections[i].Values = append(sections[i].Values, sec.Progress)
		}
	}
	return append([]series{page}, sections...)
}

// RenderChart 绘制进度随帧变化的折线图
//
// 曲线在超采样画布上光栅化后缩小，标签在缩小后的图上绘制。
func RenderChart(trace *Trace) *image.RGBA {
	const w, h = chartWidth * chartSamples, chartHeight * chartSamples
	const m = chartMargin * chartSamples

	big := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(big, big.Bounds(), image.NewUniform(chartBackground), image.Point{}, draw.Src)

	plotW, plotH := float64(w-2*m), float64(h-2*m)
	for i := 0; i <= 4; i++ {
		y := float64(m) + plotH*float64(i)/4
		strokeSegment(big, float64(m), y, float64(w-m), y, chartSamples, chartGrid)
	}

	all := chartSeries(trace)
	for _, s := range all {
		n := len(s.Values)
		if n < 2 {
			continue
		}
		for i := 1; i < n; i++ {
			x0 := float64(m) + plotW*float64(i-1)/float64(n-1)
			x1 := float64(m) + plotW*float64(i)/float64(n-1)
			y0 := float64(m) + plotH*(1-s.Values[i-1])
			y1 := float64(m) + plotH*(1-s.Values[i])
			strokeSegment(big, x0, y0, x1, y1, 2*chartSamples, s.Color)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	draw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), draw.Src, nil)

	drawLabel(out, chartMargin, 28, chartLabel, fmt.Sprintf("%s  (%d frames)", trace.Script, len(trace.Frames)))
	for i, s := range all {
		drawLabel(out, chartMargin+i*140, chartHeight-16, s.Color, s.Name)
	}
	return out
}

// strokeSegment 以四边形光栅化一条有宽度的线段
func strokeSegment(dst *image.RGBA, x0, y0, x1, y1, width float64, clr color.RGBA) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(clr), image.Point{})
}

func drawLabel(dst *image.RGBA, x, y int, clr color.Color, label string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(clr),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}

// WriteChart 把图表编码为 WebP
func WriteChart(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}
