package components

import (
	"testing"

	"github.com/decker502/scrollstage/pkg/config"
)

// TestHorizontalTrack_Distance 4 张 400 宽卡片 + 3 个 16 间距，内容宽度 1648
// 视口 1200 时可滚动 448；视口 1280 时为 368，加上 80 像素内边距后回到 448
func TestHorizontalTrack_Distance(t *testing.T) {
	tests := []struct {
		name         string
		track        HorizontalTrack
		viewport     float64
		wantDistance float64
	}{
		{
			name:         "视口1200无内边距",
			track:        HorizontalTrack{ItemWidths: []float64{400, 400, 400, 400}, Gap: 16},
			viewport:     1200,
			wantDistance: 448,
		},
		{
			name:         "无内边距",
			track:        HorizontalTrack{ItemWidths: []float64{400, 400, 400, 400}, Gap: 16},
			viewport:     1280,
			wantDistance: 368,
		},
		{
			name:         "含内边距",
			track:        HorizontalTrack{ItemWidths: []float64{400, 400, 400, 400}, Gap: 16, PaddingLeft: 40, PaddingRight: 40},
			viewport:     1280,
			wantDistance: 448,
		},
		{
			name:         "内容比视口窄",
			track:        HorizontalTrack{ItemWidths: []float64{300, 300}, Gap: 16},
			viewport:     1280,
			wantDistance: 0,
		},
		{
			name:         "没有卡片",
			track:        HorizontalTrack{},
			viewport:     1280,
			wantDistance: 0,
		},
		{
			name:         "视口为零",
			track:        HorizontalTrack{ItemWidths: []float64{400}},
			viewport:     0,
			wantDistance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := tt.track
			got := track.Measure(tt.viewport)
			if got != tt.wantDistance || track.TotalScrollableDistance != tt.wantDistance {
				t.Errorf("distance = %v, want %v", got, tt.wantDistance)
			}
		})
	}
}

func TestHorizontalTrack_TranslationAt(t *testing.T) {
	track := HorizontalTrack{ItemWidths: []float64{400, 400, 400, 400}, Gap: 16, PaddingLeft: 40, PaddingRight: 40}
	track.Measure(1280)

	tests := []struct {
		progress float64
		want     float64
	}{
		{progress: 0, want: 0},
		{progress: 0.5, want: -224},
		{progress: 1, want: -448},
		{progress: 1.5, want: -448},
		{progress: -1, want: 0},
	}
	for _, tt := range tests {
		if got := track.TranslationAt(tt.progress); got != tt.want {
			t.Errorf("TranslationAt(%v) = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

// TestHorizontalTrack_EndTranslationExact 进度为 1 时平移恰好等于 -可滚动距离
func TestHorizontalTrack_EndTranslationExact(t *testing.T) {
	track := HorizontalTrack{ItemWidths: []float64{400, 400, 400, 400}, Gap: 16}
	if d := track.Measure(1200); d != 448 {
		t.Fatalf("distance = %v, want 448", d)
	}
	if got := track.TranslationAt(1); got != -448 {
		t.Errorf("TranslationAt(1) = %v, want -448", got)
	}
}

func TestHorizontalTrack_ItemOffset(t *testing.T) {
	track := HorizontalTrack{ItemWidths: []float64{100, 200, 300}, Gap: 10, PaddingLeft: 5}
	want := []float64{5, 115, 325}
	for i, w := range want {
		if got := track.ItemOffset(i); got != w {
			t.Errorf("ItemOffset(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestTrackSizing_MetricsFor(t *testing.T) {
	s := TrackSizing{
		Count: 4,
		Breakpoints: []config.CardBreakpoint{
			{MinViewport: 0, Width: 280, Gap: 16},
			{MinViewport: 768, Width: 400, Gap: 32},
		},
	}
	if got := s.MetricsFor(500); got.Width != 280 {
		t.Errorf("MetricsFor(500).Width = %v, want 280", got.Width)
	}
	if got := s.MetricsFor(1280); got.Width != 400 || got.Gap != 32 {
		t.Errorf("MetricsFor(1280) = %+v", got)
	}
}
