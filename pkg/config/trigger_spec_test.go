package config

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseTriggerAnchor(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantElem  EdgeOffset
		wantView  EdgeOffset
		wantError bool
	}{
		{name: "顶对顶", input: "top top", wantElem: EdgeOffset{}, wantView: EdgeOffset{}},
		{name: "顶对底", input: "top bottom", wantElem: EdgeOffset{}, wantView: EdgeOffset{Fraction: 1}},
		{name: "百分比视口", input: "top 80%", wantElem: EdgeOffset{}, wantView: EdgeOffset{Fraction: 0.8}},
		{name: "像素偏移", input: "120px center", wantElem: EdgeOffset{Pixels: 120}, wantView: EdgeOffset{Fraction: 0.5}},
		{name: "裸数字", input: "bottom 40", wantElem: EdgeOffset{Fraction: 1}, wantView: EdgeOffset{Pixels: 40}},
		{name: "只有一段", input: "top", wantError: true},
		{name: "三段", input: "top top top", wantError: true},
		{name: "无法识别", input: "top middle", wantError: true},
		{name: "坏百分比", input: "top x%", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTriggerAnchor(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !errors.Is(err, ErrInvalidTriggerSpec) {
					t.Errorf("expected ErrInvalidTriggerSpec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Element != tt.wantElem {
				t.Errorf("element = %+v, want %+v", got.Element, tt.wantElem)
			}
			if got.Viewport != tt.wantView {
				t.Errorf("viewport = %+v, want %+v", got.Viewport, tt.wantView)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestTriggerAnchorResolve(t *testing.T) {
	const vh = 720.0

	tests := []struct {
		name   string
		anchor string
		top    float64
		height float64
		want   float64
	}{
		{name: "top top 等于区块顶部", anchor: "top top", top: 1440, height: 720, want: 1440},
		{name: "top bottom 提前一个视口", anchor: "top bottom", top: 1440, height: 720, want: 720},
		{name: "top 80% 提前 0.8 视口", anchor: "top 80%", top: 1000, height: 600, want: 1000 - 576},
		{name: "bottom top 区块底部离开视口", anchor: "bottom top", top: 1000, height: 600, want: 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseTriggerAnchor(tt.anchor)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got := a.Resolve(tt.top, tt.height, vh)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTriggerEnd(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  TriggerEndKind
		wantError bool
	}{
		{name: "三个视口高度", input: "+=300%", wantKind: EndRelative},
		{name: "像素距离", input: "+=480px", wantKind: EndRelative},
		{name: "横向轨道距离", input: "+=track", wantKind: EndTrackDistance},
		{name: "绝对锚点", input: "bottom top", wantKind: EndAnchor},
		{name: "负距离", input: "+=-100px", wantError: true},
		{name: "空距离", input: "+=", wantError: true},
		{name: "带空格", input: "+=100 px", wantError: true},
		{name: "坏锚点", input: "nowhere", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTriggerEnd(tt.input)
			if tt.wantError {
				if !errors.Is(err, ErrInvalidTriggerSpec) {
					t.Fatalf("expected ErrInvalidTriggerSpec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.wantKind)
			}
		})
	}
}

func TestTriggerEndResolve(t *testing.T) {
	const vh = 720.0

	tests := []struct {
		name  string
		end   string
		start float64
		track float64
		want  float64
	}{
		{name: "+=300% 为三个视口", end: "+=300%", start: 720, want: 720 + 3*vh},
		{name: "+=480px", end: "+=480px", start: 100, want: 580},
		{name: "+=track 使用轨道距离", end: "+=track", start: 2000, track: 448, want: 2448},
		{name: "+=track 轨道距离为 0", end: "+=track", start: 2000, track: 0, want: 2000},
		{name: "bottom top 绝对锚点", end: "bottom top", start: 0, want: 1000 + 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseTriggerEnd(tt.end)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got := e.Resolve(tt.start, 1000, 600, vh, tt.track)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTriggerConfigUnmarshalYAML(t *testing.T) {
	var tc TriggerConfig
	data := []byte("start: \"top top\"\nend: \"+=300%\"\npin: true\n")
	if err := yaml.Unmarshal(data, &tc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !tc.Pin {
		t.Error("expected pin = true")
	}
	if tc.End.Kind != EndRelative || tc.End.Distance.Fraction != 3 {
		t.Errorf("end = %+v, want relative 300%%", tc.End)
	}

	bad := []byte("start: \"top\"\nend: \"+=300%\"\n")
	if err := yaml.Unmarshal(bad, &tc); !errors.Is(err, ErrInvalidTriggerSpec) {
		t.Errorf("expected ErrInvalidTriggerSpec, got %v", err)
	}
}
