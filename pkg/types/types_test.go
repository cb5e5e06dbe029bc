package types

import (
	"testing"

	"gopkg.in/yaml.v3"
)

// TestParseSectionKind 测试区块种类映射表
func TestParseSectionKind(t *testing.T) {
	tests := []struct {
		input   string
		want    SectionKind
		wantErr bool
	}{
		{"hero", SectionHero, false},
		{"cube", SectionCube, false},
		{"horizontalGallery", SectionHorizontalGallery, false},
		{"footer", SectionFooter, false},
		{"marquee", SectionUnknown, true},
		{"", SectionUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSectionKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSectionKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSectionKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestSectionKindYAMLRoundTrip 测试区块种类字符串往返
func TestSectionKindYAMLRoundTrip(t *testing.T) {
	for name, kind := range sectionKindNames {
		if kind.String() != name {
			t.Errorf("%v.String() = %q, want %q", kind, kind.String(), name)
		}
	}

	var doc struct {
		Kind SectionKind `yaml:"kind"`
	}
	if err := yaml.Unmarshal([]byte("kind: carousel"), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Kind != SectionCarousel {
		t.Errorf("Kind = %v, want carousel", doc.Kind)
	}
	if err := yaml.Unmarshal([]byte("kind: sidebar"), &doc); err == nil {
		t.Error("unknown kind should fail to unmarshal")
	}
}

// TestIconGlyph 测试每个图标都有字形，未知图标报错
func TestIconGlyph(t *testing.T) {
	for name, icon := range iconNames {
		if icon.Glyph() == " " {
			t.Errorf("icon %q has no glyph", name)
		}
	}
	if _, err := ParseIconType("rocket"); err == nil {
		t.Error("ParseIconType should reject unknown icon")
	}
}

// TestParseTourStatus 测试未知状态回落到默认
func TestParseTourStatus(t *testing.T) {
	if ParseTourStatus("sold-out") != TourStatusSoldOut {
		t.Error("sold-out should map to TourStatusSoldOut")
	}
	if ParseTourStatus("cancelled") != TourStatusDefault {
		t.Error("unknown status should map to TourStatusDefault")
	}
	if TourStatusOnSale.Color() == TourStatusDefault.Color() {
		t.Error("on-sale badge should not use the default color")
	}
}

// TestParseSelectionStrategy 测试选择策略解析
func TestParseSelectionStrategy(t *testing.T) {
	if s, err := ParseSelectionStrategy(""); err != nil || s != SelectFloor {
		t.Errorf("empty strategy = %v, %v; want SelectFloor", s, err)
	}
	if s, err := ParseSelectionStrategy("fixedDivisor"); err != nil || s != SelectFixedDivisor {
		t.Errorf("fixedDivisor = %v, %v", s, err)
	}
	if s, err := ParseSelectionStrategy("hover"); err != nil || s != SelectHover {
		t.Errorf("hover = %v, %v", s, err)
	}
	if _, err := ParseSelectionStrategy("ceil"); err == nil {
		t.Error("unknown strategy should fail")
	}
}
