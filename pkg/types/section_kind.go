// Package types 定义舞台共享的封闭变体类型
//
// 所有变体都从配置字符串经显式映射表解析，未知字符串直接报错，
// 不做反射或运行时动态查找。
package types

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// SectionKind 定义页面区块的种类，决定区块挂载哪些组件
type SectionKind int

const (
	// SectionUnknown 未知区块
	SectionUnknown SectionKind = iota
	SectionHero              // 首屏：解码文字
	SectionCube              // 立方体：钉住 + 旋转 + 速度模糊
	SectionCarousel          // DJ 轮播：拖拽条
	SectionParallaxStrips    // 视差图片条
	SectionHorizontalGallery // 横向画廊：钉住 + 横向平移
	SectionSchedule          // 演出日程：悬停选择
	SectionFooter            // 页脚：标题视差
)

var sectionKindNames = map[string]SectionKind{
	"hero":              SectionHero,
	"cube":              SectionCube,
	"carousel":          SectionCarousel,
	"parallaxStrips":    SectionParallaxStrips,
	"horizontalGallery": SectionHorizontalGallery,
	"schedule":          SectionSchedule,
	"footer":            SectionFooter,
}

// ParseSectionKind 将配置字符串解析为 SectionKind
func ParseSectionKind(s string) (SectionKind, error) {
	if kind, ok := sectionKindNames[s]; ok {
		return kind, nil
	}
	return SectionUnknown, fmt.Errorf("unknown section kind %q (valid: %v)", s, sortedKeys(sectionKindNames))
}

// String 返回配置中使用的名称
func (k SectionKind) String() string {
	for name, kind := range sectionKindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (k *SectionKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	kind, err := ParseSectionKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (k SectionKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
