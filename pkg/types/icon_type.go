package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IconType 导航项图标
type IconType int

const (
	IconNone IconType = iota
	IconDisc
	IconPlay
	IconCalendar
	IconMusic
	IconUsers
)

var iconNames = map[string]IconType{
	"disc":     IconDisc,
	"play":     IconPlay,
	"calendar": IconCalendar,
	"music":    IconMusic,
	"users":    IconUsers,
}

// iconGlyphs 每种图标在位图字体下的替代字形
var iconGlyphs = map[IconType]string{
	IconNone:     " ",
	IconDisc:     "o",
	IconPlay:     ">",
	IconCalendar: "#",
	IconMusic:    "~",
	IconUsers:    "&",
}

// ParseIconType 将配置字符串解析为 IconType
func ParseIconType(s string) (IconType, error) {
	if icon, ok := iconNames[s]; ok {
		return icon, nil
	}
	return IconNone, fmt.Errorf("unknown icon %q (valid: %v)", s, sortedKeys(iconNames))
}

// Glyph 返回图标的绘制字形
func (i IconType) Glyph() string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[IconNone]
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (i *IconType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	icon, err := ParseIconType(s)
	if err != nil {
		return err
	}
	*i = icon
	return nil
}
