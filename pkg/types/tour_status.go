package types

import (
	"image/color"

	"gopkg.in/yaml.v3"
)

// TourStatus 演出日期的售票状态
type TourStatus int

const (
	// TourStatusDefault 未识别的状态统一按默认样式显示
	TourStatusDefault TourStatus = iota
	TourStatusOnSale
	TourStatusSoldOut
	TourStatusComingSoon
)

var tourStatusNames = map[string]TourStatus{
	"on-sale":     TourStatusOnSale,
	"sold-out":    TourStatusSoldOut,
	"coming-soon": TourStatusComingSoon,
}

// tourStatusColors 状态徽章颜色
var tourStatusColors = map[TourStatus]color.RGBA{
	TourStatusDefault:    {R: 107, G: 114, B: 128, A: 255},
	TourStatusOnSale:     {R: 16, G: 185, B: 129, A: 255},
	TourStatusSoldOut:    {R: 244, G: 63, B: 94, A: 255},
	TourStatusComingSoon: {R: 245, G: 158, B: 11, A: 255},
}

// ParseTourStatus 解析状态字符串，未知值回落到默认状态（与原站点一致，不报错）
func ParseTourStatus(s string) TourStatus {
	if status, ok := tourStatusNames[s]; ok {
		return status
	}
	return TourStatusDefault
}

// Color 返回状态徽章颜色
func (s TourStatus) Color() color.RGBA {
	return tourStatusColors[s]
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (s *TourStatus) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	*s = ParseTourStatus(str)
	return nil
}
