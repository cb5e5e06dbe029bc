package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTriggerSpec 触发规格字符串无法解析
var ErrInvalidTriggerSpec = errors.New("invalid trigger spec")

// EdgeOffset 相对某个尺寸的偏移：Fraction*size + Pixels
type EdgeOffset struct {
	Fraction float64
	Pixels   float64
}

// Resolve 按给定尺寸求出像素偏移
func (o EdgeOffset) Resolve(size float64) float64 {
	return o.Fraction*size + o.Pixels
}

// parseEdge 解析 "top" / "center" / "bottom" / "80%" / "120px" / "120"
func parseEdge(token string) (EdgeOffset, error) {
	switch token {
	case "top", "left":
		return EdgeOffset{}, nil
	case "center":
		return EdgeOffset{Fraction: 0.5}, nil
	case "bottom", "right":
		return EdgeOffset{Fraction: 1}, nil
	}

	if strings.HasSuffix(token, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(token, "%"), 64)
		if err != nil {
			return EdgeOffset{}, fmt.Errorf("%w: bad percentage %q", ErrInvalidTriggerSpec, token)
		}
		return EdgeOffset{Fraction: v / 100}, nil
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(token, "px"), 64)
	if err != nil {
		return EdgeOffset{}, fmt.Errorf("%w: bad edge %q", ErrInvalidTriggerSpec, token)
	}
	return EdgeOffset{Pixels: v}, nil
}

// TriggerAnchor 触发锚点："<区块边缘> <视口边缘>"
//
// 当区块的某条边与视口的某条边对齐时触发。例如：
//   - "top top"：区块顶部到达视口顶部
//   - "top bottom"：区块顶部进入视口底部
//   - "top 80%"：区块顶部到达视口 80% 高度处
type TriggerAnchor struct {
	Element  EdgeOffset
	Viewport EdgeOffset
	raw      string
}

// ParseTriggerAnchor 解析锚点字符串
func ParseTriggerAnchor(s string) (TriggerAnchor, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return TriggerAnchor{}, fmt.Errorf("%w: anchor %q must have two parts", ErrInvalidTriggerSpec, s)
	}
	elem, err := parseEdge(fields[0])
	if err != nil {
		return TriggerAnchor{}, err
	}
	view, err := parseEdge(fields[1])
	if err != nil {
		return TriggerAnchor{}, err
	}
	return TriggerAnchor{Element: elem, Viewport: view, raw: s}, nil
}

// Resolve 计算锚点对应的文档滚动位置
func (a TriggerAnchor) Resolve(sectionTop, sectionHeight, viewportHeight float64) float64 {
	return sectionTop + a.Element.Resolve(sectionHeight) - a.Viewport.Resolve(viewportHeight)
}

// String 返回原始字符串
func (a TriggerAnchor) String() string {
	return a.raw
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (a *TriggerAnchor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTriggerAnchor(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// TriggerEndKind 终点的表示方式
type TriggerEndKind int

const (
	// EndAnchor 绝对锚点（如 "bottom top"）
	EndAnchor TriggerEndKind = iota
	// EndRelative 相对起点的距离（如 "+=300%" 表示三个视口高度）
	EndRelative
	// EndTrackDistance 由横向轨道的可滚动距离决定（"+=track"）
	EndTrackDistance
)

// TriggerEnd 触发终点
type TriggerEnd struct {
	Kind TriggerEndKind

	// Anchor Kind == EndAnchor 时使用
	Anchor TriggerAnchor

	// Distance Kind == EndRelative 时使用，百分比相对视口高度
	Distance EdgeOffset

	raw string
}

// ParseTriggerEnd 解析终点字符串
func ParseTriggerEnd(s string) (TriggerEnd, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "+=") {
		anchor, err := ParseTriggerAnchor(s)
		if err != nil {
			return TriggerEnd{}, err
		}
		return TriggerEnd{Kind: EndAnchor, Anchor: anchor, raw: s}, nil
	}

	rest := strings.TrimPrefix(s, "+=")
	if rest == "track" {
		return TriggerEnd{Kind: EndTrackDistance, raw: s}, nil
	}
	if strings.ContainsAny(rest, " \t") || rest == "" {
		return TriggerEnd{}, fmt.Errorf("%w: relative end %q", ErrInvalidTriggerSpec, s)
	}
	dist, err := parseEdge(rest)
	if err != nil {
		return TriggerEnd{}, err
	}
	if dist.Fraction < 0 || dist.Pixels < 0 {
		return TriggerEnd{}, fmt.Errorf("%w: negative distance %q", ErrInvalidTriggerSpec, s)
	}
	return TriggerEnd{Kind: EndRelative, Distance: dist, raw: s}, nil
}

// Resolve 计算终点的文档滚动位置
//
// 参数:
//   - start: 已解析的起点
//   - sectionTop / sectionHeight: 区块位置与高度
//   - viewportHeight: 视口高度
//   - trackDistance: 横向轨道可滚动距离（仅 EndTrackDistance 使用）
func (e TriggerEnd) Resolve(start, sectionTop, sectionHeight, viewportHeight, trackDistance float64) float64 {
	switch e.Kind {
	case EndRelative:
		return start + e.Distance.Resolve(viewportHeight)
	case EndTrackDistance:
		return start + trackDistance
	default:
		return e.Anchor.Resolve(sectionTop, sectionHeight, viewportHeight)
	}
}

// String 返回原始字符串
func (e TriggerEnd) String() string {
	return e.raw
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (e *TriggerEnd) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTriggerEnd(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
