package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/systems"
	"github.com/decker502/scrollstage/pkg/utils"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript 脚本内容无效
var ErrInvalidScript = errors.New("invalid scroll script")

// expectTolerance 数值期望的容差
const expectTolerance = 1e-6

// Script 滚动回放脚本
type Script struct {
	Name     string   `yaml:"name"`
	Viewport Viewport `yaml:"viewport"`
	FPS      float64  `yaml:"fps"`
	Seed     int64    `yaml:"seed"`
	Steps    []Step   `yaml:"steps"`
}

// Viewport 视口尺寸
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step 一个回放步骤
//
// action 取值：scrollTo, scrollBy, jump, wait, resize, drag, next, prev, click。
// frames 为该步骤推进的帧数，默认 1；scrollBy 与 drag 在每帧都施加输入。
type Step struct {
	Action   string       `yaml:"action"`
	Frames   int          `yaml:"frames"`
	Position float64      `yaml:"position"`
	Delta    float64      `yaml:"delta"`
	Section  string       `yaml:"section"`
	Width    float64      `yaml:"width"`
	Height   float64      `yaml:"height"`
	From     float64      `yaml:"from"`
	To       float64      `yaml:"to"`
	X        float64      `yaml:"x"`
	Expect   *Expectation `yaml:"expect"`
}

// Expectation 步骤结束时对某个区块（或页面）的断言，未设置的字段不检查
type Expectation struct {
	Section  string   `yaml:"section"`
	Phase    string   `yaml:"phase"`
	Position *float64 `yaml:"position"`
	Progress *float64 `yaml:"progress"`
	Index    *int     `yaml:"index"`
	TrackX   *float64 `yaml:"trackX"`
	Pinned   *bool    `yaml:"pinned"`
}

// Trace 一次回放的逐帧输出
type Trace struct {
	Script   string                `yaml:"script"`
	Viewport Viewport              `yaml:"viewport"`
	Frames   []systems.FrameOutput `yaml:"frames"`
	Failures []string              `yaml:"failures,omitempty"`
}

// LoadScript 读取并校验脚本
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	script, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if script.Name == "" {
		script.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return script, nil
}

// ParseScript 解析脚本并填充默认值
func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if script.FPS == 0 {
		script.FPS = 60
	}
	if script.Viewport.Width == 0 && script.Viewport.Height == 0 {
		script.Viewport = Viewport{Width: config.StageWidth, Height: config.StageHeight}
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// Validate 校验脚本
func (s *Script) Validate() error {
	if s.FPS <= 0 || !utils.IsFinite(s.FPS) {
		return fmt.Errorf("%w: fps must be positive", ErrInvalidScript)
	}
	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return fmt.Errorf("%w: negative viewport", ErrInvalidScript)
	}
	for i, step := range s.Steps {
		if step.Frames < 0 {
			return fmt.Errorf("%w: step %d has negative frames", ErrInvalidScript, i)
		}
		switch step.Action {
		case "scrollTo", "scrollBy", "wait", "resize":
		case "jump", "drag", "next", "prev", "click":
			if step.Section == "" {
				return fmt.Errorf("%w: step %d (%s) needs a section", ErrInvalidScript, i, step.Action)
			}
		default:
			return fmt.Errorf("%w: step %d has unknown action %q", ErrInvalidScript, i, step.Action)
		}
	}
	return nil
}

// Replay 在独立的 FrameLoop 上回放脚本
//
// 每次回放拥有自己的实体管理器与随机源，可以安全地并行执行。
// 期望不满足记录在 Trace.Failures，不中断回放；布局错误与未知区块直接返回错误。
func Replay(site *config.SiteConfig, script *Script) (*Trace, error) {
	em := ecs.NewEntityManager()
	loop, err := systems.NewFrameLoop(em, site, rand.New(rand.NewSource(script.Seed)))
	if err != nil {
		return nil, fmt.Errorf("failed to create frame loop: %w", err)
	}
	defer loop.Teardown()

	if err := loop.Resize(script.Viewport.Width, script.Viewport.Height); err != nil {
		return nil, err
	}

	r := &replayer{
		loop:  loop,
		dt:    1 / script.FPS,
		trace: &Trace{Script: script.Name, Viewport: script.Viewport},
	}
	// 第 0 帧：初始布局后的状态
	r.tick()

	for i, step := range script.Steps {
		if err := r.run(step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
		if step.Expect != nil {
			for _, f := range r.check(*step.Expect) {
				r.trace.Failures = append(r.trace.Failures, fmt.Sprintf("step %d (%s): %s", i, step.Action, f))
			}
		}
	}

	loop.Teardown()
	if n := loop.Registry().Len(); n != 0 {
		r.trace.Failures = append(r.trace.Failures, fmt.Sprintf("%d observers left after teardown", n))
	}
	return r.trace, nil
}

type replayer struct {
	loop  *systems.FrameLoop
	dt    float64
	last  systems.FrameOutput
	trace *Trace
}

func (r *replayer) tick() {
	r.last = r.loop.Tick(r.dt)
	r.trace.Frames = append(r.trace.Frames, r.last)
}

func (r *replayer) ticks(n int) {
	for i := 0; i < n; i++ {
		r.tick()
	}
}

func (r *replayer) run(step Step) error {
	frames := step.Frames
	if frames == 0 {
		frames = 1
	}

	switch step.Action {
	case "scrollTo":
		r.loop.ScrollTo(step.Position)
		r.ticks(frames)

	case "scrollBy":
		for i := 0; i < frames; i++ {
			r.loop.ScrollBy(step.Delta)
			r.tick()
		}

	case "wait":
		r.ticks(frames)

	case "resize":
		if err := r.loop.Resize(step.Width, step.Height); err != nil {
			return err
		}
		r.ticks(frames)

	case "jump":
		if !r.loop.JumpToSection(step.Section) {
			return fmt.Errorf("unknown section %q", step.Section)
		}
		r.ticks(frames)

	case "drag":
		if _, ok := r.loop.SectionEntity(step.Section); !ok {
			return fmt.Errorf("unknown section %q", step.Section)
		}
		r.loop.HandlePointer(step.Section, []utils.PointerEvent{{Kind: utils.PointerDown, X: step.From}})
		for i := 1; i <= frames; i++ {
			x := utils.Lerp(step.From, step.To, float64(i)/float64(frames))
			r.loop.HandlePointer(step.Section, []utils.PointerEvent{{Kind: utils.PointerMove, X: x}})
			r.tick()
		}
		r.loop.HandlePointer(step.Section, []utils.PointerEvent{{Kind: utils.PointerUp, X: step.To}})

	case "next", "prev":
		if _, ok := r.loop.SectionEntity(step.Section); !ok {
			return fmt.Errorf("unknown section %q", step.Section)
		}
		if step.Action == "next" {
			r.loop.NextCard(step.Section)
		} else {
			r.loop.PrevCard(step.Section)
		}
		r.ticks(frames)

	case "click":
		if _, ok := r.loop.SectionEntity(step.Section); !ok {
			return fmt.Errorf("unknown section %q", step.Section)
		}
		r.loop.SelectCardAt(step.Section, step.X)
		r.ticks(frames)
	}
	return nil
}

// check 对最后一帧检查期望，返回失败描述
func (r *replayer) check(e Expectation) []string {
	var failures []string
	if e.Position != nil && !near(r.last.Position, *e.Position) {
		failures = append(failures, fmt.Sprintf("position = %v, want %v", r.last.Position, *e.Position))
	}
	if e.Section == "" {
		return failures
	}

	sec, ok := r.last.Section(e.Section)
	if !ok {
		return append(failures, fmt.Sprintf("section %q not found", e.Section))
	}
	if e.Phase != "" && sec.Phase != e.Phase {
		failures = append(failures, fmt.Sprintf("%s phase = %q, want %q", e.Section, sec.Phase, e.Phase))
	}
	if e.Progress != nil && !near(sec.Progress, *e.Progress) {
		failures = append(failures, fmt.Sprintf("%s progress = %v, want %v", e.Section, sec.Progress, *e.Progress))
	}
	if e.Index != nil && sec.Index != *e.Index {
		failures = append(failures, fmt.Sprintf("%s index = %d, want %d", e.Section, sec.Index, *e.Index))
	}
	if e.TrackX != nil && !near(sec.TrackX, *e.TrackX) {
		failures = append(failures, fmt.Sprintf("%s trackX = %v, want %v", e.Section, sec.TrackX, *e.TrackX))
	}
	if e.Pinned != nil && sec.Pinned != *e.Pinned {
		failures = append(failures, fmt.Sprintf("%s pinned = %v, want %v", e.Section, sec.Pinned, *e.Pinned))
	}
	return failures
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= expectTolerance
}
