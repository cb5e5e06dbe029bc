package systems

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/config"
	"github.com/decker502/scrollstage/pkg/ecs"
	"github.com/decker502/scrollstage/pkg/entities"
	"github.com/decker502/scrollstage/pkg/utils"
)

// RegionSnapshot 区间在某一帧开始时的冻结状态
type RegionSnapshot struct {
	Measured     bool
	Phase        components.PinPhase
	Progress     float64
	Pinned       bool
	HeldDistance float64
}

// FrameSnapshot 一帧内所有映射系统共享的只读输入
//
// 采样与区间更新完成后冻结；同一帧内的映射系统都读取这份快照，
// 不会出现同一帧不同系统读到不同进度的情况。
type FrameSnapshot struct {
	Frame        int
	Time         float64
	Position     float64
	Velocity     float64
	PageProgress float64
	MaxScroll    float64

	Regions map[ecs.EntityID]RegionSnapshot
}

// Region 返回实体的区间快照（没有区间时为零值）
func (s *FrameSnapshot) Region(id ecs.EntityID) RegionSnapshot {
	if s == nil {
		return RegionSnapshot{}
	}
	return s.Regions[id]
}

// SectionOutput 单个区块在一帧中的变换值
type SectionOutput struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`

	Top     float64 `yaml:"top"`
	Height  float64 `yaml:"height"`
	ScreenY float64 `yaml:"screenY"`

	Phase        string  `yaml:"phase,omitempty"`
	Progress     float64 `yaml:"progress"`
	Pinned       bool    `yaml:"pinned,omitempty"`
	HeldDistance float64 `yaml:"held,omitempty"`

	RotX          float64            `yaml:"rotX,omitempty"`
	RotY          float64            `yaml:"rotY,omitempty"`
	Blur          float64            `yaml:"blur,omitempty"`
	LetterSpacing float64            `yaml:"letterSpacing,omitempty"`
	TrackX        float64            `yaml:"trackX,omitempty"`
	Parallax      map[string]float64 `yaml:"parallax,omitempty"`
	Index         int                `yaml:"index,omitempty"`
	DragOffset    float64            `yaml:"dragOffset,omitempty"`
	Dragging      bool               `yaml:"dragging,omitempty"`
	Revealed      bool               `yaml:"revealed,omitempty"`
	Opacity       float64            `yaml:"opacity,omitempty"`
	DecodeText    string             `yaml:"decodeText,omitempty"`
	Hovering      bool               `yaml:"hovering,omitempty"`
	DetailOpen    bool               `yaml:"detailOpen,omitempty"`
	DetailItem    int                `yaml:"detailItem,omitempty"`
	DetailOpacity float64            `yaml:"detailOpacity,omitempty"`
	DetailScale   float64            `yaml:"detailScale,omitempty"`
}

// FrameOutput 一帧的全部变换值（渲染层与批处理工具的唯一输入）
type FrameOutput struct {
	Frame        int             `yaml:"frame"`
	Time         float64         `yaml:"time"`
	Position     float64         `yaml:"position"`
	Velocity     float64         `yaml:"velocity"`
	PageProgress float64         `yaml:"pageProgress"`
	MaxScroll    float64         `yaml:"maxScroll"`
	Sections     []SectionOutput `yaml:"sections"`
}

// Section 按ID查找区块输出
func (o *FrameOutput) Section(id string) (*SectionOutput, bool) {
	for i := range o.Sections {
		if o.Sections[i].ID == id {
			return &o.Sections[i], true
		}
	}
	return nil, false
}

// FrameLoop 舞台的逐帧调度
//
// 每次 Tick 的顺序固定：
//  1. 采样器消费本帧滚动位置，回调中更新各触发区间
//  2. 冻结 FrameSnapshot
//  3. 各映射系统只读快照，推进各自的 AnimatedValue
//
// Teardown 取消本循环注册的全部观察者并销毁区块实体。
type FrameLoop struct {
	entityManager *ecs.EntityManager
	site          *config.SiteConfig

	sampler  *ScrollSampler
	registry *ScrollTriggerRegistry

	pins     *PinnedRegionSystem
	tracks   *HorizontalTrackSystem
	layout   *LayoutSystem
	cube     *CubeOrientationSystem
	velocity *VelocityEffectSystem
	parallax *ParallaxSystem
	index    *IndexSelectionSystem
	drag     *DragScrollSystem
	reveal   *RevealSystem
	decode   *DecodeTextSystem
	hover    *HoverSelectionSystem
	detail   *DetailPanelSystem

	sections map[string]ecs.EntityID
	entities []ecs.EntityID

	time     float64
	frame    int
	snapshot FrameSnapshot
	tornDown bool
}

// NewFrameLoop 按站点配置创建区块实体与全部系统
//
// 参数:
//   - em: 实体管理器
//   - site: 已验证的站点配置
//   - rng: 解码文字使用的随机源（nil 时按时间播种）
//
// 失败时不留下任何实体或观察者。
func NewFrameLoop(em *ecs.EntityManager, site *config.SiteConfig, rng *rand.Rand) (*FrameLoop, error) {
	if site == nil {
		return nil, fmt.Errorf("failed to create frame loop: nil site config")
	}

	sampler := NewScrollSampler(site.Animation.MaxVelocity)
	registry := NewScrollTriggerRegistry(sampler)
	pins := NewPinnedRegionSystem(em, sampler, registry)
	tracks := NewHorizontalTrackSystem(em)

	l := &FrameLoop{
		entityManager: em,
		site:          site,
		sampler:       sampler,
		registry:      registry,
		pins:          pins,
		tracks:        tracks,
		layout:        NewLayoutSystem(em, sampler, pins, tracks),
		cube:          NewCubeOrientationSystem(em),
		velocity:      NewVelocityEffectSystem(em),
		parallax:      NewParallaxSystem(em),
		index:         NewIndexSelectionSystem(em),
		drag:          NewDragScrollSystem(em),
		reveal:        NewRevealSystem(em),
		decode:        NewDecodeTextSystem(em, rng),
		hover:         NewHoverSelectionSystem(em),
		detail:        NewDetailPanelSystem(em),
		sections:      make(map[string]ecs.EntityID),
	}

	ids, err := entities.NewStageEntities(em, site)
	if err != nil {
		registry.Teardown()
		return nil, fmt.Errorf("failed to create frame loop: %w", err)
	}
	l.entities = ids
	for _, id := range ids {
		sec, _ := ecs.GetComponent[*components.Section](em, id)
		l.sections[sec.ID] = id
	}

	log.Printf("[FrameLoop] created %d sections", len(ids))
	return l, nil
}

// Resize 视口变化：整体重算布局与拖拽条范围
//
// 布局错误时销毁本次已注册的观察者再返回，不留下部分注册。
func (l *FrameLoop) Resize(viewportWidth, viewportHeight float64) error {
	if l.tornDown {
		return ErrRegistryTornDown
	}
	if err := l.layout.Resize(viewportWidth, viewportHeight); err != nil {
		for _, id := range l.entities {
			l.pins.Invalidate(id)
		}
		return fmt.Errorf("failed to resize stage: %w", err)
	}
	l.drag.Resize(viewportWidth - 2*config.CarouselStripMargin)
	return nil
}

// ScrollTo 请求滚动到指定位置（下一次 Tick 生效）
func (l *FrameLoop) ScrollTo(position float64) {
	l.sampler.Push(position)
}

// ScrollBy 请求相对滚动（滚轮、方向键）
func (l *FrameLoop) ScrollBy(delta float64) {
	l.sampler.PushDelta(delta)
}

// JumpToSection 滚动到区块顶部（导航）
func (l *FrameLoop) JumpToSection(sectionID string) bool {
	target, ok := l.layout.SectionScrollTarget(sectionID)
	if ok {
		l.sampler.Push(target)
	}
	return ok
}

// Tick 推进一帧
func (l *FrameLoop) Tick(dt float64) FrameOutput {
	if l.tornDown {
		return FrameOutput{}
	}
	if dt < 0 || !utils.IsFinite(dt) {
		dt = 0
	}
	l.time += dt
	l.frame++

	sample := l.sampler.Tick(l.time)
	l.freeze(sample)

	snap := &l.snapshot
	l.tracks.Update(snap)
	l.cube.Update(snap, dt)
	l.velocity.Update(snap, dt)
	l.parallax.Update(snap)
	l.index.Update(snap)
	l.reveal.Update(snap, dt)
	l.decode.Update(dt)
	l.detail.Update(dt)

	return l.output()
}

// HandlePointer 把指针事件交给区块的拖拽条
func (l *FrameLoop) HandlePointer(sectionID string, events []utils.PointerEvent) {
	if id, ok := l.sections[sectionID]; ok {
		l.drag.HandlePointer(id, events)
	}
}

// HoverRows 把指针事件交给区块的悬停列表（坐标相对列表左上角）
func (l *FrameLoop) HoverRows(sectionID string, events []utils.PointerEvent) {
	if id, ok := l.sections[sectionID]; ok {
		l.hover.HandlePointer(id, events)
	}
}

// ClearHover 取消区块的悬停行
func (l *FrameLoop) ClearHover(sectionID string) {
	if id, ok := l.sections[sectionID]; ok {
		l.hover.Clear(id)
	}
}

// OpenDetail 打开区块的详情面板，展示当前项
func (l *FrameLoop) OpenDetail(sectionID string) bool {
	id, ok := l.sections[sectionID]
	return ok && l.detail.Open(id)
}

// CloseDetail 关闭区块的详情面板
func (l *FrameLoop) CloseDetail(sectionID string) {
	if id, ok := l.sections[sectionID]; ok {
		l.detail.Close(id)
	}
}

// NextCard 轮播下一项
func (l *FrameLoop) NextCard(sectionID string) {
	if id, ok := l.sections[sectionID]; ok {
		l.drag.Next(id)
	}
}

// PrevCard 轮播上一项
func (l *FrameLoop) PrevCard(sectionID string) {
	if id, ok := l.sections[sectionID]; ok {
		l.drag.Prev(id)
	}
}

// SelectCardAt 点击拖拽条：x 为相对条左缘的横坐标
func (l *FrameLoop) SelectCardAt(sectionID string, x float64) bool {
	id, ok := l.sections[sectionID]
	if !ok {
		return false
	}
	index, hit := l.drag.CardAt(id, x)
	if hit {
		l.drag.Select(id, index)
	}
	return hit
}

// Snapshot 本帧冻结的快照
func (l *FrameLoop) Snapshot() *FrameSnapshot {
	return &l.snapshot
}

// Registry 观察者注册表
func (l *FrameLoop) Registry() *ScrollTriggerRegistry {
	return l.registry
}

// Sampler 滚动采样器
func (l *FrameLoop) Sampler() *ScrollSampler {
	return l.sampler
}

// SectionEntity 按区块ID查找实体
func (l *FrameLoop) SectionEntity(sectionID string) (ecs.EntityID, bool) {
	id, ok := l.sections[sectionID]
	return id, ok
}

// Teardown 取消全部观察者并销毁区块实体（幂等）
func (l *FrameLoop) Teardown() {
	if l.tornDown {
		return
	}
	l.tornDown = true
	l.registry.Teardown()
	for _, id := range l.entities {
		l.entityManager.DestroyEntity(id)
	}
	l.entityManager.RemoveMarkedEntities()
	l.entities = nil
	l.sections = map[string]ecs.EntityID{}
	log.Printf("[FrameLoop] torn down after %d frames", l.frame)
}

// TornDown 是否已销毁
func (l *FrameLoop) TornDown() bool {
	return l.tornDown
}

func (l *FrameLoop) freeze(sample components.ScrollSample) {
	regions := make(map[ecs.EntityID]RegionSnapshot, len(l.entities))
	for _, id := range ecs.GetEntitiesWith1[*components.PinnedRegion](l.entityManager) {
		r, _ := ecs.GetComponent[*components.PinnedRegion](l.entityManager, id)
		regions[id] = RegionSnapshot{
			Measured:     r.Measured,
			Phase:        r.Phase,
			Progress:     r.Progress,
			Pinned:       r.IsPinned(),
			HeldDistance: r.HeldDistance(),
		}
	}

	l.snapshot = FrameSnapshot{
		Frame:        l.frame,
		Time:         sample.Time,
		Position:     sample.Position,
		Velocity:     sample.Velocity,
		PageProgress: sample.Progress,
		MaxScroll:    l.sampler.MaxScroll(),
		Regions:      regions,
	}
}

func (l *FrameLoop) output() FrameOutput {
	snap := &l.snapshot
	out := FrameOutput{
		Frame:        snap.Frame,
		Time:         snap.Time,
		Position:     snap.Position,
		Velocity:     snap.Velocity,
		PageProgress: snap.PageProgress,
		MaxScroll:    snap.MaxScroll,
	}

	em := l.entityManager
	for _, id := range l.layout.orderedSections() {
		sec, _ := ecs.GetComponent[*components.Section](em, id)
		region, hasRegion := snap.Regions[id]

		so := SectionOutput{
			ID:           sec.ID,
			Kind:         sec.Kind.String(),
			Top:          sec.Top,
			Height:       sec.Height,
			ScreenY:      sec.Top - snap.Position + region.HeldDistance,
			Progress:     region.Progress,
			Pinned:       region.Pinned,
			HeldDistance: region.HeldDistance,
		}
		if hasRegion {
			so.Phase = region.Phase.String()
		}

		if cube, ok := ecs.GetComponent[*components.CubeOrientation](em, id); ok {
			so.RotX = cube.RotX.Current
			so.RotY = cube.RotY.Current
		}
		if effect, ok := ecs.GetComponent[*components.VelocityEffect](em, id); ok {
			so.Blur = effect.Blur.Current
			so.LetterSpacing = effect.LetterSpacing.Current
		}
		if track, ok := ecs.GetComponent[*components.HorizontalTrack](em, id); ok {
			so.TrackX = track.TranslateX
		}
		if stack, ok := ecs.GetComponent[*components.ParallaxStack](em, id); ok {
			so.Parallax = make(map[string]float64, len(stack.Layers))
			for _, layer := range stack.Layers {
				so.Parallax[layer.Name] = layer.Value
			}
		}
		if sel, ok := ecs.GetComponent[*components.IndexSelection](em, id); ok {
			so.Index = sel.Index
		}
		if drag, ok := ecs.GetComponent[*components.DragScroll](em, id); ok {
			so.DragOffset = drag.ScrollOffset
			so.Dragging = drag.IsDragging()
		}
		if reveal, ok := ecs.GetComponent[*components.Reveal](em, id); ok {
			so.Revealed = reveal.Visible
			so.Opacity = reveal.Opacity.Current
		}
		if text, ok := ecs.GetComponent[*components.DecodeText](em, id); ok {
			so.DecodeText = text.String()
		}
		if list, ok := ecs.GetComponent[*components.HoverList](em, id); ok {
			so.Hovering = list.Hovered >= 0
		}
		if panel, ok := ecs.GetComponent[*components.DetailPanel](em, id); ok {
			so.DetailOpen = panel.Open
			so.DetailItem = panel.Item
			so.DetailOpacity = panel.Opacity.Current
			so.DetailScale = panel.Scale()
		}

		out.Sections = append(out.Sections, so)
	}
	return out
}
