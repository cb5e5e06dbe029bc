package systems

import (
	"errors"
	"fmt"
	"log"
)

// ErrRegistryTornDown 注册表已销毁，不再接受注册
var ErrRegistryTornDown = errors.New("scroll trigger registry torn down")

// RegistryState 注册表生命周期
type RegistryState int

const (
	// RegistryIdle 没有有效句柄（尚未注册，或全部句柄已被单独取消）
	RegistryIdle RegistryState = iota
	// RegistryActive 持有至少一个有效句柄
	RegistryActive
	// RegistryTornDown 已销毁，所有句柄已取消
	RegistryTornDown
)

// String 返回状态名称
func (s RegistryState) String() string {
	switch s {
	case RegistryIdle:
		return "idle"
	case RegistryActive:
		return "active"
	case RegistryTornDown:
		return "torn-down"
	}
	return "unknown"
}

// ScrollTriggerRegistry 统一持有舞台创建的全部观察句柄
//
// 状态机：Idle ⇄ Active → TornDown。逐个取消全部句柄后回到 Idle，
// 仍可重新注册（重新布局时正是如此）；只有 Teardown 是终态。
// Teardown 后注册表为空，之后的 Register 直接返回 ErrRegistryTornDown，
// 不会向采样器挂任何观察者。
type ScrollTriggerRegistry struct {
	sampler *ScrollSampler
	handles []*TriggerHandle

	// state 只记录 Idle 或 TornDown，Active 由有效句柄数推出
	state RegistryState
}

// NewScrollTriggerRegistry 创建注册表
func NewScrollTriggerRegistry(sampler *ScrollSampler) *ScrollTriggerRegistry {
	return &ScrollTriggerRegistry{sampler: sampler}
}

// Register 注册区间观察者
//
// 失败时不留下任何注册（采样器与注册表都不变）。
func (r *ScrollTriggerRegistry) Register(region Region, fn ObserverFunc) (*TriggerHandle, error) {
	if r.state == RegistryTornDown {
		return nil, ErrRegistryTornDown
	}
	h, err := r.sampler.Observe(region, fn)
	if err != nil {
		return nil, fmt.Errorf("failed to register scroll trigger: %w", err)
	}
	r.compact()
	r.handles = append(r.handles, h)
	return h, nil
}

// Teardown 取消全部句柄并进入 TornDown（幂等）
func (r *ScrollTriggerRegistry) Teardown() {
	if r.state == RegistryTornDown {
		return
	}
	n := 0
	for _, h := range r.handles {
		if !h.Detached() {
			n++
		}
		h.Detach()
	}
	r.handles = nil
	r.state = RegistryTornDown
	log.Printf("[ScrollTriggerRegistry] torn down, detached %d handles", n)
}

// State 当前生命周期状态
func (r *ScrollTriggerRegistry) State() RegistryState {
	if r.state == RegistryTornDown {
		return RegistryTornDown
	}
	if r.Len() == 0 {
		return RegistryIdle
	}
	return RegistryActive
}

// Len 仍然有效的句柄数量
func (r *ScrollTriggerRegistry) Len() int {
	n := 0
	for _, h := range r.handles {
		if !h.Detached() {
			n++
		}
	}
	return n
}

// compact 丢弃已被单独取消的句柄
func (r *ScrollTriggerRegistry) compact() {
	kept := r.handles[:0]
	for _, h := range r.handles {
		if !h.Detached() {
			kept = append(kept, h)
		}
	}
	r.handles = kept
}
