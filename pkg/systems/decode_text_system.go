package systems

import (
	"math/rand"
	"time"

	"github.com/decker502/scrollstage/pkg/components"
	"github.com/decker502/scrollstage/pkg/ecs"
)

// DecodeTextSystem 首屏解码文字
//
// 每个 Interval 推进一次迭代；随机字符来自注入的 rng，测试中可复现。
type DecodeTextSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
}

// NewDecodeTextSystem 创建解码文字系统，rng 为 nil 时使用当前时间作为种子
func NewDecodeTextSystem(em *ecs.EntityManager, rng *rand.Rand) *DecodeTextSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DecodeTextSystem{entityManager: em, rng: rng}
}

// Update 推进 dt 秒
func (s *DecodeTextSystem) Update(dt float64) {
	if !(dt > 0) {
		return
	}
	elapsed := time.Duration(dt * float64(time.Second))

	for _, id := range ecs.GetEntitiesWith1[*components.DecodeText](s.entityManager) {
		text, _ := ecs.GetComponent[*components.DecodeText](s.entityManager, id)
		if text.Done {
			continue
		}
		interval := text.Interval
		if interval <= 0 {
			interval = components.DefaultDecodeInterval
		}

		text.Elapsed += elapsed
		for text.Elapsed >= interval && !text.Done {
			text.Elapsed -= interval
			s.iterate(text)
		}
	}
}

// iterate 用当前迭代次数生成显示内容，然后推进迭代
func (s *DecodeTextSystem) iterate(text *components.DecodeText) {
	rate := text.RevealRate
	if rate <= 0 {
		rate = components.DefaultDecodeRevealRate
	}

	for i := range text.Target {
		if i*rate < text.Iteration || len(text.Charset) == 0 {
			text.Display[i] = text.Target[i]
		} else {
			text.Display[i] = text.Charset[s.rng.Intn(len(text.Charset))]
		}
	}

	text.Iteration++
	if text.Iteration >= len(text.Target)*rate {
		copy(text.Display, text.Target)
		text.Done = true
	}
}
