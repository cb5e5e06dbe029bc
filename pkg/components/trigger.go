package components

import "github.com/decker502/scrollstage/pkg/config"

// Trigger 区块的触发规格（来自配置，布局系统据此计算 PinnedRegion 边界）
type Trigger struct {
	Start config.TriggerAnchor
	End   config.TriggerEnd
}
