package agent

import (
	"time"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/geom"
)

// Snapshot captures one moment of a hint session.
type Snapshot struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Episode   string        `json:"episode,omitempty"`
	Mode      string        `json:"mode"`
	State     string        `json:"state"`
	Screen    geom.Rect     `json:"screen"`
	Prefix    string        `json:"prefix,omitempty"`
	Elements  []ElementInfo `json:"elements,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// ElementInfo describes one labeled element.
type ElementInfo struct {
	Label   string             `json:"label"`
	Role    accessibility.Role `json:"role,omitempty"`
	Title   string             `json:"title,omitempty"`
	Frame   geom.Rect          `json:"frame"`
	Anchor  geom.Point         `json:"anchor"`
	Below   bool               `json:"below,omitempty"`
	Matched bool               `json:"matched"`
}

// NodeInfo describes a node of a host's control tree.
type NodeInfo struct {
	Role     accessibility.Role     `json:"role,omitempty"`
	Title    string                 `json:"title,omitempty"`
	Frame    *geom.Rect             `json:"frame,omitempty"`
	Actions  []accessibility.Action `json:"actions,omitempty"`
	Children []NodeInfo             `json:"children,omitempty"`
}
