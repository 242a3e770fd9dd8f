package director

import (
	"github.com/google/uuid"
)

// Directable is the contract shared by every node of the timeline tree:
// groups, tracks and clips.
type Directable interface {
	ID() string
	Kind() Kind
	TypeName() string
	Name() string
	SetName(name string)

	Root() *Asset
	Parent() Directable
	Children() []Directable
	Actor() any

	IsActive() bool
	SetActive(active bool)
	IsCollapsed() bool
	SetCollapsed(collapsed bool)
	IsLocked() bool
	SetLocked(locked bool)

	StartTime() float64
	EndTime() float64
	BlendIn() float64
	BlendOut() float64
	CanCrossBlend() bool

	OnBeforeSerialize()
	OnAfterDeserialize()

	// validate wires the root and parent back-references.
	validate(root *Asset, parent Directable) error
	// detach drops back-references of a node that left the tree.
	detach()
}

// SubClipContainable is implemented by nodes carrying looping sub-clip content.
type SubClipContainable interface {
	Directable
	SubClip() (SubClip, bool)
}

// node holds the identity every Directable carries.
type node struct {
	id   string
	name string
	info *TypeInfo
}

func newNode(info *TypeInfo) node {
	return node{id: uuid.NewString(), info: info}
}

func (n *node) ID() string { return n.id }

func (n *node) TypeName() string {
	if n.info == nil {
		return ""
	}
	return n.info.Name
}

func (n *node) Name() string { return n.name }

func (n *node) SetName(name string) { n.name = name }

// Type returns the registered descriptor of the node's concrete type.
func (n *node) Type() TypeInfo {
	if n.info == nil {
		return TypeInfo{}
	}
	return n.info.clone()
}

func (n *node) hooks() Hooks {
	if n.info == nil {
		return Hooks{}
	}
	return n.info.Hooks
}

func (n *node) runCreate(d Directable) {
	if fn := n.hooks().Create; fn != nil {
		fn(d)
	}
}

func (n *node) runAfterValidate(d Directable) error {
	if fn := n.hooks().AfterValidate; fn != nil {
		return fn(d)
	}
	return nil
}

func (n *node) runBeforeSerialize(d Directable) {
	if fn := n.hooks().BeforeSerialize; fn != nil {
		fn(d)
	}
}

func (n *node) runAfterDeserialize(d Directable) {
	if fn := n.hooks().AfterDeserialize; fn != nil {
		fn(d)
	}
}
