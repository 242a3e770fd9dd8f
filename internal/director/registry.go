package director

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"sync"
)

var (
	ErrUnknownType   = errors.New("unknown type")
	ErrDuplicateType = errors.New("type already registered")
)

// Kind is the tree level a type lives on.
type Kind int

const (
	KindGroup Kind = iota + 1
	KindTrack
	KindClip
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindTrack:
		return "track"
	case KindClip:
		return "clip"
	default:
		return "unknown"
	}
}

// Variant selects the timing behaviour of a clip type.
type Variant int

const (
	VariantPlain      Variant = iota // own length, no blending
	VariantSignal                    // zero length
	VariantCrossBlend                // blend-in/out and cross-blend overrides
)

func (v Variant) String() string {
	switch v {
	case VariantSignal:
		return "signal"
	case VariantCrossBlend:
		return "crossblend"
	default:
		return "plain"
	}
}

// Hooks are per-type callbacks run by the tree at fixed points.
type Hooks struct {
	Create           func(d Directable)       // after PostCreate wiring
	AfterValidate    func(d Directable) error // after back-references are set
	BeforeSerialize  func(d Directable)
	AfterDeserialize func(d Directable)
}

// TypeInfo is the capability descriptor of one concrete Group, Track or Clip type.
type TypeInfo struct {
	Name         string
	Kind         Kind
	Category     string
	DisplayName  string
	Abstract     bool
	Unique       bool     // tracks: at most one per group
	AttachableTo []string // tracks: group types; clips: track types (empty = any)

	Variant       Variant // clips only
	DefaultLength float64
	MinLength     float64
	SubClip       bool

	Color color.NRGBA // default track color
	Hooks Hooks
}

// Label is the human readable name of the type.
func (t TypeInfo) Label() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return SplitCamelCase(t.Name)
}

func (t TypeInfo) attachableTo(parentType string) bool {
	return slices.Contains(t.AttachableTo, parentType)
}

// Registry maps type names to their descriptors. It is populated by explicit
// Register calls and is safe for concurrent readers.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*TypeInfo
	order []string
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*TypeInfo)}
}

// Register adds a type descriptor.
func (r *Registry) Register(info TypeInfo) error {
	if info.Name == "" {
		return fmt.Errorf("register: empty type name")
	}
	if info.Kind < KindGroup || info.Kind > KindClip {
		return fmt.Errorf("register %s: invalid kind %d", info.Name, info.Kind)
	}

	info.AttachableTo = slices.Clone(info.AttachableTo)
	if info.MinLength < 0 {
		info.MinLength = 0
	}
	if info.Kind == KindClip {
		switch {
		case info.Variant == VariantSignal:
			info.DefaultLength = 0
			info.MinLength = 0
		case info.DefaultLength <= 0:
			info.DefaultLength = 1
		}
		if info.DefaultLength < info.MinLength {
			info.DefaultLength = info.MinLength
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[info.Name]; exists {
		return fmt.Errorf("register %s: %w", info.Name, ErrDuplicateType)
	}
	r.types[info.Name] = &info
	r.order = append(r.order, info.Name)
	return nil
}

// MustRegister registers every descriptor and panics on the first failure.
func (r *Registry) MustRegister(infos ...TypeInfo) {
	for _, info := range infos {
		if err := r.Register(info); err != nil {
			panic(err)
		}
	}
}

// Lookup returns a copy of the descriptor registered under name.
func (r *Registry) Lookup(name string) (TypeInfo, bool) {
	info, ok := r.lookup(name)
	if !ok {
		return TypeInfo{}, false
	}
	return info.clone(), true
}

func (t *TypeInfo) clone() TypeInfo {
	out := *t
	out.AttachableTo = slices.Clone(t.AttachableTo)
	return out
}

func (r *Registry) lookup(name string) (*TypeInfo, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.types[name]
	return info, ok
}

// resolve looks a type up and logs when it is missing.
func (r *Registry) resolve(name string, kind Kind) (*TypeInfo, bool) {
	info, ok := r.lookup(name)
	if !ok {
		logger().Warn("type lookup failed", "type", name, "kind", kind.String(), "err", ErrUnknownType)
		return nil, false
	}
	if info.Kind != kind {
		logger().Warn("type kind mismatch", "type", name, "want", kind.String(), "got", info.Kind.String())
		return nil, false
	}
	return info, true
}

// Implementations lists the concrete (non-abstract) types of a kind in registration order.
func (r *Registry) Implementations(kind Kind) []TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []TypeInfo
	for _, name := range r.order {
		info := r.types[name]
		if info.Kind == kind && !info.Abstract {
			out = append(out, info.clone())
		}
	}
	return out
}

// Categories lists the distinct categories of a kind in registration order.
func (r *Registry) Categories(kind Kind) []string {
	var out []string
	for _, info := range r.Implementations(kind) {
		if info.Category != "" && !slices.Contains(out, info.Category) {
			out = append(out, info.Category)
		}
	}
	return out
}

// CanAttach reports whether a track type declares the group type as a valid parent.
func (r *Registry) CanAttach(trackType, groupType string) bool {
	info, ok := r.lookup(trackType)
	if !ok || info.Kind != KindTrack {
		return false
	}
	return info.attachableTo(groupType)
}
