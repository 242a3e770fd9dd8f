package director

import (
	"slices"
)

// Group is a logical actor channel owning an ordered list of tracks.
// It always spans the whole timeline.
type Group struct {
	node
	root   *Asset
	tracks []*Track

	active    bool
	collapsed bool
	locked    bool

	actorID int
	actor   any
}

func newGroup(info *TypeInfo) *Group {
	return &Group{node: newNode(info), active: true}
}

func (g *Group) Kind() Kind { return KindGroup }

func (g *Group) Root() *Asset { return g.root }

// Parent is always nil for groups.
func (g *Group) Parent() Directable { return nil }

func (g *Group) Children() []Directable {
	out := make([]Directable, len(g.tracks))
	for i, t := range g.tracks {
		out[i] = t
	}
	return out
}

// Tracks returns the tracks in insertion order.
func (g *Group) Tracks() []*Track { return slices.Clone(g.tracks) }

// ActorID correlates the group with an object of the host scene.
func (g *Group) ActorID() int { return g.actorID }

func (g *Group) SetActorID(id int) { g.actorID = id }

// Actor is the non-owning host object resolved by the caller for ActorID.
func (g *Group) Actor() any { return g.actor }

func (g *Group) SetActor(actor any) { g.actor = actor }

func (g *Group) IsActive() bool { return g.active }

// SetActive revalidates the asset when the flag changes.
func (g *Group) SetActive(active bool) {
	if g.active == active {
		return
	}
	g.active = active
	if g.root != nil {
		g.root.Validate()
	}
}

func (g *Group) IsCollapsed() bool { return g.collapsed }

func (g *Group) SetCollapsed(collapsed bool) { g.collapsed = collapsed }

func (g *Group) IsLocked() bool { return g.locked }

func (g *Group) SetLocked(locked bool) { g.locked = locked }

func (g *Group) StartTime() float64 { return 0 }

func (g *Group) EndTime() float64 {
	if g.root == nil {
		return 0
	}
	return g.root.Length()
}

func (g *Group) BlendIn() float64 { return 0 }

func (g *Group) BlendOut() float64 { return 0 }

func (g *Group) CanCrossBlend() bool { return false }

func (g *Group) OnBeforeSerialize() { g.runBeforeSerialize(g) }

func (g *Group) OnAfterDeserialize() { g.runAfterDeserialize(g) }

func (g *Group) validate(root *Asset, _ Directable) error {
	g.root = root
	return g.runAfterValidate(g)
}

func (g *Group) detach() {
	g.root = nil
}

func (g *Group) registry() *Registry {
	if g.root == nil {
		return nil
	}
	return g.root.registry
}

// CanAddTrack reports whether the track's type may be attached to this group.
func (g *Group) CanAddTrack(t *Track) bool {
	return t != nil && g.CanAddTrackOfType(t.TypeName())
}

// CanAddTrackOfType checks the structural rules: the type must be a concrete
// track type attachable to this group's type and, if unique, not present yet.
func (g *Group) CanAddTrackOfType(typeName string) bool {
	info, ok := g.registry().lookup(typeName)
	if !ok || info.Kind != KindTrack || info.Abstract {
		return false
	}

	if info.Unique && slices.ContainsFunc(g.tracks, func(t *Track) bool { return t.TypeName() == typeName }) {
		return false
	}

	return info.attachableTo(g.TypeName())
}

// AddTrack appends a new track of the given type. An empty name defaults to
// the type label. It returns nil when the structural rules reject the type.
func (g *Group) AddTrack(typeName, name string) *Track {
	if _, ok := g.registry().resolve(typeName, KindTrack); !ok {
		return nil
	}
	if !g.CanAddTrackOfType(typeName) {
		logger().Debug("track rejected", "type", typeName, "group", g.TypeName())
		return nil
	}

	info, _ := g.registry().lookup(typeName)
	t := newTrack(info)
	if name == "" {
		name = info.Label()
	}
	t.name = name
	g.tracks = append(g.tracks, t)
	t.postCreate(g)

	if g.root != nil {
		g.root.Validate()
	}
	return t
}

// InsertTrack moves or inserts t at index, clamped to [0, len]. It returns
// the index actually used, or -1 when a track from elsewhere fails CanAddTrack.
func (g *Group) InsertTrack(t *Track, index int) int {
	if t == nil {
		return -1
	}
	switch i := slices.Index(g.tracks, t); {
	case i >= 0:
		g.tracks = slices.Delete(g.tracks, i, i+1)
	case !g.CanAddTrack(t):
		logger().Debug("track move rejected", "type", t.TypeName(), "group", g.TypeName())
		return -1
	default:
		if prev := t.group; prev != nil && prev.removeTrack(t) && prev.root != nil && prev.root != g.root {
			defer prev.root.Validate()
		}
	}

	index = max(0, min(index, len(g.tracks)))
	g.tracks = slices.Insert(g.tracks, index, t)
	t.group = g

	if g.root != nil {
		g.root.Validate()
	}
	return index
}

// DeleteTrack removes t and its clips.
func (g *Group) DeleteTrack(t *Track) {
	if !g.removeTrack(t) {
		return
	}
	t.detach()
	if g.root != nil {
		g.root.Validate()
	}
}

func (g *Group) removeTrack(t *Track) bool {
	i := slices.Index(g.tracks, t)
	if i < 0 {
		return false
	}
	g.tracks = slices.Delete(g.tracks, i, i+1)
	return true
}

// TrackIndex returns the position of t, or -1.
func (g *Group) TrackIndex(t *Track) int {
	return slices.Index(g.tracks, t)
}
