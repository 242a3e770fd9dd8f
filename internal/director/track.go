package director

import (
	"fmt"
	"image/color"
	"math"
	"slices"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Track owns an ordered list of clips and spans its group's time range.
// Clips are stored in insertion order; time queries order them by start time.
type Track struct {
	node
	group *Group
	clips []*Clip

	active bool
	locked bool
	color  color.NRGBA
}

func newTrack(info *TypeInfo) *Track {
	return &Track{node: newNode(info), active: true, color: info.Color}
}

func (t *Track) Kind() Kind { return KindTrack }

// Group returns the owning group, or nil when detached.
func (t *Track) Group() *Group { return t.group }

func (t *Track) Root() *Asset {
	if t.group == nil {
		return nil
	}
	return t.group.Root()
}

func (t *Track) Parent() Directable {
	if t.group == nil {
		return nil
	}
	return t.group
}

func (t *Track) Children() []Directable {
	out := make([]Directable, len(t.clips))
	for i, c := range t.clips {
		out[i] = c
	}
	return out
}

// Clips returns the clips in insertion order.
func (t *Track) Clips() []*Clip { return slices.Clone(t.clips) }

func (t *Track) Actor() any {
	if t.group == nil {
		return nil
	}
	return t.group.Actor()
}

// Color falls back to opaque white when the stored color is nearly transparent.
func (t *Track) Color() color.NRGBA {
	if t.color.A > 25 {
		return t.color
	}
	return white
}

func (t *Track) SetColor(c color.NRGBA) { t.color = c }

// Info is a short summary for list views.
func (t *Track) Info() string {
	return fmt.Sprintf("%s (%d clips)", t.Type().Label(), len(t.clips))
}

func (t *Track) IsActive() bool {
	return t.group != nil && t.group.IsActive() && t.active
}

// SetActive revalidates the asset when the track's own flag changes.
func (t *Track) SetActive(active bool) {
	if t.active == active {
		return
	}
	t.active = active
	if root := t.Root(); root != nil {
		root.Validate()
	}
}

func (t *Track) IsCollapsed() bool {
	return t.group != nil && t.group.IsCollapsed()
}

func (t *Track) SetCollapsed(bool) {}

func (t *Track) IsLocked() bool {
	return t.group != nil && (t.group.IsLocked() || t.locked)
}

func (t *Track) SetLocked(locked bool) { t.locked = locked }

func (t *Track) StartTime() float64 {
	if t.group == nil {
		return 0
	}
	return t.group.StartTime()
}

func (t *Track) EndTime() float64 {
	if t.group == nil {
		return 0
	}
	return t.group.EndTime()
}

func (t *Track) BlendIn() float64 { return 0 }

func (t *Track) BlendOut() float64 { return 0 }

func (t *Track) CanCrossBlend() bool { return false }

func (t *Track) OnBeforeSerialize() { t.runBeforeSerialize(t) }

func (t *Track) OnAfterDeserialize() { t.runAfterDeserialize(t) }

func (t *Track) validate(_ *Asset, parent Directable) error {
	g, ok := parent.(*Group)
	if !ok || g == nil {
		t.group = nil
		return fmt.Errorf("track %s: parent is %T, want *Group", t.id, parent)
	}
	t.group = g
	return t.runAfterValidate(t)
}

func (t *Track) detach() {
	t.group = nil
}

// postCreate wires a freshly created track to its group.
func (t *Track) postCreate(g *Group) {
	t.group = g
	t.runCreate(t)
}

func (t *Track) registry() *Registry {
	if root := t.Root(); root != nil {
		return root.registry
	}
	return nil
}

// CanAddClipOfType reports whether a concrete clip type accepts this track.
func (t *Track) CanAddClipOfType(typeName string) bool {
	info, ok := t.registry().lookup(typeName)
	if !ok || info.Kind != KindClip || info.Abstract {
		return false
	}
	return len(info.AttachableTo) == 0 || info.attachableTo(t.TypeName())
}

// AddClip creates a clip of the given type starting at time. The clip's end
// is pulled back to the next clip's start, below the type's minimum length
// if need be. It returns nil when the type is rejected.
func (t *Track) AddClip(typeName string, time float64) *Clip {
	info, ok := t.registry().resolve(typeName, KindClip)
	if !ok {
		return nil
	}
	if !t.CanAddClipOfType(typeName) {
		logger().Debug("clip rejected", "type", typeName, "track", t.TypeName())
		return nil
	}

	if info.Category != "" && len(t.clips) == 0 {
		t.name = info.Category + " Track"
	}

	c := newClip(info)
	c.SetStartTime(time)
	c.name = info.Name
	t.clips = append(t.clips, c)
	c.postCreate(t)

	if next := NextSibling(c, t); next != nil && c.EndTime() > next.StartTime() {
		c.length = math.Max(next.StartTime()-c.startTime, 0)
		c.SetBlendOut(c.blendOut)
		c.SetBlendIn(c.blendIn)
	}

	if root := t.Root(); root != nil {
		root.Validate()
	}
	return c
}

// AddExistingClip moves c onto this track when its current time range is
// legal here. It returns nil when the clip is rejected.
func (t *Track) AddExistingClip(c *Clip) *Clip {
	if c == nil || !t.CanAddClipOfType(c.TypeName()) {
		return nil
	}
	if !CanValidTime(c, t, c.StartTime(), c.EndTime()) {
		return nil
	}

	if prev := c.track; prev != nil && prev != t {
		prev.DeleteClip(c)
	} else if prev == t {
		return c
	}

	t.clips = append(t.clips, c)
	c.track = t

	if root := t.Root(); root != nil {
		root.Validate()
	}
	return c
}

// DeleteClip removes c from the track.
func (t *Track) DeleteClip(c *Clip) {
	i := slices.Index(t.clips, c)
	if i < 0 {
		return
	}
	t.clips = slices.Delete(t.clips, i, i+1)
	c.detach()

	if root := t.Root(); root != nil {
		root.Validate()
	}
}

// ClipIndex returns the storage position of c, or -1.
func (t *Track) ClipIndex(c *Clip) int {
	return slices.Index(t.clips, c)
}
