package director

import (
	"fmt"
	"maps"
	"math"

	"github.com/ivlev/actiondirector/internal/blend"
)

// timeEpsilon absorbs float drift in time comparisons.
const timeEpsilon = 0.0001

// SubClip describes looping content inside a clip.
type SubClip = blend.SubClip

// Clip is a timed action on a track. Its variant decides whether it has a
// length (signal clips do not) and whether it can blend.
type Clip struct {
	node
	track *Track

	startTime float64
	length    float64

	blendIn       float64
	blendOut      float64
	crossBlendIn  float64
	crossBlendOut float64

	subClip *SubClip
	params  map[string]any
}

func newClip(info *TypeInfo) *Clip {
	c := &Clip{node: newNode(info), length: info.DefaultLength}
	if info.SubClip {
		c.subClip = &SubClip{Speed: 1, Length: info.DefaultLength}
	}
	return c
}

func (c *Clip) Kind() Kind { return KindClip }

// Variant returns the timing variant of the clip's type.
func (c *Clip) Variant() Variant {
	if c.info == nil {
		return VariantPlain
	}
	return c.info.Variant
}

// Track returns the owning track, or nil when detached.
func (c *Clip) Track() *Track { return c.track }

func (c *Clip) Root() *Asset {
	if c.track == nil {
		return nil
	}
	return c.track.Root()
}

func (c *Clip) Parent() Directable {
	if c.track == nil {
		return nil
	}
	return c.track
}

// Children is always nil for clips.
func (c *Clip) Children() []Directable { return nil }

func (c *Clip) Actor() any {
	if c.track == nil {
		return nil
	}
	return c.track.Actor()
}

// Info is the display label of the clip's type.
func (c *Clip) Info() string {
	return c.Type().Label()
}

func (c *Clip) IsActive() bool {
	return c.track != nil && c.track.IsActive()
}

func (c *Clip) SetActive(bool) {}

func (c *Clip) IsCollapsed() bool {
	return c.track != nil && c.track.IsCollapsed()
}

func (c *Clip) SetCollapsed(bool) {}

func (c *Clip) IsLocked() bool {
	return c.track != nil && c.track.IsLocked()
}

func (c *Clip) SetLocked(bool) {}

func (c *Clip) StartTime() float64 { return c.startTime }

// SetStartTime ignores changes below timeEpsilon and floors at zero.
func (c *Clip) SetStartTime(v float64) {
	if math.Abs(c.startTime-v) > timeEpsilon {
		c.startTime = math.Max(v, 0)
	}
}

func (c *Clip) Length() float64 {
	if c.Variant() == VariantSignal {
		return 0
	}
	return c.length
}

// SetLength clamps to the type's minimum length. Signal clips stay at zero.
func (c *Clip) SetLength(v float64) {
	if c.Variant() == VariantSignal {
		return
	}
	minLength := 0.0
	if c.info != nil {
		minLength = c.info.MinLength
	}
	c.length = math.Max(v, minLength)
}

func (c *Clip) EndTime() float64 { return c.startTime + c.Length() }

// SetEndTime adjusts the length and re-clamps the authored blend values.
func (c *Clip) SetEndTime(v float64) {
	if math.Abs(c.startTime+c.Length()-v) <= timeEpsilon {
		return
	}
	c.SetLength(math.Max(v-c.startTime, 0))
	c.SetBlendOut(c.blendOut)
	c.SetBlendIn(c.blendIn)
}

// BlendIn is the cross-blend override when one is set, else the authored value.
func (c *Clip) BlendIn() float64 {
	if c.Variant() != VariantCrossBlend {
		return 0
	}
	if c.crossBlendIn > 0 {
		return c.crossBlendIn
	}
	return c.blendIn
}

// SetBlendIn clamps the authored value to [0, length-BlendOut].
func (c *Clip) SetBlendIn(v float64) {
	if c.Variant() != VariantCrossBlend {
		return
	}
	c.blendIn = blend.Clamp(v, 0, c.Length()-c.BlendOut())
}

func (c *Clip) BlendOut() float64 {
	if c.Variant() != VariantCrossBlend {
		return 0
	}
	if c.crossBlendOut > 0 {
		return c.crossBlendOut
	}
	return c.blendOut
}

// SetBlendOut clamps the authored value to [0, length-BlendIn].
func (c *Clip) SetBlendOut(v float64) {
	if c.Variant() != VariantCrossBlend {
		return
	}
	c.blendOut = blend.Clamp(v, 0, c.Length()-c.BlendIn())
}

// SetCrossBlendIn sets the override reported by BlendIn while positive.
// The value is not clamped against the clip length.
func (c *Clip) SetCrossBlendIn(v float64) {
	if c.Variant() == VariantCrossBlend {
		c.crossBlendIn = v
	}
}

// SetCrossBlendOut is the blend-out counterpart of SetCrossBlendIn.
func (c *Clip) SetCrossBlendOut(v float64) {
	if c.Variant() == VariantCrossBlend {
		c.crossBlendOut = v
	}
}

func (c *Clip) CrossBlendIn() float64 { return c.crossBlendIn }

func (c *Clip) CrossBlendOut() float64 { return c.crossBlendOut }

func (c *Clip) CanCrossBlend() bool { return c.Variant() == VariantCrossBlend }

// SubClip returns the looping content, if the clip's type has one.
func (c *Clip) SubClip() (SubClip, bool) {
	if c.subClip == nil {
		return SubClip{}, false
	}
	return *c.subClip, true
}

// SetSubClip replaces the looping content. It reports false for types
// without sub-clip support.
func (c *Clip) SetSubClip(s SubClip) bool {
	if c.info == nil || !c.info.SubClip {
		return false
	}
	c.subClip = &s
	return true
}

// Param returns a free-form action parameter.
func (c *Clip) Param(key string) (any, bool) {
	v, ok := c.params[key]
	return v, ok
}

func (c *Clip) SetParam(key string, v any) {
	if c.params == nil {
		c.params = make(map[string]any)
	}
	c.params[key] = v
}

// Params returns a copy of the action parameters.
func (c *Clip) Params() map[string]any { return maps.Clone(c.params) }

func (c *Clip) OnBeforeSerialize() { c.runBeforeSerialize(c) }

func (c *Clip) OnAfterDeserialize() { c.runAfterDeserialize(c) }

func (c *Clip) validate(_ *Asset, parent Directable) error {
	t, ok := parent.(*Track)
	if !ok || t == nil {
		c.track = nil
		return fmt.Errorf("clip %s: parent is %T, want *Track", c.id, parent)
	}
	c.track = t
	return c.runAfterValidate(c)
}

func (c *Clip) detach() {
	c.track = nil
}

func (c *Clip) postCreate(t *Track) {
	c.track = t
	c.runCreate(c)
}

// NextClip is the sibling starting soonest after this clip.
func (c *Clip) NextClip() *Clip {
	next, _ := NextSibling(c, c.Parent()).(*Clip)
	return next
}

// PreviousClip is the sibling starting latest before this clip.
func (c *Clip) PreviousClip() *Clip {
	prev, _ := PreviousSibling(c, c.Parent()).(*Clip)
	return prev
}

// Weight is the clip's blend weight at local time t.
func (c *Clip) Weight(t float64) float64 {
	return c.WeightBlend(t, c.BlendIn(), c.BlendOut())
}

// WeightWith uses the same duration for both ramps.
func (c *Clip) WeightWith(t, blendInOut float64) float64 {
	return c.WeightBlend(t, blendInOut, blendInOut)
}

func (c *Clip) WeightBlend(t, blendIn, blendOut float64) float64 {
	return blend.Weight(t, c.Length(), blendIn, blendOut)
}

// MatchSubClipLength sets the length to exactly one loop.
func (c *Clip) MatchSubClipLength() {
	if sub, ok := c.SubClip(); ok && sub.LoopLength() > 0 {
		c.SetLength(sub.LoopLength())
	}
}

// MatchPreviousSubClipLoop shortens the clip to the previous loop boundary.
func (c *Clip) MatchPreviousSubClipLoop() {
	if _, ok := c.SubClip(); ok {
		c.SetLength(PreviousLoopLocalTime(c))
	}
}

// MatchNextSubClipLoop extends the clip to the next loop boundary unless that
// would run into the following clip.
func (c *Clip) MatchNextSubClipLoop() {
	if _, ok := c.SubClip(); !ok {
		return
	}
	target := NextLoopLocalTime(c)
	next := c.NextClip()
	if next == nil || c.startTime+target <= next.StartTime() {
		c.SetLength(target)
	}
}
