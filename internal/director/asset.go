package director

import (
	"math"
	"slices"
)

const (
	minAssetLength = 0.1
	minViewSpan    = 0.25
	defaultLength  = 5.0
)

// Asset is the root document. It owns its groups and keeps the flattened
// directables list rebuilt by Validate.
type Asset struct {
	registry *Registry
	groups   []*Group

	length      float64
	viewTimeMin float64
	viewTimeMax float64
	rangeMin    float64
	rangeMax    float64

	directables []Directable
	index       map[string]Directable
	faults      []NodeFault
}

// New creates an empty asset bound to a type registry and validates it once.
func New(reg *Registry) *Asset {
	a := newAsset(reg)
	a.Init()
	return a
}

func newAsset(reg *Registry) *Asset {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Asset{
		registry:    reg,
		length:      defaultLength,
		viewTimeMax: defaultLength,
		rangeMax:    defaultLength,
		index:       make(map[string]Directable),
	}
}

// Init runs the initial validation pass.
func (a *Asset) Init() {
	a.Validate()
}

func (a *Asset) Registry() *Registry { return a.registry }

// Groups returns the groups in insertion order.
func (a *Asset) Groups() []*Group { return slices.Clone(a.groups) }

// Directables returns the flattened list built by the last validation.
func (a *Asset) Directables() []Directable { return slices.Clone(a.directables) }

// Find resolves a node ID against the last validation pass.
func (a *Asset) Find(id string) (Directable, bool) {
	d, ok := a.index[id]
	return d, ok
}

// Faults returns the node faults recorded by the last validation pass.
func (a *Asset) Faults() []NodeFault { return slices.Clone(a.faults) }

func (a *Asset) Length() float64 { return a.length }

// SetLength sets the timeline length, floored at 0.1.
func (a *Asset) SetLength(v float64) {
	a.length = math.Max(v, minAssetLength)
}

func (a *Asset) ViewTimeMin() float64 { return a.viewTimeMin }

// SetViewTimeMin keeps the view window at least 0.25 wide.
func (a *Asset) SetViewTimeMin(v float64) {
	if a.viewTimeMax > 0 {
		a.viewTimeMin = math.Min(v, a.viewTimeMax-minViewSpan)
	}
}

func (a *Asset) ViewTimeMax() float64 { return a.viewTimeMax }

func (a *Asset) SetViewTimeMax(v float64) {
	a.viewTimeMax = math.Max(math.Max(v, a.viewTimeMin+minViewSpan), 0)
}

// ViewTime is the width of the view window.
func (a *Asset) ViewTime() float64 { return a.viewTimeMax - a.viewTimeMin }

func (a *Asset) RangeMin() float64 { return a.rangeMin }

func (a *Asset) SetRangeMin(v float64) {
	a.rangeMin = math.Max(v, 0)
}

func (a *Asset) RangeMax() float64 { return a.rangeMax }

// SetRangeMax never lets the range end before the timeline length.
func (a *Asset) SetRangeMax(v float64) {
	a.rangeMax = math.Max(v, a.length)
}

// UpdateMaxTime recomputes the length from clips of active tracks in active groups.
func (a *Asset) UpdateMaxTime() {
	t := 0.0
	for _, g := range a.groups {
		if !g.IsActive() {
			continue
		}
		for _, track := range g.tracks {
			if !track.IsActive() {
				continue
			}
			for _, c := range track.clips {
				if end := c.EndTime(); end > t {
					t = end
				}
			}
		}
	}
	a.SetLength(t)
}

// AddGroup appends a group of the registered type. It returns nil when the
// type is unknown, not a group type or abstract.
func (a *Asset) AddGroup(typeName, name string) *Group {
	info, ok := a.registry.resolve(typeName, KindGroup)
	if !ok || info.Abstract {
		return nil
	}

	g := newGroup(info)
	if name == "" {
		name = "New Group"
	}
	g.name = name
	g.root = a
	a.groups = append(a.groups, g)
	g.runCreate(g)

	a.Validate()
	return g
}

// DeleteGroup removes a group and everything below it.
func (a *Asset) DeleteGroup(g *Group) {
	if g == nil {
		return
	}
	i := slices.Index(a.groups, g)
	if i < 0 {
		return
	}
	a.groups = slices.Delete(a.groups, i, i+1)
	g.detach()
	a.Validate()
}

// GroupIndex returns the insertion position of g, or -1.
func (a *Asset) GroupIndex(g *Group) int {
	return slices.Index(a.groups, g)
}

// OnBeforeSerialize runs the pre-serialize hook of every node in the flattened list.
func (a *Asset) OnBeforeSerialize() {
	for _, d := range a.directables {
		d.OnBeforeSerialize()
	}
}
