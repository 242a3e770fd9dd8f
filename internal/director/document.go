package director

import (
	"fmt"
	"image/color"
	"maps"
	"math"
)

// DocumentVersion is written into every serialized asset.
const DocumentVersion = "1.0"

// Document is the plain structured form of an Asset.
type Document struct {
	Version     string          `yaml:"version" json:"version"`
	Length      float64         `yaml:"length" json:"length"`
	ViewTimeMin float64         `yaml:"view_time_min" json:"view_time_min"`
	ViewTimeMax float64         `yaml:"view_time_max" json:"view_time_max"`
	RangeMin    float64         `yaml:"range_min" json:"range_min"`
	RangeMax    float64         `yaml:"range_max" json:"range_max"`
	Groups      []GroupDocument `yaml:"groups" json:"groups"`
}

type GroupDocument struct {
	ID        string          `yaml:"id" json:"id"`
	Type      string          `yaml:"type" json:"type"`
	Name      string          `yaml:"name" json:"name"`
	Active    *bool           `yaml:"active,omitempty" json:"active,omitempty"`
	Collapsed bool            `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Locked    bool            `yaml:"locked,omitempty" json:"locked,omitempty"`
	ActorID   int             `yaml:"actor_id,omitempty" json:"actor_id,omitempty"`
	Tracks    []TrackDocument `yaml:"tracks" json:"tracks"`
}

type TrackDocument struct {
	ID     string         `yaml:"id" json:"id"`
	Type   string         `yaml:"type" json:"type"`
	Name   string         `yaml:"name" json:"name"`
	Active *bool          `yaml:"active,omitempty" json:"active,omitempty"`
	Locked bool           `yaml:"locked,omitempty" json:"locked,omitempty"`
	Color  string         `yaml:"color,omitempty" json:"color,omitempty"` // #rrggbbaa
	Clips  []ClipDocument `yaml:"clips" json:"clips"`
}

type ClipDocument struct {
	ID            string         `yaml:"id" json:"id"`
	Type          string         `yaml:"type" json:"type"`
	Name          string         `yaml:"name" json:"name"`
	StartTime     float64        `yaml:"start_time" json:"start_time"`
	Length        float64        `yaml:"length" json:"length"`
	BlendIn       float64        `yaml:"blend_in,omitempty" json:"blend_in,omitempty"`
	BlendOut      float64        `yaml:"blend_out,omitempty" json:"blend_out,omitempty"`
	CrossBlendIn  float64        `yaml:"cross_blend_in,omitempty" json:"cross_blend_in,omitempty"`
	CrossBlendOut float64        `yaml:"cross_blend_out,omitempty" json:"cross_blend_out,omitempty"`
	SubClip       *SubClip       `yaml:"sub_clip,omitempty" json:"sub_clip,omitempty"`
	Params        map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Groups = make([]GroupDocument, len(d.Groups))
	for i, gd := range d.Groups {
		gd.Active = clonePtr(gd.Active)
		tracks := make([]TrackDocument, len(gd.Tracks))
		for j, td := range gd.Tracks {
			td.Active = clonePtr(td.Active)
			clips := make([]ClipDocument, len(td.Clips))
			for k, cd := range td.Clips {
				cd.SubClip = clonePtr(cd.SubClip)
				cd.Params = cloneParams(cd.Params)
				clips[k] = cd
			}
			td.Clips = clips
			tracks[j] = td
		}
		gd.Tracks = tracks
		out.Groups[i] = gd
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneParams(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the nested containers produced by the YAML and JSON decoders.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneParams(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Serialize runs the pre-serialize hooks and converts the asset into a Document.
// Groups, tracks and clips keep their insertion order.
func Serialize(a *Asset) *Document {
	a.OnBeforeSerialize()

	doc := &Document{
		Version:     DocumentVersion,
		Length:      a.length,
		ViewTimeMin: a.viewTimeMin,
		ViewTimeMax: a.viewTimeMax,
		RangeMin:    a.rangeMin,
		RangeMax:    a.rangeMax,
		Groups:      make([]GroupDocument, 0, len(a.groups)),
	}

	for _, g := range a.groups {
		gd := GroupDocument{
			ID:        g.id,
			Type:      g.TypeName(),
			Name:      g.name,
			Active:    boolPtr(g.active),
			Collapsed: g.collapsed,
			Locked:    g.locked,
			ActorID:   g.actorID,
			Tracks:    make([]TrackDocument, 0, len(g.tracks)),
		}
		for _, t := range g.tracks {
			td := TrackDocument{
				ID:     t.id,
				Type:   t.TypeName(),
				Name:   t.name,
				Active: boolPtr(t.active),
				Locked: t.locked,
				Color:  formatColor(t.color),
				Clips:  make([]ClipDocument, 0, len(t.clips)),
			}
			for _, c := range t.clips {
				cd := ClipDocument{
					ID:            c.id,
					Type:          c.TypeName(),
					Name:          c.name,
					StartTime:     c.startTime,
					Length:        c.Length(),
					BlendIn:       c.blendIn,
					BlendOut:      c.blendOut,
					CrossBlendIn:  c.crossBlendIn,
					CrossBlendOut: c.crossBlendOut,
					Params:        maps.Clone(c.params),
				}
				if c.subClip != nil {
					sub := *c.subClip
					cd.SubClip = &sub
				}
				td.Clips = append(td.Clips, cd)
			}
			gd.Tracks = append(gd.Tracks, td)
		}
		doc.Groups = append(doc.Groups, gd)
	}

	return doc
}

// Deserialize builds an Asset from a Document. Nodes whose type the registry
// cannot resolve are logged and skipped together with their children.
// Attachability and uniqueness are not re-checked. A missing view window
// keeps the defaults of a new asset. The post-deserialize hook runs on every
// node before the first validation.
func Deserialize(doc *Document, reg *Registry) (*Asset, error) {
	if doc == nil {
		return nil, fmt.Errorf("deserialize: nil document")
	}
	if doc.Version != "" && doc.Version != DocumentVersion {
		return nil, fmt.Errorf("deserialize: unsupported document version %q", doc.Version)
	}

	a := newAsset(reg)
	a.length = math.Max(doc.Length, minAssetLength)
	a.viewTimeMin = math.Max(doc.ViewTimeMin, 0)
	if doc.ViewTimeMax > 0 {
		a.viewTimeMax = doc.ViewTimeMax
	}
	if a.viewTimeMax < a.viewTimeMin+minViewSpan {
		a.viewTimeMax = a.viewTimeMin + minViewSpan
	}
	a.rangeMin = math.Max(doc.RangeMin, 0)
	a.rangeMax = math.Max(doc.RangeMax, a.length)

	var loaded []Directable
	for _, gd := range doc.Groups {
		info, ok := a.registry.resolve(gd.Type, KindGroup)
		if !ok {
			continue
		}
		g := newGroup(info)
		setID(&g.node, gd.ID)
		g.name = gd.Name
		g.active = boolOr(gd.Active, true)
		g.collapsed = gd.Collapsed
		g.locked = gd.Locked
		g.actorID = gd.ActorID
		g.root = a
		a.groups = append(a.groups, g)
		loaded = append(loaded, g)

		for _, td := range gd.Tracks {
			info, ok := a.registry.resolve(td.Type, KindTrack)
			if !ok {
				continue
			}
			t := newTrack(info)
			setID(&t.node, td.ID)
			t.name = td.Name
			t.active = boolOr(td.Active, true)
			t.locked = td.Locked
			if td.Color != "" {
				col, err := parseColor(td.Color)
				if err != nil {
					return nil, fmt.Errorf("deserialize track %s: %w", t.id, err)
				}
				t.color = col
			}
			t.group = g
			g.tracks = append(g.tracks, t)
			loaded = append(loaded, t)

			for _, cd := range td.Clips {
				info, ok := a.registry.resolve(cd.Type, KindClip)
				if !ok {
					continue
				}
				c := newClip(info)
				setID(&c.node, cd.ID)
				c.name = cd.Name
				c.startTime = math.Max(cd.StartTime, 0)
				c.SetLength(cd.Length)
				c.blendIn = math.Max(cd.BlendIn, 0)
				c.blendOut = math.Max(cd.BlendOut, 0)
				c.crossBlendIn = cd.CrossBlendIn
				c.crossBlendOut = cd.CrossBlendOut
				if cd.SubClip != nil && info.SubClip {
					sub := *cd.SubClip
					c.subClip = &sub
				}
				c.params = maps.Clone(cd.Params)
				c.track = t
				t.clips = append(t.clips, c)
				loaded = append(loaded, c)
			}
		}
	}

	for _, d := range loaded {
		if err := afterDeserialize(d); err != nil {
			logger().Warn("post-deserialize hook failed", "node", d.ID(), "type", d.TypeName(), "err", err)
		}
	}

	a.Init()
	return a, nil
}

func setID(n *node, id string) {
	if id != "" {
		n.id = id
	}
}

func boolPtr(v bool) *bool { return &v }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func formatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// parseColor accepts #rrggbb and #rrggbbaa.
func parseColor(s string) (color.NRGBA, error) {
	var c color.NRGBA
	switch len(s) {
	case 7:
		c.A = 255
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return c, fmt.Errorf("invalid color %q: %w", s, err)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return c, fmt.Errorf("invalid color %q: %w", s, err)
		}
	default:
		return c, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}
