package director

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(TypeInfo{Name: "ActorGroup", Kind: KindGroup}))
	require.NoError(t, reg.Register(TypeInfo{Name: "OtherGroup", Kind: KindGroup}))
	require.NoError(t, reg.Register(TypeInfo{Name: "BaseGroup", Kind: KindGroup, Abstract: true}))

	require.NoError(t, reg.Register(TypeInfo{Name: "BaseTrack", Kind: KindTrack, Abstract: true, AttachableTo: []string{"ActorGroup"}}))
	require.NoError(t, reg.Register(TypeInfo{
		Name:         "AnimTrack",
		Kind:         KindTrack,
		AttachableTo: []string{"ActorGroup"},
		Color:        color.NRGBA{R: 200, G: 80, B: 40, A: 255},
	}))
	require.NoError(t, reg.Register(TypeInfo{Name: "EventTrack", Kind: KindTrack, Unique: true, AttachableTo: []string{"ActorGroup"}}))
	require.NoError(t, reg.Register(TypeInfo{Name: "OtherTrack", Kind: KindTrack, AttachableTo: []string{"OtherGroup"}}))

	require.NoError(t, reg.Register(TypeInfo{
		Name:          "Anim",
		Kind:          KindClip,
		Category:      "Animation",
		Variant:       VariantCrossBlend,
		DefaultLength: 2,
		SubClip:       true,
		AttachableTo:  []string{"AnimTrack"},
	}))
	require.NoError(t, reg.Register(TypeInfo{Name: "Move", Kind: KindClip, MinLength: 0.1}))
	require.NoError(t, reg.Register(TypeInfo{Name: "Signal", Kind: KindClip, Variant: VariantSignal, AttachableTo: []string{"EventTrack"}}))
	return reg
}

// newTestTrack returns an asset with one ActorGroup holding one AnimTrack.
func newTestTrack(t *testing.T) (*Asset, *Group, *Track) {
	t.Helper()
	a := New(testRegistry(t))
	g := a.AddGroup("ActorGroup", "actor")
	require.NotNil(t, g)
	track := g.AddTrack("AnimTrack", "anim")
	require.NotNil(t, track)
	return a, g, track
}

func addClip(t *testing.T, track *Track, typeName string, start, length float64) *Clip {
	t.Helper()
	c := track.AddClip(typeName, start)
	require.NotNil(t, c, "AddClip(%s, %.2f)", typeName, start)
	c.SetLength(length)
	track.Root().Validate()
	return c
}
