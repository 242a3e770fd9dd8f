package director

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleAsset(t *testing.T, reg *Registry) *Asset {
	t.Helper()
	a := New(reg)
	g := a.AddGroup("ActorGroup", "hero")
	g.SetActorID(7)
	g.SetLocked(true)

	anim := g.AddTrack("AnimTrack", "")
	anim.SetColor(color.NRGBA{R: 10, G: 20, B: 30, A: 200})
	walk := anim.AddClip("Anim", 1)
	walk.SetLength(3)
	walk.SetBlendIn(0.5)
	walk.SetCrossBlendOut(0.75)
	walk.SetSubClip(SubClip{Offset: 0.25, Speed: 2, Length: 1})
	walk.SetParam("clip", "walk")

	muted := g.AddTrack("AnimTrack", "muted")
	muted.AddClip("Move", 2).SetLength(10)
	muted.SetActive(false)

	a.SetViewTimeMax(8)
	a.Validate()
	return a
}

func TestWriteReadAsset_RoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			reg := testRegistry(t)
			a := buildSampleAsset(t, reg)
			path := filepath.Join(t.TempDir(), "scene"+ext)

			require.NoError(t, WriteAsset(a, path))
			loaded, err := ReadAsset(path, reg)
			require.NoError(t, err)

			assert.Equal(t, 4.0, loaded.Length(), "inactive track excluded")
			assert.Equal(t, a.ViewTimeMax(), loaded.ViewTimeMax())
			require.Len(t, loaded.Groups(), 1)

			g := loaded.Groups()[0]
			orig := a.Groups()[0]
			assert.Equal(t, orig.ID(), g.ID())
			assert.Equal(t, "hero", g.Name())
			assert.Equal(t, 7, g.ActorID())
			assert.True(t, g.IsLocked())

			require.Len(t, g.Tracks(), 2)
			anim, muted := g.Tracks()[0], g.Tracks()[1]
			assert.Equal(t, "Animation Track", anim.Name())
			assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 200}, anim.Color())
			assert.False(t, muted.IsActive())

			require.Len(t, anim.Clips(), 1)
			walk := anim.Clips()[0]
			assert.Equal(t, orig.Tracks()[0].Clips()[0].ID(), walk.ID())
			assert.Equal(t, 1.0, walk.StartTime())
			assert.Equal(t, 3.0, walk.Length())
			assert.Equal(t, 0.5, walk.BlendIn())
			assert.Equal(t, 0.75, walk.BlendOut())
			sub, ok := walk.SubClip()
			require.True(t, ok)
			assert.Equal(t, SubClip{Offset: 0.25, Speed: 2, Length: 1}, sub)
			v, _ := walk.Param("clip")
			assert.Equal(t, "walk", v)

			assert.Same(t, loaded, walk.Root())
			assert.Len(t, loaded.Directables(), 5)
		})
	}
}

func TestDeserialize_SkipsUnknownTypes(t *testing.T) {
	doc := &Document{
		Version: DocumentVersion,
		Groups: []GroupDocument{
			{Type: "Nope", Name: "lost", Tracks: []TrackDocument{{Type: "AnimTrack"}}},
			{Type: "ActorGroup", Name: "kept", Tracks: []TrackDocument{
				{Type: "AnimTrack", Clips: []ClipDocument{
					{Type: "Ghost", StartTime: 1, Length: 9},
					{Type: "Anim", StartTime: 0, Length: 2},
				}},
				{Type: "Missing"},
			}},
		},
	}

	a, err := Deserialize(doc, testRegistry(t))
	require.NoError(t, err)

	require.Len(t, a.Groups(), 1)
	g := a.Groups()[0]
	assert.Equal(t, "kept", g.Name())
	require.Len(t, g.Tracks(), 1)
	assert.Len(t, g.Tracks()[0].Clips(), 1)
	assert.Equal(t, 2.0, a.Length())
	assert.True(t, g.IsActive(), "missing active flag defaults to true")
}

func TestDeserialize_MissingViewWindowUsesDefaults(t *testing.T) {
	reg := testRegistry(t)

	a, err := Deserialize(&Document{Version: DocumentVersion, Length: 3}, reg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.ViewTimeMin())
	assert.Equal(t, 5.0, a.ViewTimeMax())

	a, err = Deserialize(&Document{ViewTimeMin: 2, ViewTimeMax: 2.1}, reg)
	require.NoError(t, err)
	assert.InDelta(t, 2.25, a.ViewTimeMax(), 1e-9, "window keeps its minimum span")
}

func TestDocument_Clone(t *testing.T) {
	doc := Serialize(buildSampleAsset(t, testRegistry(t)))
	doc.Groups[0].Tracks[0].Clips[0].Params["nested"] = map[string]any{"k": []any{1.0}}

	cp := doc.Clone()
	require.Equal(t, doc, cp)

	cp.Groups[0].Name = "changed"
	cp.Groups[0].Tracks[0].Clips[0].SubClip.Speed = 9
	cp.Groups[0].Tracks[0].Clips[0].Params["clip"] = "run"
	cp.Groups[0].Tracks[0].Clips[0].Params["nested"].(map[string]any)["k"].([]any)[0] = 2.0

	orig := doc.Groups[0].Tracks[0].Clips[0]
	assert.Equal(t, "hero", doc.Groups[0].Name)
	assert.Equal(t, 2.0, orig.SubClip.Speed)
	assert.Equal(t, "walk", orig.Params["clip"])
	assert.Equal(t, 1.0, orig.Params["nested"].(map[string]any)["k"].([]any)[0])

	assert.Nil(t, (*Document)(nil).Clone())
}

func TestDeserialize_Errors(t *testing.T) {
	reg := testRegistry(t)

	_, err := Deserialize(nil, reg)
	assert.Error(t, err)

	_, err = Deserialize(&Document{Version: "9.9"}, reg)
	assert.ErrorContains(t, err, "unsupported document version")

	_, err = Deserialize(&Document{Groups: []GroupDocument{
		{Type: "ActorGroup", Tracks: []TrackDocument{{Type: "AnimTrack", Color: "red"}}},
	}}, reg)
	assert.ErrorContains(t, err, "invalid color")

	_, err = Decode([]byte("{not json"), FormatJSON, reg)
	assert.Error(t, err)

	_, err = ReadAsset(filepath.Join(t.TempDir(), "missing.yaml"), reg)
	assert.Error(t, err)
}

func TestSerialize_RunsHooks(t *testing.T) {
	reg := testRegistry(t)
	var before, after int
	require.NoError(t, reg.Register(TypeInfo{
		Name: "HookGroup",
		Kind: KindGroup,
		Hooks: Hooks{
			BeforeSerialize:  func(Directable) { before++ },
			AfterDeserialize: func(Directable) { after++ },
		},
	}))

	a := New(reg)
	require.NotNil(t, a.AddGroup("HookGroup", ""))

	data, err := Encode(a, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 1, before)

	after = 0
	_, err = Decode(data, FormatYAML, reg)
	require.NoError(t, err)
	assert.Equal(t, 2, after, "once while loading, once in the first validation")
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 128, A: 255}, c)

	c, err = parseColor("#01020304")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, c)
	assert.Equal(t, "#01020304", formatColor(c))

	_, err = parseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("noext"))

	_, err := EncodeDocument(&Document{}, Format("xml"))
	assert.Error(t, err)
}
