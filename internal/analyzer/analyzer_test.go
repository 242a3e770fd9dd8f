package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/actiondirector/internal/actions"
	"github.com/ivlev/actiondirector/internal/director"
)

func lintScene(t *testing.T) (*director.Asset, *director.Clip) {
	t.Helper()
	a := actions.NewAsset()
	g := a.AddGroup(actions.ActorGroup, "")

	anim := g.AddTrack(actions.AnimationTrack, "")
	walk := anim.AddClip(actions.PlayAnimation, 0)
	require.NotNil(t, walk)
	walk.SetLength(2.5)
	walk.SetCrossBlendIn(1.5)
	walk.SetCrossBlendOut(1.5)

	moves := g.AddTrack(actions.AnimationTrack, "moves")
	require.NotNil(t, moves.AddClip(actions.MoveTo, 0))
	require.NotNil(t, moves.AddClip(actions.MoveTo, 1), "AddClip does not check overlap with earlier clips")

	a.Validate()
	return a, walk
}

func TestOverlapChecker(t *testing.T) {
	a, _ := lintScene(t)

	findings := OverlapChecker{}.Check(a)
	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, "overlap", f.Rule)
		assert.Equal(t, SeverityError, f.Severity)
		assert.Equal(t, actions.MoveTo, f.Node.TypeName())
	}
}

func TestBlendChecker(t *testing.T) {
	a, walk := lintScene(t)

	findings := BlendChecker{}.Check(a)
	require.Len(t, findings, 1)
	assert.Equal(t, director.Directable(walk), findings[0].Node)
	assert.Equal(t, SeverityInfo, findings[0].Severity)

	walk.SetCrossBlendIn(0)
	walk.SetCrossBlendOut(0)
	assert.Empty(t, BlendChecker{}.Check(a))
}

func TestSubClipChecker(t *testing.T) {
	a, walk := lintScene(t)

	findings := SubClipChecker{}.Check(a)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "between loop boundaries 2.000 and 3.000")

	walk.MatchNextSubClipLoop()
	assert.Empty(t, SubClipChecker{}.Check(a))

	walk.SetSubClip(director.SubClip{Speed: 0, Length: 1})
	findings = SubClipChecker{}.Check(a)
	require.Len(t, findings, 1)
	assert.Equal(t, SeverityWarning, findings[0].Severity)
}

func TestFaultChecker(t *testing.T) {
	reg := actions.NewRegistry()
	require.NoError(t, reg.Register(director.TypeInfo{
		Name:         "BrokenTrack",
		Kind:         director.KindTrack,
		AttachableTo: []string{actions.ActorGroup},
		Hooks: director.Hooks{AfterValidate: func(director.Directable) error {
			return errors.New("missing rig")
		}},
	}))
	a := director.New(reg)
	g := a.AddGroup(actions.ActorGroup, "")
	require.NotNil(t, g.AddTrack("BrokenTrack", ""))

	findings := FaultChecker{}.Check(a)
	require.Len(t, findings, 1)
	assert.Equal(t, "missing rig", findings[0].Message)
	assert.Contains(t, findings[0].String(), "[error] faults track")
}

func TestNewChecker(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"overlap", false},
		{"blend", false},
		{"subclip", false},
		{"faults", false},
		{"all", false},
		{"", false}, // default
		{"contrast", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			checker, err := NewChecker(tt.variant)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownVariant)
				assert.Nil(t, checker)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, checker)
		})
	}
}

func TestNewChecker_AllCombines(t *testing.T) {
	a, _ := lintScene(t)

	checker, err := NewChecker("all")
	require.NoError(t, err)

	findings := checker.Check(a)
	require.Len(t, findings, 4)
	assert.Equal(t, "overlap", findings[0].Rule)
	assert.Equal(t, "blend", findings[2].Rule)
	assert.Equal(t, "subclip", findings[3].Rule)
}
