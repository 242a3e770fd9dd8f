package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/actiondirector/internal/actions"
	"github.com/ivlev/actiondirector/internal/director"
)

func scene(t *testing.T) *director.Asset {
	t.Helper()
	a := actions.NewAsset()
	g := a.AddGroup(actions.ActorGroup, "hero")
	anim := g.AddTrack(actions.AnimationTrack, "")
	require.NotNil(t, anim.AddClip(actions.PlayAnimation, 0))
	require.NotNil(t, anim.AddClip(actions.MoveTo, 2))
	events := g.AddTrack(actions.EventTrack, "")
	require.NotNil(t, events.AddClip(actions.TriggerEvent, 1.5))
	return a
}

func TestRun(t *testing.T) {
	a := scene(t)

	names, err := Run(a, "$.groups[*].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"hero"}, names)

	types, err := Run(a, "$..clips[*].type")
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{actions.PlayAnimation, actions.MoveTo, actions.TriggerEvent}, types)

	starts, err := Run(a, "$..clips[?(@.type == 'TriggerEvent')].start_time")
	require.NoError(t, err)
	assert.Equal(t, []any{1.5}, starts)
}

func TestRun_NoMatch(t *testing.T) {
	results, err := Run(scene(t), "$.nothing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRun_InvalidExpression(t *testing.T) {
	_, err := Run(scene(t), "$[")
	assert.ErrorContains(t, err, "invalid jsonpath")
}

func TestRender(t *testing.T) {
	out := Render([]any{"hero", map[string]any{"b": 1, "a": 2}})
	assert.Contains(t, out, `"hero"`)
	assert.Less(t, strings.Index(out, `"a"`), strings.Index(out, `"b"`), "keys are sorted")
}
