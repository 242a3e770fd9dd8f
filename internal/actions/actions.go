package actions

import (
	"image/color"

	"github.com/ivlev/actiondirector/internal/director"
)

// Built-in type names.
const (
	ActorGroup = "ActorGroup"

	ActionTrack    = "ActionTrack"
	AnimationTrack = "AnimationTrack"
	AudioTrack     = "AudioTrack"
	EventTrack     = "EventTrack"

	PlayAnimation = "PlayAnimation"
	MoveTo        = "MoveTo"
	PlaySound     = "PlaySound"
	TriggerEvent  = "TriggerEvent"
)

// Clip parameter keys.
const (
	ParamClip   = "clip"
	ParamTarget = "target"
	ParamSound  = "sound"
	ParamVolume = "volume"
	ParamEvent  = "event"
)

// Types returns the built-in type descriptors in registration order.
func Types() []director.TypeInfo {
	actorOnly := []string{ActorGroup}

	return []director.TypeInfo{
		{Name: ActorGroup, Kind: director.KindGroup, DisplayName: "Actor"},

		{Name: ActionTrack, Kind: director.KindTrack, Abstract: true, AttachableTo: actorOnly},
		{
			Name:         AnimationTrack,
			Kind:         director.KindTrack,
			AttachableTo: actorOnly,
			Color:        color.NRGBA{R: 102, G: 178, B: 255, A: 255},
		},
		{
			Name:         AudioTrack,
			Kind:         director.KindTrack,
			AttachableTo: actorOnly,
			Color:        color.NRGBA{R: 255, G: 191, B: 64, A: 255},
		},
		{
			Name:         EventTrack,
			Kind:         director.KindTrack,
			Unique:       true,
			AttachableTo: actorOnly,
			Color:        color.NRGBA{R: 191, G: 102, B: 255, A: 255},
		},

		{
			Name:          PlayAnimation,
			Kind:          director.KindClip,
			Category:      "Animation",
			Variant:       director.VariantCrossBlend,
			DefaultLength: 1,
			MinLength:     0.1,
			SubClip:       true,
			AttachableTo:  []string{AnimationTrack},
			Hooks: director.Hooks{
				Create:           setDefaultParam(ParamClip, "idle"),
				AfterDeserialize: repairSubClipSpeed,
			},
		},
		{
			Name:          MoveTo,
			Kind:          director.KindClip,
			Category:      "Transform",
			DisplayName:   "Move To",
			DefaultLength: 2,
			MinLength:     0.1,
			AttachableTo:  []string{AnimationTrack},
		},
		{
			Name:          PlaySound,
			Kind:          director.KindClip,
			Category:      "Audio",
			DefaultLength: 1,
			MinLength:     0.1,
			SubClip:       true,
			AttachableTo:  []string{AudioTrack},
			Hooks: director.Hooks{
				Create:           setDefaultParam(ParamVolume, 1.0),
				AfterDeserialize: repairSubClipSpeed,
			},
		},
		{
			Name:         TriggerEvent,
			Kind:         director.KindClip,
			Category:     "Events",
			Variant:      director.VariantSignal,
			AttachableTo: []string{EventTrack},
		},
	}
}

// Register adds the built-in types to reg.
func Register(reg *director.Registry) error {
	for _, info := range Types() {
		if err := reg.Register(info); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding only the built-in types.
func NewRegistry() *director.Registry {
	reg := director.NewRegistry()
	reg.MustRegister(Types()...)
	return reg
}

// NewAsset returns an empty asset bound to a fresh built-in registry.
func NewAsset() *director.Asset {
	return director.New(NewRegistry())
}

func setDefaultParam(key string, v any) func(director.Directable) {
	return func(d director.Directable) {
		c, ok := d.(*director.Clip)
		if !ok {
			return
		}
		if _, set := c.Param(key); !set {
			c.SetParam(key, v)
		}
	}
}

// repairSubClipSpeed resets a non-positive loop speed left by a hand-edited document.
func repairSubClipSpeed(d director.Directable) {
	c, ok := d.(*director.Clip)
	if !ok {
		return
	}
	sub, ok := c.SubClip()
	if !ok || sub.Speed > 0 {
		return
	}
	sub.Speed = 1
	c.SetSubClip(sub)
}
