package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/actiondirector/internal/actions"
	"github.com/ivlev/actiondirector/internal/director"
)

func (a *app) newCmd() *cobra.Command {
	var empty bool

	cmd := &cobra.Command{
		Use:   "new [output]",
		Short: "Create a new asset file (a demo scene unless --empty)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := director.GenerateAssetPath(a.cfg.SavePath)
			if len(args) == 1 {
				out = args[0]
			}
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				return err
			}

			asset := director.New(a.reg)
			if !empty {
				buildDemoScene(asset)
			}
			if err := director.WriteAsset(asset, out); err != nil {
				return fmt.Errorf("write asset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Asset written: %s (%.2fs, %d nodes)\n",
				out, asset.Length(), len(asset.Directables()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "Create an asset without groups")
	return cmd
}

// buildDemoScene fills an asset with one actor walking, moving and making noise.
func buildDemoScene(asset *director.Asset) {
	g := asset.AddGroup(actions.ActorGroup, "Hero")

	anim := g.AddTrack(actions.AnimationTrack, "")
	idle := anim.AddClip(actions.PlayAnimation, 0)
	idle.SetLength(2)
	idle.SetBlendOut(0.5)
	walk := anim.AddClip(actions.PlayAnimation, 1.5)
	walk.SetParam(actions.ParamClip, "walk")
	walk.SetSubClip(director.SubClip{Speed: 1, Length: 0.8})
	walk.SetLength(3.2)
	walk.SetCrossBlendIn(0.5)

	audio := g.AddTrack(actions.AudioTrack, "")
	steps := audio.AddClip(actions.PlaySound, 1.5)
	steps.SetParam(actions.ParamSound, "footsteps")
	steps.SetLength(3.2)

	events := g.AddTrack(actions.EventTrack, "")
	done := events.AddClip(actions.TriggerEvent, 4.7)
	done.SetParam(actions.ParamEvent, "arrived")

	asset.Validate()
}
