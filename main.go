// whitted renders scenes with a recursive Whitted-style ray tracer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// renderOptions can come from a TOML file (--config); explicit flags win
type renderOptions struct {
	Scene     string `toml:"scene"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Depth     int    `toml:"depth"`
	Samples   int    `toml:"samples"`
	Workers   int    `toml:"workers"`
	Out       string `toml:"out"`
	Frames    int    `toml:"frames"`
	LightsOff []int  `toml:"lights_off"`
	Texture   string `toml:"texture"`
	Axes      bool   `toml:"axes"`
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		Scene:   "default",
		Width:   400,
		Height:  300,
		Depth:   4,
		Samples: 1,
		Out:     filepath.Join("output", "render.png"),
		Frames:  1,
	}
}

var cmdRoot = &cobra.Command{
	Use:           "whitted",
	Short:         "Recursive ray tracer",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	renderOpts = defaultRenderOptions()
	configPath string
)

var cmdRender = &cobra.Command{
	Use:   "render",
	Short: "Render a scene to a PNG or PPM file",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := renderOpts
		if configPath != "" {
			fileOpts, err := loadRenderOptions(configPath)
			if err != nil {
				return err
			}
			opts = mergeRenderOptions(fileOpts, renderOpts, cmd.Flags())
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		paths, err := runRender(ctx, opts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	f := cmdRender.Flags()
	f.StringVar(&renderOpts.Scene, "scene", renderOpts.Scene, "Built-in scene name, file:<name> or path to a .toml scene")
	f.IntVar(&renderOpts.Width, "width", renderOpts.Width, "Image width in pixels")
	f.IntVar(&renderOpts.Height, "height", renderOpts.Height, "Image height in pixels")
	f.IntVar(&renderOpts.Depth, "depth", renderOpts.Depth, "Maximum reflection bounces")
	f.IntVar(&renderOpts.Samples, "samples", renderOpts.Samples, "Subpixel samples per axis (N×N rays per pixel)")
	f.IntVar(&renderOpts.Workers, "workers", renderOpts.Workers, "Tiles rendered in parallel (0 = CPU count)")
	f.StringVar(&renderOpts.Out, "out", renderOpts.Out, "Output file (.png or .ppm)")
	f.IntVar(&renderOpts.Frames, "frames", renderOpts.Frames, "Number of animation frames to render")
	f.IntSliceVar(&renderOpts.LightsOff, "lights-off", nil, "Indices of lights to switch off")
	f.StringVar(&renderOpts.Texture, "texture", "", "Image applied to every opaque object")
	f.BoolVar(&renderOpts.Axes, "axes", false, "Overlay the world axes")
	f.StringVar(&configPath, "config", "", "TOML file with render options")
}

var cmdScenes = &cobra.Command{
	Use:   "scenes",
	Short: "List built-in and file scenes",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := scene.ListAllScenes()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, group := range all.Groups {
			fmt.Fprintf(w, "%s:\n", group.Name)
			for _, info := range group.Scenes {
				if info.Description != "" {
					fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description)
				} else {
					fmt.Fprintf(w, "  %s\n", info.ID)
				}
			}
		}
		return nil
	},
}

func loadRenderOptions(path string) (renderOptions, error) {
	opts := defaultRenderOptions()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, xerrors.Errorf("while reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, xerrors.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return opts, nil
}

// mergeRenderOptions overlays the flags the user set explicitly onto base
func mergeRenderOptions(base, flagOpts renderOptions, flags *pflag.FlagSet) renderOptions {
	out := base
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("scene", func() { out.Scene = flagOpts.Scene })
	set("width", func() { out.Width = flagOpts.Width })
	set("height", func() { out.Height = flagOpts.Height })
	set("depth", func() { out.Depth = flagOpts.Depth })
	set("samples", func() { out.Samples = flagOpts.Samples })
	set("workers", func() { out.Workers = flagOpts.Workers })
	set("out", func() { out.Out = flagOpts.Out })
	set("frames", func() { out.Frames = flagOpts.Frames })
	set("lights-off", func() { out.LightsOff = flagOpts.LightsOff })
	set("texture", func() { out.Texture = flagOpts.Texture })
	set("axes", func() { out.Axes = flagOpts.Axes })
	return out
}

// runRender renders opts.Frames frames and returns the files written
func runRender(ctx context.Context, opts renderOptions) ([]string, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, xerrors.Errorf("image size %dx%d must be positive", opts.Width, opts.Height)
	}
	ext := strings.ToLower(filepath.Ext(opts.Out))
	if ext != ".png" && ext != ".ppm" {
		return nil, xerrors.Errorf("output %s: extension must be .png or .ppm", opts.Out)
	}

	s, err := loaders.ResolveScene(opts.Scene, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	glog.Infof("Rendering scene %q at %dx%d, depth %d, %d samples per axis", s.Name, opts.Width, opts.Height, opts.Depth, opts.Samples)

	for _, idx := range opts.LightsOff {
		l := s.Light(scene.LightID(idx))
		if l == nil {
			return nil, xerrors.Errorf("--lights-off: scene %q has no light %d", s.Name, idx)
		}
		l.On = false
	}

	if opts.Texture != "" {
		tex, err := loaders.LoadTexture(opts.Texture)
		if err != nil {
			return nil, err
		}
		n := s.RetextureAll(tex)
		glog.Infof("Applied %s to %d objects", opts.Texture, n)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Out), 0o755); err != nil {
		return nil, xerrors.Errorf("while creating output directory: %w", err)
	}

	rt := renderer.NewRayTracer(s.Background)
	rt.Workers = opts.Workers

	frames := opts.Frames
	if frames < 1 {
		frames = 1
	}
	animator := scene.NewAnimator(opts.Scene, s)
	if frames > 1 && animator == nil {
		glog.Warningf("Scene %q is static; rendering %d identical frames", s.Name, frames)
	}

	var paths []string
	for frame := 0; frame < frames; frame++ {
		if frame > 0 && animator != nil {
			s.Apply(animator.Next())
		}

		fb := renderer.NewImageFrameBuffer(opts.Width, opts.Height)
		stats, err := rt.RenderScene(ctx, fb, opts.Depth, s, opts.Samples)
		if err != nil {
			return paths, xerrors.Errorf("while rendering frame %d: %w", frame, err)
		}
		if opts.Axes {
			if p, ok := s.Camera.(renderer.Projector); ok {
				fb.DrawAxes(p, core.Vec3{}, 1)
			}
		}

		path := framePath(opts.Out, frame, frames)
		if err := writeImage(fb, path); err != nil {
			return paths, err
		}
		glog.Infof("Frame %d: %v, average luminance %.3f", frame, stats, renderer.CalculateAverageLuminance(fb.Image()))
		paths = append(paths, path)
	}

	return paths, nil
}

// framePath numbers frames as render_0001.png when more than one is rendered
func framePath(out string, frame, frames int) string {
	if frames <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(out, ext), frame, ext)
}

func writeImage(fb *renderer.ImageFrameBuffer, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return fb.SavePNG(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("while creating %s: %w", path, err)
	}
	if err := loaders.EncodePPM(f, fb.Image()); err != nil {
		f.Close()
		return xerrors.Errorf("while writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return xerrors.Errorf("while closing %s: %w", path, err)
	}
	return nil
}

func main() {
	flag.Set("logtostderr", "true")
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	// glog complains unless the standard flag set counts as parsed
	cmdRoot.PersistentPreRun = func(*cobra.Command, []string) { flag.CommandLine.Parse(nil) }
	defer glog.Flush()

	cmdRoot.AddCommand(cmdRender, cmdScenes)

	if err := cmdRoot.Execute(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}
