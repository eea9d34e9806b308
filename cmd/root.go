package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/shady/engine"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/testbed"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath     string
	logLevel       string
	preset         int
	abortOnGLError bool
	watch          bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "shady [<vertshader> <fragshader>]",
		Short: "Interactive OpenGL shading viewer",
		Long: `Shady draws a sphere and a square with a choice of shading programs
(per-vertex colour, Phong, texturing, bump and parallax mapping) and lets
the view, the models and the light be dragged with the mouse.

An optional vertex/fragment shader pair replaces the default program.`,
		Args:          cobra.MatchAll(cobra.RangeArgs(0, 2), validateShaderArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.config(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), config)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (o *rootOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.configPath, "config", "c", "", "TOML configuration file")
	flags.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.IntVar(&o.preset, "preset", 0, "placement preset applied at startup (1-3)")
	flags.BoolVar(&o.abortOnGLError, "abort-on-gl-error", false, "stop on the first frame that raises a GL error")
	flags.BoolVar(&o.watch, "watch", false, "reload shaders and images when their files change")
}

func validateShaderArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return fmt.Errorf("a custom program needs both <vertshader> and <fragshader>")
	}
	return nil
}

// config loads the file, if any, and lays the command line over it.
func (o *rootOptions) config(cmd *cobra.Command, args []string) (*engine.ApplicationConfig, error) {
	config := engine.DefaultApplicationConfig()
	if o.configPath != "" {
		c, err := engine.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		config = c
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		config.Log.Level = o.logLevel
	}
	if flags.Changed("preset") {
		config.Scene.Preset = o.preset
	}
	if flags.Changed("abort-on-gl-error") {
		config.Renderer.AbortOnGLError = o.abortOnGLError
	}
	if flags.Changed("watch") {
		config.Assets.Watch = o.watch
	}
	if len(args) == 2 {
		config.Assets.VertexShader = args[0]
		config.Assets.FragmentShader = args[1]
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func run(ctx context.Context, config *engine.ApplicationConfig) error {
	viewer := testbed.NewViewer(config)
	eng, err := engine.New(viewer.Game)
	if err != nil {
		return err
	}
	if err := eng.Initialize(); err != nil {
		core.LogError("startup failed: %v", err)
		_ = eng.Shutdown()
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		eng.Stop()
	}()

	runErr := eng.Run()
	core.LogInfo("Drew %d frames", viewer.Frames())
	if err := eng.Shutdown(); err != nil {
		core.LogWarn("shutdown: %v", err)
	}
	return runErr
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
