// Command ikbake is the CLI driver that replaces the GUI panel and
// worker-thread glue the core library leaves out of scope: it resolves
// options (flags layered over an optional YAML file), builds the
// structured logger, loads the model and motion, and runs the bake pool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nagadomi/motion-supporter/internal/bake"
	"github.com/nagadomi/motion-supporter/internal/config"
	"github.com/nagadomi/motion-supporter/internal/logging"
	"github.com/nagadomi/motion-supporter/internal/motion"
	"github.com/nagadomi/motion-supporter/internal/skeleton"
)

// loadModelAndMotion is the model/motion file parsing collaborator the
// core explicitly treats as external: this build ships no
// PMX/VMD codec, so the default implementation reports that plainly rather
// than faking a parse. A deployment that owns a codec replaces this var.
var loadModelAndMotion = func(opts config.Options) (*skeleton.Model, *motion.Motion, error) {
	return nil, nil, fmt.Errorf("ikbake: no model/motion codec configured for %q/%q (file parsing is an external collaborator, not part of this module)", opts.ModelPath, opts.MotionPath)
}

// saveMotion is the corresponding external write-back collaborator.
var saveMotion = func(opts config.Options, mot *motion.Motion) error {
	return fmt.Errorf("ikbake: no motion writer configured for %q (file writing is an external collaborator, not part of this module)", opts.OutputPath)
}

func main() {
	var opts config.Options
	var configPath string

	root := &cobra.Command{
		Use:   "ikbake",
		Short: "Bake IK-driven motion into FK keyframes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, configPath)
		},
	}

	flags := root.Flags()
	flags.StringVar(&configPath, "config", "", "path to a YAML options file")
	flags.StringVar(&opts.MotionPath, "motion", "", "input motion path")
	flags.StringVar(&opts.ModelPath, "model", "", "input model path")
	flags.StringVar(&opts.OutputPath, "output", "", "output motion path")
	flags.IntVar(&opts.MaxWorkers, "max-workers", 0, "worker cap (0 = auto)")
	flags.BoolVar(&opts.ExecSaving, "exec-saving", false, "restrict to a single worker")
	flags.StringVar(&opts.LoggingLevel, "log-level", "info", "debug, info, or error")
	flags.BoolVar(&opts.MirrorLogFile, "mirror-log", false, "also write console output to a .log file next to the output motion")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(flagOpts config.Options, configPath string) error {
	opts := flagOpts
	if configPath != "" {
		fileOpts, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("ikbake: loading config: %w", err)
		}
		opts = fileOpts.Merge(flagOpts)
	}

	mirrorPath := ""
	if opts.MirrorLogFile && opts.OutputPath != "" {
		mirrorPath = logging.MirrorPath(opts.OutputPath)
	}
	logger, err := logging.New(opts.LoggingLevel, mirrorPath)
	if err != nil {
		return fmt.Errorf("ikbake: building logger: %w", err)
	}
	defer logger.Sync()

	model, mot, err := loadModelAndMotion(opts)
	if err != nil {
		return err
	}

	if err := bake.Run(context.Background(), model, mot, logger, opts.ResolvedMaxWorkers()); err != nil {
		return fmt.Errorf("ikbake: %w", err)
	}

	return saveMotion(opts, mot)
}
