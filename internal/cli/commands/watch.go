package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/PatrickMcKenzier/microbundle/internal/engine"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [entries...]",
		Short: "Rebuild bundles on every source change",
		Long: `Start one watcher per (entry, format) pair and rebuild on change.

Each rebuild reports the sizes of its refreshed outputs. Compression is
off by default to keep rebuilds fast. Watchers run until interrupted;
a build error from any watcher stops the whole run.`,
		Example: `  # Watch with the manifest's defaults
  microbundle watch

  # Watch one entry, ES module output only
  microbundle watch src/index.js --format es`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}

	addBuildFlags(cmd, true)

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if err := cmdCtx.Cfg.ValidateProjectDir(); err != nil {
		return err
	}
	opts, err := cmdCtx.Cfg.ToBuildOptions(args, true)
	if err != nil {
		return err
	}

	eng, err := engine.New(engine.Config{Options: opts, Logger: cmdCtx.Logger})
	if err != nil {
		return err
	}
	for _, w := range eng.Warnings() {
		r.Warn(w)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Println(r.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop."))

	return eng.Watch(ctx, func(rep *engine.Report) {
		_ = r.RenderSummary(summarize(rep, opts.Cwd))
	})
}
