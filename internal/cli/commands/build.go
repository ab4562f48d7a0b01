package commands

import (
	"github.com/PatrickMcKenzier/microbundle/internal/engine"
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [entries...]",
		Short: "Bundle the package once and report output sizes",
		Long: `Bundle the package for every requested format.

Entries default to the manifest's "source" field or a conventional index
file. One bundle is produced per entry and format, written next to the
manifest's "main" path, and the run ends with a per-file size report.`,
		Example: `  # Bundle using the manifest's source and main fields
  microbundle build

  # Bundle two entries as ES modules only
  microbundle build src/index.js src/worker.js --format es

  # Bundle all dependencies into the output
  microbundle build --external none

  # Skip minification
  microbundle build --compress=false`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args)
		},
	}

	addBuildFlags(cmd, false)

	return cmd
}

// addBuildFlags registers the options shared by build and watch. The
// defaults shown in help are documentation only: values reach the
// configuration through the flag layer solely when explicitly set.
func addBuildFlags(cmd *cobra.Command, watch bool) {
	cmd.Flags().StringP("format", "f", "", "Comma-separated output formats (modern,es,cjs,umd)")
	cmd.Flags().StringP("output", "o", "", "Destination path or directory")
	cmd.Flags().String("name", "", "Module name for umd globals")
	cmd.Flags().String("external", "", `Extra comma-separated externals, "all" or "none"`)
	cmd.Flags().String("globals", "", "External-to-global bindings (react=React,...)")
	cmd.Flags().String("alias", "", "Import specifier aliases (react=preact/compat,...)")
	cmd.Flags().String("define", "", "Compile-time replacements (key=value,...)")
	cmd.Flags().String("target", "", "Environment descriptor (es2017, esmodules, node12, ...)")
	cmd.Flags().String("platform", "", "Resolution platform (browser or node)")
	cmd.Flags().String("jsx", "", "JSX factory name")
	cmd.Flags().String("jsx-fragment", "", "JSX fragment factory name")
	cmd.Flags().Bool("compress", !watch, "Minify output")
	cmd.Flags().Bool("sourcemap", true, "Emit source maps")
	cmd.Flags().Bool("strict", false, "Emit strict-mode output")
	cmd.Flags().Bool("css-modules", false, "Force CSS-module treatment for all stylesheets")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if err := cmdCtx.Cfg.ValidateProjectDir(); err != nil {
		return err
	}
	opts, err := cmdCtx.Cfg.ToBuildOptions(args, false)
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

	rep, err := eng.Run(cmd.Context())
	if err != nil {
		return err
	}

	return r.RenderSummary(summarize(rep, opts.Cwd))
}
