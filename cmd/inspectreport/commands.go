package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lvillar/inspectreport"
	"github.com/lvillar/inspectreport/docspec"
	"github.com/lvillar/inspectreport/internal/config"
	"github.com/lvillar/inspectreport/internal/logging"
	"github.com/lvillar/inspectreport/mcp"
)

type app struct {
	cfgFile string
	envFile string
	verbose bool

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "inspectreport",
		Short:         "Render bilingual inspection reports to PDF",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (YAML)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "file with environment overrides")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.renderCmd(),
		a.validateCmd(),
		a.fontsCmd(),
		a.mcpCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, a.envFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	log, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) engine(extra ...inspectreport.Option) *inspectreport.Engine {
	opts := append(a.cfg.EngineOptions(),
		inspectreport.WithLogger(a.log),
		inspectreport.WithCreator("inspectreport "+version),
	)
	return inspectreport.New(append(opts, extra...)...)
}

func (a *app) renderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <inspection.{json,yaml}>",
		Short: "Render an inspection file to PDF",
		Long: `Render reads an inspection record and writes the PDF report.
The output defaults to the input name with a .pdf extension; "-" writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			doc, err := docspec.Load(in)
			if err != nil {
				return err
			}
			res, err := a.engine().Render(doc)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(res.PDF)
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(in, filepath.Ext(in)) + ".pdf"
			}
			if err := os.WriteFile(output, res.PDF, 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			a.log.Info().
				Str("output", output).
				Str("report_id", res.ReportID).
				Int("pages", res.Pages).
				Int("warnings", len(res.Diagnostics)).
				Msg("report written")
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d page(s), report id %s\n", output, res.Pages, res.ReportID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output PDF path, "-" for stdout`)
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <inspection>...",
		Short: "Check inspection files without rendering",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				doc, err := docspec.Load(path)
				if err == nil {
					err = doc.Validate()
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s: %d entries, %s footer\n", path, len(doc.Checklist), doc.Footer)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

func (a *app) fontsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "Show the font reports are rendered with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			face := a.engine().Font()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "family:  %s\n", face.Family)
			fmt.Fprintf(out, "source:  %s\n", face.Source)
			if face.Path != "" {
				fmt.Fprintf(out, "path:    %s\n", face.Path)
			}
			fmt.Fprintf(out, "unicode: %t\n", face.Unicode())
			fmt.Fprintf(out, "arabic:  %t\n", face.Arabic)
			if face.Err != nil {
				fmt.Fprintf(out, "error:   %v\n", face.Err)
			}
			return nil
		},
	}
}

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the Model Context Protocol over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.engine()
			s := mcp.NewServer(mcp.WithLogger(a.log), mcp.WithVersion(version))
			mcp.RegisterDefaultTools(s, e)
			mcp.RegisterDefaultResources(s, e)
			a.log.Info().Msg("mcp server listening on stdio")
			if err := s.Run(); err != nil && !errors.Is(err, os.ErrClosed) {
				return fmt.Errorf("mcp: %w", err)
			}
			return nil
		},
	}
}
