// Command ehxreport loads an EHX file and prints job, panel, and
// material summaries. It is a thin consumer of the ehx library; all
// parsing and inference semantics live in the library packages.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/ehx"
	"github.com/tsawler/ehx/report"
)

// cliConfig is the optional YAML configuration file shape.
type cliConfig struct {
	SizeTolerance float64            `yaml:"size_tolerance"`
	LabelHeights  map[string]float64 `yaml:"label_heights"`
}

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ehxreport",
		Short:         "Inspect EHX wall-panel framing files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config with size_tolerance and label_heights overrides")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log extraction events to stderr")

	root.AddCommand(newInfoCmd())
	root.AddCommand(newPanelsCmd())
	root.AddCommand(newReportCmd())
	return root
}

// openExtractor builds a configured extractor for the given file.
func openExtractor(path string) (*ehx.Extractor, error) {
	ext := ehx.Open(path)
	if verbose {
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ext = ext.Logger(log)
	}
	if configPath == "" {
		return ext, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg cliConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.SizeTolerance > 0 {
		ext = ext.SizeTolerance(cfg.SizeTolerance)
	}
	if len(cfg.LabelHeights) > 0 {
		ext = ext.LabelHeights(cfg.LabelHeights)
	}
	return ext, nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print job metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := openExtractor(args[0])
			if err != nil {
				return err
			}
			version, err := ext.Version()
			if err != nil {
				return err
			}
			job, err := ext.Job()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Format:   %s\n", version)
			printIfSet(out, "JobID", job.Info.JobID)
			printIfSet(out, "Customer", job.Info.Customer)
			printIfSet(out, "Project", job.Info.Project)
			printIfSet(out, "Building", job.Info.BuildingName)
			printIfSet(out, "Lot", job.Info.LotName)
			printIfSet(out, "Designer", job.Info.DesignerPerson)
			printIfSet(out, "Software", job.Info.DesignSoftware)
			fmt.Fprintf(out, "Levels:   %d\n", len(job.Levels))
			fmt.Fprintf(out, "Panels:   %d\n", job.PanelCount())
			return nil
		},
	}
}

func printIfSet(out io.Writer, name, value string) {
	if value != "" {
		fmt.Fprintf(out, "%-9s %s\n", name+":", value)
	}
}

func newPanelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "panels <file>",
		Short: "List panels with bundle, size, and weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := openExtractor(args[0])
			if err != nil {
				return err
			}
			job, err := ext.Job()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range job.Panels {
				bundle := p.BundleName
				if bundle == "" {
					bundle = p.Bundle
				}
				fmt.Fprintf(out, "%s\t%s\t%s x %s",
					p.DisplayLabel, bundle,
					report.FormatScalar(p.WallLength), report.FormatScalar(p.Height))
				if p.Weight != "" {
					fmt.Fprintf(out, "\t%s Lbs", report.FormatWeight(p.Weight))
				}
				if p.SquaringInches != nil {
					fmt.Fprintf(out, "\tsq %s", report.FeetInchesSixteenths(*p.SquaringInches))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <file> <panel-guid>",
		Short: "Print the material report and rough openings for one panel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := openExtractor(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			lines, err := ext.Report(args[1])
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			openings, err := ext.Openings(args[1])
			if err != nil {
				return err
			}
			for _, o := range openings {
				if o.Resolved {
					fmt.Fprintf(out, "opening %s AFF %s (%s)\n",
						o.Material.Label, report.FeetInchesSixteenths(o.AFF), o.Stage)
				} else {
					fmt.Fprintf(out, "opening %s AFF unknown\n", o.Material.Label)
				}
			}

			pockets, err := ext.BeamPockets(args[1])
			if err != nil {
				return err
			}
			for _, bp := range pockets {
				if bp.BottomAFF != nil {
					fmt.Fprintf(out, "beam pocket x%d AFF %s\n",
						bp.Count, report.FeetInchesSixteenths(*bp.BottomAFF))
				}
			}
			return nil
		},
	}
}
