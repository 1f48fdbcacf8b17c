// Command docxdiff compares two DOCX files and writes a third in which
// every textual difference is marked as a tracked insertion or deletion.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexcabrera/docxdiff/pkg/docxdiff"
)

const version = "0.1.0"

var (
	flagOutput        string
	flagAuthor        string
	flagGranularity   string
	flagChar          bool
	flagSuppressWS    bool
	flagIncludeTables bool
	flagFailOnTracked bool
	flagOptionsFile   string
	flagQuiet         bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docxdiff:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docxdiff <base.docx> <revised.docx>",
		Short:   "Produce a tracked-changes redline between two DOCX files",
		Long:    "docxdiff compares the body text of two DOCX files and writes a new DOCX in which every difference appears as a reviewer-style tracked insertion or deletion.",
		Version: version,
		Args:    cobra.ExactArgs(2),
		RunE:    runDiff,
	}

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "redline.docx", "path of the output DOCX")
	cmd.Flags().StringVarP(&flagAuthor, "author", "a", docxdiff.DefaultAuthor, "author stamped on tracked changes")
	cmd.Flags().StringVarP(&flagGranularity, "granularity", "g", "", "token granularity: word or char")
	cmd.Flags().BoolVar(&flagChar, "char", false, "shorthand for --granularity char")
	cmd.Flags().BoolVar(&flagSuppressWS, "suppress-whitespace-only", false, "emit whitespace-only paragraph changes unmarked")
	cmd.Flags().BoolVar(&flagIncludeTables, "include-tables", false, "also diff paragraphs inside table cells")
	cmd.Flags().BoolVar(&flagFailOnTracked, "fail-on-tracked", false, "abort when the revised file already contains tracked changes")
	cmd.Flags().StringVarP(&flagOptionsFile, "config", "c", "", "YAML options file (flags override it)")
	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the summary")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	result, err := docxdiff.DiffFiles(args[0], args[1], flagAuthor, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(flagOutput, result.Output, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if !flagQuiet {
		printSummary(result)
	}
	return nil
}

// buildOptions layers the options file under the command-line flags.
func buildOptions(cmd *cobra.Command) (*docxdiff.Options, error) {
	opts := docxdiff.DefaultOptions()

	if flagOptionsFile != "" {
		data, err := os.ReadFile(flagOptionsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read options file: %w", err)
		}
		if err := yaml.Unmarshal(data, opts); err != nil {
			return nil, fmt.Errorf("failed to parse options file: %w", err)
		}
		opts = docxdiff.NewOptionsWithDefaults(opts)
	}

	if cmd.Flags().Changed("granularity") {
		opts.Granularity = docxdiff.Granularity(flagGranularity)
	}
	if flagChar {
		opts.Granularity = docxdiff.GranularityChar
	}
	if cmd.Flags().Changed("suppress-whitespace-only") {
		opts.SuppressWhitespaceOnly = flagSuppressWS
	}
	if cmd.Flags().Changed("include-tables") {
		opts.IncludeTables = flagIncludeTables
	}
	if flagFailOnTracked {
		opts.ExistingTrackedRevisions = docxdiff.TrackedRevisionsFail
	}

	return opts, nil
}

func printSummary(result *docxdiff.Result) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	green := color.New(color.FgGreen).SprintfFunc()
	red := color.New(color.FgRed).SprintfFunc()
	yellow := color.New(color.FgYellow).SprintfFunc()

	s := result.Stats
	fmt.Printf("%d paragraphs compared: %d changed, %s, %s\n",
		s.ParagraphsTotal,
		s.ParagraphsChanged,
		green("%d inserted", s.ParagraphsInserted),
		red("%d deleted", s.ParagraphsDeleted))
	fmt.Printf("tracked runs: %s, %s\n",
		green("+%d", s.InsertionRuns),
		red("-%d", s.DeletionRuns))

	for _, warning := range result.Warnings {
		fmt.Println(yellow("warning: %s", warning))
	}

	fmt.Println("wrote", flagOutput)
}
