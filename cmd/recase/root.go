package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/recase/pkg/log"
	"github.com/walteh/recase/pkg/operation"
	"github.com/walteh/recase/pkg/replace"
	"github.com/walteh/recase/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	caseMode         string
	matchWholeWord   bool
	replacementsFile string
	recursive        bool
	verbose          bool
	dryRun           bool
	noRename         bool
	extensions       []string
	debug            bool
)

// newRootCmd builds the recase command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recase [flags] <path> <text-to-find> <replacement-text>",
		Short: "Bulk find and replace that preserves casing",
		Long: `recase performs bulk find-and-replace in source files and filenames.
In preserve mode a single rule matches every casing of the pattern
(oneTwoThree, OneTwoThree, one_two_three, ONE-TWO-THREE, ...) and rewrites
each hit in the casing it was found in.

With --replacements-file the find/replacement arguments come from a file
and only the path argument remains.`,
		Example: `  recase src/ "old_name" "new_name"
  recase --match-whole-word --recursive . "findMe" "replaceWithThis"
  recase -f replacements.txt --dry-run src/`,
		Args:          validateArgs,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&caseMode, "case-mode", "preserve", "case mode for rules (preserve, ignore, match)")
	cmd.Flags().BoolVar(&matchWholeWord, "match-whole-word", false, "only replace whole words")
	cmd.Flags().StringVarP(&replacementsFile, "replacements-file", "f", "", "load replacement rules from a file")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "process directories recursively")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print detailed information during processing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be replaced without making changes")
	cmd.Flags().BoolVar(&noRename, "no-rename", false, "do not rename files")
	cmd.Flags().StringSliceVar(&extensions, "extensions", nil, "file extensions or glob patterns to process")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}

// validateArgs enforces the positional argument shape: path plus find and
// replacement texts, or just the path when rules come from a file.
func validateArgs(cmd *cobra.Command, args []string) error {
	want := 3
	if replacementsFile != "" {
		want = 1
	}
	switch {
	case len(args) < want:
		return errors.Errorf("missing positional arguments: expected %d, got %d", want, len(args))
	case len(args) > want:
		return errors.Errorf("too many positional arguments: expected %d, got %d", want, len(args))
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	zlog := zerolog.Ctx(cmd.Context())

	ruleSet, err := buildRules(args)
	if err != nil {
		return err
	}

	userLogger := log.New(os.Stdout, *zlog, verbose)

	headline := fmt.Sprintf("%d rule(s)", len(ruleSet))
	if dryRun {
		headline += ", dry run"
	}
	userLogger.Header(headline)

	processor, err := operation.New(operation.Options{
		Rules:      ruleSet,
		Recursive:  recursive,
		DryRun:     dryRun,
		NoRename:   noRename,
		Extensions: extensions,
		Logger:     userLogger,
	})
	if err != nil {
		return err
	}

	summary, err := processor.Run(cmd.Context(), []string{args[0]})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("%d file(s) scanned, %d modified, %d renamed (%d replacements)",
		summary.Scanned, summary.Modified, summary.Renamed, summary.Replacements)
	return nil
}

// buildRules assembles the rule list from the replacements file or the
// positional find/replacement pair.
func buildRules(args []string) ([]rules.Rule, error) {
	if replacementsFile != "" {
		return rules.Load(replacementsFile)
	}

	mode, err := replace.ParseCaseMode(caseMode)
	if err != nil {
		return nil, err
	}
	find, err := rules.DecodeEscapes(args[1])
	if err != nil {
		return nil, errors.Errorf("decoding text-to-find: %w", err)
	}
	replacement, err := rules.DecodeEscapes(args[2])
	if err != nil {
		return nil, errors.Errorf("decoding replacement-text: %w", err)
	}

	return []rules.Rule{{
		Find:      find,
		Replace:   replacement,
		Mode:      mode,
		WholeWord: matchWholeWord,
	}}, nil
}
