package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/ngcomp/internal/config"
	"github.com/mvp-joe/ngcomp/internal/editor"
	"github.com/mvp-joe/ngcomp/internal/extract"
	"github.com/mvp-joe/ngcomp/internal/guard"
)

var (
	extractFileFlag          string
	extractLinesFlag         string
	extractSelectionFileFlag string
	extractNameFlag          string
	extractRejectFlag        bool
	extractStrictFlag        bool
	extractQuietFlag         bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a template fragment into a new component",
	Long: `Extract moves selected markup of a component template into a new component.

Given the template user-page.component.html and the name UserCard, it creates
user-card/ next to the template containing:

  user-card.component.html  the selected markup
  user-card.component.scss  a copy of user-page.component.scss
  user-card.component.ts    user-page.component.ts with selector, templateUrl,
                            styleUrls and class name rewritten

A metadata field missing from the class source is left unchanged and reported
as a warning. With --strict (or rewrite.strict in the project config) the
extraction fails instead and nothing is written.

The selection is a line range of the template (--lines) or the contents of a
file (--selection-file, '-' for stdin). Without either the selection is empty
and nothing happens. Without --name the name is read from stdin.

Examples:
  # Extract lines 12 through 20
  ngcomp extract --file src/app/user-page/user-page.component.html --lines 12:20 --name UserCard

  # Pipe the markup in
  pbpaste | ngcomp extract --file src/app/user-page/user-page.component.html --selection-file - --name UserCard

  # Fail instead of waiting when another extraction targets the same directory
  ngcomp extract --file page.component.html --lines 3 --name Badge --reject
`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractFileFlag, "file", "f", "", "Template the fragment is taken from")
	extractCmd.Flags().StringVarP(&extractLinesFlag, "lines", "l", "", "1-based inclusive line range, 'A:B' or 'A'")
	extractCmd.Flags().StringVarP(&extractSelectionFileFlag, "selection-file", "s", "", "File holding the markup to extract ('-' for stdin)")
	extractCmd.Flags().StringVarP(&extractNameFlag, "name", "n", "", "New component name (prompted when omitted)")
	extractCmd.Flags().BoolVar(&extractRejectFlag, "reject", false, "Fail when the target is busy instead of waiting")
	extractCmd.Flags().BoolVar(&extractStrictFlag, "strict", false, "Fail without writing when metadata fields are missing")
	extractCmd.Flags().BoolVarP(&extractQuietFlag, "quiet", "q", false, "Suppress progress output")
	extractCmd.MarkFlagRequired("file")
	extractCmd.MarkFlagsMutuallyExclusive("lines", "selection-file")
}

// extractOptions holds the flag values of one extract invocation.
type extractOptions struct {
	File          string
	Lines         string
	SelectionFile string
	Name          string
	HasName       bool
	Reject        bool
	Strict        bool
	Quiet         bool
}

// extractIO holds the streams and file system an extraction uses.
type extractIO struct {
	FS     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger logrus.FieldLogger
}

func runExtract(cmd *cobra.Command, args []string) error {
	project, global, err := loadConfigs()
	if err != nil {
		return err
	}

	opts := extractOptions{
		File:          extractFileFlag,
		Lines:         extractLinesFlag,
		SelectionFile: extractSelectionFileFlag,
		Name:          extractNameFlag,
		HasName:       cmd.Flags().Changed("name"),
		Reject:        extractRejectFlag,
		Strict:        extractStrictFlag,
		Quiet:         extractQuietFlag,
	}

	_, err = executeExtract(cmd.Context(), project, global, opts, extractIO{
		FS:     afero.NewOsFs(),
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logrus.StandardLogger(),
	})
	return err
}

// executeExtract runs one extraction. It returns (nil, nil) when the
// selection is empty and errReported when a message was already shown.
func executeExtract(ctx context.Context, project *config.Config, global *config.GlobalConfig, opts extractOptions, streams extractIO) (*extract.ArtifactSet, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	term, err := editor.Open(editor.Options{
		DocumentPath:  opts.File,
		Lines:         opts.Lines,
		SelectionFile: opts.SelectionFile,
		Name:          opts.Name,
		HasName:       opts.HasName,
		Stdin:         streams.Stdin,
		Stdout:        streams.Stderr,
		Stderr:        streams.Stderr,
		FS:            streams.FS,
	})
	if err != nil {
		return nil, err
	}

	guardCfg := global.GuardConfig()
	if opts.Reject {
		guardCfg.Mode = guard.ModeReject
	}

	progress := NewCLIProgressReporter(streams.Stderr, opts.Quiet)
	extractor := extract.NewExtractor(extract.NewFileSystem(streams.FS),
		extract.WithLayout(project.Layout()),
		extract.WithGuard(guard.New(guardCfg)),
		extract.WithStrict(project.Rewrite.Strict || opts.Strict),
		extract.WithProgress(progress),
		extract.WithLogger(streams.Logger),
	)

	set, err := extract.NewCommand(term, extractor, project.Component.NamePlaceholder).Run(ctx)
	if len(term.Errors()) > 0 {
		return nil, errReported
	}
	if err != nil {
		return nil, err
	}
	if set == nil {
		streams.Logger.Debug("Selection is empty; nothing extracted")
		return nil, nil
	}

	if !opts.Quiet {
		fmt.Fprintln(streams.Stdout, set.ClassPath)
		fmt.Fprintln(streams.Stdout, set.TemplatePath)
		fmt.Fprintln(streams.Stdout, set.StylePath)
	}
	if len(set.MissingFields) > 0 {
		fmt.Fprintf(streams.Stderr, "Warning: %s not found in the class source and left unchanged\n",
			joinFields(set.MissingFields))
	}

	return set, nil
}

func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	}
	out := fields[0]
	for _, f := range fields[1 : len(fields)-1] {
		out += ", " + f
	}
	return out + " and " + fields[len(fields)-1]
}
