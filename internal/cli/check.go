package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depchecker/pkg/errors"
	"github.com/matzehuels/depchecker/pkg/report"
)

// ErrFindings is returned when the report lists at least one problem.
// main turns it into exit status 1 without printing anything further.
var ErrFindings = stderrors.New("dependency problems found")

type checkOptions struct {
	format      string
	output      string
	noCache     bool
	interactive bool
	exitZero    bool
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check the requirements of a Python distribution",
		Long: `Check the distribution in path (default: the working directory).

The metadata is read from the *.egg-info directory next to setup.py (or in
src/), falling back to the [project] table of pyproject.toml. Mappings and
ignored packages are read from [tool.dependencychecker] in pyproject.toml.`,
		Example: `  depchecker check
  depchecker check ./src/my.package --format json -o report.json
  depchecker check --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args, opts)
		},
	}
	addCheckFlags(cmd, opts)
	return cmd
}

func addCheckFlags(cmd *cobra.Command, opts *checkOptions) {
	noCache, _ := strconv.ParseBool(os.Getenv(envNoCache))

	cmd.Flags().StringVarP(&opts.format, "format", "f", envOr(envFormat, string(report.FormatText)), "output format: text, json, yaml, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", noCache, "disable the scan cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the report interactively")
	cmd.Flags().BoolVar(&opts.exitZero, "exit-zero", false, "exit with status 0 even when problems are found")
}

func (c *CLI) runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "Given path is not a folder: %s", path)
	}
	root, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	prog := newProgress(logger)
	spin := startSpinner(ctx, logger)
	res, err := runner.Run(ctx, root)
	spin.Stop()
	if err != nil {
		return err
	}
	st := res.Stats
	prog.done(fmt.Sprintf("Checked %s: %d files, %d imports, %d cached", res.Package.Name, st.Files, st.Tokens, st.CacheHits))

	rep := report.FromResult(res)
	if opts.interactive {
		if err := browse(rep); err != nil {
			return err
		}
	} else if err := c.writeReport(cmd, rep, format, opts.output); err != nil {
		return err
	}

	if rep.ExitCode() != 0 && !opts.exitZero {
		return ErrFindings
	}
	return nil
}

func (c *CLI) writeReport(cmd *cobra.Command, rep *report.Report, format report.Format, output string) error {
	write := func(w io.Writer, styled bool) error {
		if err := report.Write(cmd.Context(), w, rep, format, report.Options{Styled: styled}); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}

	if output == "" {
		return write(c.Out, format == report.FormatText && isTerminal(c.Out))
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := writeAndClose(f, func(w io.Writer) error { return write(w, false) }); err != nil {
		return fmt.Errorf("%s: %w", output, err)
	}
	printFile(output)
	return nil
}

// writeAndClose runs write on wc and closes it. A failing Close is reported
// unless write already failed.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); err == nil && cerr != nil {
		return fmt.Errorf("close: %w", cerr)
	}
	return err
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
