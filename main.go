package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ic10min/pkg/asm"
	"ic10min/pkg/isa"
	"ic10min/pkg/utils"
)

// errFailed reports a parse or assembly failure whose diagnostics have
// already been printed.
var errFailed = errors.New("assembly failed")

type options struct {
	asm.Options
	out     string
	extLen  int
	isaPath string
	noPause bool
	dump    bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "ic10min [flags] sourceFile",
		Short: "Assemble and minify IC10 source",
		Long: `ic10min resolves aliases, defines, labels and HASH()/STR() macros in an
IC10 source file and writes the compact program beside it, inserting ".min"
before the file extension.

Source can be split with "section NAME [requires A B ...]" directives. With
--sections only the named sections and everything they require are emitted.`,
		Args:          utils.CheckArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its flags from the standard flag set.
			return flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			noisy, err := minify(cmd.OutOrStdout(), args[0], o)
			if noisy && !o.noPause {
				pause(os.Stdin, cmd.OutOrStdout())
			}
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&o.IncludeComments, "comments", "c", false, "keep trailing comments in the output")
	f.StringSliceVarP(&o.IncludeSections, "sections", "s", nil, "only emit these sections and their prerequisites")
	f.BoolVarP(&o.KeepMacros, "keep-macros", "m", false, "leave HASH() and STR() unexpanded")
	f.StringVarP(&o.out, "out", "o", "", "output file path (default: input with .min before the extension)")
	f.IntVar(&o.extLen, "ext-len", 0, "length of the extension, dot included, that .min is inserted before (0: detect)")
	f.StringVar(&o.isaPath, "isa", "", "JSON instruction catalog layered over the built-in one")
	f.BoolVar(&o.noPause, "no-pause", false, "never wait for Enter after warnings or errors")
	f.BoolVar(&o.dump, "dump", false, "pretty-print the assembled sections")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmd.SetFlagErrorFunc(utils.FlagError)

	return cmd
}

// minify assembles path and writes the result. noisy is set when any
// diagnostic was printed.
func minify(w io.Writer, path string, o *options) (noisy bool, err error) {
	table, err := loadTable(o.isaPath)
	if err != nil {
		return false, err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read input file %q: %w", path, err)
	}

	pr := asm.Parse(string(source))
	glog.V(1).Infof("parsed %s: %d sections, %d warnings, %d errors", path, len(pr.Program.Sections), len(pr.Warnings), len(pr.Errors))
	if !pr.Valid() {
		fmt.Fprintf(w, "Failed to parse file %s\n", path)
		printDiagnostics(w, pr.Diagnostics)
		return true, errFailed
	}

	res := asm.Assemble(pr, table, o.Options)
	noisy = len(res.Warnings) > 0
	if !res.Valid() {
		fmt.Fprintf(w, "Failed to assemble %s\n", path)
		printDiagnostics(w, res.Diagnostics)
		return true, errFailed
	}

	if o.dump {
		printer := pp.New()
		printer.SetColoringEnabled(isTerminal(w))
		for _, sec := range res.Sections {
			printer.Fprintln(w, sec.Info())
		}
	}

	output := o.out
	if output == "" {
		if output, err = utils.MinifiedPath(path, o.extLen); err != nil {
			return noisy, err
		}
	}
	glog.V(1).Infof("writing %d lines from sections %v to %s", len(res.OutputLines), sectionNames(res.Sections), output)

	if err := writeOutput(output, res.Output()); err != nil {
		return noisy, fmt.Errorf("failed to write output file %q: %w", output, err)
	}

	fmt.Fprintf(w, "Assembled %s => %s\n", filepath.Base(path), filepath.Base(output))
	fmt.Fprintf(w, "%d sections totalling %d line%s\n", len(res.Sections), len(res.OutputLines), plural(len(res.OutputLines)))
	printDiagnostics(w, res.Diagnostics)
	return noisy, nil
}

func loadTable(path string) (isa.Table, error) {
	if path == "" {
		return isa.Default(), nil
	}
	glog.V(1).Infof("loading instruction catalog %s", path)
	table, err := isa.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load instruction catalog: %w", err)
	}
	return table, nil
}

func printDiagnostics(w io.Writer, d asm.Diagnostics) {
	for _, msg := range d.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", msg)
	}
	for _, msg := range d.Errors {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
}

func writeOutput(path string, text string) error {
	return os.WriteFile(path, []byte(text), 0o644)
}

func sectionNames(secs []*asm.Section) []string {
	names := make([]string, len(secs))
	for i, s := range secs {
		names[i] = s.Name
	}
	return names
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// pause waits for Enter so messages stay visible when the tool was started
// from a file manager. It does nothing unless in is a terminal.
func pause(in *os.File, out io.Writer) {
	if !term.IsTerminal(int(in.Fd())) {
		return
	}
	fmt.Fprint(out, "Press Enter to continue")
	bufio.NewReader(in).ReadString('\n')
}

func main() {
	defer glog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			glog.Errorf("ic10min: %v", err)
		}
		glog.Flush()
		os.Exit(utils.ExitCode(err))
	}
}
