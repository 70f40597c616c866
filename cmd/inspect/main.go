// Command inspect prints every stage of assembling one IC10 file: the matched
// lines, the parsed sections, and the resolved output.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"ic10min/pkg/asm"
	"ic10min/pkg/isa"
	"ic10min/pkg/utils"
)

func inspect(w io.Writer, src string, table isa.Table, opts asm.Options, color bool) {
	fmt.Fprintln(w, "Lines")
	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m, ok := asm.MatchLine(line)
		if !ok {
			fmt.Fprintf(w, "  %3d  syntax error: %s\n", i, line)
			continue
		}
		fmt.Fprintf(w, "  %3d  %s\n", i, describe(m))
	}
	fmt.Fprintln(w)

	pr := asm.Parse(src)
	res := asm.Assemble(pr, table, opts)

	fmt.Fprintln(w, "Sections")
	printer := pp.New()
	printer.SetColoringEnabled(color)
	for _, sec := range pr.Program.Sections {
		printer.Fprintln(w, sec.Info())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output")
	for i, l := range res.OutputLines {
		fmt.Fprintf(w, "  %3d  %s\n", i, l)
	}
	fmt.Fprintln(w)

	for _, msg := range res.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", msg)
	}
	for _, msg := range res.Errors {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
}

func describe(m asm.Match) string {
	var parts []string
	if m.Directive != "" {
		parts = append(parts, "directive="+m.Directive)
	}
	if m.Label != "" {
		parts = append(parts, "label="+m.Label)
	}
	if m.Opcode != "" {
		parts = append(parts, "opcode="+m.Opcode)
	}
	if len(m.Params) > 0 {
		parts = append(parts, "params=["+strings.Join(m.Params, " ")+"]")
	}
	if m.Comment != "" {
		parts = append(parts, "comment="+m.Comment)
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, " ")
}

func main() {
	defer glog.Flush()

	var opts asm.Options
	var color bool
	cmd := &cobra.Command{
		Use:           "inspect sourceFile",
		Short:         "Show each assembly stage of an IC10 file",
		Args:          utils.CheckArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flag.CommandLine.Parse(nil); err != nil {
				return err
			}
			fullPath, baseDir, err := utils.GetPathInfo(args[0])
			if err != nil {
				return err
			}
			glog.V(1).Infof("inspecting %s in %s", fullPath, baseDir)

			src, err := os.ReadFile(fullPath)
			if err != nil {
				return fmt.Errorf("read error: %w", err)
			}
			inspect(cmd.OutOrStdout(), string(src), isa.Default(), opts, color)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&opts.IncludeSections, "sections", "s", nil, "only emit these sections and their prerequisites")
	cmd.Flags().BoolVarP(&opts.KeepMacros, "keep-macros", "m", false, "leave HASH() and STR() unexpanded")
	cmd.Flags().BoolVar(&color, "color", false, "colorize the section dump")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmd.SetFlagErrorFunc(utils.FlagError)

	if err := cmd.Execute(); err != nil {
		glog.Errorf("inspect: %v", err)
		glog.Flush()
		os.Exit(utils.ExitCode(err))
	}
}
