// Command console is an interactive IC10 scratchpad: type source lines, then
// an empty line (or :run) to see them assembled.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/mattn/go-colorable"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ic10min/pkg/asm"
	"ic10min/pkg/isa"
	"ic10min/pkg/utils"
)

const historyFile = ".ic10min_history"

const help = `:run    assemble the buffer (an empty line does the same)
:list   show the buffer
:clear  empty the buffer
:quit   exit`

// session is the buffered source and the settings used to assemble it.
type session struct {
	lines []string
	opts  asm.Options
	table isa.Table
	color bool
}

// handle processes one input line and reports whether the console should
// exit.
func (s *session) handle(w io.Writer, input string) (quit bool) {
	cmd := strings.TrimSpace(input)
	switch strings.ToLower(cmd) {
	case "", ":run":
		s.run(w)
	case ":list":
		for i, l := range s.lines {
			fmt.Fprintf(w, "%3d  %s\n", i, l)
		}
	case ":clear":
		s.lines = nil
	case ":quit":
		return true
	case ":help":
		fmt.Fprintln(w, help)
	default:
		if strings.HasPrefix(cmd, ":") {
			fmt.Fprintf(w, "unknown command %s. Type :help for commands.\n", cmd)
			return false
		}
		s.lines = append(s.lines, input)
	}
	return false
}

func (s *session) run(w io.Writer) {
	if len(s.lines) == 0 {
		return
	}

	pr := asm.Parse(strings.Join(s.lines, "\n"))
	res := asm.Assemble(pr, s.table, s.opts)
	for i, l := range res.OutputLines {
		fmt.Fprintf(w, "%3d  %s\n", i, l)
	}
	for _, msg := range res.Warnings {
		fmt.Fprintln(w, s.paint("33", "warning: "+msg))
	}
	for _, msg := range res.Errors {
		fmt.Fprintln(w, s.paint("31", "error: "+msg))
	}
}

func (s *session) paint(code, msg string) string {
	if !s.color {
		return msg
	}
	return "\x1b[" + code + "m" + msg + "\x1b[0m"
}

func repl(s *session) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			glog.Warningf("cannot save history: %v", err)
		}
	}()

	// Translates the escapes from paint on Windows consoles.
	out := colorable.NewColorableStdout()

	fmt.Fprintln(out, "IC10 console. Type :help for commands.")
	for {
		line, err := ln.Prompt(fmt.Sprintf("%d> ", len(s.lines)))
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if s.handle(out, line) {
			return nil
		}
	}
}

func main() {
	defer glog.Flush()

	s := &session{color: term.IsTerminal(int(os.Stdout.Fd()))}
	var isaPath string

	cmd := &cobra.Command{
		Use:           "console",
		Short:         "Interactive IC10 assembler console",
		Args:          utils.CheckArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flag.CommandLine.Parse(nil); err != nil {
				return err
			}
			s.table = isa.Default()
			if isaPath != "" {
				t, err := isa.LoadFile(isaPath)
				if err != nil {
					return err
				}
				s.table = t
			}
			return repl(s)
		},
	}
	cmd.Flags().StringSliceVarP(&s.opts.IncludeSections, "sections", "s", nil, "only emit these sections and their prerequisites")
	cmd.Flags().BoolVarP(&s.opts.KeepMacros, "keep-macros", "m", false, "leave HASH() and STR() unexpanded")
	cmd.Flags().BoolVarP(&s.opts.IncludeComments, "comments", "c", false, "keep trailing comments in the output")
	cmd.Flags().StringVar(&isaPath, "isa", "", "JSON instruction catalog layered over the built-in one")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmd.SetFlagErrorFunc(utils.FlagError)

	if err := cmd.Execute(); err != nil {
		glog.Errorf("console: %v", err)
		glog.Flush()
		os.Exit(utils.ExitCode(err))
	}
}
