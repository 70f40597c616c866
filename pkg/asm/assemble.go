package asm

import (
	"runtime"
	"strconv"
	"strings"

	"ic10min/pkg/isa"
)

// Output sizes that trigger a one-time notice: past the stock chip's 128
// lines, and at the 512 line extended limit.
const (
	vanillaLineWarning  = 129
	extendedLineWarning = 512
)

// LineSeparator joins output lines.
var LineSeparator = "\n"

func init() {
	if runtime.GOOS == "windows" {
		LineSeparator = "\r\n"
	}
}

type Options struct {
	// IncludeSections restricts output to these sections and everything they
	// require. Empty means all sections.
	IncludeSections []string

	// KeepMacros leaves HASH("...") and STR("...") unexpanded.
	KeepMacros bool

	// IncludeComments appends each line's trailing comment to its output.
	IncludeComments bool
}

// AssemblyResult holds the resolved program. Parse diagnostics are carried
// ahead of the assembly ones.
type AssemblyResult struct {
	Diagnostics
	OutputLines []string

	// Sections are the sections assembled, in output order.
	Sections []*Section
}

// Output renders the resolved program, one instruction per line.
func (r *AssemblyResult) Output() string {
	return strings.Join(r.OutputLines, LineSeparator)
}

// assembler is the state of one Assemble call. placed grows as sections are
// reached; symbol and alias lookups only see placed sections.
type assembler struct {
	table      isa.Table
	opts       Options
	program    *Program
	sections   []*Section
	placed     []*Section
	res        *AssemblyResult
	sourceLine int
}

// Assemble resolves a parsed program against table.
func Assemble(pr *ParseResult, table isa.Table, opts Options) *AssemblyResult {
	res := &AssemblyResult{}
	res.Merge(pr.Diagnostics)

	if !pr.Valid() {
		res.Errors = append(res.Errors, "Unable to assemble due to parse errors")
		return res
	}

	a := &assembler{
		table:    table,
		opts:     opts,
		program:  pr.Program,
		sections: SelectSections(pr.Program, opts.IncludeSections),
		res:      res,
	}

	offset := 0
	for _, sec := range a.sections {
		sec.Offset = offset
		offset += sec.Size()
		a.placed = append(a.placed, sec)

		for _, ln := range sec.Lines {
			a.assembleLine(sec, ln)
		}
	}

	res.Sections = a.sections
	return res
}

// SelectSections returns the sections named in include plus everything they
// transitively require, in program order. Names match case-insensitively.
func SelectSections(program *Program, include []string) []*Section {
	if len(include) == 0 {
		return append([]*Section(nil), program.Sections...)
	}

	wanted := make(map[string]bool)
	for _, name := range include {
		wanted[strings.ToLower(name)] = true
	}
	for changed := true; changed; {
		changed = false
		for _, sec := range program.Sections {
			if !wanted[strings.ToLower(sec.Name)] {
				continue
			}
			for _, req := range sec.Requires {
				if key := strings.ToLower(req); !wanted[key] {
					wanted[key] = true
					changed = true
				}
			}
		}
	}

	var out []*Section
	for _, sec := range program.Sections {
		if wanted[strings.ToLower(sec.Name)] {
			out = append(out, sec)
		}
	}
	return out
}

func (a *assembler) assembleLine(sec *Section, ln Line) {
	a.sourceLine = ln.SourceLine

	ins, ok := a.table.Lookup(ln.Opcode)
	if !ok {
		a.res.addError(a.sourceLine, "Unrecognized mnemonic %s", ln.Opcode)
		return
	}
	if len(ins.Parameters) != len(ln.Params) {
		a.res.addError(a.sourceLine, "Invalid number of parameters for mnemonic %s: expected %d, got %d",
			ins.Mnemonic, len(ins.Parameters), len(ln.Params))
		return
	}

	parts := make([]string, 0, len(ln.Params)+1)
	parts = append(parts, ln.Opcode)
	for i, param := range ln.Params {
		parts = append(parts, a.resolveParam(sec, ln, param, ins.Parameters[i]))
	}

	out := strings.Join(parts, " ")
	if a.opts.IncludeComments && ln.Comment != "" {
		out += " # " + ln.Comment
	}
	a.res.OutputLines = append(a.res.OutputLines, out)

	switch len(a.res.OutputLines) {
	case vanillaLineWarning:
		a.res.addWarning(a.sourceLine, "Exceeded vanilla IC10 LoC cap")
	case extendedLineWarning:
		a.res.addWarning(a.sourceLine, "Exceeded modded More Lines of Code LoC cap")
	}
}

// resolveParam substitutes, type checks, expands and relativizes one operand.
func (a *assembler) resolveParam(sec *Section, ln Line, token string, want isa.ParameterType) string {
	noSub := want.Has(isa.NoSubstitution)
	allowUnknown := want.Has(isa.AllowUnknownSymbol)

	if !noSub {
		token = a.resolveAlias(token)
	}

	var provided isa.ParameterType
	switch cat := Classify(token); cat {
	case CategoryHex:
		v, _ := parseHex(token)
		token = strconv.FormatUint(v, 10)
		provided = isa.Constant
	case CategorySymbol:
		sym := a.resolveSymbol(token, allowUnknown)
		if sym != nil && !noSub {
			token = sym.Resolve()
			provided = isa.Constant
		}
	default:
		provided = cat.Provided()
	}

	if provided != 0 && !allowUnknown && !want.Has(provided) {
		a.res.addError(a.sourceLine, "Parameter type mismatch for %s", token)
	}

	if !a.opts.KeepMacros {
		if v, ok := ExpandMacro(token); ok {
			token = v
		}
	}

	if want.Has(isa.BranchRelative) {
		if target, err := strconv.Atoi(token); err == nil {
			token = strconv.Itoa(target - (ln.SectionOffset + sec.Offset))
		} else if !IsRegister(token) {
			a.res.addError(a.sourceLine, "Invalid destination %s for relative branch", token)
		}
	}

	return token
}

// resolveAlias returns the first binding of name among the placed sections,
// or name itself.
func (a *assembler) resolveAlias(name string) string {
	for _, sec := range a.placed {
		if target, ok := sec.Aliases[name]; ok {
			return target
		}
	}
	return name
}

// resolveSymbol looks name up in the placed sections. Misses are reported,
// more precisely when the name exists elsewhere in the program.
func (a *assembler) resolveSymbol(name string, allowUnknown bool) *Symbol {
	for _, sec := range a.placed {
		if sym, ok := sec.Symbols[name]; ok {
			return sym
		}
	}

	if a.program.HasSymbol(name) {
		if a.selected(name) {
			a.res.addError(a.sourceLine, "Use before define of symbol %s", name)
		} else {
			a.res.addError(a.sourceLine, "%s not defined in included section", name)
		}
	}
	if !allowUnknown {
		a.res.addError(a.sourceLine, "Unable to resolve symbol %s", name)
	}
	return nil
}

func (a *assembler) selected(name string) bool {
	for _, sec := range a.sections {
		if _, ok := sec.Symbols[name]; ok {
			return true
		}
	}
	return false
}
