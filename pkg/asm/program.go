package asm

import (
	"strconv"
	"strings"
)

// DefaultSection names the implicit section that precedes the first
// section directive.
const DefaultSection = "(default)"

// Program is the result of the parse pass. After parsing, only the Offset of
// each section changes, once per assembly.
type Program struct {
	Sections []*Section

	// Every symbol and alias name defined anywhere, for uniqueness checks and
	// for refining "unable to resolve" diagnostics.
	Symbols map[string]struct{}
	Aliases map[string]struct{}
}

func NewProgram() *Program {
	return &Program{
		Symbols: make(map[string]struct{}),
		Aliases: make(map[string]struct{}),
	}
}

// HasSymbol reports whether name was defined in any section.
func (p *Program) HasSymbol(name string) bool {
	_, ok := p.Symbols[name]
	return ok
}

// HasAlias reports whether name was aliased in any section.
func (p *Program) HasAlias(name string) bool {
	_, ok := p.Aliases[name]
	return ok
}

// Section is a named run of lines between section directives.
type Section struct {
	Name     string
	Requires []string
	Aliases  map[string]string
	Symbols  map[string]*Symbol
	Lines    []Line

	// Offset is the absolute output line of the first line of the section.
	// It is assigned by Assemble.
	Offset int
}

func NewSection(name string, requires []string) *Section {
	return &Section{
		Name:     name,
		Requires: requires,
		Aliases:  make(map[string]string),
		Symbols:  make(map[string]*Symbol),
	}
}

func (s *Section) Size() int {
	return len(s.Lines)
}

// IsEmpty reports whether the section defines nothing at all.
func (s *Section) IsEmpty() bool {
	return len(s.Lines) == 0 && len(s.Aliases) == 0 && len(s.Symbols) == 0
}

// Line is one instruction kept for assembly.
type Line struct {
	Opcode        string
	Params        []string
	Comment       string
	SourceLine    int
	SectionOffset int
}

type SymbolKind int

const (
	SymbolConstant SymbolKind = iota
	SymbolLabel
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolConstant:
		return "constant"
	case SymbolLabel:
		return "label"
	default:
		return "unknown"
	}
}

// Symbol is a define'd constant or a label.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Section *Section

	// Text is the raw define value. Value holds its numeric reading when
	// HasValue is set.
	Text     string
	Value    float64
	HasValue bool

	// Offset is the in-section line a label points at.
	Offset int
}

func newConstant(sec *Section, name, text string) *Symbol {
	s := &Symbol{Name: name, Kind: SymbolConstant, Section: sec, Text: text}
	s.Value, s.HasValue = parseConstant(text)
	return s
}

func newLabel(sec *Section, name string, offset int) *Symbol {
	return &Symbol{Name: name, Kind: SymbolLabel, Section: sec, Text: name, Offset: offset}
}

// Resolve renders the symbol as it appears in output. Labels become absolute
// line numbers, so the owning section must already be placed.
func (s *Symbol) Resolve() string {
	if s.Kind == SymbolLabel {
		return strconv.Itoa(s.Offset + s.Section.Offset)
	}
	if s.HasValue {
		return formatNumber(s.Value)
	}
	return s.Text
}

// parseConstant reads decimal, 0x-prefixed or $-prefixed hex values.
func parseConstant(text string) (float64, bool) {
	if v, ok := parseHex(text); ok {
		return float64(v), true
	}
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "$") {
		return 0, false
	}
	return parseNumber(text)
}

// parseNumber accepts plain decimal numbers, optionally signed, fractional or
// with an exponent.
func parseNumber(text string) (float64, bool) {
	unsigned := strings.TrimLeft(text, "+-")
	if len(text)-len(unsigned) > 1 || unsigned == "" {
		return 0, false
	}
	if c := unsigned[0]; (c < '0' || c > '9') && c != '.' {
		return 0, false
	}
	if len(unsigned) > 1 && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseHex(text string) (uint64, bool) {
	var digits string
	switch {
	case strings.HasPrefix(text, "0x"):
		digits = text[2:]
	case strings.HasPrefix(text, "$"):
		digits = text[1:]
	default:
		return 0, false
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SectionInfo is a pointer-free view of a section, safe to pretty-print.
type SectionInfo struct {
	Name     string
	Requires []string
	Offset   int
	Aliases  map[string]string
	Symbols  map[string]string
	Lines    []Line
}

func (s *Section) Info() SectionInfo {
	info := SectionInfo{
		Name:     s.Name,
		Requires: s.Requires,
		Offset:   s.Offset,
		Aliases:  s.Aliases,
		Symbols:  make(map[string]string, len(s.Symbols)),
		Lines:    s.Lines,
	}
	for name, sym := range s.Symbols {
		if sym.Kind == SymbolLabel {
			info.Symbols[name] = "label +" + strconv.Itoa(sym.Offset)
		} else {
			info.Symbols[name] = "constant " + sym.Text
		}
	}
	return info
}
