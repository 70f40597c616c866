package asm

import "strings"

// ParseResult is the program built by Parse with the diagnostics raised while
// building it. A result with errors must not be assembled.
type ParseResult struct {
	Diagnostics
	Program *Program

	// SectionNames lists the closed sections in declaration order, without
	// repeats.
	SectionNames []string
}

// parser holds the running state of one parse. Offsets are running totals, so
// lines must be fed in source order.
type parser struct {
	res        *ParseResult
	program    *Program
	current    *Section
	sourceLine int
	offset     int // next line offset within current
	seen       map[string]struct{}
}

// Parse builds the program model for source, one physical line at a time.
func Parse(source string) *ParseResult {
	program := NewProgram()
	p := &parser{
		res:     &ParseResult{Program: program},
		program: program,
		current: NewSection(DefaultSection, nil),
		seen:    make(map[string]struct{}),
	}

	for i, raw := range strings.Split(source, "\n") {
		p.sourceLine = i
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m, ok := MatchLine(line)
		if !ok {
			p.res.addError(p.sourceLine, "Unrecognized formatting or syntax error")
			continue
		}
		p.parseLine(m)
	}

	p.closeSection()
	return p.res
}

func (p *parser) parseLine(m Match) {
	switch m.Directive {
	case "define":
		if len(m.Params) != 2 {
			p.res.addError(p.sourceLine, "Incorrect parameter count for define directive")
			return
		}
		p.addSymbol(newConstant(p.current, m.Params[0], m.Params[1]))
	case "alias":
		if len(m.Params) != 2 {
			p.res.addError(p.sourceLine, "Incorrect parameter count for alias directive")
			return
		}
		p.addAlias(m.Params[0], m.Params[1], m.Comment)
	case "section":
		p.startSection(m.Params)
	default:
		if m.Label != "" {
			p.addSymbol(newLabel(p.current, m.Label, p.offset))
		}
		if m.Opcode != "" {
			p.emit(m.Opcode, m.Params, m.Comment)
		}
	}
}

func (p *parser) addSymbol(sym *Symbol) {
	if p.program.HasSymbol(sym.Name) {
		p.res.addError(p.sourceLine, "Duplicate symbol %s", sym.Name)
		return
	}
	p.current.Symbols[sym.Name] = sym
	p.program.Symbols[sym.Name] = struct{}{}
}

// addAlias binds name in the current section. Device pin aliases are also
// kept as instructions since the chip resolves them at runtime.
func (p *parser) addAlias(name, target, comment string) {
	_, local := p.current.Aliases[name]
	switch {
	case !local && !p.program.HasAlias(name):
		p.program.Aliases[name] = struct{}{}
	case IsDevicePin(target):
		p.res.addWarning(p.sourceLine, "Duplicate direct device pin alias %s", name)
	default:
		p.res.addError(p.sourceLine, "Duplicate alias %s", name)
	}

	if IsDevicePin(target) {
		p.emit("alias", []string{name, target}, comment)
	} else if !IsRegister(target) {
		p.res.addWarning(p.sourceLine, "Possible invalid alias target %s", target)
	}

	p.current.Aliases[name] = target
}

func (p *parser) emit(opcode string, params []string, comment string) {
	p.current.Lines = append(p.current.Lines, Line{
		Opcode:        opcode,
		Params:        params,
		Comment:       comment,
		SourceLine:    p.sourceLine,
		SectionOffset: p.offset,
	})
	p.offset++
}

// startSection handles "section NAME [requires A B ...]".
func (p *parser) startSection(params []string) {
	if len(params) == 0 {
		p.res.addError(p.sourceLine, "Missing section name for section directive")
		return
	}
	p.closeSection()

	var requires []string
	switch {
	case len(params) == 1:
	case len(params) == 2:
		p.res.addError(p.sourceLine, "Invalid parameter count for section directive")
	case !strings.EqualFold(params[1], "requires"):
		p.res.addError(p.sourceLine, "Invalid section definition")
	default:
		requires = params[2:]
		for _, req := range requires {
			if !p.closed(req) {
				p.res.addError(p.sourceLine, "Missing section prerequisite %s", req)
			}
		}
	}

	p.current = NewSection(params[0], requires)
	p.offset = 0
}

// closeSection keeps the current section if it holds anything. Declared
// sections are remembered as closed even when empty so later sections may
// require them.
func (p *parser) closeSection() {
	empty := p.current.IsEmpty()
	if !empty {
		p.program.Sections = append(p.program.Sections, p.current)
	}
	if empty && p.current.Name == DefaultSection {
		return
	}
	if _, ok := p.seen[p.current.Name]; !ok {
		p.seen[p.current.Name] = struct{}{}
		p.res.SectionNames = append(p.res.SectionNames, p.current.Name)
	}
}

func (p *parser) closed(name string) bool {
	for _, n := range p.res.SectionNames {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
