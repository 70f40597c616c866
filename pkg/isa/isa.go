// Package isa describes the instruction signatures the assembler validates
// parameters against.
package isa

import (
	"fmt"
	"strings"
)

// ParameterType is the set of operand kinds an instruction parameter accepts,
// plus modifiers controlling how the assembler treats the operand.
type ParameterType uint8

const (
	Constant ParameterType = 1 << iota
	Device
	Register

	// AllowUnknownSymbol accepts names the assembler cannot resolve, such as
	// logic type enums.
	AllowUnknownSymbol

	// NoSubstitution keeps the operand text as written.
	NoSubstitution

	// BranchRelative rewrites an absolute line number into a displacement
	// from the current instruction.
	BranchRelative
)

// Value is the common "register or number" operand.
const Value = Constant | Register

var typeLetters = []struct {
	letter byte
	t      ParameterType
}{
	{'C', Constant},
	{'D', Device},
	{'R', Register},
	{'?', AllowUnknownSymbol},
	{'N', NoSubstitution},
	{'B', BranchRelative},
}

// Has reports whether every bit of o is set in t.
func (t ParameterType) Has(o ParameterType) bool {
	return t&o == o
}

func (t ParameterType) String() string {
	if t == 0 {
		return "-"
	}
	var parts []string
	for _, tl := range typeLetters {
		if t.Has(tl.t) {
			parts = append(parts, string(tl.letter))
		}
	}
	return strings.Join(parts, "|")
}

// ParseParameterType reads the "C|R|B" notation produced by String.
func ParseParameterType(s string) (ParameterType, error) {
	var t ParameterType
	for _, part := range strings.Split(s, "|") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if len(part) != 1 {
			return 0, fmt.Errorf("invalid parameter type %q", s)
		}
		found := false
		for _, tl := range typeLetters {
			if tl.letter == part[0] {
				t |= tl.t
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("invalid parameter type %q", s)
		}
	}
	return t, nil
}

type Instruction struct {
	Mnemonic   string
	Parameters []ParameterType
}

// Table maps lower-cased mnemonics to their signatures.
type Table map[string]Instruction

// Lookup finds a mnemonic ignoring case.
func (t Table) Lookup(mnemonic string) (Instruction, bool) {
	ins, ok := t[strings.ToLower(mnemonic)]
	return ins, ok
}

// Add registers or replaces an instruction.
func (t Table) Add(mnemonic string, params ...ParameterType) {
	t[strings.ToLower(mnemonic)] = Instruction{Mnemonic: mnemonic, Parameters: params}
}

// Merge copies every instruction of o into t, replacing existing entries.
func (t Table) Merge(o Table) {
	for k, v := range o {
		t[k] = v
	}
}
