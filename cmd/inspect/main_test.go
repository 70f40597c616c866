package main

import (
	"bytes"
	"strings"
	"testing"

	"ic10min/pkg/asm"
	"ic10min/pkg/isa"
)

func TestInspect(t *testing.T) {
	src := "section main\nalias sensor d0 # gas\nloop: l r0 sensor Pressure\nbad line,\nj loop"
	var out bytes.Buffer
	inspect(&out, src, isa.Default(), asm.Options{}, false)

	got := out.String()
	for _, want := range []string{
		"directive=section params=[main]",
		"directive=alias params=[sensor d0] comment=gas",
		"label=loop opcode=l params=[r0 sensor Pressure]",
		"syntax error: bad line,",
		"Sections",
		`"main"`,
		"Error: Unrecognized formatting or syntax error at line 3",
		"Error: Unable to assemble due to parse errors",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDescribeEmpty(t *testing.T) {
	if got := describe(asm.Match{}); got != "(empty)" {
		t.Errorf("expected (empty), got %q", got)
	}
}
