package asm

import (
	"testing"

	"ic10min/pkg/isa"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		token string
		want  Category
	}{
		{"5", CategoryNumber},
		{"-1.5", CategoryNumber},
		{"1e3", CategoryNumber},
		{`HASH("x")`, CategoryMacro},
		{`str("abc")`, CategoryMacro},
		{"d0", CategoryDevice},
		{"db", CategoryDevice},
		{"d1:0", CategoryDevice},
		{"dr2", CategoryDevice},
		{"r0", CategoryRegister},
		{"sp", CategoryRegister},
		{"rr1", CategoryRegister},
		{"$FF", CategoryHex},
		{"0x1f", CategoryHex},
		{"r16", CategorySymbol},
		{"Temperature", CategorySymbol},
		{"inf", CategorySymbol},
		{"+inf", CategorySymbol},
		{"0x", CategorySymbol},
		{"$", CategorySymbol},
		{"-", CategorySymbol},
	}

	for _, tc := range tests {
		if got := Classify(tc.token); got != tc.want {
			t.Errorf("Classify(%q) = %v; want %v", tc.token, got, tc.want)
		}
	}
}

func TestCategoryProvided(t *testing.T) {
	tests := map[Category]isa.ParameterType{
		CategoryNumber:   isa.Constant,
		CategoryMacro:    isa.Constant,
		CategoryHex:      isa.Constant,
		CategoryDevice:   isa.Device,
		CategoryRegister: isa.Register,
		CategorySymbol:   0,
	}
	for c, want := range tests {
		if got := c.Provided(); got != want {
			t.Errorf("%v.Provided() = %v; want %v", c, got, want)
		}
	}
}
