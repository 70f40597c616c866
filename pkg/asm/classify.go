package asm

import "ic10min/pkg/isa"

// Category is the lexical kind of an operand, decided in this order:
// number or macro, device pin, register, hex literal, symbol.
type Category int

const (
	CategorySymbol Category = iota
	CategoryNumber
	CategoryMacro
	CategoryDevice
	CategoryRegister
	CategoryHex
)

func (c Category) String() string {
	switch c {
	case CategoryNumber:
		return "number"
	case CategoryMacro:
		return "macro"
	case CategoryDevice:
		return "device"
	case CategoryRegister:
		return "register"
	case CategoryHex:
		return "hex"
	default:
		return "symbol"
	}
}

// Classify applies the operand precedence rules to token.
func Classify(token string) Category {
	if _, ok := parseNumber(token); ok {
		return CategoryNumber
	}
	if IsMacro(token) {
		return CategoryMacro
	}
	if IsDevicePin(token) {
		return CategoryDevice
	}
	if IsRegister(token) {
		return CategoryRegister
	}
	if _, ok := parseHex(token); ok {
		return CategoryHex
	}
	return CategorySymbol
}

// Provided maps a category to the parameter type it satisfies. Symbols have
// no type until resolved, so they map to zero.
func (c Category) Provided() isa.ParameterType {
	switch c {
	case CategoryNumber, CategoryMacro, CategoryHex:
		return isa.Constant
	case CategoryDevice:
		return isa.Device
	case CategoryRegister:
		return isa.Register
	default:
		return 0
	}
}
