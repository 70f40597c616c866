package asm

import "fmt"

// Diagnostics collects the warnings and errors of one pass. Each message
// carries the 0-based source line active when it was raised.
type Diagnostics struct {
	Warnings []string
	Errors   []string
}

func (d *Diagnostics) addWarning(line int, format string, args ...interface{}) {
	d.Warnings = append(d.Warnings, fmt.Sprintf("%s at line %d", fmt.Sprintf(format, args...), line))
}

func (d *Diagnostics) addError(line int, format string, args ...interface{}) {
	d.Errors = append(d.Errors, fmt.Sprintf("%s at line %d", fmt.Sprintf(format, args...), line))
}

// Merge appends the messages of o after those already collected.
func (d *Diagnostics) Merge(o Diagnostics) {
	d.Warnings = append(d.Warnings, o.Warnings...)
	d.Errors = append(d.Errors, o.Errors...)
}

// Valid reports whether no error was recorded.
func (d *Diagnostics) Valid() bool {
	return len(d.Errors) == 0
}
