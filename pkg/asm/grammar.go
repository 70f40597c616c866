package asm

import (
	"regexp"
	"strings"
)

const paramPattern = `(?:0x|\$)?[a-zA-Z0-9_\-.:]+|(?i:hash|str)\("[^"]*"\)`

// lineFormat accepts one physical line. A trailing backslash is tolerated but
// never joins lines.
var lineFormat = regexp.MustCompile(
	`^\s*(?:(?P<directive>(?i:alias|section|define))|(?:(?P<label>[a-zA-Z_][a-zA-Z0-9_]*):\s*)?(?P<opcode>[a-zA-Z]+)?)` +
		`(?P<params>(?:[ \t]+(?:` + paramPattern + `))*)` +
		`(?:\s*[#;]\s*(?P<comment>.*))?\s*\\?$`)

// paramToken tries the macro form first so HASH("x") is not split at the
// parenthesis.
var paramToken = regexp.MustCompile(`(?i:hash|str)\("[^"]*"\)|(?:0x|\$)?[a-zA-Z0-9_\-.:]+`)

var (
	registerPattern  = regexp.MustCompile(`^(?:sp|r+(?:[0-9a]|1[0-5]))$`)
	devicePinPattern = regexp.MustCompile(`^d(?:b|[0-5]|r+(?:[0-9a]|1[0-5]))(?::\d)?$`)
	macroPattern     = regexp.MustCompile(`^(?i:hash|str)\("[^"]*"\)$`)
)

// Match is the structured form of one source line.
type Match struct {
	Directive string // lower-cased; empty for code lines
	Label     string
	Opcode    string
	Params    []string
	Comment   string
}

// IsRegister reports whether token names a register (sp, ra, r0..r15 or an
// indirect rrN form).
func IsRegister(token string) bool {
	return registerPattern.MatchString(token)
}

// IsDevicePin reports whether token names a device slot (db, d0..d5, drN),
// optionally with a :N channel suffix.
func IsDevicePin(token string) bool {
	return devicePinPattern.MatchString(token)
}

// IsMacro reports whether token is a HASH("...") or STR("...") call.
func IsMacro(token string) bool {
	return macroPattern.MatchString(token)
}

// MatchLine splits a non-blank line into its parts. It reports false when the
// line is not valid syntax.
func MatchLine(line string) (Match, bool) {
	sub := lineFormat.FindStringSubmatch(line)
	if sub == nil {
		return Match{}, false
	}

	var m Match
	for i, name := range lineFormat.SubexpNames() {
		switch name {
		case "directive":
			m.Directive = strings.ToLower(sub[i])
		case "label":
			m.Label = sub[i]
		case "opcode":
			m.Opcode = sub[i]
		case "params":
			m.Params = paramToken.FindAllString(sub[i], -1)
		case "comment":
			m.Comment = strings.TrimSpace(sub[i])
		}
	}
	return m, true
}
