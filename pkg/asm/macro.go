package asm

import (
	"hash/crc32"
	"strconv"
	"strings"
	"unicode/utf8"
)

// packedStringLen is the number of characters STR() keeps.
const packedStringLen = 6

// asciiBytes maps s to one byte per character. Characters outside ASCII
// become '?'.
func asciiBytes(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= utf8.RuneSelf {
			r = '?'
		}
		b = append(b, byte(r))
	}
	return b
}

// Hash is the value of HASH("s"): the IEEE CRC-32 of its ASCII bytes.
func Hash(s string) uint32 {
	return crc32.ChecksumIEEE(asciiBytes(s))
}

// PackString is the value of STR("s"): up to six ASCII bytes packed
// big-endian.
func PackString(s string) uint64 {
	b := asciiBytes(s)
	if len(b) > packedStringLen {
		b = b[:packedStringLen]
	}
	var out uint64
	for _, c := range b {
		out = out<<8 | uint64(c)
	}
	return out
}

// ExpandMacro evaluates a HASH("...") or STR("...") token to its decimal
// value. It reports false for any other token.
func ExpandMacro(token string) (string, bool) {
	if !IsMacro(token) {
		return token, false
	}
	open := strings.IndexByte(token, '"')
	arg := token[open+1 : len(token)-2]
	if strings.EqualFold(token[:open-1], "hash") {
		return strconv.FormatUint(uint64(Hash(arg)), 10), true
	}
	return strconv.FormatUint(PackString(arg), 10), true
}
