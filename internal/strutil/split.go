// Package strutil provides the tokenizer shared by the PLY header parser,
// the ASCII payload reader, and the raster text parsers.
package strutil

import "strings"

// Fields splits a line on runs of spaces and tabs, dropping empty tokens.
// A stray carriage return is stripped first; files frequently come from
// Windows systems and would otherwise grow a bogus trailing token.
func Fields(line string) []string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r'
	})
}

// Split splits on a single delimiter byte, dropping empty tokens and tokens
// that are only a carriage return.
func Split(s string, sep byte) []string {
	parts := strings.Split(s, string(sep))
	out := parts[:0]
	for _, p := range parts {
		if p == "" || p == "\r" {
			continue
		}
		out = append(out, p)
	}

	return out
}
