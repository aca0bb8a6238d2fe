package catalog

import (
	"strings"
	"unicode/utf8"
)

// Query classification. Code-like queries take the fast-path point lookup;
// free text goes straight to the snapshot filter.
type Class int

const (
	ClassFreeText Class = iota
	ClassExactCode
)

func (c Class) String() string {
	if c == ClassExactCode {
		return "exact_code"
	}
	return "free_text"
}

// Queries longer than this are treated as code-like even when they contain
// letters (long alphanumeric SKUs).
const codeLengthThreshold = 8

// Query is a trimmed search input with its derived classification.
type Query struct {
	Raw   string
	Class Class
}

// Classify trims the raw input and derives its class: all-digits or longer
// than the length threshold means exact-code-like (barcodes, long SKUs).
func Classify(raw string) Query {
	q := strings.TrimSpace(raw)
	if allDigits(q) || utf8.RuneCountInString(q) > codeLengthThreshold {
		return Query{Raw: q, Class: ClassExactCode}
	}
	return Query{Raw: q, Class: ClassFreeText}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
