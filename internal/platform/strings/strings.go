// Package strings holds the text helpers the shop's modules and services share
package strings

import (
	std "strings"

	"golang.org/x/text/unicode/norm"
)

// MustString panics naming what is missing when s is blank
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount prefix to one leading slash and no trailing one
// "products/" becomes "/products", a blank or root prefix panics
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Clean trims s and folds it to unicode NFC so equal text compares equal
// "Café " and "Café" clean to the same string
func Clean(s string) string {
	return norm.NFC.String(std.TrimSpace(s))
}
