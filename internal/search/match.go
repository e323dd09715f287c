package search

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Casers keep state between calls, so each goroutine borrows its own.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

func fold(s string) string {
	c := folders.Get().(*cases.Caser)
	defer folders.Put(c)
	return c.String(norm.NFC.String(s))
}

// Match reports whether name contains query, ignoring case.
func Match(name, query string) bool {
	return strings.Contains(fold(name), fold(query))
}
