// Package expand generates hostnames from a bracket pattern such as
// "a[a-z]{2}.com" (-> aaa.com, aab.com, ..., azz.com).
package expand

import (
	"strconv"
	"strings"
)

const token = "[a-z]{"

// Hostnames expands the first "[a-z]{n}" token in pattern to every
// length-n lowercase string, in lexicographic order. Any further
// tokens are left as literal text; this single-token behavior is
// kept for compatibility with existing patterns. A pattern without a
// well-formed token expands to nothing.
//
// The result has exactly 26^n entries; the caller is responsible for
// keeping n small enough to hold them in memory.
func Hostnames(pattern string) []string {
	start := strings.Index(pattern, token)
	if start < 0 {
		return nil
	}
	rest := pattern[start+len(token):]
	end := strings.Index(rest, "}")
	if end < 0 {
		return nil
	}

	length, err := strconv.Atoi(rest[:end])
	if err != nil || length < 0 {
		return nil
	}

	prefix := pattern[:start]
	suffix := rest[end+1:]

	combos := combinations(length)
	hostnames := make([]string, 0, len(combos))
	for _, combo := range combos {
		hostnames = append(hostnames, prefix+combo+suffix)
	}
	return hostnames
}

// combinations returns every string of the given length over the
// lowercase alphabet, in lexicographic order.
func combinations(length int) []string {
	result := []string{""}
	for i := 0; i < length; i++ {
		next := make([]string, 0, len(result)*26)
		for _, prefix := range result {
			for c := byte('a'); c <= 'z'; c++ {
				next = append(next, prefix+string(c))
			}
		}
		result = next
	}
	return result
}
