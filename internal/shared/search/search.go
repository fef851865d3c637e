// Package search holds the substring semantics shared by the SQL filters and
// the client side re-filter, so both layers agree on what "matches" means.
package search

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern matching term as a literal substring.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Matches reports whether term occurs, case-insensitively, in the fields
// joined by single spaces. An empty term matches everything.
func Matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(
		strings.ToLower(strings.Join(fields, " ")),
		strings.ToLower(term),
	)
}
