// Package search filters show lists with multi-term and quoted-phrase
// queries against show titles.
package search

import (
	"regexp"
	"strings"

	"pancake-service/internal/domain/shows"
)

// DefaultTerm is the implicit search term when no query is supplied; the
// primary use case is tracking the Master Pancake screening series.
const DefaultTerm = "pancake"

// termPattern splits a query on whitespace/commas while keeping
// double-quoted runs (escaped quotes allowed) together as one term.
var termPattern = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|\w+`)

// Terms tokenizes a query string. An empty query yields the default term.
func Terms(query string) []string {
	matches := termPattern.FindAllString(query, -1)
	terms := make([]string, 0, len(matches))
	for _, match := range matches {
		if term := unquote(match); term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return []string{DefaultTerm}
	}
	return terms
}

// Filter returns the shows whose title matches ANY term of the query,
// case-insensitively, preserving input order. Multiple terms broaden the
// result set rather than narrowing it.
func Filter(query string, list []shows.Show) []shows.Show {
	patterns := compile(Terms(query))

	matched := make([]shows.Show, 0, len(list))
	for _, show := range list {
		if matchesAny(patterns, show.Title) {
			matched = append(matched, show)
		}
	}
	return matched
}

// Escape makes a title safe to reuse as a literal search term, so titles
// containing regex metacharacters match verbatim when re-selected from an
// autocomplete list.
func Escape(term string) string {
	return regexp.QuoteMeta(term)
}

// LocationGroup is the (title, cinema) presentation grouping.
type LocationGroup struct {
	Title  string       `json:"title"`
	Cinema string       `json:"cinema"`
	Shows  []shows.Show `json:"shows"`
}

// ByLocation groups shows by (title, cinema), preserving the relative order
// of first occurrence.
func ByLocation(list []shows.Show) []LocationGroup {
	type key struct{ title, cinema string }

	index := make(map[key]int, len(list))
	groups := make([]LocationGroup, 0)
	for _, show := range list {
		k := key{show.Title, show.Cinema}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, LocationGroup{Title: show.Title, Cinema: show.Cinema})
		}
		groups[i].Shows = append(groups[i].Shows, show)
	}
	return groups
}

func compile(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		re, err := regexp.Compile("(?i)" + term)
		if err != nil {
			// Terms typed by hand can be broken regexes; match literally.
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
		}
		patterns = append(patterns, re)
	}
	return patterns
}

func matchesAny(patterns []*regexp.Regexp, title string) bool {
	for _, re := range patterns {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

// unquote strips surrounding double quotes and unescapes embedded ones.
func unquote(term string) string {
	if len(term) >= 2 && strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`) {
		inner := term[1 : len(term)-1]
		return strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(inner)
	}
	return term
}
