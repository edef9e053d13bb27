// Package names mangles rule-book identifiers into the symbol form the
// runtime ABI and generated code expect: a wire name stable across
// whatever casing convention the source rule book used, wrapped so it is
// safe to splice into an external symbol table.
package names

import (
	"log"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// Mangle converts a surface constructor/function name to its compiled
// wire name: snake_case each `.`/`$`-delimited segment, replace `.` with
// `_` and `$` with `_S_` between segments, then wrap the whole result in
// a leading and trailing underscore (spec.md §9). Segments are
// snake-cased before the `.`/`$` substitution, not after, so the
// casing pass never has to guess what strcase does with punctuation it
// wasn't designed to see.
func Mangle(name string) string {
	var stem strings.Builder
	start := 0
	flush := func(end int) {
		if end > start {
			stem.WriteString(strcase.ToSnake(name[start:end]))
		}
	}
	for i, r := range name {
		switch r {
		case '.':
			flush(i)
			stem.WriteByte('_')
			start = i + 1
		case '$':
			flush(i)
			stem.WriteString("_S_")
			start = i + 1
		}
	}
	flush(len(name))
	return "_" + stem.String() + "_"
}

// BuildIDTable mangles every name in source and returns a table from
// mangled wire name to id. Two surface names that differ only in the
// characters Mangle rewrites collide on the same wire name; spec.md §9
// requires logging that collision rather than silently corrupting the
// id table. Source names are visited in sorted order so the winner of a
// collision — and the table's log output — is deterministic across runs
// (spec.md §8 Testable Property 2), even though map iteration over
// source itself is not.
func BuildIDTable(source map[string]uint64) map[string]uint64 {
	sourceNames := make([]string, 0, len(source))
	for name := range source {
		sourceNames = append(sourceNames, name)
	}
	sort.Strings(sourceNames)

	table := make(map[string]uint64, len(source))
	for _, name := range sourceNames {
		mangled := Mangle(name)
		if _, collided := table[mangled]; collided {
			log.Printf("names: %q mangles to %q, colliding with an earlier name; the later one wins", name, mangled)
		}
		table[mangled] = source[name]
	}
	return table
}
