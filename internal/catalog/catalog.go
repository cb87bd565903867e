// Package catalog enumerates the background pattern identifiers that tilepat
// knows how to render.
//
// The catalog is described compactly as an ordered table of families. Each
// family contributes its base name, or one identifier per suffix, with numeric
// ranges expanded in ascending order. The order of the table is the order of
// the catalog.
package catalog

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Suffix is one suffix declaration of a family: either a literal token or an
// inclusive numeric range. The zero Suffix expands to nothing.
type Suffix struct {
	Token   string
	From    int
	To      int
	isRange bool
}

// Num declares a single numeric suffix.
func Num(n int) Suffix { return Suffix{Token: strconv.Itoa(n)} }

// Tok declares a single literal suffix.
func Tok(s string) Suffix { return Suffix{Token: s} }

// Range declares the inclusive numeric range [from, to].
func Range(from, to int) Suffix { return Suffix{From: from, To: to, isRange: true} }

// expand appends the identifiers this suffix produces for base.
func (s Suffix) expand(base string, out []string) []string {
	if !s.isRange {
		if s.Token == "" {
			return out
		}
		return append(out, base+"-"+s.Token)
	}
	for n := s.From; n <= s.To; n++ {
		out = append(out, base+"-"+strconv.Itoa(n))
	}
	return out
}

// Family is a base pattern name and its suffixes. A family without suffixes
// contributes exactly its base name.
type Family struct {
	Base     string
	Suffixes []Suffix
}

// Entry is one catalog item.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Title derives the display title of an identifier: segments separated by "-"
// get their first character upper-cased and are joined with spaces.
// The rest of each segment is kept as is, so "waves-3d" becomes "Waves 3d".
func Title(id string) string {
	upper := cases.Upper(language.Und)
	segments := strings.Split(id, "-")
	for i, seg := range segments {
		r, size := utf8.DecodeRuneInString(seg)
		if r == utf8.RuneError {
			continue
		}
		segments[i] = upper.String(string(r)) + seg[size:]
	}
	return strings.Join(segments, " ")
}

// Generate expands families into catalog entries, preserving declaration
// order.
func Generate(families []Family) []Entry {
	var ids []string
	for _, f := range families {
		if len(f.Suffixes) == 0 {
			ids = append(ids, f.Base)
			continue
		}
		for _, s := range f.Suffixes {
			ids = s.expand(f.Base, ids)
		}
	}

	entries := make([]Entry, len(ids))
	for i, id := range ids {
		entries[i] = Entry{ID: id, Title: Title(id)}
	}
	return entries
}

// All returns the full built-in catalog.
func All() []Entry {
	return Generate(Families)
}

// IDs returns the identifiers of the built-in catalog in catalog order.
func IDs() []string {
	entries := All()
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// index maps built-in ids to entries; Families is fixed at init.
var index = sync.OnceValue(func() map[string]Entry {
	entries := All()
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
})

// Lookup reports whether id names an entry of the built-in catalog.
func Lookup(id string) (Entry, bool) {
	e, ok := index()[id]
	return e, ok
}
