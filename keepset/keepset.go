// seehuhn.de/go/glyphstrip - remove unwanted glyphs from font files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package keepset reads lists of glyph names.
//
// A keep-list is a UTF-8 text file with one glyph name per line.
// Surrounding white space is removed from every line and blank lines are
// ignored.  A leading byte order mark is allowed.
package keepset

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"seehuhn.de/go/postscript/type1/names"
)

// Set is a set of glyph names.
type Set map[string]struct{}

// New returns a set containing the given names.
// Empty names are skipped.
func New(glyphNames ...string) Set {
	s := make(Set, len(glyphNames))
	for _, name := range glyphNames {
		s.Add(name)
	}
	return s
}

// Add adds a glyph name to the set.
// The empty string can never match a glyph name and is ignored.
func (s Set) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether the set contains the given glyph name.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names in the set.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the names in the set in lexicographic order.
func (s Set) Sorted() []string {
	res := make([]string, 0, len(s))
	for name := range s {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// Invalid returns the names in the set which are not valid PostScript
// glyph names, in lexicographic order.  Such names can still be matched
// against the names stored in a font.
func (s Set) Invalid() []string {
	var res []string
	for name := range s {
		if !names.IsValid(name) {
			res = append(res, name)
		}
	}
	slices.Sort(res)
	return res
}

// Read reads a keep-list from r.
func Read(r io.Reader) (Set, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, dec))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	s := Set{}
	for scanner.Scan() {
		s.Add(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadFile reads a keep-list from the named file.
func ReadFile(fname string) (Set, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return Read(fd)
}
