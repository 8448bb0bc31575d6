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

// Package fontfile opens font files and removes glyphs from them.
//
// A Font wraps a parsed [sfnt.Font].  Glyphs are removed by name, and the
// remaining glyphs are renumbered when the font is written with
// [Font.Generate].  The output format follows the extension of the output
// file name, see [FormatFromPath].
package fontfile

import (
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// NotdefName is the name of glyph 0.  This glyph is never removed.
const NotdefName = ".notdef"

// ErrClosed is returned when a closed Font is used.
var ErrClosed = errors.New("fontfile: font is closed")

// UnknownGlyphError is returned by [Font.RemoveGlyph] if the font does not
// contain a glyph with the given name.
type UnknownGlyphError struct {
	Name string
}

func (err *UnknownGlyphError) Error() string {
	return fmt.Sprintf("fontfile: no glyph named %q", err.Name)
}

// Glyph identifies a glyph in a font.
type Glyph struct {
	GID  glyph.ID
	Name string
}

// Font is an open font file.
//
// A Font must not be used concurrently from different goroutines.
type Font struct {
	path    string
	font    *sfnt.Font
	names   []string
	byName  map[string]glyph.ID
	removed map[glyph.ID]bool

	warnings []string
}

// Open reads the font file at path.
//
// Glyphs without a name in the font file are given names derived from the
// character map, so that every glyph can be addressed by name.
func Open(path string) (*Font, error) {
	info, err := sfnt.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(path, info), nil
}

// New wraps an already parsed font.  The Font takes ownership of info.
// The path is only used in error messages.
func New(path string, info *sfnt.Font) *Font {
	info.EnsureGlyphNames()

	f := &Font{
		path:    path,
		font:    info,
		names:   make([]string, info.NumGlyphs()),
		byName:  make(map[string]glyph.ID, info.NumGlyphs()),
		removed: make(map[glyph.ID]bool),
	}
	for i := range f.names {
		gid := glyph.ID(i)
		name := info.GlyphName(gid)
		f.names[i] = name
		if _, seen := f.byName[name]; !seen {
			f.byName[name] = gid
		}
	}
	return f
}

// Glyphs returns the glyphs which have not been removed, in the order of
// their glyph IDs.  The returned slice is a snapshot and is not affected
// by later calls to [Font.RemoveGlyph].
func (f *Font) Glyphs() []Glyph {
	if f.font == nil {
		return nil
	}
	res := make([]Glyph, 0, len(f.names)-len(f.removed))
	for i, name := range f.names {
		gid := glyph.ID(i)
		if f.removed[gid] {
			continue
		}
		res = append(res, Glyph{GID: gid, Name: name})
	}
	return res
}

// NumGlyphs returns the number of glyphs which have not been removed.
func (f *Font) NumGlyphs() int {
	return len(f.names) - len(f.removed)
}

// RemoveGlyph removes the glyph with the given name from the font.
//
// Glyph 0 (.notdef) is required by all supported font formats.  Attempts
// to remove it are ignored.
func (f *Font) RemoveGlyph(name string) error {
	if f.font == nil {
		return ErrClosed
	}
	gid, ok := f.byName[name]
	if !ok || f.removed[gid] {
		return &UnknownGlyphError{Name: name}
	}
	if gid == 0 {
		return nil
	}
	f.removed[gid] = true
	return nil
}

// Warnings returns the problems found while the font was last written.
// The messages are meant to be shown to a human.
func (f *Font) Warnings() []string {
	return f.warnings
}

// Close releases the font data.  Closing a closed font is a no-op.
func (f *Font) Close() error {
	f.font = nil
	f.names = nil
	f.byName = nil
	f.removed = nil
	f.warnings = nil
	return nil
}
