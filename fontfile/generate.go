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

package fontfile

import (
	"bufio"
	"io"
	"os"
)

// Generate writes the font, without the removed glyphs, to the named file.
// The file format is chosen using [FormatFromPath].
//
// If writing fails, a partially written file may be left behind.
func (f *Font) Generate(path string) error {
	if f.font == nil {
		return ErrClosed
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatTrueType:
		if !f.font.IsGlyf() {
			return &FormatError{Path: path, Reason: "font has no TrueType outlines"}
		}
	case FormatCFF:
		if !f.font.IsCFF() {
			return &FormatError{Path: path, Reason: "font has no CFF outlines"}
		}
	}

	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fd)
	err = f.Encode(w, format)
	if err == nil {
		err = w.Flush()
	}
	err2 := fd.Close()
	if err == nil {
		err = err2
	}
	return err
}

// Encode writes the font, without the removed glyphs, to w.
func (f *Font) Encode(w io.Writer, format Format) error {
	if f.font == nil {
		return ErrClosed
	}

	out := f.prune()
	switch format {
	case FormatTrueType, FormatOpenType:
		_, err := out.Write(w)
		return err
	case FormatCFF:
		if !out.IsCFF() {
			return &FormatError{Path: f.path, Reason: "font has no CFF outlines"}
		}
		return out.AsCFF().Write(w)
	default:
		return &FormatError{Path: f.path, Reason: "unknown format " + format.String()}
	}
}
