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
	"fmt"
	"path/filepath"
	"strings"
)

// Format describes the container format of an output file.
type Format int

// These are the supported output formats.
const (
	FormatTrueType Format = iota + 1 // sfnt container with glyf outlines
	FormatOpenType                   // sfnt container with glyf or CFF outlines
	FormatCFF                        // bare CFF font data
)

func (f Format) String() string {
	switch f {
	case FormatTrueType:
		return "TrueType"
	case FormatOpenType:
		return "OpenType"
	case FormatCFF:
		return "CFF"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var formatByExt = map[string]Format{
	".ttf": FormatTrueType,
	".otf": FormatOpenType,
	".cff": FormatCFF,
}

// FormatError is returned if a font cannot be written in the format
// requested by the output file name.
type FormatError struct {
	Path   string
	Reason string
}

func (err *FormatError) Error() string {
	return "fontfile: " + err.Path + ": " + err.Reason
}

// FormatFromPath determines the output format from the file name extension.
// The comparison is case-insensitive.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formatByExt[ext]
	if !ok {
		reason := "unsupported file name extension"
		if ext != "" {
			reason += " " + ext
		}
		return 0, &FormatError{Path: path, Reason: reason}
	}
	return format, nil
}
