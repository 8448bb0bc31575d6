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

// Package debug provides small fonts for use in unit tests.
package debug

import (
	"bytes"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"
)

// GoRegular returns a freshly parsed copy of the Go Regular font.
// This is a TrueType font with several hundred glyphs, including
// composite glyphs and OpenType layout tables.
func GoRegular() *sfnt.Font {
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	return info
}

// GoRegularTTF returns the binary form of the Go Regular font.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// MakeCFFFont returns a font with CFF outlines and one glyph for each of the
// given names, in order.  A .notdef glyph is always added as glyph 0.
// Glyphs with single-character names, and "space", are mapped in the cmap
// table.
func MakeCFFFont(glyphNames ...string) *sfnt.Font {
	g0 := cff.NewGlyph(".notdef", 500)
	g0.MoveTo(50, 0)
	g0.LineTo(450, 0)
	g0.LineTo(450, 700)
	g0.LineTo(50, 700)
	gg := []*cff.Glyph{g0}

	cmapSub := cmap.Format4{}
	for i, name := range glyphNames {
		g := cff.NewGlyph(name, 600)
		if name != "space" {
			x := float64(10 * i)
			g.MoveTo(x, 0)
			g.LineTo(x+500, 0)
			g.LineTo(x+250, 700)
		}
		gid := glyph.ID(len(gg))
		gg = append(gg, g)

		switch {
		case name == "space":
			cmapSub[' '] = gid
		case len(name) == 1:
			cmapSub[uint16(name[0])] = gid
		}
	}

	now := time.Now()
	res := &sfnt.Font{
		FamilyName: "Debug",
		Width:      os2.WidthNormal,
		Weight:     os2.WeightNormal,
		IsRegular:  true,

		CodePageRange: 1 << os2.CP1252,

		CreationTime:     now,
		ModificationTime: now,

		UnitsPerEm: 1000,
		Ascent:     800,
		Descent:    -200,
		LineGap:    100,
		CapHeight:  700,
		XHeight:    500,

		UnderlinePosition:  -100,
		UnderlineThickness: 50,

		Outlines: &cff.Outlines{
			Glyphs: gg,
			Private: []*type1.PrivateDict{
				{
					BlueValues: []funit.Int16{-10, 0, 700, 710},
					StdHW:      50,
					StdVW:      60,
				},
			},
			FDSelect: func(glyph.ID) int { return 0 },
			Encoding: cff.StandardEncoding(gg),
		},
	}
	if len(cmapSub) > 0 {
		res.InstallCMap(cmapSub)
	}
	return res
}
