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
	"strings"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/classdef"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"
)

// prune returns a copy of the font which contains only the glyphs that have
// not been removed.  The font stored in f is not modified.
func (f *Font) prune() *sfnt.Font {
	f.warnings = f.warnings[:0]

	if len(f.removed) == 0 {
		return f.font
	}

	p := &pruner{
		newGid: make(map[glyph.ID]glyph.ID, f.NumGlyphs()),
	}
	for i := range f.names {
		gid := glyph.ID(i)
		if f.removed[gid] {
			continue
		}
		p.newGid[gid] = glyph.ID(len(p.glyphs))
		p.glyphs = append(p.glyphs, gid)
	}

	res := f.font.Clone()
	if sub := p.pruneCMap(f.font.CMapTable); sub != nil {
		res.InstallCMap(sub)
	} else {
		res.CMapTable = nil
	}

	// GDEF and GSUB refer to glyphs in many different subtable formats and
	// are not rewritten.  GPOS survives if it only contains single and pair
	// adjustments, which is enough to keep the kerning.
	res.Gdef = nil
	res.Gsub = nil
	res.Gpos = nil
	var dropped []string
	if f.font.Gdef != nil {
		dropped = append(dropped, "GDEF")
	}
	if f.font.Gsub != nil {
		dropped = append(dropped, "GSUB")
	}
	if f.font.Gpos != nil {
		gpos, ok := p.pruneGpos(f.font.Gpos)
		if ok {
			res.Gpos = gpos
		} else {
			dropped = append(dropped, "GPOS")
		}
	}
	if len(dropped) > 0 {
		f.warnf("OpenType layout tables removed: %s", strings.Join(dropped, ", "))
	}

	switch outlines := f.font.Outlines.(type) {
	case *cff.Outlines:
		res.Outlines = outlines.Subset(p.glyphs)
	case *glyf.Outlines:
		res.Outlines = p.pruneGlyf(outlines)
		for _, gid := range p.broken {
			f.warnf("composite glyph %q refers to a removed glyph", f.names[gid])
		}
	default:
		panic("unexpected font type")
	}

	return res
}

func (f *Font) warnf(format string, args ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

type pruner struct {
	glyphs []glyph.ID
	newGid map[glyph.ID]glyph.ID

	// broken lists the old glyph IDs of composite glyphs which reference a
	// removed component.
	broken []glyph.ID
}

// pruneCMap maps the best available Unicode subtable to the new glyph IDs.
// Characters mapped to removed glyphs are dropped.  If no characters are
// left, nil is returned.
func (p *pruner) pruneCMap(table cmap.Table) cmap.Subtable {
	if table == nil {
		return nil
	}
	c, err := table.GetBest()
	if err != nil || c == nil {
		return nil
	}

	low, high := c.CodeRange()
	m := make(map[rune]glyph.ID)
	var maxRune rune
	for r := low; r <= high; r++ {
		oldGid := c.Lookup(r)
		if oldGid == 0 {
			continue
		}
		newGid, ok := p.newGid[oldGid]
		if !ok {
			continue
		}
		m[r] = newGid
		maxRune = r
	}
	if len(m) == 0 {
		return nil
	}

	if maxRune <= 0xFFFF {
		f4 := cmap.Format4{}
		for r, gid := range m {
			f4[uint16(r)] = gid
		}
		return f4
	}
	f12 := cmap.Format12{}
	for r, gid := range m {
		f12[uint32(r)] = gid
	}
	return f12
}

func (p *pruner) pruneGlyf(oldOutlines *glyf.Outlines) *glyf.Outlines {
	newOutlines := &glyf.Outlines{
		Tables: oldOutlines.Tables,
		Maxp:   oldOutlines.Maxp,
	}

	newOutlines.Glyphs = make(glyf.Glyphs, len(p.glyphs))
	for newGid, oldGid := range p.glyphs {
		g := oldOutlines.Glyphs[oldGid]
		for _, component := range g.Components() {
			if _, ok := p.newGid[component]; !ok {
				p.broken = append(p.broken, oldGid)
				break
			}
		}
		newOutlines.Glyphs[newGid] = g.FixComponents(p.newGid)
	}

	if oldOutlines.Widths != nil {
		newOutlines.Widths = make([]funit.Int16, len(p.glyphs))
		for newGid, oldGid := range p.glyphs {
			newOutlines.Widths[newGid] = oldOutlines.Widths[oldGid]
		}
	}

	if oldOutlines.Names != nil {
		newOutlines.Names = make([]string, len(p.glyphs))
		for newGid, oldGid := range p.glyphs {
			newOutlines.Names[newGid] = oldOutlines.Names[oldGid]
		}
	}

	return newOutlines
}

// pruneGpos maps the single and pair adjustment lookups of a GPOS table to
// the new glyph IDs.  Adjustments which involve a removed glyph are dropped.
// If the table contains any other kind of lookup, or lookups which depend on
// GDEF mark sets, the second return value is false.  If no adjustments are
// left, nil is returned.
func (p *pruner) pruneGpos(old *gtab.Info) (*gtab.Info, bool) {
	res := &gtab.Info{
		ScriptList:  old.ScriptList,
		FeatureList: old.FeatureList,
		LookupList:  make(gtab.LookupList, len(old.LookupList)),
	}
	numSubtables := 0
	for i, lOld := range old.LookupList {
		if lOld.Meta.LookupFlags&(gtab.UseMarkFilteringSet|gtab.MarkAttachTypeMask) != 0 {
			return nil, false
		}
		lNew := &gtab.LookupTable{Meta: lOld.Meta}
		for _, sOld := range lOld.Subtables {
			sNew, ok := p.pruneGposSubtable(sOld)
			if !ok {
				return nil, false
			}
			if sNew != nil {
				lNew.Subtables = append(lNew.Subtables, sNew)
			}
		}
		numSubtables += len(lNew.Subtables)
		res.LookupList[i] = lNew
	}
	if numSubtables == 0 {
		return nil, true
	}
	return res, true
}

// pruneGposSubtable returns nil, true if no adjustments are left.
func (p *pruner) pruneGposSubtable(s gtab.Subtable) (gtab.Subtable, bool) {
	switch s := s.(type) {
	case *gtab.Gpos1_1:
		cov, _ := p.pruneCoverage(s.Cov)
		if len(cov) == 0 {
			return nil, true
		}
		return &gtab.Gpos1_1{Cov: cov, Adjust: s.Adjust}, true

	case *gtab.Gpos1_2:
		cov, idx := p.pruneCoverage(s.Cov)
		if len(cov) == 0 {
			return nil, true
		}
		adjust := make([]*gtab.GposValueRecord, len(idx))
		for i, j := range idx {
			adjust[i] = s.Adjust[j]
		}
		return &gtab.Gpos1_2{Cov: cov, Adjust: adjust}, true

	case gtab.Gpos2_1:
		res := gtab.Gpos2_1{}
		for pair, adj := range s {
			left, ok1 := p.newGid[pair.Left]
			right, ok2 := p.newGid[pair.Right]
			if ok1 && ok2 {
				res[glyph.Pair{Left: left, Right: right}] = adj
			}
		}
		if len(res) == 0 {
			return nil, true
		}
		return res, true

	case *gtab.Gpos2_2:
		cov := coverage.Set{}
		for gid := range s.Cov {
			if newGid, ok := p.newGid[gid]; ok {
				cov[newGid] = true
			}
		}
		if len(cov) == 0 {
			return nil, true
		}
		return &gtab.Gpos2_2{
			Cov:    cov,
			Class1: p.pruneClassDef(s.Class1),
			Class2: p.pruneClassDef(s.Class2),
			Adjust: s.Adjust,
		}, true

	default:
		return nil, false
	}
}

// pruneCoverage returns the coverage table for the glyphs of cov which have
// not been removed, together with their old coverage indices.
func (p *pruner) pruneCoverage(cov coverage.Table) (coverage.Table, []int) {
	var gids []glyph.ID
	for gid := range cov {
		if _, ok := p.newGid[gid]; ok {
			gids = append(gids, gid)
		}
	}
	slices.Sort(gids)

	res := make(coverage.Table, len(gids))
	idx := make([]int, len(gids))
	for i, gid := range gids {
		res[p.newGid[gid]] = i
		idx[i] = cov[gid]
	}
	return res, idx
}

func (p *pruner) pruneClassDef(classes classdef.Table) classdef.Table {
	res := classdef.Table{}
	for gid, class := range classes {
		if newGid, ok := p.newGid[gid]; ok {
			res[newGid] = class
		}
	}
	return res
}
