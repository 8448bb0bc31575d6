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

// Package glyphstrip reduces font files to a chosen set of glyphs.
//
// The glyphs to keep are given as a keep-list, a text file with one glyph
// name per line (see package [seehuhn.de/go/glyphstrip/keepset]).  All
// other glyphs are removed from the font, and the result is written to a
// new file.  Reading, modifying and writing the font is done by a [Font]
// returned from [Options.Open]; by default this uses
// [seehuhn.de/go/glyphstrip/fontfile].
package glyphstrip

import (
	"errors"
	"fmt"
	"log"
	"os"

	"seehuhn.de/go/glyphstrip/fontfile"
	"seehuhn.de/go/glyphstrip/keepset"
)

// Font is an open, modifiable font.
type Font interface {
	// Glyphs returns a snapshot of the glyphs currently in the font.
	Glyphs() []fontfile.Glyph

	// RemoveGlyph deletes the named glyph from the font.
	RemoveGlyph(name string) error

	// Generate writes the font to the given file.  The file format is
	// determined by the file name extension.
	Generate(path string) error

	// Close releases all resources associated with the font.
	Close() error
}

// WarningFont is implemented by fonts which can report non-fatal problems
// found while writing the output file.
type WarningFont interface {
	Font
	Warnings() []string
}

// Opener opens the font file at path.
type Opener func(path string) (Font, error)

// Options controls the behaviour of [Run].
// The zero value and nil both select the defaults.
type Options struct {
	// Open is used to open the input font.
	// If this is nil, [fontfile.Open] is used.
	Open Opener

	// Log receives the warnings about an empty result.
	// If this is nil, warnings are written to standard output.
	Log *log.Logger

	// Diag receives all other diagnostics: invalid names in the keep-list,
	// and problems found while writing the output font.
	// If this is nil, diagnostics are written to standard error.
	Diag *log.Logger
}

// Result summarises a successful run.
type Result struct {
	Output  string
	Kept    []string // names of the glyphs left in the font
	Removed []string // names of the removed glyphs
}

// ErrUsage indicates that a program was called with the wrong number
// of arguments.
var ErrUsage = errors.New("glyphstrip: wrong number of arguments")

// FileKind identifies the role of a file given to [Run].
type FileKind int

// These are the input files checked by [Run].
const (
	InputFont FileKind = iota + 1
	KeepList
)

func (k FileKind) String() string {
	switch k {
	case InputFont:
		return "input font"
	case KeepList:
		return "keep-list file"
	default:
		return fmt.Sprintf("FileKind(%d)", int(k))
	}
}

// MissingFileError is returned by [Run] if one of the input files does not
// exist.
type MissingFileError struct {
	Kind FileKind
	Path string
}

func (err *MissingFileError) Error() string {
	return err.Kind.String() + " not found at " + err.Path
}

// Run removes all glyphs from the font at inPath which are not listed in the
// keep-list at keepPath, and writes the result to outPath.
//
// Both input files are checked before anything else is done.  If one of them
// is missing, a *MissingFileError is returned and no output is written.
// Errors from reading, modifying or writing the font are returned wrapped.
func Run(inPath, outPath, keepPath string, opt *Options) (res *Result, err error) {
	if opt == nil {
		opt = &Options{}
	}
	open := opt.Open
	if open == nil {
		open = openFontFile
	}
	logger := opt.Log
	if logger == nil {
		logger = log.New(os.Stdout, "", 0)
	}
	diag := opt.Diag
	if diag == nil {
		diag = log.New(os.Stderr, "", 0)
	}

	if !isFile(inPath) {
		return nil, &MissingFileError{Kind: InputFont, Path: inPath}
	}
	if !isFile(keepPath) {
		return nil, &MissingFileError{Kind: KeepList, Path: keepPath}
	}

	keep, err := keepset.ReadFile(keepPath)
	if err != nil {
		return nil, fmt.Errorf("reading keep-list: %w", err)
	}
	if keep.Len() == 0 {
		logger.Print("Warning: no valid glyph names loaded, output font will be empty")
	}
	for _, name := range keep.Invalid() {
		diag.Printf("Warning: %q is not a valid glyph name", name)
	}

	font, err := open(inPath)
	if err != nil {
		return nil, fmt.Errorf("opening font: %w", err)
	}
	defer func() {
		err2 := font.Close()
		if err == nil && err2 != nil {
			res = nil
			err = fmt.Errorf("closing font: %w", err2)
		}
	}()

	// Glyphs returns a snapshot, so removing glyphs inside the loop is safe.
	all := font.Glyphs()
	matched := 0
	for _, g := range all {
		if keep.Has(g.Name) {
			matched++
			continue
		}
		err = font.RemoveGlyph(g.Name)
		if err != nil {
			return nil, fmt.Errorf("removing glyph %q: %w", g.Name, err)
		}
	}

	if matched == 0 && keep.Len() > 0 {
		logger.Print("Warning: no glyph in the font matches the keep-list, output font will be empty")
	}

	res = &Result{Output: outPath}
	left := make(map[string]bool)
	for _, g := range font.Glyphs() {
		res.Kept = append(res.Kept, g.Name)
		left[g.Name] = true
	}
	for _, g := range all {
		if !left[g.Name] {
			res.Removed = append(res.Removed, g.Name)
		}
	}

	err = font.Generate(outPath)
	if err != nil {
		return nil, fmt.Errorf("writing font: %w", err)
	}
	if wf, ok := font.(WarningFont); ok {
		for _, msg := range wf.Warnings() {
			diag.Print("Warning: " + msg)
		}
	}

	return res, nil
}

func openFontFile(path string) (Font, error) {
	f, err := fontfile.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
