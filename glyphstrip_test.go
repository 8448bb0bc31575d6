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

package glyphstrip

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/slices"
	xsfnt "golang.org/x/image/font/sfnt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphstrip/fontfile"
	"seehuhn.de/go/glyphstrip/internal/debug"
)

// makeRegular writes a TrueType font with the glyphs .notdef, A, B, C and
// space to dir, and returns the file name.
func makeRegular(t *testing.T, dir string) string {
	t.Helper()
	f := fontfile.New("GoRegular.ttf", debug.GoRegular())
	keep := map[string]bool{"A": true, "B": true, "C": true, "space": true}
	for _, g := range f.Glyphs() {
		if keep[g.Name] {
			continue
		}
		err := f.RemoveGlyph(g.Name)
		if err != nil {
			t.Fatal(err)
		}
	}
	fname := filepath.Join(dir, "Regular.ttf")
	err := f.Generate(fname)
	if err != nil {
		t.Fatal(err)
	}
	return fname
}

func writeKeepList(t *testing.T, dir, content string) string {
	t.Helper()
	fname := filepath.Join(dir, "keep.txt")
	err := os.WriteFile(fname, []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return fname
}

func readGlyphNames(t *testing.T, fname string) []string {
	t.Helper()
	info, err := sfnt.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	res := make([]string, info.NumGlyphs())
	for i := range res {
		res[i] = info.GlyphName(glyph.ID(i))
	}
	return res
}

// xGlyphNames reads the glyph names using a font parser which is
// independent of the one used to write the file.
func xGlyphNames(t *testing.T, fname string) []string {
	t.Helper()
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	font, err := xsfnt.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	buf := &xsfnt.Buffer{}
	var res []string
	for i := 0; i < font.NumGlyphs(); i++ {
		name, err := font.GlyphName(buf, xsfnt.GlyphIndex(i))
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, name)
	}
	return res
}

func sortedNames(names []string) []string {
	res := slices.Clone(names)
	slices.Sort(res)
	return res
}

// quietOptions returns options which send warnings to the returned buffer
// and discard all other diagnostics.
func quietOptions() (*Options, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Options{
		Log:  log.New(buf, "", 0),
		Diag: log.New(io.Discard, "", 0),
	}, buf
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := makeRegular(t, dir)
	keep := writeKeepList(t, dir, "A\nB\nspace\n")
	out := filepath.Join(dir, "Subset.ttf")

	opt, logBuf := quietOptions()
	res, err := Run(in, out, keep, opt)
	if err != nil {
		t.Fatal(err)
	}

	// Only the set of names matters, the glyph order is that of the
	// input font.
	want := []string{".notdef", "A", "B", "space"}
	if d := cmp.Diff(want, sortedNames(readGlyphNames(t, out))); d != "" {
		t.Errorf("wrong glyphs in output (-want +got):\n%s", d)
	}
	if d := cmp.Diff(want, sortedNames(xGlyphNames(t, out))); d != "" {
		t.Errorf("independent reader disagrees (-want +got):\n%s", d)
	}
	if d := cmp.Diff(want, sortedNames(res.Kept)); d != "" {
		t.Errorf("wrong Kept (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"C"}, res.Removed); d != "" {
		t.Errorf("wrong Removed (-want +got):\n%s", d)
	}
	if res.Output != out {
		t.Errorf("wrong output name %q", res.Output)
	}
	if logBuf.Len() != 0 {
		t.Errorf("unexpected log output %q", logBuf.String())
	}
}

func TestIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := makeRegular(t, dir)
	keep := writeKeepList(t, dir, "C\nA\n")

	var results [][]string
	for _, name := range []string{"out1.ttf", "out2.ttf"} {
		out := filepath.Join(dir, name)
		opt, _ := quietOptions()
		_, err := Run(in, out, keep, opt)
		if err != nil {
			t.Fatal(err)
		}
		results = append(results, readGlyphNames(t, out))
	}
	if d := cmp.Diff(results[0], results[1]); d != "" {
		t.Errorf("runs differ (-first +second):\n%s", d)
	}
}

func TestEmptyKeepList(t *testing.T) {
	for _, content := range []string{"", "\n\n  \n", "nothing\nmatches\n"} {
		dir := t.TempDir()
		in := makeRegular(t, dir)
		keep := writeKeepList(t, dir, content)
		out := filepath.Join(dir, "Subset.ttf")

		opt, logBuf := quietOptions()
		_, err := Run(in, out, keep, opt)
		if err != nil {
			t.Fatal(err)
		}

		if d := cmp.Diff([]string{".notdef"}, readGlyphNames(t, out)); d != "" {
			t.Errorf("%q: wrong glyphs in output (-want +got):\n%s", content, d)
		}
		if !strings.Contains(logBuf.String(), "Warning: ") ||
			!strings.Contains(logBuf.String(), "will be empty") {
			t.Errorf("%q: missing warning, got %q", content, logBuf.String())
		}
	}
}

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()
	in := makeRegular(t, dir)
	keep := writeKeepList(t, dir, "A\n")
	missing := filepath.Join(dir, "missing")
	out := filepath.Join(dir, "Subset.ttf")

	cases := []struct {
		in, keep string
		kind     FileKind
	}{
		{missing, keep, InputFont},
		{in, missing, KeepList},
		{missing, missing, InputFont},
		{dir, keep, InputFont},
	}
	for _, c := range cases {
		opt, _ := quietOptions()
		opt.Open = func(string) (Font, error) {
			t.Fatal("font opened after failed check")
			return nil, nil
		}
		_, err := Run(c.in, out, c.keep, opt)

		var missingErr *MissingFileError
		if !errors.As(err, &missingErr) {
			t.Errorf("expected MissingFileError, got %v", err)
			continue
		}
		if missingErr.Kind != c.kind {
			t.Errorf("expected %s, got %s", c.kind, missingErr.Kind)
		}
		wantPath := c.in
		if c.kind == KeepList {
			wantPath = c.keep
		}
		if !strings.Contains(err.Error(), wantPath) {
			t.Errorf("message %q does not name %s", err, wantPath)
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Error("output file was created")
		}
	}
}

type testFont struct {
	glyphs      []fontfile.Glyph
	removed     []string
	generateErr error
	warnings    []string
	closed      int
}

func (f *testFont) Glyphs() []fontfile.Glyph {
	var res []fontfile.Glyph
	for _, g := range f.glyphs {
		gone := false
		for _, name := range f.removed {
			if g.Name == name {
				gone = true
			}
		}
		if !gone {
			res = append(res, g)
		}
	}
	return res
}

func (f *testFont) RemoveGlyph(name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func (f *testFont) Generate(string) error {
	return f.generateErr
}

func (f *testFont) Warnings() []string {
	return f.warnings
}

func (f *testFont) Close() error {
	f.closed++
	return nil
}

func TestCloseOnError(t *testing.T) {
	dir := t.TempDir()
	keep := writeKeepList(t, dir, "b\n")
	in := filepath.Join(dir, "in.ttf")
	err := os.WriteFile(in, nil, 0o644)
	if err != nil {
		t.Fatal(err)
	}

	errWrite := errors.New("disk full")
	for _, generateErr := range []error{nil, errWrite} {
		font := &testFont{
			glyphs: []fontfile.Glyph{
				{GID: 0, Name: "a"},
				{GID: 1, Name: "b"},
				{GID: 2, Name: "c"},
			},
			generateErr: generateErr,
		}
		opt, _ := quietOptions()
		opt.Open = func(string) (Font, error) { return font, nil }

		_, err := Run(in, filepath.Join(dir, "out.ttf"), keep, opt)
		if !errors.Is(err, generateErr) {
			t.Errorf("expected %v, got %v", generateErr, err)
		}
		if font.closed != 1 {
			t.Errorf("font closed %d times", font.closed)
		}
		if d := cmp.Diff([]string{"a", "c"}, font.removed); d != "" {
			t.Errorf("wrong removals (-want +got):\n%s", d)
		}
	}
}

// TestDiagnostics checks that only the warnings about an empty result go to
// Options.Log.  Everything else is sent to Options.Diag.
func TestDiagnostics(t *testing.T) {
	dir := t.TempDir()
	keep := writeKeepList(t, dir, "b\ntwo words\n")
	in := filepath.Join(dir, "in.ttf")
	err := os.WriteFile(in, nil, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	font := &testFont{
		glyphs: []fontfile.Glyph{
			{GID: 0, Name: "a"},
			{GID: 1, Name: "b"},
		},
		warnings: []string{"something odd"},
	}

	logBuf := &bytes.Buffer{}
	diagBuf := &bytes.Buffer{}
	opt := &Options{
		Open: func(string) (Font, error) { return font, nil },
		Log:  log.New(logBuf, "", 0),
		Diag: log.New(diagBuf, "", 0),
	}
	_, err = Run(in, filepath.Join(dir, "out.ttf"), keep, opt)
	if err != nil {
		t.Fatal(err)
	}

	if logBuf.Len() != 0 {
		t.Errorf("unexpected warnings %q", logBuf.String())
	}
	diag := diagBuf.String()
	for _, msg := range []string{
		"Warning: \"two words\" is not a valid glyph name\n",
		"Warning: something odd\n",
	} {
		if !strings.Contains(diag, msg) {
			t.Errorf("missing %q in %q", msg, diag)
		}
	}
}

// TestKeepProperty checks, for random keep-lists, that the output contains
// exactly the glyphs of the font which are listed in the keep-list, plus
// .notdef.
func TestKeepProperty(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "GoRegular.ttf")
	err := os.WriteFile(in, debug.GoRegularTTF(), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	f, err := fontfile.Open(in)
	if err != nil {
		t.Fatal(err)
	}
	all := f.Glyphs()
	f.Close()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5; i++ {
		wanted := map[string]bool{".notdef": true}
		var lines []string
		for _, g := range all {
			if rng.Intn(20) == 0 {
				lines = append(lines, g.Name)
				wanted[g.Name] = true
			}
		}
		lines = append(lines, "not-a-glyph", "")
		keep := writeKeepList(t, dir, strings.Join(lines, "\n"))
		out := filepath.Join(dir, "out.ttf")

		opt, _ := quietOptions()
		_, err := Run(in, out, keep, opt)
		if err != nil {
			t.Fatal(err)
		}

		got := readGlyphNames(t, out)
		for _, name := range got {
			if !wanted[name] {
				t.Errorf("%d: unexpected glyph %q", i, name)
			}
		}
		if len(got) != len(wanted) {
			t.Errorf("%d: expected %d glyphs, got %d", i, len(wanted), len(got))
		}
	}
}
