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

// Glyphstrip removes all glyphs from a font file, except for the ones
// listed in a keep-list.
//
// Usage:
//
//	glyphstrip IN_FONT OUT_FONT KEEP_GLYPHS_FILE
//
// KEEP_GLYPHS_FILE is a text file with one glyph name per line.  The format
// of OUT_FONT is determined by its extension: ".ttf", ".otf" or ".cff".
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"seehuhn.de/go/glyphstrip"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the program and returns the exit code.  There are no
// options, so arguments starting with "-" are taken as file names.
func run(args []string, stdout, stderr io.Writer) int {
	inFont, outFont, keepFile, err := positional(args)
	if err != nil {
		usage(stdout)
		return 1
	}

	opt := &glyphstrip.Options{
		Log:  log.New(stdout, "", 0),
		Diag: log.New(stderr, "", 0),
	}
	_, err = glyphstrip.Run(inFont, outFont, keepFile, opt)
	var missing *glyphstrip.MissingFileError
	if errors.As(err, &missing) {
		fmt.Fprintln(stdout, "Error:", missing)
		return 1
	} else if err != nil {
		log.New(stderr, "glyphstrip: ", 0).Print(err)
		return 1
	}

	fmt.Fprintln(stdout, "Subset font saved as:", outFont)
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: glyphstrip IN_FONT OUT_FONT KEEP_GLYPHS_FILE")
}

// positional returns the three file names given on the command line.
func positional(args []string) (inFont, outFont, keepFile string, err error) {
	if len(args) != 3 {
		return "", "", "", glyphstrip.ErrUsage
	}
	return args[0], args[1], args[2], nil
}
