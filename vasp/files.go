/*
 * files.go, part of defcorr.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * defcorr is developed at the Universidad de Santiago de Chile
 * (USACH), on top of goChem.
 *
 */

package vasp

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/defcorr"
)

// zstdql makes a *zstd.Decoder an io.ReadCloser, closing also the file under it.
type zstdql struct {
	*zstd.Decoder
	f *os.File
}

// Close closes the decoder and the file. The object can't be used after this call.
func (z zstdql) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzql struct {
	*gzip.Reader
	f *os.File
}

func (g gzql) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

// Open opens the file name for reading. Files ending in .zst or .gz are
// decompressed on the fly.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("vasp: %w", err)
	}
	lname := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lname, ".zst"):
		d, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("vasp: can't decompress %s: %w", name, err)
		}
		return zstdql{d, f}, nil
	case strings.HasSuffix(lname, ".gz"):
		g, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("vasp: can't decompress %s: %w", name, err)
		}
		return gzql{g, f}, nil
	}
	return f, nil
}

// lines reads a text file one line at a time, keeping count for error messages.
type lines struct {
	r    *bufio.Reader
	name string
	n    int
}

func newLines(r io.Reader, name string) *lines {
	return &lines{r: bufio.NewReaderSize(r, 1<<16), name: name}
}

// next returns the next line without the line break. At the end of the input it
// returns io.EOF, unless the last line has content.
func (L *lines) next() (string, error) {
	s, err := L.r.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return "", err
	}
	L.n++
	return strings.TrimRight(s, "\r\n"), nil
}

// nextFields returns the fields of the next line that has any.
func (L *lines) nextFields() ([]string, error) {
	for {
		s, err := L.next()
		if err != nil {
			return nil, err
		}
		if f := strings.Fields(s); len(f) > 0 {
			return f, nil
		}
	}
}

// errorf returns a malformed-input error for the current line, created in caller.
func (L *lines) errorf(caller, format string, args ...interface{}) error {
	return defcorr.NewError(defcorr.ErrInputShape, caller, "%s, line %d: %s", L.name, L.n, fmt.Sprintf(format, args...))
}
