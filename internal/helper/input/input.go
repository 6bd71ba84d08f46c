/*
Copyright 2019 The kaamer Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package input

import (
	"bufio"
	"io"
	"net/http"
	"os"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

const (
	ScanBufferSize   = 64 * 1024
	MaxScanTokenSize = 1024 * 1024 * 1024
	sniffLen         = 512
	gzipContentType  = "application/x-gzip"
)

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var firstErr error
	for i := len(rc.closers) - 1; i >= 0; i-- {
		if err := rc.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Open opens fileName, transparently decompressing gzip content.
func Open(fileName string) (io.ReadCloser, error) {

	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", fileName)
	}

	r, err := Wrap(file)
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "reading %s", fileName)
	}

	if c, ok := r.(io.Closer); ok {
		return &readCloser{Reader: r, closers: []io.Closer{file, c}}, nil
	}
	return &readCloser{Reader: r, closers: []io.Closer{file}}, nil

}

// Wrap sniffs the first bytes of r and returns a decompressing reader
// when they look like gzip.
func Wrap(r io.Reader) (io.Reader, error) {

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	if len(head) > 0 && http.DetectContentType(head) == gzipContentType {
		gz, err := pgzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "opening gzip stream")
		}
		return gz, nil
	}

	return br, nil

}

// NewScanner returns a line scanner that accepts long sequence lines.
func NewScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, ScanBufferSize)
	scanner.Buffer(buf, MaxScanTokenSize)
	return scanner
}
