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

package kvstore

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Index file layout: a flat sequence of records, each one being
// an 8 byte little endian key followed by a 1 byte count.
// No header, no trailer.
const (
	RecordSize = 9
)

var ErrTruncatedIndex = errors.New("kvstore: truncated index record")

// Save writes every entry, sorted by key, so that two indexes with
// the same content produce identical files.
func (idx *Index) Save(w io.Writer) error {

	bw := bufio.NewWriter(w)
	buf := make([]byte, RecordSize)

	for _, e := range idx.Entries() {
		putRecord(buf, e.Key, e.Count)
		if _, err := bw.Write(buf); err != nil {
			return errors.Wrap(err, "writing index record")
		}
	}

	return errors.Wrap(bw.Flush(), "flushing index")

}

func (idx *Index) SaveFile(path string) error {

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot open output file")
	}

	if err := idx.Save(f); err != nil {
		f.Close()
		return err
	}

	return errors.Wrapf(f.Close(), "closing %s", path)

}

// Load reads an index written by Save. A trailing partial record is
// reported as ErrTruncatedIndex.
func Load(r io.Reader) (*Index, error) {

	idx := NewIndex()
	br := bufio.NewReader(r)
	buf := make([]byte, RecordSize)
	nbRecords := 0

	for {
		n, err := io.ReadFull(br, buf)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, errors.Wrapf(ErrTruncatedIndex, "record %d has %d of %d bytes", nbRecords, n, RecordSize)
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading index")
		}
		idx.Set(binary.LittleEndian.Uint64(buf[:8]), buf[8])
		nbRecords++
	}

	return idx, nil

}

func LoadFile(path string) (*Index, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open input file")
	}
	defer f.Close()

	idx, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	return idx, nil

}
