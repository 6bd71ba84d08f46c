package kvstore

import (
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a read only Lookuper for path, which is either an index file
// written by Index.Save or a badger store directory written by ImportIndex.
func Open(path string) (Lookuper, io.Closer, error) {

	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot open input file")
	}

	if fi.IsDir() {
		kv, err := OpenStore(path, true)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	}

	idx, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	return idx, nopCloser{}, nil

}

// Size returns the number of k-mers and the fingerprint behind a Lookuper.
func Size(l Lookuper) (int, uint64, error) {

	switch v := l.(type) {
	case *Index:
		return v.Len(), v.Fingerprint(), nil
	case *KVStore:
		stats, err := v.Stats()
		if err != nil {
			return 0, 0, err
		}
		fingerprint, err := strconv.ParseUint(stats.Fields["fingerprint"].GetStringValue(), 16, 64)
		if err != nil {
			return 0, 0, errors.Wrap(err, "decoding fingerprint")
		}
		return int(stats.Fields["kmers"].GetNumberValue()), fingerprint, nil
	}

	return 0, 0, errors.Errorf("unknown index type %T", l)

}
