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
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/willf/bloom"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// # Store layout :
// k<key uint64 LE> -> count (1 byte)
// s:db_stats       -> stats (protobuf Struct)

const (
	kmerPrefix       = 'k'
	StatsKey         = "s:db_stats"
	bloomFalseRate   = 0.01
	maxPendingWrites = 256
)

// Key Value Store
type KVStore struct {
	DB     *badger.DB
	Filter *bloom.BloomFilter
}

func storeOptions(dbPath string) badger.Options {
	return badger.DefaultOptions(dbPath).
		WithLogger(nil).
		WithSyncWrites(false)
}

// OpenStore opens (or creates) a badger k-mer store in dbPath.
func OpenStore(dbPath string, readOnly bool) (*KVStore, error) {

	db, err := badger.Open(storeOptions(dbPath).WithReadOnly(readOnly))
	if err != nil {
		return nil, errors.Wrapf(err, "opening store %s", dbPath)
	}

	kv := &KVStore{DB: db}
	if err := kv.loadFilter(); err != nil {
		db.Close()
		return nil, err
	}

	return kv, nil

}

func kmerKey(key uint64) []byte {
	b := make([]byte, 9)
	b[0] = kmerPrefix
	binary.LittleEndian.PutUint64(b[1:], key)
	return b
}

func (kv *KVStore) forEachKmer(prefetch bool, fn func(key uint64, count uint8)) error {

	return kv.DB.View(func(txn *badger.Txn) error {

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = prefetch
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte{kmerPrefix}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			k := item.Key()
			if len(k) != 9 {
				continue
			}
			count := uint8(0)
			if prefetch {
				err := item.Value(func(val []byte) error {
					if len(val) > 0 {
						count = val[0]
					}
					return nil
				})
				if err != nil {
					return err
				}
			}
			fn(binary.LittleEndian.Uint64(k[1:]), count)
		}
		return nil

	})

}

// loadFilter rebuilds the bloom filter from the keys in the store.
func (kv *KVStore) loadFilter() error {

	nbKeys := uint(0)
	err := kv.forEachKmer(false, func(uint64, uint8) { nbKeys++ })
	if err != nil {
		return errors.Wrap(err, "counting store keys")
	}

	filter := bloom.NewWithEstimates(nbKeys+1, bloomFalseRate)
	err = kv.forEachKmer(false, func(key uint64, _ uint8) {
		filter.Add(kmerKey(key))
	})
	if err != nil {
		return errors.Wrap(err, "loading store keys")
	}

	kv.Filter = filter
	return nil

}

// ImportIndex replaces the content of the store with idx.
func (kv *KVStore) ImportIndex(idx *Index) error {

	if err := kv.DB.DropAll(); err != nil {
		return errors.Wrap(err, "dropping store")
	}

	wb := kv.DB.NewWriteBatch()
	defer wb.Cancel()

	for _, e := range idx.Entries() {
		if err := wb.Set(kmerKey(e.Key), []byte{e.Count}); err != nil {
			return errors.Wrap(err, "writing k-mer")
		}
	}

	stats, err := structpb.NewStruct(map[string]interface{}{
		"kmers":       float64(idx.Len()),
		"fingerprint": fmt.Sprintf("%016x", idx.Fingerprint()),
	})
	if err != nil {
		return errors.Wrap(err, "creating db stats")
	}
	data, err := proto.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "encoding db stats")
	}
	if err := wb.Set([]byte(StatsKey), data); err != nil {
		return errors.Wrap(err, "writing db stats")
	}

	if err := wb.Flush(); err != nil {
		return errors.Wrap(err, "flushing store")
	}

	return kv.loadFilter()

}

// Get returns the count stored for key and whether it was found.
func (kv *KVStore) Get(key uint64) (uint8, bool, error) {

	count := uint8(0)
	found := false

	err := kv.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(kmerKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			if len(val) > 0 {
				count = val[0]
			}
			return nil
		})
	})

	return count, found, err

}

// Lookup returns the count of key, 0 if absent or unreadable.
func (kv *KVStore) Lookup(key uint64) uint8 {

	if kv.Filter != nil && !kv.Filter.Test(kmerKey(key)) {
		return 0
	}

	count, _, err := kv.Get(key)
	if err != nil {
		log.Printf("lookup %016x: %s", key, err.Error())
		return 0
	}

	return count

}

// Index reads the whole store back into memory.
func (kv *KVStore) Index() (*Index, error) {

	idx := NewIndex()
	err := kv.forEachKmer(true, idx.Set)
	if err != nil {
		return nil, errors.Wrap(err, "reading store")
	}

	return idx, nil

}

func (kv *KVStore) Stats() (*structpb.Struct, error) {

	var data []byte
	err := kv.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(StatsKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading db stats")
	}

	stats := &structpb.Struct{}
	if err := proto.Unmarshal(data, stats); err != nil {
		return nil, errors.Wrap(err, "decoding db stats")
	}

	return stats, nil

}

func (kv *KVStore) Backup(w io.Writer) error {
	_, err := kv.DB.Backup(w, 0)
	return errors.Wrap(err, "backup")
}

func (kv *KVStore) GarbageCollect(count int, ratio float64) {

	for i := 0; i < count; i++ {
		err := kv.DB.RunValueLogGC(ratio)
		if err != nil {
			// nothing left to rewrite
			return
		}
	}

}

func (kv *KVStore) Close() error {
	return kv.DB.Close()
}

// RestoreStore loads a backup made with Backup into a new store in dbPath.
func RestoreStore(backup io.Reader, dbPath string) error {

	db, err := badger.Open(storeOptions(dbPath))
	if err != nil {
		return errors.Wrapf(err, "opening store %s", dbPath)
	}

	if err := db.Load(backup, maxPendingWrites); err != nil {
		db.Close()
		return errors.Wrap(err, "loading backup")
	}

	return db.Close()

}
