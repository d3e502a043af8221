// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb is the goleveldb backed kv.Store holding the account bank.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/VltrnOne/E9th/kv"
)

const minCache = 16 // MiB, and open files

// Options tunes a DB.
type Options struct {
	CacheSize              int // MiB
	OpenFilesCacheCapacity int
	// Sync flushes every write to disk before returning, so a committed
	// instruction survives a crash.
	Sync bool
}

// DB is a kv.Store over a leveldb database.
type DB struct {
	db       *leveldb.DB
	writeOpt opt.WriteOptions
}

var _ kv.Store = (*DB)(nil)

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*DB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage %s", path)
	}
	return open(stg, opts)
}

// NewMem opens a database living in memory only.
func NewMem() (*DB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*DB, error) {
	opts.CacheSize = max(opts.CacheSize, minCache)
	opts.OpenFilesCacheCapacity = max(opts.OpenFilesCacheCapacity, minCache)

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: opts.OpenFilesCacheCapacity,
		BlockCacheCapacity:     opts.CacheSize / 2 * opt.MiB,
		// leveldb keeps two write buffers
		WriteBuffer: opts.CacheSize / 4 * opt.MiB,
		Filter:      filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &DB{db: db, writeOpt: opt.WriteOptions{Sync: opts.Sync}}, nil
}

func (d *DB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get fails with an error satisfying IsNotFound when key is absent.
func (d *DB) Get(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *DB) Has(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

func (d *DB) Put(key, val []byte) error {
	return d.db.Put(key, val, &d.writeOpt)
}

func (d *DB) Delete(key []byte) error {
	return d.db.Delete(key, &d.writeOpt)
}

// Close releases the database. Later calls fail.
func (d *DB) Close() error {
	return d.db.Close()
}

// Bulk starts a batch applied atomically by Write.
func (d *DB) Bulk() kv.Bulk {
	return &batch{d, new(leveldb.Batch)}
}

// Iterate walks r in key order over a snapshot taken at the call.
func (d *DB) Iterate(r kv.Range) kv.Iterator {
	return d.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

type batch struct {
	d *DB
	b *leveldb.Batch
}

func (b *batch) Put(key, val []byte) error {
	b.b.Put(key, val)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int {
	return b.b.Len()
}

func (b *batch) Write() error {
	return b.d.db.Write(b.b, &b.d.writeOpt)
}
