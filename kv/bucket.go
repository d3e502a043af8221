// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket is a key prefix partitioning a store. Keys passed to and returned
// from a bucket view never carry the prefix.
type Bucket string

func (b Bucket) key(k []byte) []byte {
	full := make([]byte, 0, len(b)+len(k))
	return append(append(full, b...), k...)
}

// NewPutter returns a putter writing into b through src.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewStore returns the view of src restricted to b.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucketPutter{b, src}, src}
}

type bucketPutter struct {
	bucket Bucket
	src    Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.src.Put(p.bucket.key(key), val) }
func (p *bucketPutter) Delete(key []byte) error   { return p.src.Delete(p.bucket.key(key)) }

type bucketStore struct {
	bucketPutter
	src Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.src.Get(s.bucket.key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error)   { return s.src.Has(s.bucket.key(key)) }
func (s *bucketStore) IsNotFound(err error) bool      { return s.src.IsNotFound(err) }

func (s *bucketStore) Bulk() Bulk {
	bulk := s.src.Bulk()
	return &bucketBulk{bucketPutter{s.bucket, bulk}, bulk}
}

// Iterate walks r inside the bucket. An empty limit runs to the end of the
// bucket.
func (s *bucketStore) Iterate(r Range) Iterator {
	prefix := []byte(s.bucket)
	scoped := Range{Start: s.bucket.key(r.Start)}
	if len(r.Limit) == 0 {
		scoped.Limit = PrefixRange(prefix).Limit
	} else {
		scoped.Limit = s.bucket.key(r.Limit)
	}
	return &bucketIterator{s.src.Iterate(scoped), len(prefix)}
}

type bucketBulk struct {
	bucketPutter
	bulk Bulk
}

func (b *bucketBulk) Len() int     { return b.bulk.Len() }
func (b *bucketBulk) Write() error { return b.bulk.Write() }

type bucketIterator struct {
	Iterator
	strip int
}

func (it *bucketIterator) Key() []byte { return it.Iterator.Key()[it.strip:] }
