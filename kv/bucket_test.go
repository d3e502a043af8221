// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VltrnOne/E9th/kv"
	"github.com/VltrnOne/E9th/lvldb"
)

func newStore(t *testing.T) kv.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBucketGetPut(t *testing.T) {
	db := newStore(t)
	a := kv.Bucket("a/").NewStore(db)
	b := kv.Bucket("b/").NewStore(db)

	require.NoError(t, a.Put([]byte("k"), []byte("va")))
	require.NoError(t, b.Put([]byte("k"), []byte("vb")))

	v, err := a.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), v)

	v, err = db.Get([]byte("b/k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("vb"), v)

	require.NoError(t, a.Delete([]byte("k")))
	has, err := a.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)

	_, err = a.Get([]byte("k"))
	assert.True(t, a.IsNotFound(err))
}

func TestBucketBulkAndIterate(t *testing.T) {
	db := newStore(t)
	require.NoError(t, db.Put([]byte("a"), []byte("outside")))
	require.NoError(t, db.Put([]byte("z"), []byte("outside")))

	s := kv.Bucket("x/").NewStore(db)
	bulk := s.Bulk()
	for _, k := range []string{"3", "1", "2"} {
		require.NoError(t, bulk.Put([]byte(k), []byte("v"+k)))
	}
	assert.Equal(t, 3, bulk.Len())

	_, err := s.Get([]byte("1"))
	assert.True(t, s.IsNotFound(err), "bulk is not visible before Write")
	require.NoError(t, bulk.Write())

	iter := s.Iterate(kv.Range{})
	defer iter.Release()
	var keys, vals []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
		vals = append(vals, string(iter.Value()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"1", "2", "3"}, keys)
	assert.Equal(t, []string{"v1", "v2", "v3"}, vals)

	sub := s.Iterate(kv.Range{Start: []byte("2"), Limit: []byte("3")})
	defer sub.Release()
	require.True(t, sub.Next())
	assert.Equal(t, []byte("2"), sub.Key())
	assert.False(t, sub.Next())
}

func TestPrefixRange(t *testing.T) {
	r := kv.PrefixRange([]byte("ab"))
	assert.Equal(t, []byte("ab"), r.Start)
	assert.Equal(t, []byte("ac"), r.Limit)
}
