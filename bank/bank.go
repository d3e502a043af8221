// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bank persists accounts and the token ledger in a kv store and
// executes instructions against them, committing only successful ones.
package bank

import (
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/VltrnOne/E9th/account"
	"github.com/VltrnOne/E9th/cache"
	"github.com/VltrnOne/E9th/kv"
	"github.com/VltrnOne/E9th/log"
	"github.com/VltrnOne/E9th/tokenledger"
)

var logger = log.WithContext("pkg", "bank")

const (
	accountsBucket = kv.Bucket("a")
	mintsBucket    = kv.Bucket("m")
	tokensBucket   = kv.Bucket("t")
)

// DefaultCacheSize is the number of account records kept in memory.
const DefaultCacheSize = 1024

// Meta names an account an instruction touches and how.
type Meta struct {
	Key        solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Bank is the account database.
type Bank struct {
	mu       sync.Mutex
	store    kv.Store
	accounts kv.Store
	mints    kv.Store
	tokens   kv.Store
	cache    *cache.LRU[solana.PublicKey, *Record]
	ledger   *tokenledger.Memory
}

// Open opens a bank over store, loading the token ledger it holds.
func Open(store kv.Store, cacheSize int) (*Bank, error) {
	c, err := cache.NewLRU[solana.PublicKey, *Record]("accounts", cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create account cache")
	}
	b := &Bank{
		store:    store,
		accounts: accountsBucket.NewStore(store),
		mints:    mintsBucket.NewStore(store),
		tokens:   tokensBucket.NewStore(store),
		cache:    c,
		ledger:   tokenledger.NewMemory(),
	}
	if err := b.loadLedger(); err != nil {
		return nil, err
	}
	n, err := b.count()
	if err != nil {
		return nil, err
	}
	metricAccounts().Set(int64(n))
	return b, nil
}

// Ledger returns the token ledger. Changes made through it outside Execute
// are persisted by the next Commit.
func (b *Bank) Ledger() *tokenledger.Memory {
	return b.ledger
}

func (b *Bank) loadLedger() error {
	var (
		mints    []tokenledger.Mint
		accounts []tokenledger.TokenAccount
	)
	err := iterate(b.mints, func(key solana.PublicKey, val []byte) error {
		m, err := decodeMint(key, val)
		mints = append(mints, m)
		return err
	})
	if err != nil {
		return err
	}
	err = iterate(b.tokens, func(key solana.PublicKey, val []byte) error {
		a, err := decodeTokenAccount(key, val)
		accounts = append(accounts, a)
		return err
	})
	if err != nil {
		return err
	}
	b.ledger.Restore(mints, accounts)
	return nil
}

func iterate(s kv.Store, fn func(key solana.PublicKey, val []byte) error) error {
	iter := s.Iterate(kv.Range{})
	defer iter.Release()
	for iter.Next() {
		if len(iter.Key()) != solana.PublicKeyLength {
			return errors.Errorf("malformed key %x", iter.Key())
		}
		if err := fn(solana.PublicKeyFromBytes(iter.Key()), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (b *Bank) count() (int, error) {
	n := 0
	err := iterate(b.accounts, func(solana.PublicKey, []byte) error {
		n++
		return nil
	})
	return n, err
}

func (b *Bank) get(key solana.PublicKey) (*Record, error) {
	return b.cache.GetOrLoad(key, func(key solana.PublicKey) (*Record, error) {
		data, err := b.accounts.Get(key[:])
		if err != nil {
			if b.accounts.IsNotFound(err) {
				return nil, nil
			}
			return nil, errors.Wrapf(err, "get account %v", key)
		}
		return decodeRecord(data)
	})
}

// Get returns the record of key, or nil when the account does not exist.
func (b *Bank) Get(key solana.PublicKey) (*Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, err := b.get(key)
	if err != nil || r == nil {
		return nil, err
	}
	c := *r
	c.Data = append([]byte(nil), r.Data...)
	return &c, nil
}

// Keys returns the keys of all stored accounts.
func (b *Bank) Keys() ([]solana.PublicKey, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var keys []solana.PublicKey
	err := iterate(b.accounts, func(key solana.PublicKey, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	return keys, err
}

// Put stores r under key. An empty record deletes the account.
func (b *Bank) Put(key solana.PublicKey, r *Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	bulk := b.store.Bulk()
	if err := stage(accountsBucket.NewPutter(bulk), key, r); err != nil {
		return err
	}
	return b.write(bulk, map[solana.PublicKey]*Record{key: r})
}

func stage(p kv.Putter, key solana.PublicKey, r *Record) error {
	if r.IsEmpty() {
		return p.Delete(key[:])
	}
	data, err := encodeRecord(r)
	if err != nil {
		return err
	}
	return p.Put(key[:], data)
}

func (b *Bank) write(bulk kv.Bulk, written map[solana.PublicKey]*Record) error {
	if err := bulk.Write(); err != nil {
		// the store may hold part of the write, drop what the cache believes
		b.cache.Purge()
		return errors.Wrap(err, "write bank")
	}
	for key, r := range written {
		if r.IsEmpty() {
			b.cache.Remove(key)
		} else {
			b.cache.Add(key, r)
		}
	}
	if n, err := b.count(); err == nil {
		metricAccounts().Set(int64(n))
	}
	return nil
}

// Commit persists the token ledger.
func (b *Bank) Commit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	bulk := b.store.Bulk()
	if err := b.stageLedger(bulk); err != nil {
		return err
	}
	return errors.Wrap(bulk.Write(), "write token ledger")
}

func (b *Bank) stageLedger(bulk kv.Putter) error {
	mints := mintsBucket.NewPutter(bulk)
	for _, m := range b.ledger.Mints() {
		data, err := encodeMint(m)
		if err != nil {
			return errors.Wrapf(err, "encode mint %v", m.Key)
		}
		if err := mints.Put(m.Key[:], data); err != nil {
			return err
		}
	}
	tokens := tokensBucket.NewPutter(bulk)
	for _, a := range b.ledger.Accounts() {
		data, err := encodeTokenAccount(a)
		if err != nil {
			return errors.Wrapf(err, "encode token account %v", a.Key)
		}
		if err := tokens.Put(a.Key[:], data); err != nil {
			return err
		}
	}
	return nil
}

// Execute loads the accounts named by metas, runs fn over their handles and
// persists the writable ones when fn succeeds. A failing fn leaves both the
// accounts and the token ledger as they were.
func (b *Bank) Execute(metas []Meta, fn func(accounts []account.Info) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// an account named twice shares one handle
	handles := make(map[solana.PublicKey]*account.Account, len(metas))
	infos := make([]account.Info, len(metas))
	for i, m := range metas {
		h, ok := handles[m.Key]
		if !ok {
			r, err := b.get(m.Key)
			if err != nil {
				return err
			}
			if r == nil {
				r = &Record{Owner: solana.SystemProgramID}
			}
			h = r.Handle(m.Key)
			handles[m.Key] = h
		}
		h.WithAccess(h.IsSigner() || m.IsSigner, h.IsWritable() || m.IsWritable)
		infos[i] = h
	}

	mints, tokens := b.ledger.Mints(), b.ledger.Accounts()
	err := fn(infos)
	if err == nil {
		err = b.commit(handles)
	}
	if err != nil {
		b.ledger.Restore(mints, tokens)
		metricCommits().AddWithLabel(1, map[string]string{"outcome": "reverted"})
		return err
	}
	metricCommits().AddWithLabel(1, map[string]string{"outcome": "committed"})
	return nil
}

// commit persists the writable handles and the ledger in one write.
func (b *Bank) commit(handles map[solana.PublicKey]*account.Account) error {
	bulk := b.store.Bulk()
	accounts := accountsBucket.NewPutter(bulk)
	written := make(map[solana.PublicKey]*Record)
	for key, h := range handles {
		if !h.IsWritable() {
			continue
		}
		r := recordOf(h)
		if err := stage(accounts, key, r); err != nil {
			return err
		}
		written[key] = r
	}
	if err := b.stageLedger(bulk); err != nil {
		return err
	}
	if err := b.write(bulk, written); err != nil {
		return err
	}
	logger.Debug("instruction committed", "accounts", len(handles), "written", len(written))
	return nil
}
