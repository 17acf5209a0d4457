package session

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger"
)

var tokenKey = []byte("session/token")

// BadgerTokens stores the token in a badger database.
type BadgerTokens struct {
	db *badger.DB
}

func NewBadgerTokens(db *badger.DB) *BadgerTokens {
	return &BadgerTokens{db: db}
}

func (b *BadgerTokens) Load(ctx context.Context) (string, error) {
	var token []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		token, err = item.ValueCopy(nil)
		return err
	})
	return string(token), err
}

func (b *BadgerTokens) Save(ctx context.Context, token string) error {
	if token == "" {
		return b.Clear(ctx)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey, []byte(token))
	})
}

func (b *BadgerTokens) Clear(ctx context.Context) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(tokenKey)
	})
}
