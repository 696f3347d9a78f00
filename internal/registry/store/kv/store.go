// Package kv implements every registry manager on top of a small
// transactional key/value abstraction. Engines (in-memory btree, bbolt file,
// Redis) only implement Store; the managers and their invariants are shared.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by Bucket.Get for an absent key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrTxNotWritable is returned by Put and Delete inside a View.
	ErrTxNotWritable = errors.New("transaction is not writable")
)

// Bucket names. Each engine creates all of them when it is opened.
var (
	bucketServiceGroups     = []byte("servicegroups")
	bucketServiceInfo       = []byte("serviceinfo")
	bucketRedirects         = []byte("redirects")
	bucketBusinessCards     = []byte("businesscards")
	bucketUsers             = []byte("users")
	bucketUsersByName       = []byte("users_by_name")
	bucketSettings          = []byte("settings")
	bucketTransportProfiles = []byte("transportprofiles")
	bucketLocatorInfo       = []byte("locatorinfo")
)

// Buckets lists every bucket the managers use.
func Buckets() [][]byte {
	return [][]byte{
		bucketServiceGroups,
		bucketServiceInfo,
		bucketRedirects,
		bucketBusinessCards,
		bucketUsers,
		bucketUsersByName,
		bucketSettings,
		bucketTransportProfiles,
		bucketLocatorInfo,
	}
}

// Store is a transactional key/value store modeled after boltdb. Update runs
// fn atomically: either every Put and Delete made through the Tx is applied
// or none is.
type Store interface {
	View(ctx context.Context, fn func(Tx) error) error
	Update(ctx context.Context, fn func(Tx) error) error
	Close() error
}

// Tx is a transaction in the store.
type Tx interface {
	Bucket(name []byte) (Bucket, error)
	Context() context.Context
}

// Bucket is one keyspace inside a transaction.
type Bucket interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	// ForEach visits every key starting with prefix in ascending key order.
	// fn must not modify the bucket; returning an error stops iteration.
	ForEach(prefix []byte, fn func(k, v []byte) error) error
}
