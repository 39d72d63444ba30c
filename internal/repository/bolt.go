package repository

import (
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	bucketUsers = []byte("users")
	bucketTodos = []byte("todos")
)

// OpenBolt opens (creating if needed) the BoltDB file backing the bolt store
// variant and ensures both buckets exist.
func OpenBolt(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketUsers); err != nil {
			return fmt.Errorf("failed to create users bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketTodos); err != nil {
			return fmt.Errorf("failed to create todos bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
