package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/haneul-jeong/todo-server/internal/model"
)

// BoltUserRepository stores one userRecord JSON value per username in the
// users bucket. Bolt serializes writers itself, so no extra locking is
// needed here.
type BoltUserRepository struct {
	db *bbolt.DB
}

func NewBoltUser(db *bbolt.DB) *BoltUserRepository {
	return &BoltUserRepository{db: db}
}

func (r *BoltUserRepository) Create(ctx context.Context, user model.User) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		key := []byte(user.Username)

		if bucket.Get(key) != nil {
			return ErrUserExists
		}

		data, err := json.Marshal(recordFromUser(user))
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		return bucket.Put(key, data)
	})
}

func (r *BoltUserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User

	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUsers).Get([]byte(username))
		if data == nil {
			return ErrUserNotFound
		}

		var rec userRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		user = userFromRecord(rec)
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (r *BoltUserRepository) GetByToken(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrUserNotFound
	}

	var (
		user  model.User
		found bool
	)

	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUsers).ForEach(func(k, v []byte) error {
			if found {
				return nil
			}
			var rec userRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal user: %w", err)
			}
			if rec.Token != nil && *rec.Token == token {
				user = userFromRecord(rec)
				found = true
			}
			return nil
		})
	})
	if err != nil {
		return model.User{}, err
	}
	if !found {
		return model.User{}, ErrUserNotFound
	}

	return user, nil
}

func (r *BoltUserRepository) SetToken(ctx context.Context, username, token string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		key := []byte(username)

		data := bucket.Get(key)
		if data == nil {
			return ErrUserNotFound
		}

		var rec userRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		if token == "" {
			rec.Token = nil
		} else {
			rec.Token = &token
		}

		updated, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		return bucket.Put(key, updated)
	})
}

var _ UserRepository = (*BoltUserRepository)(nil)
