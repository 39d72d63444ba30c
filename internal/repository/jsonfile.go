package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/haneul-jeong/todo-server/internal/model"
)

// userRecord is the on-disk shape of a user entry. Token serializes as null
// when no session is active, matching files written by earlier versions.
type userRecord struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Token     *string `json:"token"`
	CreatedAt int64   `json:"createdAt"`
}

func recordFromUser(u model.User) userRecord {
	rec := userRecord{
		Username:  u.Username,
		Password:  u.PasswordDigest,
		CreatedAt: u.CreatedAt,
	}
	if u.Token != "" {
		rec.Token = &u.Token
	}
	return rec
}

func userFromRecord(rec userRecord) model.User {
	u := model.User{
		Username:       rec.Username,
		PasswordDigest: rec.Password,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.Token != nil {
		u.Token = *rec.Token
	}
	return u
}

// loadJSONFile unmarshals the document at path into v. A missing file is not
// an error: v is left untouched so the store starts empty.
func loadJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// saveJSONFile rewrites the document in full. It writes to a temp file and
// renames so a crash mid-write never leaves a truncated document behind.
func saveJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
