// Package identity persists the anonymous user id that scopes every trip
// request.
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const identityFile = "identity.json"

type record struct {
	UID       string    `json:"uid"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store keeps the identity file inside Dir.
type Store struct {
	Dir string
}

// Default returns the store under the user config directory.
func Default() (Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: filepath.Join(dir, "packit")}, nil
}

func (s Store) path() (string, error) {
	if s.Dir == "" {
		return "", fmt.Errorf("identity dir not set")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, identityFile), nil
}

// UID returns the stored id, creating and persisting a new one on first use.
func (s Store) UID() (string, error) {
	path, err := s.path()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		var rec record
		if err := json.Unmarshal(data, &rec); err == nil && strings.TrimSpace(rec.UID) != "" {
			return rec.UID, nil
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}
	rec := record{UID: uuid.NewString(), CreatedAt: time.Now().UTC()}
	if err := save(path, rec); err != nil {
		return "", err
	}
	return rec.UID, nil
}

func save(path string, rec record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
