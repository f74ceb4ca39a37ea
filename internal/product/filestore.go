package product

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskStore writes uploads under a local directory and returns a
// url-style reference ("/uploads/<name>").
type DiskStore struct {
	Dir string
}

func (s DiskStore) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	// prefix with a timestamp so repeated uploads of the same name don't clobber
	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(filename))
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
