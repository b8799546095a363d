package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FlagsFile persists UIFlags as JSON at Path.
type FlagsFile struct {
	Path string
}

// Load reads the flags. A missing file yields the zero flags.
func (f *FlagsFile) Load() (UIFlags, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return UIFlags{}, nil
		}
		return UIFlags{}, fmt.Errorf("read ui flags: %w", err)
	}

	var flags UIFlags
	if err := json.Unmarshal(data, &flags); err != nil {
		return UIFlags{}, fmt.Errorf("decode ui flags: %w", err)
	}
	return flags, nil
}

// Save writes the flags through a temp file and rename.
func (f *FlagsFile) Save(flags UIFlags) error {
	data, err := json.Marshal(flags)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ui flags dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".uiflags-*")
	if err != nil {
		return fmt.Errorf("write ui flags: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write ui flags: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write ui flags: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("write ui flags: %w", err)
	}
	return nil
}
