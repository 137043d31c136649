package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunDir creates the output directory for one batch run:
// <base>/<mode>/<DD.MM.YYYY>/<mode>_<HH-MM-SS>.
func RunDir(base, mode string) (string, error) {
	now := time.Now()
	date := now.Format("02.01.2006")
	name := mode + "_" + now.Format("15-04-05")

	dir := filepath.Join(base, mode, date, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return dir, nil
}

// AppendJSONL appends one JSON blob plus newline to path, creating
// parent directories as needed. Key material gets 0600.
func AppendJSONL(path string, blob []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(blob); err != nil {
		return err
	}
	_, err = f.Write([]byte("\n"))
	return err
}

// WriteHint stores an optional password hint next to the run output.
func WriteHint(dir, hint string) error {
	if hint == "" {
		return nil
	}
	return os.WriteFile(filepath.Join(dir, "hint.txt"), []byte(hint), 0o600)
}
