package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

type LocalUploader struct {
	Dir string
}

func (l *LocalUploader) Put(_ context.Context, name string, _ string, body io.Reader) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(l.Dir, name))
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(f, body); err != nil {
		_ = f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}

	return "/" + KeyPrefix + "/" + name, nil
}
