package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"netqa-go/internal/config"
	"netqa-go/pkg/log"
)

const maxNameAttempts = 5

// LocalStore 将附件写入本地目录，目录本身通过静态路由对外提供。
type LocalStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

// NewLocalStore 创建 LocalStore，并确保目录存在。
func NewLocalStore(cfg config.LocalStorageConfig) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:       cfg.Dir,
		urlPrefix: strings.TrimSuffix(cfg.URLPrefix, "/"),
		now:       time.Now,
	}, nil
}

// Dir 返回存储目录。
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save 以独占方式创建文件，名称冲突时换一个随机后缀重试，已有文件永远不会被覆盖。
func (s *LocalStore) Save(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		name := storedName(s.now(), filename)
		fullPath := filepath.Join(s.dir, name)

		f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", name, err)
		}

		if _, err := io.Copy(f, r); err != nil {
			_ = f.Close()
			_ = os.Remove(fullPath)
			return "", fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(fullPath)
			return "", fmt.Errorf("close %s: %w", name, err)
		}

		log.Infow("attachment stored", "name", name, "contentType", contentType)
		return s.urlPrefix + "/" + name, nil
	}
	return "", fmt.Errorf("could not allocate a unique name for %q", filename)
}
