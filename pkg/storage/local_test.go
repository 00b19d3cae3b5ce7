package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netqa-go/internal/config"
)

func newLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(config.LocalStorageConfig{Dir: t.TempDir(), URLPrefix: "/static/uploads/"})
	require.NoError(t, err)
	return s
}

func TestLocalStore_Save(t *testing.T) {
	s := newLocalStore(t)
	s.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local) }

	ref, err := s.Save(context.Background(), strings.NewReader("topology"), "net.png", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/static/uploads/20240506_070809_"), ref)
	assert.True(t, strings.HasSuffix(ref, "_net.png"), ref)

	name := strings.TrimPrefix(ref, "/static/uploads/")
	parts := strings.SplitN(name, "_", 4)
	require.Len(t, parts, 4)
	assert.Len(t, parts[2], 8)

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "topology", string(data))
}

func TestLocalStore_StripsDirectories(t *testing.T) {
	s := newLocalStore(t)

	ref, err := s.Save(context.Background(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, "_passwd"))
	assert.NotContains(t, ref, "..")

	ref, err = s.Save(context.Background(), strings.NewReader("x"), `C:\tmp\cfg.txt`, "text/plain")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, "_cfg.txt"))
}

func TestLocalStore_ConcurrentSameName(t *testing.T) {
	s := newLocalStore(t)
	// 固定时间戳，使名称只靠随机后缀区分
	s.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local) }

	const n = 20
	refs := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := strings.Repeat(string(rune('a'+i)), 64)
			ref, err := s.Save(context.Background(), strings.NewReader(body), "same.cfg", "text/plain")
			assert.NoError(t, err)
			refs[i] = ref
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i, ref := range refs {
		require.NotEmpty(t, ref)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true

		data, err := os.ReadFile(filepath.Join(s.Dir(), strings.TrimPrefix(ref, "/static/uploads/")))
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat(string(rune('a'+i)), 64), string(data))
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("IMAGE/JPEG"))
	assert.False(t, IsImage("application/pdf"))
	assert.False(t, IsImage(""))
}
