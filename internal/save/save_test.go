package save

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/config"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	store := NewRedisStore(mr.Addr(), "test:save", zap.NewNop())
	t.Cleanup(func() {
		store.Close()
		mr.Close()
	})
	return store, mr
}

func stores(t *testing.T) map[string]Store {
	redisStore, _ := setupTestRedis(t)
	return map[string]Store{
		"file":  NewFileStore(filepath.Join(t.TempDir(), "save.json")),
		"redis": redisStore,
	}
}

func TestRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := Record{X: 3, Y: 4, Items: []string{"a", "b"}}
			require.NoError(t, s.Save(ctx, want))

			got, ok, err := s.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestFreshStoreHasNoData(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, Record{X: 1, Y: 1, Items: []string{"x"}}))
			require.NoError(t, s.Save(ctx, Record{X: 2, Y: 5, Map: "cave"}))

			got, ok, err := s.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, Record{X: 2, Y: 5, Items: []string{}, Map: "cave"}, got)
		})
	}
}

func TestFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(context.Background(), Record{X: 8, Y: 8}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 8, "y": 8, "items": []}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not linger")
}

func TestFileLoadsLegacyRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x": 3, "y": 4, "items": ["gem"]}`), 0o644))
	got, ok, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Record{X: 3, Y: 4, Items: []string{"gem"}}, got)
}

func TestCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x": `), 0o644))
	_, ok, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisUnavailable(t *testing.T) {
	s, mr := setupTestRedis(t)
	mr.Close()
	err := s.Save(context.Background(), Record{})
	assert.Error(t, err)
	_, ok, err := s.Load(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisKeyContents(t *testing.T) {
	s, mr := setupTestRedis(t)
	require.NoError(t, s.Save(context.Background(), Record{X: 1, Y: 2, Items: []string{"gem"}}))
	v, err := mr.Get("test:save")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 1, "y": 2, "items": ["gem"]}`, v)
}

func TestOpenSelectsBackend(t *testing.T) {
	cfg := config.Default().Save
	cfg.Path = filepath.Join(t.TempDir(), "s.json")
	s, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	cfg.Backend = "redis"
	s, err = Open(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	cfg.Backend = "tape"
	_, err = Open(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNilLoggerIsAllowed(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := config.Default().Save
	cfg.Backend = "redis"
	cfg.RedisAddr = mr.Addr()
	s, err := Open(cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Save(context.Background(), Record{X: 3}))

	direct := NewRedisStore(mr.Addr(), cfg.RedisKey, nil)
	defer direct.Close()
	rec, ok, err := direct.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, rec.X)
}
