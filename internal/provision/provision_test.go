package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterdiscord/installer-cli/internal/progress"
	"github.com/betterdiscord/installer-cli/internal/runlog"
)

type fakeInfo struct{ name string }

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return os.ModeDir | 0o755 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return true }
func (f fakeInfo) Sys() interface{}   { return nil }

type fakeSystem struct {
	existing map[string]bool
	failOn   string
	created  []string
}

func (s *fakeSystem) Stat(name string) (os.FileInfo, error) {
	if s.existing[name] {
		return fakeInfo{name: filepath.Base(name)}, nil
	}
	return nil, os.ErrNotExist
}

func (s *fakeSystem) Mkdir(name string, _ os.FileMode) error {
	if name == s.failOn {
		return errors.New("permission denied")
	}
	s.created = append(s.created, name)
	s.existing[name] = true
	return nil
}

func TestEnsureCreatesOnlyMissing(t *testing.T) {
	dirs := []string{"/bd", "/bd/data", "/bd/themes", "/bd/plugins"}
	sys := &fakeSystem{existing: map[string]bool{"/bd": true, "/bd/themes": true}}
	tracker := progress.NewTracker(nil)
	log := runlog.Discard()

	err := New(sys).Ensure(context.Background(), tracker, log, dirs)
	require.NoError(t, err)

	assert.Equal(t, []string{"/bd/data", "/bd/plugins"}, sys.created)
	assert.InDelta(t, 30.0, tracker.Value(), 1e-9)
	assert.Equal(t, []string{
		"✅ Directory exists: /bd",
		"✅ Directory created: /bd/data",
		"✅ Directory exists: /bd/themes",
		"✅ Directory created: /bd/plugins",
	}, log.Lines())
}

func TestEnsureReachesMilestoneForAnyExistingCount(t *testing.T) {
	dirs := []string{"/a", "/a/b", "/a/c"}
	for k := 0; k <= len(dirs); k++ {
		existing := map[string]bool{}
		for _, d := range dirs[:k] {
			existing[d] = true
		}
		sys := &fakeSystem{existing: existing}
		tracker := progress.NewTracker(nil)
		require.NoError(t, New(sys).Ensure(context.Background(), tracker, runlog.Discard(), dirs))
		assert.Len(t, sys.created, len(dirs)-k)
		assert.InDelta(t, 30.0, tracker.Value(), 1e-9, "k=%d", k)
	}
}

func TestEnsureStopsAtFirstFailure(t *testing.T) {
	dirs := []string{"/bd", "/bd/data", "/bd/themes"}
	sys := &fakeSystem{existing: map[string]bool{}, failOn: "/bd/data"}
	tracker := progress.NewTracker(nil)
	log := runlog.Discard()

	err := New(sys).Ensure(context.Background(), tracker, log, dirs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/bd/data")
	assert.Equal(t, []string{"/bd"}, sys.created)
	assert.InDelta(t, 10.0, tracker.Value(), 1e-9)
	lines := log.Lines()
	assert.Contains(t, lines[len(lines)-1], "failed to create directory /bd/data")
}

func TestEnsureIsNotRecursiveOnDisk(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "bd")
	orphan := filepath.Join(root, "missing", "child")

	err := New(nil).Ensure(context.Background(), progress.NewTracker(nil), runlog.Discard(), []string{first, orphan})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	info, statErr := os.Stat(first)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestEnsureIdempotentOnDisk(t *testing.T) {
	root := t.TempDir()
	dirs := []string{filepath.Join(root, "bd"), filepath.Join(root, "bd", "data")}
	for i := 0; i < 2; i++ {
		tracker := progress.NewTracker(nil)
		require.NoError(t, New(nil).Ensure(context.Background(), tracker, runlog.Discard(), dirs))
		assert.InDelta(t, 30.0, tracker.Value(), 1e-9)
	}
}
