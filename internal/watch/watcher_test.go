package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/timetable/internal/schedule"
)

func startWatcher(t *testing.T) (string, string, <-chan Kind) {
	t.Helper()
	dir := t.TempDir()
	themePath := filepath.Join(dir, "theme.conf")
	dataPath := filepath.Join(dir, "schedule.csv")
	require.NoError(t, os.WriteFile(themePath, []byte("background #000000\n"), 0644))
	require.NoError(t, os.WriteFile(dataPath, []byte(",A\n1,x\n"), 0644))

	events := make(chan Kind, 16)
	fw, err := NewFileWatcher(themePath, dataPath, 20*time.Millisecond, func(kind Kind) {
		events <- kind
	}, nil)
	require.NoError(t, err)

	require.NoError(t, fw.Start(context.Background()))
	t.Cleanup(func() { _ = fw.Stop() })

	return themePath, dataPath, events
}

func waitFor(t *testing.T, events <-chan Kind) Kind {
	t.Helper()
	select {
	case kind := <-events:
		return kind
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
		return 0
	}
}

func TestFileWatcher_ThemeWrite(t *testing.T) {
	themePath, _, events := startWatcher(t)

	require.NoError(t, os.WriteFile(themePath, []byte("background #ffffff\n"), 0644))

	assert.Equal(t, KindTheme, waitFor(t, events))
}

func TestFileWatcher_ScheduleSave(t *testing.T) {
	_, dataPath, events := startWatcher(t)

	require.NoError(t, schedule.Save(dataPath, 0, 0, "y"))

	assert.Equal(t, KindSchedule, waitFor(t, events))
}

func TestFileWatcher_Debounces(t *testing.T) {
	themePath, _, events := startWatcher(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(themePath, []byte("font_size 1"+string(rune('0'+i))+"\n"), 0644))
	}

	assert.Equal(t, KindTheme, waitFor(t, events))

	select {
	case kind := <-events:
		t.Fatalf("unexpected extra event %v", kind)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	themePath, _, events := startWatcher(t)

	other := filepath.Join(filepath.Dir(themePath), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0644))

	select {
	case kind := <-events:
		t.Fatalf("unexpected event %v", kind)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	fw, err := NewFileWatcher("", filepath.Join(t.TempDir(), "schedule.csv"), time.Millisecond, nil, nil)
	require.NoError(t, err)

	require.NoError(t, fw.Start(context.Background()))
	require.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "theme", KindTheme.String())
	assert.Equal(t, "schedule", KindSchedule.String())
	assert.Equal(t, "unknown", Kind(7).String())
}
