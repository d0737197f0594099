package steam

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func fakeExe(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, exeName()), []byte("fake"), 0o755))
}

func TestSetupFindsExistingInstall(t *testing.T) {
	dir := t.TempDir()
	fakeExe(t, dir)

	c := &Cmd{Dir: dir, Log: quiet()}
	require.True(t, c.Ready())
	require.NoError(t, c.Setup(nil))
}

func TestSetupOfflineWithoutInstallFails(t *testing.T) {
	c := &Cmd{Dir: t.TempDir(), Offline: true, Log: quiet()}
	err := c.Setup(nil)
	require.ErrorIs(t, err, ErrNotCached)
}

func TestSetupRefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), nil, 0o644))

	c := &Cmd{Dir: dir, Log: quiet()}
	err := c.Setup(nil)
	require.ErrorIs(t, err, ErrDirNotEmpty)
}

func TestSetupHonorsDecline(t *testing.T) {
	c := &Cmd{Dir: t.TempDir(), Log: quiet()}
	declined := false
	err := c.Setup(func(prompt string) (bool, error) {
		declined = true
		return false, nil
	})
	require.ErrorIs(t, err, ErrDeclined)
	require.True(t, declined)
}

func TestWorkshopContentDir(t *testing.T) {
	c := &Cmd{Dir: filepath.Join("some", "steamcmd")}
	want := filepath.Join("some", "steamcmd", "steamapps", "workshop", "content", "221100")
	require.Equal(t, want, c.WorkshopContentDir(221100))
}

func TestWorkshopEnsureModOffline(t *testing.T) {
	dir := t.TempDir()
	c := &Cmd{Dir: dir, Offline: true, Log: quiet()}
	w := &Workshop{Cmd: c, GameAppID: 221100}

	// Missing content fails fast without touching the network.
	_, err := w.EnsureMod(42)
	require.ErrorIs(t, err, ErrNotCached)

	require.NoError(t, os.MkdirAll(filepath.Join(c.WorkshopContentDir(221100), "42"), 0o755))
	got, err := w.EnsureMod(42)
	require.NoError(t, err)
	require.Equal(t, "42", got)
}
