// Package steam drives a local SteamCMD installation: bootstrapping the
// tool itself, installing or updating apps, and downloading workshop
// content into the local cache.
package steam

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotCached marks workshop content that is required in offline mode
	// but has never been downloaded.
	ErrNotCached = errors.New("not available offline")

	// ErrDirNotEmpty is returned when SteamCMD would be bootstrapped into a
	// directory that already contains unrelated files.
	ErrDirNotEmpty = errors.New("steamcmd directory is not empty")

	// ErrDeclined is returned when the user refuses the SteamCMD install.
	ErrDeclined = errors.New("steamcmd installation declined")
)

// Cmd runs a SteamCMD installation rooted at Dir. In offline mode no
// network calls are made and missing local content is an error.
type Cmd struct {
	Dir      string
	Username string
	Offline  bool
	Log      *log.Logger
}

func exeName() string {
	if runtime.GOOS == "windows" {
		return "steamcmd.exe"
	}
	return "steamcmd.sh"
}

func archiveURL() string {
	switch runtime.GOOS {
	case "windows":
		return "https://steamcdn-a.akamaihd.net/client/installer/steamcmd.zip"
	case "darwin":
		return "https://steamcdn-a.akamaihd.net/client/installer/steamcmd_osx.tar.gz"
	default:
		return "https://steamcdn-a.akamaihd.net/client/installer/steamcmd_linux.tar.gz"
	}
}

func (c *Cmd) ExePath() string {
	return filepath.Join(c.Dir, exeName())
}

// Ready reports whether the SteamCMD executable exists locally.
func (c *Cmd) Ready() bool {
	_, err := os.Stat(c.ExePath())
	return err == nil
}

// Setup ensures SteamCMD is installed, bootstrapping it into Dir when
// missing. confirm, if non-nil, is asked before anything is downloaded.
// Setup failures are fatal to the run: no downloads can happen without the
// tool.
func (c *Cmd) Setup(confirm func(prompt string) (bool, error)) error {
	if c.Ready() {
		c.logger().Info("SteamCMD found", "path", c.ExePath())
		return nil
	}
	if c.Offline {
		return fmt.Errorf("steamcmd %s: %w", c.ExePath(), ErrNotCached)
	}
	c.logger().Warn("SteamCMD missing", "dir", c.Dir)

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("create steamcmd directory: %w", err)
	}
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return fmt.Errorf("read steamcmd directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrDirNotEmpty, c.Dir)
	}

	if confirm != nil {
		ok, err := confirm(fmt.Sprintf("Install SteamCMD into %q?", c.Dir))
		if err != nil {
			return err
		}
		if !ok {
			return ErrDeclined
		}
	}

	c.logger().Info("downloading SteamCMD", "url", archiveURL())
	data, err := c.downloadArchive()
	if err != nil {
		return fmt.Errorf("download steamcmd: %w", err)
	}
	c.logger().Info("extracting SteamCMD", "bytes", len(data))
	if err := c.extract(data); err != nil {
		return fmt.Errorf("extract steamcmd: %w", err)
	}
	c.logger().Info("SteamCMD installed", "path", c.ExePath())
	return nil
}

// WorkshopContentDir is where SteamCMD caches workshop items for a game.
func (c *Cmd) WorkshopContentDir(gameAppID uint32) string {
	return filepath.Join(c.Dir, "steamapps", "workshop", "content",
		strconv.FormatUint(uint64(gameAppID), 10))
}

// InstallApp installs or updates an app into installDir. validate forces
// SteamCMD to re-verify every file of the installation.
func (c *Cmd) InstallApp(installDir string, appID uint32, validate bool) error {
	abs, err := filepath.Abs(installDir)
	if err != nil {
		return err
	}
	args := []string{
		"+force_install_dir", abs,
		"+login", c.Username,
		"+app_update", strconv.FormatUint(uint64(appID), 10),
	}
	if validate {
		args = append(args, "validate")
	}
	args = append(args, "+quit")
	return c.run(args)
}

// DownloadMod downloads or updates one workshop item into the local cache.
func (c *Cmd) DownloadMod(gameAppID uint32, id uint64, validate bool) error {
	args := []string{
		"+login", c.Username,
		"+workshop_download_item",
		strconv.FormatUint(uint64(gameAppID), 10),
		strconv.FormatUint(id, 10),
	}
	if validate {
		args = append(args, "validate")
	}
	args = append(args, "+quit")
	return c.run(args)
}

// run executes SteamCMD with inherited stdio; it may prompt for Steam
// credentials or a guard code on first login.
func (c *Cmd) run(args []string) error {
	cmd := exec.Command(c.ExePath(), args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("steamcmd: %w", err)
	}
	return nil
}

func (c *Cmd) downloadArchive() ([]byte, error) {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(archiveURL())
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger().Debug("close steamcmd archive body", "err", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("downloaded archive is empty")
	}
	return data, nil
}

func (c *Cmd) logger() *log.Logger {
	if c.Log != nil {
		return c.Log
	}
	return log.Default()
}

// Workshop binds a Cmd to one game's workshop content, giving the installer
// a single-method download collaborator.
type Workshop struct {
	Cmd       *Cmd
	GameAppID uint32
	Validate  bool
}

// EnsureMod guarantees the workshop content for id exists in the local
// cache and returns its directory name relative to WorkshopContentDir.
// In offline mode the content must already be cached.
func (w *Workshop) EnsureMod(id uint64) (string, error) {
	dir := strconv.FormatUint(id, 10)
	if w.Cmd.Offline {
		abs := filepath.Join(w.Cmd.WorkshopContentDir(w.GameAppID), dir)
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("mod %d: %w", id, ErrNotCached)
		}
		w.Cmd.logger().Info("using cached mod content", "id", id)
		return dir, nil
	}
	if err := w.Cmd.DownloadMod(w.GameAppID, id, w.Validate); err != nil {
		return "", err
	}
	return dir, nil
}
