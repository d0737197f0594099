// Package install reconciles the desired mod set against the server install
// directory: it clears stale activation state, installs each desired mod
// (activation entry plus key mirroring), and reports failures in aggregate.
//
// The filesystem is treated as a disposable projection of the configuration:
// every run starts by clearing all activation entries and mirrored keys, then
// recreates them for the current set. There is no incremental diff.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"dzsm/mods"
)

const (
	keysDir = "keys"
	keyExt  = ".bikey"

	// reservedKey is the server's own signing key; cleanup never touches it.
	reservedKey = "dayz.bikey"
)

// Downloader ensures workshop content is cached locally. Implementations
// return the content directory relative to the workshop filesystem root.
type Downloader interface {
	EnsureMod(id uint64) (string, error)
}

// Installer reconciles a desired mod set against the server directory.
type Installer struct {
	Server    billy.Filesystem // server install directory
	Workshop  billy.Filesystem // workshop content cache, one directory per mod id
	Downloads Downloader
	Links     Activator
	Log       *log.Logger
}

// Reconcile clears stale activation state and installs every desired mod.
// Mods are installed one at a time in set order; a failure is logged,
// recorded, and does not stop the remaining mods from being attempted. If
// any mod failed, an *AggregateError naming all of them is returned after
// the last attempt.
func (i *Installer) Reconcile(set mods.Set) error {
	i.Clear()

	if set.Empty() {
		i.logger().Info("no mods configured, skipping mod installation")
		return nil
	}

	var failed []string
	for _, m := range set.All() {
		if err := i.Install(m); err != nil {
			i.logger().Error("mod install failed", "mod", m.Name, "err", err)
			failed = append(failed, m.Name)
			continue
		}
		i.logger().Info("mod installed", "mod", m.Name, "id", m.ID)
	}
	if len(failed) > 0 {
		return &AggregateError{Failed: failed}
	}
	i.logger().Info("all mods installed", "count", len(set.All()))
	return nil
}

// Clear removes every activation entry and every mirrored key from the
// server directory. Cleanup is best effort: a missing directory or a file
// that cannot be removed is logged and skipped, never fatal.
func (i *Installer) Clear() {
	entries, err := i.Server.ReadDir(".")
	if err != nil {
		i.logger().Warn("read server directory", "err", err)
	}
	for _, fi := range entries {
		name := fi.Name()
		if !strings.HasPrefix(name, mods.DirPrefix) {
			continue
		}
		if err := i.removeEntry(name); err != nil {
			i.logger().Warn("remove stale activation entry", "entry", name, "err", err)
			continue
		}
		i.logger().Debug("removed stale activation entry", "entry", name)
	}

	keys, err := i.Server.ReadDir(keysDir)
	if err != nil {
		return
	}
	for _, fi := range keys {
		name := fi.Name()
		if strings.EqualFold(name, reservedKey) {
			continue
		}
		if err := i.Server.Remove(i.Server.Join(keysDir, name)); err != nil {
			i.logger().Warn("remove stale key", "key", name, "err", err)
		}
	}
}

// removeEntry deletes one activation entry, which is either a symlink or a
// real directory left behind by a copy activation.
func (i *Installer) removeEntry(name string) error {
	fi, err := i.Server.Lstat(name)
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return i.Server.Remove(name)
	}
	return util.RemoveAll(i.Server, name)
}

// Install performs a single-mod installation: ensure the content is cached,
// verify it actually exists, create the activation entry, and mirror the
// mod's signature keys. A failure aborts only this mod.
func (i *Installer) Install(m mods.Entry) error {
	src, err := i.Downloads.EnsureMod(m.ID)
	if err != nil {
		return fmt.Errorf("download %s: %w", m, err)
	}
	if _, err := i.Workshop.Stat(src); err != nil {
		return fmt.Errorf("%s: %w", m, ErrContentMissing)
	}
	if err := i.activate(src, m.DirName()); err != nil {
		return fmt.Errorf("activate %s: %w", m, err)
	}
	if err := i.mirrorKeys(src, m); err != nil {
		return fmt.Errorf("mirror keys for %s: %w", m, err)
	}
	return nil
}

func (i *Installer) activate(src, dst string) error {
	if _, err := i.Server.Lstat(dst); err == nil {
		// The entry itself is the activation signal; one left behind by a
		// partially failed Clear already satisfies this mod.
		i.logger().Debug("activation entry already present", "entry", dst)
		return nil
	}
	return i.Links.ActivateDir(src, dst)
}

// mirrorKeys copies or links every *.bikey under the mod's keys directory
// into the server keys directory. Keys that already exist at the target
// name are skipped, so the first mod shipping a key name wins. Mods without
// a keys directory are client-side or configuration-only and are fine.
func (i *Installer) mirrorKeys(src string, m mods.Entry) error {
	srcKeys := i.Workshop.Join(src, keysDir)
	entries, err := i.Workshop.ReadDir(srcKeys)
	if err != nil {
		if os.IsNotExist(err) {
			i.logger().Debug("no keys shipped", "mod", m.Name)
			return nil
		}
		return err
	}
	var names []string
	for _, fi := range entries {
		if fi.IsDir() || !strings.EqualFold(filepath.Ext(fi.Name()), keyExt) {
			continue
		}
		names = append(names, fi.Name())
	}
	if len(names) == 0 {
		return nil
	}
	if err := i.Server.MkdirAll(keysDir, 0o755); err != nil {
		return err
	}
	for _, name := range names {
		dst := i.Server.Join(keysDir, name)
		if _, err := i.Server.Lstat(dst); err == nil {
			i.logger().Debug("key already present, skipping", "key", name)
			continue
		}
		if err := i.Links.ActivateFile(i.Workshop.Join(srcKeys, name), dst); err != nil {
			return err
		}
	}
	return nil
}

func (i *Installer) logger() *log.Logger {
	if i.Log != nil {
		return i.Log
	}
	return log.Default()
}
