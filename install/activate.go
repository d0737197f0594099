package install

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Activator materializes activation entries in the server directory. The
// reconciler does not care how an entry is satisfied; symlinks are used
// where the platform permits them and a deep copy otherwise.
type Activator interface {
	// ActivateDir creates the dst entry in the server directory for the mod
	// content directory src, relative to the workshop filesystem.
	ActivateDir(src, dst string) error

	// ActivateFile mirrors the single workshop file src to dst in the
	// server directory.
	ActivateFile(src, dst string) error
}

// Symlinker activates mods with symbolic links into the workshop cache.
type Symlinker struct {
	Server billy.Filesystem

	// WorkshopRoot is the absolute path of the workshop content directory,
	// used as the link target prefix.
	WorkshopRoot string
}

func (s *Symlinker) ActivateDir(src, dst string) error {
	return s.Server.Symlink(filepath.Join(s.WorkshopRoot, src), dst)
}

func (s *Symlinker) ActivateFile(src, dst string) error {
	return s.Server.Symlink(filepath.Join(s.WorkshopRoot, src), dst)
}

// Copier activates mods by copying them out of the workshop cache, for
// setups where creating symlinks is not permitted.
type Copier struct {
	Server   billy.Filesystem
	Workshop billy.Filesystem
}

func (c *Copier) ActivateDir(src, dst string) error {
	return util.Walk(c.Workshop, src, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := c.Server.Join(dst, rel)
		if fi.IsDir() {
			return c.Server.MkdirAll(target, 0o755)
		}
		return c.copyFile(path, target, fi.Mode())
	})
}

func (c *Copier) ActivateFile(src, dst string) error {
	fi, err := c.Workshop.Stat(src)
	if err != nil {
		return err
	}
	return c.copyFile(src, dst, fi.Mode())
}

func (c *Copier) copyFile(src, dst string, mode os.FileMode) (err error) {
	r, err := c.Workshop.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}()
	w, err := c.Server.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(w, r)
	return err
}
