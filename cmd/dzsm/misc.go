package main

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/google/renameio/v2"

	"golang.org/x/crypto/ssh/terminal"

	"dzsm/config"
	"dzsm/install"
	"dzsm/steam"
)

// loadConfig reads and decodes the configuration file, printing HCL
// diagnostics with source context on failure.
func loadConfig(path string) (*config.Config, bool) {
	parser := hclparse.NewParser()
	diagWr, _ := newDiagWr(parser)

	src, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read config", "path", path, "err", err)
		return nil, false
	}

	cfg, diags := config.Parse(parser, path, src)
	if len(diags) > 0 {
		if err := diagWr.WriteDiagnostics(diags); err != nil {
			logger.Error("write diags", "err", err)
		}
	}
	if diags.HasErrors() {
		return nil, false
	}
	return cfg, true
}

// loadOrCreateConfig loads the configuration, materializing the default one
// when missing. A freshly created config must be edited before dzsm can do
// anything useful, so that case reports failure after printing guidance.
func loadOrCreateConfig(path string) (*config.Config, bool) {
	if _, err := os.Stat(path); err == nil {
		logger.Info("configuration found", "path", path)
		return loadConfig(path)
	}
	logger.Warn("configuration missing", "path", path)
	if err := renameio.WriteFile(path, config.Default, 0644); err != nil {
		logger.Error("create default config", "path", path, "err", err)
		return nil, false
	}
	logger.Info("default configuration created", "path", path)
	printConfigGuidance(path)
	return nil, false
}

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, color bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, color := fdinfo(fd)
	if !istty {
		return hcl.NewDiagnosticTextWriter(stderr, files, 80, color), color
	}
	var width uint = 80
	if w, _, err := terminal.GetSize(fd); err != nil {
		logger.Debug("get term size", "err", err)
	} else if w > 0 {
		width = uint(w)
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
}

func fdinfo(fd int) (istty, color bool) {
	istty = terminal.IsTerminal(fd)
	if istty {
		color = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}
	return
}

// newInstaller wires the reconciler for the given configuration: server and
// workshop filesystems, the SteamCMD download collaborator, and an
// activation strategy probed on the actual server directory.
func newInstaller(sc *steam.Cmd, cfg *config.Config, installDir string, validate bool) (*install.Installer, error) {
	workshopDir, err := filepath.Abs(sc.WorkshopContentDir(cfg.Server.GameAppID))
	if err != nil {
		return nil, err
	}
	serverFS := osfs.New(installDir)
	workshopFS := osfs.New(workshopDir)
	return &install.Installer{
		Server:    serverFS,
		Workshop:  workshopFS,
		Downloads: &steam.Workshop{Cmd: sc, GameAppID: cfg.Server.GameAppID, Validate: validate},
		Links:     newActivator(serverFS, workshopFS, workshopDir),
		Log:       logger,
	}, nil
}

// newActivator prefers symlinks and falls back to deep copies where the
// process lacks the symlink privilege (common on stock Windows setups).
func newActivator(serverFS, workshopFS billy.Filesystem, workshopRoot string) install.Activator {
	if canSymlink(serverFS) {
		return &install.Symlinker{Server: serverFS, WorkshopRoot: workshopRoot}
	}
	logger.Warn("symlinks not available, mods will be copied into the server directory")
	return &install.Copier{Server: serverFS, Workshop: workshopFS}
}

func canSymlink(fs billy.Filesystem) bool {
	const probe = ".dzsm-symlink-probe"
	if err := fs.Symlink("probe-target", probe); err != nil {
		return false
	}
	if err := fs.Remove(probe); err != nil {
		logger.Debug("remove symlink probe", "err", err)
	}
	return true
}
