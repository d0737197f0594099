package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"dzsm/collection"
	"dzsm/config"
	"dzsm/mods"
	"dzsm/server"
	"dzsm/steam"
)

type RunCommand struct {
	ConfigPath string
	Offline    bool
	Validate   bool
}

func (*RunCommand) Name() string     { return "run" }
func (*RunCommand) Synopsis() string { return "update server and mods, then launch the server" }
func (*RunCommand) Usage() string {
	return `Usage: dzsm run [-config config.dzsm.hcl] [-offline] [-validate]

	Updates the DayZ server and every configured mod, reinstalls the
	mod activation entries and signature keys, and launches the server
	with the resulting -mod/-serverMod flags. The current directory is
	used as the server install directory.

Flags:
`
}

func (cmd *RunCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", config.FileName, "configuration file path")
	fs.BoolVar(&cmd.Offline, "offline", false, "no network access, use cached content only")
	fs.BoolVar(&cmd.Validate, "validate", false, "force steamcmd to validate all content")
}

func (cmd *RunCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	printBanner()

	ok, err := ensureManaged()
	if err != nil {
		logger.Error("initialize setup", "err", err)
		return subcommands.ExitFailure
	}
	if !ok {
		logger.Info("installation aborted")
		return subcommands.ExitSuccess
	}

	cfg, ok := loadOrCreateConfig(cmd.ConfigPath)
	if !ok {
		return subcommands.ExitFailure
	}
	installDir, err := os.Getwd()
	if err != nil {
		logger.Error("get working directory", "err", err)
		return subcommands.ExitFailure
	}
	printSummary(cfg, installDir)

	sc := &steam.Cmd{
		Dir:      cfg.Server.SteamCmdDir,
		Username: cfg.Server.Username,
		Offline:  cmd.Offline,
		Log:      logger,
	}
	if err := sc.Setup(confirmSetup); err != nil {
		logger.Error("steamcmd setup", "err", err)
		return subcommands.ExitFailure
	}

	srv := &server.Server{Dir: installDir, Log: logger}
	if cmd.Offline {
		if !srv.Installed() {
			logger.Error("server not found locally, run without -offline to install it first",
				"exe", srv.ExePath())
			return subcommands.ExitFailure
		}
		logger.Info("skipping server update (offline mode)")
	} else {
		logger.Info("installing or updating DayZ server")
		if err := sc.InstallApp(installDir, cfg.Server.ServerAppID, cmd.Validate); err != nil {
			logger.Error("server update", "err", err)
			return subcommands.ExitFailure
		}
	}

	set, ok := resolveMods(cfg, cmd.Offline)
	if !ok {
		return subcommands.ExitFailure
	}

	inst, err := newInstaller(sc, cfg, installDir, cmd.Validate)
	if err != nil {
		logger.Error("wire installer", "err", err)
		return subcommands.ExitFailure
	}
	if err := inst.Reconcile(set); err != nil {
		logger.Error("mod installation incomplete", "err", err)
		return subcommands.ExitFailure
	}

	if err := srv.Run(ctx, set); err != nil {
		logger.Error("server run", "err", err)
		return subcommands.ExitFailure
	}
	logger.Info("server stopped")
	return subcommands.ExitSuccess
}

// resolveMods builds the desired mod set from the configuration and the
// optional collection, rejecting activation name collisions before anything
// touches the filesystem. Offline runs skip the collection fetch outright.
func resolveMods(cfg *config.Config, offline bool) (mods.Set, bool) {
	url := cfg.CollectionURL
	if offline && url != "" {
		logger.Warn("skipping collection fetch (offline mode)", "url", url)
		url = ""
	}
	r := &mods.Resolver{
		Individual: cfg.ModEntries(),
		URL:        url,
		Source:     &collection.Fetcher{Log: logger},
		Log:        logger,
	}
	set := r.Resolve()
	if err := set.Validate(); err != nil {
		logger.Error("invalid mod set", "err", err)
		return mods.Set{}, false
	}
	return set, true
}

func confirmSetup(prompt string) (bool, error) {
	return promptYesNo(prompt, true)
}
