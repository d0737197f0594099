package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"dzsm/config"
	"dzsm/steam"
)

type InstallCommand struct {
	ConfigPath string
	Offline    bool
	Validate   bool
}

func (*InstallCommand) Name() string     { return "install" }
func (*InstallCommand) Synopsis() string { return "install or update mods without launching" }
func (*InstallCommand) Usage() string {
	return `Usage: dzsm install [-config config.dzsm.hcl] [-offline] [-validate]

	Reinstalls the configured mods: clears previous activation entries
	and mirrored keys, downloads or updates each mod, and recreates the
	@Name entries and key files. The server itself is not updated or
	launched.

Flags:
`
}

func (cmd *InstallCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", config.FileName, "configuration file path")
	fs.BoolVar(&cmd.Offline, "offline", false, "no network access, use cached content only")
	fs.BoolVar(&cmd.Validate, "validate", false, "force steamcmd to validate all content")
}

func (cmd *InstallCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, ok := loadConfig(cmd.ConfigPath)
	if !ok {
		return subcommands.ExitFailure
	}
	installDir, err := os.Getwd()
	if err != nil {
		logger.Error("get working directory", "err", err)
		return subcommands.ExitFailure
	}

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
	return subcommands.ExitSuccess
}
