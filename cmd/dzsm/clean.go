package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/subcommands"

	"dzsm/install"
)

type CleanCommand struct {
}

func (*CleanCommand) Name() string     { return "clean" }
func (*CleanCommand) Synopsis() string { return "remove mod activation entries and mirrored keys" }
func (*CleanCommand) Usage() string {
	return `Usage: dzsm clean

	Removes every @Name activation entry from the server install
	directory (the current directory) and every file in its keys
	directory except the server's own key. Workshop content stays
	cached.
`
}

func (cmd *CleanCommand) SetFlags(fs *flag.FlagSet) {
}

func (cmd *CleanCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	installDir, err := os.Getwd()
	if err != nil {
		logger.Error("get working directory", "err", err)
		return subcommands.ExitFailure
	}
	inst := &install.Installer{
		Server:   osfs.New(installDir),
		Workshop: memfs.New(), // Clear never reads workshop content
		Log:      logger,
	}
	inst.Clear()
	logger.Info("activation entries and mirrored keys removed")
	return subcommands.ExitSuccess
}
