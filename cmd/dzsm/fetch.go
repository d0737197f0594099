package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"dzsm/collection"
	"dzsm/config"
)

type FetchCommand struct {
	ConfigPath string
}

func (*FetchCommand) Name() string     { return "fetch" }
func (*FetchCommand) Synopsis() string { return "list the mods of a workshop collection" }
func (*FetchCommand) Usage() string {
	return `Usage: dzsm fetch [-config config.dzsm.hcl] [collection url]

	Fetches a workshop collection page and prints the mods it lists,
	without installing anything. With no url argument the collection_url
	from the configuration is used.

Flags:
`
}

func (cmd *FetchCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", config.FileName, "configuration file path")
}

func (cmd *FetchCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	url := ""
	if fs.NArg() > 0 {
		url = fs.Arg(0)
	} else {
		cfg, ok := loadConfig(cmd.ConfigPath)
		if !ok {
			return subcommands.ExitFailure
		}
		url = cfg.CollectionURL
	}
	if url == "" {
		logger.Error("no collection url given and none configured")
		return subcommands.ExitUsageError
	}

	f := &collection.Fetcher{Log: logger}
	entries, err := f.Fetch(url)
	if err != nil {
		logger.Error("fetch collection", "url", url, "err", err)
		return subcommands.ExitFailure
	}
	for i, e := range entries {
		fmt.Printf("%3d. %s (%d)\n", i+1, e.Name, e.ID)
	}
	return subcommands.ExitSuccess
}
