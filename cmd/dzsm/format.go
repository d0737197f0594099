package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/diff"

	"github.com/google/subcommands"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/google/renameio/v2"

	"dzsm/config"
)

type FormatCommand struct {
	DisableCheck bool
	Overwrite    bool
	ContextSize  int
}

func (*FormatCommand) Name() string     { return "fmt" }
func (*FormatCommand) Synopsis() string { return "format configuration files" }
func (*FormatCommand) Usage() string {
	return `Usage: dzsm fmt [-c int] [-w] [-nocheck] [config paths]

	Formats configuration files using standard HCL syntax. It either
	writes files in place or prints a unified diff with the given
	context size.

Flags:
`
}

func (cmd *FormatCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.DisableCheck, "nocheck", false, "disable diagnostics")
	fs.BoolVar(&cmd.Overwrite, "w", false, "write result to (source) file instead of stdout")
	fs.IntVar(&cmd.ContextSize, "c", 3, "output n lines of diff context")
}

func (cmd *FormatCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	paths := fs.Args()
	if len(paths) <= 0 {
		paths = []string{config.FileName}
	} else {
		sort.Strings(paths)
	}

	_, color := fdinfo(int(os.Stdout.Fd()))

	seen := make(map[string]bool, len(paths))
	for _, fpath := range paths {
		if seen[fpath] {
			continue
		}
		seen[fpath] = true

		src, err := os.ReadFile(fpath)
		if err != nil {
			logger.Error("read config", "path", fpath, "err", err)
			return subcommands.ExitFailure
		}

		if !cmd.DisableCheck {
			if _, ok := loadConfig(fpath); !ok {
				return subcommands.ExitFailure
			}
		}

		outSrc := hclwrite.Format(src)
		if bytes.Equal(src, outSrc) {
			continue
		}
		if cmd.Overwrite {
			if err := renameio.WriteFile(fpath, outSrc, 0644); err != nil {
				logger.Error("write config", "path", fpath, "err", err)
				return subcommands.ExitFailure
			}
			continue
		}

		fpath := filepath.ToSlash(fpath)
		names := diff.Names(fmt.Sprintf("a/%s", fpath), fmt.Sprintf("b/%s", fpath))
		opts := []diff.WriteOpt{names}
		if color {
			opts = append(opts, diff.TerminalColor())
		}
		a, b := splitLines(src), splitLines(outSrc)
		pair := diff.Bytes(a, b)
		edit := diff.Myers(ctx, pair)
		if cmd.ContextSize >= 0 {
			edit = edit.WithContextSize(cmd.ContextSize)
		}
		if _, err := edit.WriteUnified(os.Stdout, pair, opts...); err != nil {
			logger.Error("write diff", "err", err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}

func splitLines(b []byte) [][]byte {
	return bytes.Split(b, []byte("\n"))
}
