package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"golang.org/x/crypto/ssh/terminal"
)

// lockFile marks a directory as managed by dzsm. Server, SteamCMD and mod
// files are installed relative to it.
const lockFile = ".dzsm.lock"

// ensureManaged checks for the lock file and offers to initialize the
// current directory on first run. It returns false when the user declines.
func ensureManaged() (bool, error) {
	if _, err := os.Stat(lockFile); err == nil {
		logger.Info("found existing dzsm setup")
		return true, nil
	}
	logger.Warn("no dzsm setup found in this directory")

	cwd, err := os.Getwd()
	if err != nil {
		return false, err
	}
	prompt := fmt.Sprintf("Install the DayZ server, SteamCMD and mod files under %q?", cwd)
	ok, err := promptYesNo(prompt, false)
	if err != nil || !ok {
		return false, err
	}

	content := fmt.Sprintf("Managed by %s v%s\nCreated: %s\n",
		programName, version, time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	if err := renameio.WriteFile(lockFile, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("create %s: %w", lockFile, err)
	}
	logger.Info("created new dzsm setup", "lock", lockFile)
	return true, nil
}

// promptYesNo asks a yes/no question on the terminal. Non-interactive runs
// get the default without blocking.
func promptYesNo(prompt string, def bool) (bool, error) {
	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		return def, nil
	}
	options := "(y/N)"
	if def {
		options = "(Y/n)"
	}
	r := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprintf(os.Stderr, "%s %s: ", prompt, options)
		line, err := r.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(os.Stderr, `please answer "y" or "n"`)
	}
}
