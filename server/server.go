// Package server assembles DayZ server launch arguments and supervises the
// server process.
package server

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"dzsm/mods"
)

const (
	// ConfigName is the server's own configuration file, expected in the
	// install directory.
	ConfigName = "serverDZ.cfg"

	// ProfilesName is the directory the server writes logs and profiles to.
	ProfilesName = "profiles"
)

func exeName() string {
	if runtime.GOOS == "windows" {
		return "DayZServer_x64.exe"
	}
	return "DayZServer"
}

// Args assembles the launch arguments for a resolved mod set. Empty mod
// lists yield no flag at all.
func Args(set mods.Set) []string {
	args := []string{"-config=" + ConfigName, "-profiles=" + ProfilesName}
	if v, ok := set.ModArg(); ok {
		args = append(args, "-mod="+v)
	}
	if v, ok := set.ServerModArg(); ok {
		args = append(args, "-serverMod="+v)
	}
	return args
}

// Server supervises the DayZ server process in Dir.
type Server struct {
	Dir string
	Log *log.Logger
}

func (s *Server) ExePath() string {
	return filepath.Join(s.Dir, exeName())
}

// Installed reports whether the server executable exists.
func (s *Server) Installed() bool {
	_, err := os.Stat(s.ExePath())
	return err == nil
}

// Run launches the server with the given mod set and blocks until it exits.
// The server console is attached to the current terminal.
func (s *Server) Run(ctx context.Context, set mods.Set) error {
	exe := s.ExePath()
	if !s.Installed() {
		return fmt.Errorf("server executable not found: %s", exe)
	}
	args := Args(set)
	s.logger().Info("starting server", "exe", filepath.Base(exe), "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = s.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func (s *Server) logger() *log.Logger {
	if s.Log != nil {
		return s.Log
	}
	return log.Default()
}
