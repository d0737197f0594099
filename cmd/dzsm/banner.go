package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/crypto/ssh/terminal"

	"dzsm/config"
)

const banner = ` ____  _____ ____  __  __
|  _ \|__  // ___||  \/  |
| | | | / / \___ \| |\/| |
| |_| |/ /_  ___) | |  | |
|____//____||____/|_|  |_|`

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	headingStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
)

// printBanner centers the banner and version line on the terminal.
func printBanner() {
	width := 80
	if w, _, err := terminal.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	title := fmt.Sprintf("%s v%s - DayZ Server Manager", programName, version)

	fmt.Println()
	fmt.Println(lipgloss.PlaceHorizontal(width, lipgloss.Center, bannerStyle.Render(banner)))
	fmt.Println()
	fmt.Println(lipgloss.PlaceHorizontal(width, lipgloss.Center, titleStyle.Render(title)))
	fmt.Println()
}

// printSummary shows the effective configuration before anything runs.
func printSummary(cfg *config.Config, installDir string) {
	fmt.Println(headingStyle.Render("Configuration"))
	fmt.Printf("  steamcmd_dir: %s\n", cfg.Server.SteamCmdDir)
	fmt.Printf("  username:     %s\n", cfg.Server.Username)
	fmt.Printf("  install_dir:  %s\n", installDir)

	if len(cfg.Mods) == 0 {
		fmt.Println("  mods:         " + mutedStyle.Render("(none)"))
	} else {
		fmt.Println("  mods:")
		for i, m := range cfg.Mods {
			fmt.Printf("    %d. %s (%d)\n", i+1, m.Name, m.ID)
		}
	}
	if url := cfg.CollectionURL; url != "" {
		fmt.Printf("  collection:   %s\n", url)
	}
	fmt.Println()
}

func printConfigGuidance(path string) {
	fmt.Println()
	fmt.Println(warningStyle.Render(fmt.Sprintf("Please edit %q before running %s again:", path, programName)))
	fmt.Println("  1. Set your Steam username (the account must own DayZ).")
	fmt.Println("  2. Adjust steamcmd_dir if needed.")
	fmt.Println("  3. Add the mods you want, or a collection_url.")
	fmt.Println()
	fmt.Println(mutedStyle.Render("Note: anonymous login cannot download DayZ; log in to SteamCMD once manually to cache credentials."))
}
