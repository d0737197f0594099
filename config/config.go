// Package config defines the dzsm configuration schema and its HCL
// decoding.
package config

import (
	_ "embed"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"dzsm/mods"
)

// FileName is the configuration file dzsm looks for in the managed
// directory.
const FileName = "config.dzsm.hcl"

// DayZ app identifiers on Steam, used when the config leaves them unset.
const (
	DefaultServerAppID uint32 = 223350
	DefaultGameAppID   uint32 = 221100
)

// Default is the starter configuration written on first run.
//
//go:embed default.hcl
var Default []byte

type Config struct {
	Server        Server `hcl:"server,block"`
	Mods          []Mod  `hcl:"mod,block"`
	CollectionURL string `hcl:"collection_url,optional"`
}

type Server struct {
	// SteamCmdDir is where SteamCMD lives or will be bootstrapped.
	SteamCmdDir string `hcl:"steamcmd_dir"`

	// Username is the Steam account used for downloads. Anonymous logins
	// cannot download the DayZ server or its workshop content.
	Username string `hcl:"username"`

	ServerAppID uint32 `hcl:"server_app_id,optional"`
	GameAppID   uint32 `hcl:"game_app_id,optional"`
}

// Mod is one individually configured mod. The block label is the display
// name and becomes the @Name activation directory.
type Mod struct {
	Name string `hcl:"name,label"`
	ID   uint64 `hcl:"id"`
}

// Parse decodes a configuration from HCL source. The parser is supplied by
// the caller so diagnostics can be rendered with source context.
func Parse(p *hclparse.Parser, filename string, src []byte) (*Config, hcl.Diagnostics) {
	file, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	var c Config
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, &c)...)
	if diags.HasErrors() {
		return nil, diags
	}
	c.applyDefaults()
	return &c, diags
}

func (c *Config) applyDefaults() {
	if c.Server.ServerAppID == 0 {
		c.Server.ServerAppID = DefaultServerAppID
	}
	if c.Server.GameAppID == 0 {
		c.Server.GameAppID = DefaultGameAppID
	}
}

// ModEntries converts the configured mod blocks into resolved entries,
// preserving file order.
func (c *Config) ModEntries() []mods.Entry {
	if len(c.Mods) == 0 {
		return nil
	}
	entries := make([]mods.Entry, len(c.Mods))
	for i, m := range c.Mods {
		entries[i] = mods.Entry{ID: m.ID, Name: m.Name}
	}
	return entries
}
