package config

import (
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server {
  steamcmd_dir = "C:/steamcmd"
  username     = "someuser"
}

mod "CF" {
  id = 1559212036
}

mod "Dabs Framework" {
  id = 2545834911
}

collection_url = "https://steamcommunity.com/sharedfiles/filedetails/?id=123"
`

func TestParse(t *testing.T) {
	cfg, diags := Parse(hclparse.NewParser(), FileName, []byte(sampleConfig))
	require.False(t, diags.HasErrors(), diags.Error())

	require.Equal(t, "C:/steamcmd", cfg.Server.SteamCmdDir)
	require.Equal(t, "someuser", cfg.Server.Username)
	require.Equal(t, DefaultServerAppID, cfg.Server.ServerAppID)
	require.Equal(t, DefaultGameAppID, cfg.Server.GameAppID)
	require.Equal(t, "https://steamcommunity.com/sharedfiles/filedetails/?id=123", cfg.CollectionURL)

	entries := cfg.ModEntries()
	require.Len(t, entries, 2)
	require.Equal(t, uint64(1559212036), entries[0].ID)
	require.Equal(t, "CF", entries[0].Name)
	require.Equal(t, "Dabs Framework", entries[1].Name)
}

func TestParseAppIDOverride(t *testing.T) {
	src := `
server {
  steamcmd_dir  = "steamcmd"
  username      = "u"
  server_app_id = 1
  game_app_id   = 2
}
`
	cfg, diags := Parse(hclparse.NewParser(), FileName, []byte(src))
	require.False(t, diags.HasErrors(), diags.Error())
	require.Equal(t, uint32(1), cfg.Server.ServerAppID)
	require.Equal(t, uint32(2), cfg.Server.GameAppID)
}

func TestParseMissingRequiredAttr(t *testing.T) {
	src := `
server {
  steamcmd_dir = "steamcmd"
}
`
	_, diags := Parse(hclparse.NewParser(), FileName, []byte(src))
	require.True(t, diags.HasErrors())
}

func TestDefaultConfigParses(t *testing.T) {
	cfg, diags := Parse(hclparse.NewParser(), FileName, Default)
	require.False(t, diags.HasErrors(), diags.Error())
	require.Empty(t, cfg.Mods)
	require.Empty(t, cfg.CollectionURL)
}
