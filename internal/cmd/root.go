package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Browse    BrowseCmd    `cmd:"" default:"1" help:"Interactive search and paging (default)."`
	Search    SearchCmd    `cmd:"" help:"Fetch ads for a phrase and country."`
	Countries CountriesCmd `cmd:"" help:"List countries, optionally filtered."`
	Theme     ThemeCmd     `cmd:"" help:"Show or change the color theme."`
	Seen      SeenCmd      `cmd:"" help:"Seen ads utilities."`
	Proxies   ProxiesCmd   `cmd:"" help:"Proxy utilities."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Version   VersionCmd   `cmd:"" help:"Print version."`
}

func NewCLI() *CLI {
	return &CLI{}
}
