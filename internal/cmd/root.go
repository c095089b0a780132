package cmd

import (
	"strings"

	"github.com/alecthomas/kong"
)

// CLI is the flat flag surface of jamscrape. There are no subcommands; the
// root Run performs one scrape.
type CLI struct {
	Query           string `help:"Job search query." required:""`
	Location        string `help:"Job location." required:""`
	Sites           string `help:"Comma-separated job boards (linkedin, indeed, glassdoor, ziprecruiter, google, stepstone) or all." required:""`
	MaxJobs         int    `name:"max-jobs" help:"Maximum results per site." default:"50"`
	JobType         string `name:"job-type" help:"Job type filter. fulltime, parttime, contract and internship narrow the search; other values are ignored."`
	ExperienceLevel string `name:"experience-level" help:"Experience level. Accepted but not used to filter results."`
	Output          string `short:"o" help:"Path of the JSON file to write." required:"" type:"path"`

	Proxies string `help:"Comma-separated proxy URLs." env:"JAMSCRAPE_PROXIES"`
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto" env:"JAMSCRAPE_COLOR"`
	Verbose bool   `help:"Enable debug logging." env:"JAMSCRAPE_VERBOSE"`

	Version kong.VersionFlag `help:"Print version."`
}

func (c *CLI) Run(ctx *Context) error {
	return runScrape(ctx, c.options())
}

func (c *CLI) options() ScrapeOptions {
	return ScrapeOptions{
		Query:           strings.TrimSpace(c.Query),
		Location:        strings.TrimSpace(c.Location),
		Sites:           splitSites(c.Sites),
		MaxJobs:         c.MaxJobs,
		JobType:         strings.TrimSpace(c.JobType),
		ExperienceLevel: strings.TrimSpace(c.ExperienceLevel),
		Output:          c.Output,
		Proxies:         c.Proxies,
	}
}

// NewParser wires cli into a kong parser with the program's name and help.
func NewParser(cli *CLI, version string, options ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("jamscrape"),
		kong.Description("Scrape job boards and write the listings to a JSON file."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	}
	return kong.New(cli, append(base, options...)...)
}

func splitSites(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
