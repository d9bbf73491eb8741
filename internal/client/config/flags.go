package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/taskadmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   backend base URL
//	-d string   local database path
//	-p int      page size
//
// Arguments are filtered with flagx.FilterArgs first, so flags meant for
// other loaders do not cause parse errors here.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "rows per page")

	return fs.Parse(args)
}
