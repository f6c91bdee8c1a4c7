package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/ticketapp/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered to the flags handled here first (see flagx.FilterArgs),
// so the -c flag of the file loader does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-q", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "path of the storage file")
	fs.Int64Var(&cfg.StorageQuota, "q", cfg.StorageQuota, "storage quota in bytes (0 = unlimited)")
	fs.BoolVar(&cfg.SeedTickets, "s", cfg.SeedTickets, "seed demo tickets when there are none")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
