package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/paperback/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   data directory for the file-backed store
//	-r string   Redis address; when set, Redis replaces the file store
//	-s string   token signing secret
//
// os.Args is filtered with flagx.FilterArgs so only the flags handled here
// are parsed.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-r", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address (optional)")
	fs.StringVar(&cfg.TokenSecret, "s", cfg.TokenSecret, "token signing secret")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
