package config

import (
	"cmp"
	"flag"
	"os"
)

const (
	defaultAPIBase   = "http://localhost:5000"
	defaultStorePath = "bookstore.db"
)

type Config struct {
	APIBase   string
	StorePath string
	Debug     bool
}

// ReadConfig parses the global flags and returns the remaining arguments
// (the subcommand and its operands).
func ReadConfig() (*Config, []string) {
	var apiBase, storePath string
	var debug bool
	flag.StringVar(&apiBase, "api", defaultAPIBase, "base URL of the bookstore API")
	flag.StringVar(&storePath, "store", defaultStorePath, "path to the local store file")
	flag.BoolVar(&debug, "debug", false, "flag to set Debug logger level")
	flag.Parse()

	apiBase = cmp.Or(os.Getenv("BOOKSTORE_API"), apiBase)
	storePath = cmp.Or(os.Getenv("BOOKSTORE_STORE"), storePath)
	return &Config{
		APIBase:   apiBase,
		StorePath: storePath,
		Debug:     debug,
	}, flag.Args()
}
