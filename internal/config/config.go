// Package config loads the server configuration from a .env file, SHOPLIST_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/erazemk/shoplist/internal/db"
)

// DefaultSQLitePath is the database file used when no DSN is configured.
const DefaultSQLitePath = "shoplist.sqlite3"

// Config is the server configuration.
type Config struct {
	Addr        string
	Driver      string
	DSN         string
	APIURL      string
	LogPath     string
	CORSOrigins []string
}

// Load reads envFiles (".env" when none are given), the environment and
// args. Missing env files are ignored. flag.ErrHelp is returned as is.
func Load(args []string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{}
	var cors string

	flags := flag.NewFlagSet("shoplist", flag.ContinueOnError)

	addr := env("ADDR", ":8080")
	flags.StringVar(&cfg.Addr, "addr", addr, "")
	flags.StringVar(&cfg.Addr, "a", addr, "")

	dsn := env("DB_DSN", "")
	flags.StringVar(&cfg.DSN, "db", dsn, "")
	flags.StringVar(&cfg.DSN, "d", dsn, "")

	flags.StringVar(&cfg.Driver, "driver", env("DB_DRIVER", db.DriverSQLite), "")
	flags.StringVar(&cfg.APIURL, "api", env("API_URL", ""), "")

	logPath := env("LOG", "")
	flags.StringVar(&cfg.LogPath, "log", logPath, "")
	flags.StringVar(&cfg.LogPath, "l", logPath, "")

	flags.StringVar(&cors, "cors", env("CORS_ORIGINS", ""), "")

	flags.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: shoplist [flags]

Flags:
  -a, -addr <host:port>   listen address (default: :8080)
  -d, -db <dsn>           database path or DSN (default: shoplist.sqlite3)
  -driver <name>          database driver: sqlite or mysql (default: sqlite)
  -api <url>              API base URL used by the web page (default: derived from -addr)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -cors <origins>         comma-separated origins allowed to call the API
  -h, -help               show this help and exit

Every flag can also be set with a SHOPLIST_* environment variable
(SHOPLIST_ADDR, SHOPLIST_DB_DSN, SHOPLIST_DB_DRIVER, SHOPLIST_API_URL,
SHOPLIST_LOG, SHOPLIST_CORS_ORIGINS) or in a .env file.
`)
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		flags.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", flags.Arg(0))
	}

	switch cfg.Driver {
	case db.DriverSQLite:
		if cfg.DSN == "" {
			cfg.DSN = DefaultSQLitePath
		}
	case db.DriverMySQL:
		if cfg.DSN == "" {
			return nil, errors.New("the mysql driver needs a DSN (-db or SHOPLIST_DB_DSN)")
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if cfg.APIURL == "" {
		u, err := apiURLFromAddr(cfg.Addr)
		if err != nil {
			return nil, err
		}
		cfg.APIURL = u
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	for _, origin := range strings.Split(cors, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}

func env(key, def string) string {
	if v, ok := os.LookupEnv("SHOPLIST_" + key); ok {
		return v
	}
	return def
}

// apiURLFromAddr returns the URL at which the server reaches its own API.
// Wildcard hosts become the loopback address.
func apiURLFromAddr(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port), nil
}
