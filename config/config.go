package config

import (
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Addr          string
	DBUrl         string
	TokenSecret   string
	TokenTTL      time.Duration
	Debug         bool
	CORSOrigins   []string
	AdminEmail    string
	AdminPassword string
}

// Parse reads the command line, falling back to environment variables
// (optionally loaded from a .env file) for every unset flag.
func Parse(args []string) (cfg Config, err error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("quick-feedback", flag.ContinueOnError)

	var host string
	fs.StringVar(&host, "host", env("HOST", "0.0.0.0"), "listen host name")
	var port uint
	fs.UintVar(&port, "port", envUint("PORT", 8000), "listen port number")
	fs.StringVar(&cfg.DBUrl, "db-url", env("DB_URL", "feedback.sqlite"), "path to SQLite3 DB file")
	fs.StringVar(&cfg.TokenSecret, "token-secret", env("TOKEN_SECRET", ""), "secret key for token encryption and decryption")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", envDuration("TOKEN_TTL", 30*time.Minute), "access token TTL")
	fs.BoolVar(&cfg.Debug, "debug", env("DEBUG", "") != "", "log at DEBUG level")
	var origins string
	fs.StringVar(&origins, "cors-origins", env("CORS_ORIGINS", "http://localhost:3000"), "comma separated list of allowed CORS origins")
	fs.StringVar(&cfg.AdminEmail, "admin-email", env("ADMIN_EMAIL", ""), "email of the superuser to create at startup")
	fs.StringVar(&cfg.AdminPassword, "admin-password", env("ADMIN_PASSWORD", ""), "password of the superuser to create at startup")

	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	switch {
	case cfg.TokenSecret == "":
		err = errors.New("missing parameter -token-secret")
	case cfg.TokenTTL <= 0:
		err = errors.New("parameter -token-ttl must be positive")
	case (cfg.AdminEmail == "") != (cfg.AdminPassword == ""):
		err = errors.New("-admin-email and -admin-password must be given together")
	}
	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envUint(key string, def uint) uint {
	if n, err := strconv.ParseUint(os.Getenv(key), 10, 32); err == nil {
		return uint(n)
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}
