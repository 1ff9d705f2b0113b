package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-s", "-t", "-k", "-u", "-p", "-b", "-g", "-e"}

// parseFlags overlays the short command-line flags onto config.
//
//	-a string   HTTP bind address (":8080")
//	-d string   PostgreSQL DSN
//	-s string   token signing key
//	-t int      access token validity, minutes
//	-k int      bcrypt cost
//	-u/-p       S3 user and password
//	-b/-g/-e    S3 bucket, region and base endpoint
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenMinutes) * time.Minute
		}
	})

	return nil
}
