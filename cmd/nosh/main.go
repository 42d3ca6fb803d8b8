package main

import (
	"context"
	"os"
	"strings"

	"github.com/noshnavigator/nosh-cli/internal/cli"
	"github.com/noshnavigator/nosh-cli/internal/config"
	"github.com/noshnavigator/nosh-cli/internal/gateway/geocode"
	noshgateway "github.com/noshnavigator/nosh-cli/internal/gateway/nosh"
	"github.com/noshnavigator/nosh-cli/internal/service/profile"
	"github.com/noshnavigator/nosh-cli/internal/session"
)

var version = "dev"

const (
	defaultServerURL = "http://localhost:8787"
	serverURLEnv     = "NOSH_SERVER_URL"
)

func main() {
	configStore, err := config.NewStore()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	sessionStore, err := session.NewStore()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	profiles := profile.NewResolver(configStore)
	deps := cli.Dependencies{
		Server:   noshgateway.NewClient(resolveServerURL(profiles)),
		Geocoder: geocode.NewClient(),
		Profiles: profiles,
		Config:   configStore,
		Sessions: sessionStore,
		Version:  version,
	}

	exitCode := cli.Execute(context.Background(), os.Args[1:], deps, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// resolveServerURL picks the noshd base URL: the env override first, then
// the default profile's saved server, then the local default.
func resolveServerURL(profiles *profile.Resolver) string {
	if raw := strings.TrimSpace(os.Getenv(serverURLEnv)); raw != "" {
		return raw
	}
	if p, err := profiles.Find(context.Background(), ""); err == nil {
		if url := strings.TrimSpace(p.ServerURL); url != "" {
			return url
		}
	}
	return defaultServerURL
}
