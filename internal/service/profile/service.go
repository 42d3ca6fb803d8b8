package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

var (
	// ErrDefaultProfileNotFound indicates the config has no default profile.
	ErrDefaultProfileNotFound = errors.New("no default profile found")
	// ErrProfileNotFound indicates the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)

// Loader provides config payloads.
type Loader interface {
	Load(ctx context.Context) (domain.Config, error)
}

// Resolver resolves profile names against the local config.
type Resolver struct {
	loader Loader
}

// NewResolver creates a profile resolver.
func NewResolver(loader Loader) *Resolver {
	return &Resolver{loader: loader}
}

// Find resolves an explicit profile name, or the default when name is empty.
func (r *Resolver) Find(ctx context.Context, profileName string) (domain.Profile, error) {
	cfg, err := r.loader.Load(ctx)
	if err != nil {
		return domain.Profile{}, err
	}

	want := strings.ToLower(strings.TrimSpace(profileName))
	if want == "" {
		for _, p := range cfg.Profiles {
			if p.IsDefault {
				return p, nil
			}
		}
		return domain.Profile{}, ErrDefaultProfileNotFound
	}

	available := make([]string, 0, len(cfg.Profiles))
	for _, p := range cfg.Profiles {
		if strings.ToLower(p.Name) == want {
			return p, nil
		}
		available = append(available, p.Name)
	}
	return domain.Profile{}, fmt.Errorf("%w: %q (available: %s)", ErrProfileNotFound, profileName, strings.Join(available, ", "))
}
