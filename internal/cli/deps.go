package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/noshnavigator/nosh-cli/internal/assistant"
	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/gateway/nosh"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// ProfileResolver resolves profile selections.
type ProfileResolver interface {
	Find(ctx context.Context, profileName string) (domain.Profile, error)
}

// Geocoder resolves addresses to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (domain.Location, error)
}

// ConfigManager stores profile config payloads.
type ConfigManager interface {
	Path() string
	Load(ctx context.Context) (domain.Config, error)
	Save(ctx context.Context, cfg domain.Config) error
}

// SessionManager persists session state between invocations.
type SessionManager interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, sess domain.Session) error
}

// Assistant routes chat messages through the intent pipeline.
type Assistant interface {
	Process(sess *domain.Session, location *domain.Location, text string) assistant.Reply
}

// Dependencies wires runtime services.
type Dependencies struct {
	Server    nosh.API
	Geocoder  Geocoder
	Profiles  ProfileResolver
	Config    ConfigManager
	Sessions  SessionManager
	Assistant Assistant
	Clock     func() time.Time
	Version   string
}

func (d Dependencies) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || err == errVersionShown {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
