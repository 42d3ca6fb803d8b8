package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/gateway/nosh"
	"github.com/noshnavigator/nosh-cli/internal/service/output"
)

func TestRootHelpListsCommandsAndGlobals(t *testing.T) {
	root := NewRootCommand(Dependencies{Version: "test"})
	buf := &bytes.Buffer{}
	renderRootHelp(buf, root)
	out := buf.String()

	if !strings.Contains(out, "global options") {
		t.Fatalf("expected global options section in help output:\n%s", out)
	}
	if !strings.Contains(out, "--format") {
		t.Fatalf("expected format flag in help output:\n%s", out)
	}
	for _, name := range []string{"search", "nearby", "chat", "cart", "checkout", "locate", "auth", "configure"} {
		if !strings.Contains(out, "\n  "+name+"\n") {
			t.Fatalf("expected command %q in help output:\n%s", name, out)
		}
	}
}

func TestCommandOptionsHideSharedGlobals(t *testing.T) {
	root := NewRootCommand(Dependencies{Version: "test"})

	search, found := findCommand(root, "search")
	if !found {
		t.Fatal("search command not found")
	}
	for _, option := range commandOptions(search) {
		if option.name == "format" || option.name == "profile" || option.name == "output" {
			t.Fatalf("shared global option leaked into command-specific options: %s", option.name)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	stdout, _, code := runCLI(t, Dependencies{Version: "1.2.3"}, "--version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.TrimSpace(stdout) != "1.2.3" {
		t.Fatalf("expected version output, got %q", stdout)
	}
}

func TestUnknownCommandExitsTwo(t *testing.T) {
	_, stderr, code := runCLI(t, Dependencies{}, "frobnicate")
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr, "No such command 'frobnicate'") {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestResolveLocationRequiresBothCoordinates(t *testing.T) {
	deps := Dependencies{Clock: testClock}
	sess := domain.Session{}
	lon := -122.41

	_, err := resolveLocation(context.Background(), deps, &sess, nil, &lon, "")
	if err == nil {
		t.Fatal("expected resolveLocation to fail when only lon is provided")
	}
}

func TestResolveLocationPrefersExplicitCoordinates(t *testing.T) {
	geocoder := &testGeocoder{location: domain.Location{Lat: 1, Lon: 2}}
	deps := Dependencies{Geocoder: geocoder, Clock: testClock}
	sess := domain.Session{}
	lat, lon := 37.78, -122.41

	location, err := resolveLocation(context.Background(), deps, &sess, &lat, &lon, "ignored address")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location == nil || location.Lat != 37.78 || location.Lon != -122.41 {
		t.Fatalf("unexpected location: %+v", location)
	}
	if len(geocoder.queries) != 0 {
		t.Fatalf("expected geocoder to stay untouched, got queries %v", geocoder.queries)
	}
	if sess.Location == nil {
		t.Fatal("expected resolved location to be cached on the session")
	}
}

func TestResolveLocationGeocodesAddress(t *testing.T) {
	geocoder := &testGeocoder{location: domain.Location{Lat: 40.7, Lon: -74.0}}
	deps := Dependencies{Geocoder: geocoder, Clock: testClock}
	sess := domain.Session{}

	location, err := resolveLocation(context.Background(), deps, &sess, nil, nil, "10 Main St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location == nil || location.Lat != 40.7 {
		t.Fatalf("unexpected location: %+v", location)
	}
	if len(geocoder.queries) != 1 || geocoder.queries[0] != "10 Main St" {
		t.Fatalf("unexpected geocoder queries: %v", geocoder.queries)
	}
}

func TestResolveLocationFallsBackToFreshCache(t *testing.T) {
	deps := Dependencies{Clock: testClock}
	sess := domain.Session{Location: &domain.CachedLocation{
		Location: domain.Location{Lat: 37.78, Lon: -122.41},
		StoredAt: testClock().Add(-time.Minute),
	}}

	location, err := resolveLocation(context.Background(), deps, &sess, nil, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location == nil || location.Lat != 37.78 {
		t.Fatalf("expected cached location, got %+v", location)
	}
}

func TestResolveLocationIgnoresStaleCache(t *testing.T) {
	deps := Dependencies{Clock: testClock}
	sess := domain.Session{Location: &domain.CachedLocation{
		Location: domain.Location{Lat: 37.78, Lon: -122.41},
		StoredAt: testClock().Add(-time.Hour),
	}}

	location, err := resolveLocation(context.Background(), deps, &sess, nil, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location != nil {
		t.Fatalf("expected no location for a stale cache, got %+v", location)
	}
}

func TestResolveTokenPrefersExplicitValue(t *testing.T) {
	deps := Dependencies{Profiles: &testProfiles{profile: domain.Profile{Token: "saved"}}}
	if got := resolveToken(context.Background(), deps, globalFlags{}, "explicit"); got != "explicit" {
		t.Fatalf("expected explicit token, got %q", got)
	}
	if got := resolveToken(context.Background(), deps, globalFlags{}, ""); got != "saved" {
		t.Fatalf("expected saved token, got %q", got)
	}
}

func TestServerErrorMessages(t *testing.T) {
	cases := map[string]string{
		"username_taken":  "already taken",
		"email_taken":     "already registered",
		"not_found":       "No account",
		"bad_credentials": "Incorrect password",
		"invalid_email":   "doesn't look valid",
	}
	for code, fragment := range cases {
		if got := serverErrorMessage(code); !strings.Contains(got, fragment) {
			t.Fatalf("serverErrorMessage(%q) = %q, expected fragment %q", code, got, fragment)
		}
	}
	if got := serverErrorMessage("weird_code"); got != "weird_code" {
		t.Fatalf("expected unknown codes to pass through, got %q", got)
	}
}

func TestEmitServerErrorUsesAPIErrorCode(t *testing.T) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	err := emitServerError(cmd, output.FormatTable, "default", "", &nosh.APIError{StatusCode: 409, Code: "username_taken"})
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("expected controlled exit error, got %v", err)
	}
	if !strings.Contains(buf.String(), "already taken") {
		t.Fatalf("expected friendly message, got %q", buf.String())
	}
}

func TestResolveProfileLabel(t *testing.T) {
	if got := resolveProfileLabel(""); got != "default" {
		t.Fatalf("expected default label, got %q", got)
	}
	if got := resolveProfileLabel("work"); got != "work" {
		t.Fatalf("expected work label, got %q", got)
	}
}

func TestFlagHelpers(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.StringP("profile", "p", "", "Profile.")
	flag := flagSet.Lookup("profile")
	if flag == nil {
		t.Fatal("profile flag not found")
	}
	flag.Annotations = map[string][]string{cobra.BashCompOneRequiredFlag: {"true"}}

	if token := flagToken(flag); token != "--profile/-p" {
		t.Fatalf("unexpected flag token: %q", token)
	}
	if !isFlagRequired(flag) {
		t.Fatal("expected required flag")
	}
	if label := optionLabels(optionDoc{required: true, inherited: true}); label != " [required, global]" {
		t.Fatalf("unexpected option labels: %q", label)
	}
}

func findCommand(root *cobra.Command, path ...string) (*cobra.Command, bool) {
	current := root
	for _, segment := range path {
		found := false
		for _, cmd := range current.Commands() {
			if cmd.Name() == segment {
				current = cmd
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return current, true
}
