package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/gateway/nosh"
)

type testSessions struct {
	sess    domain.Session
	loadErr error
	saveErr error
	saves   int
}

func (m *testSessions) Load(context.Context) (domain.Session, error) {
	return m.sess, m.loadErr
}

func (m *testSessions) Save(_ context.Context, sess domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sess = sess
	m.saves++
	return nil
}

type testConfigManager struct {
	cfg     domain.Config
	loadErr error
	saves   int
}

func (m *testConfigManager) Path() string {
	return "/tmp/test-config.json"
}

func (m *testConfigManager) Load(context.Context) (domain.Config, error) {
	return m.cfg, m.loadErr
}

func (m *testConfigManager) Save(_ context.Context, cfg domain.Config) error {
	m.cfg = cfg
	m.saves++
	return nil
}

type testProfiles struct {
	profile domain.Profile
	err     error
}

func (m *testProfiles) Find(context.Context, string) (domain.Profile, error) {
	if m.err != nil {
		return domain.Profile{}, m.err
	}
	return m.profile, nil
}

type testGeocoder struct {
	location domain.Location
	err      error
	queries  []string
}

func (m *testGeocoder) Resolve(_ context.Context, address string) (domain.Location, error) {
	m.queries = append(m.queries, address)
	if m.err != nil {
		return domain.Location{}, m.err
	}
	return m.location, nil
}

type testServer struct {
	registerFn func(ctx context.Context, creds nosh.Credentials) (nosh.AuthResult, error)
	loginFn    func(ctx context.Context, login, password string) (nosh.AuthResult, error)
	meFn       func(ctx context.Context, token string) (nosh.Account, error)
	chatFn     func(ctx context.Context, token string, messages []nosh.ChatMessage) (string, error)
}

func (m *testServer) Register(ctx context.Context, creds nosh.Credentials) (nosh.AuthResult, error) {
	if m.registerFn == nil {
		return nosh.AuthResult{}, nosh.ErrServer
	}
	return m.registerFn(ctx, creds)
}

func (m *testServer) Login(ctx context.Context, login, password string) (nosh.AuthResult, error) {
	if m.loginFn == nil {
		return nosh.AuthResult{}, nosh.ErrServer
	}
	return m.loginFn(ctx, login, password)
}

func (m *testServer) Me(ctx context.Context, token string) (nosh.Account, error) {
	if m.meFn == nil {
		return nosh.Account{}, nosh.ErrServer
	}
	return m.meFn(ctx, token)
}

func (m *testServer) Chat(ctx context.Context, token string, messages []nosh.ChatMessage) (string, error) {
	if m.chatFn == nil {
		return "", nosh.ErrServer
	}
	return m.chatFn(ctx, token, messages)
}

var testClock = func() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func runCLI(t *testing.T, deps Dependencies, args ...string) (string, string, int) {
	t.Helper()
	if deps.Sessions == nil {
		deps.Sessions = &testSessions{}
	}
	if deps.Clock == nil {
		deps.Clock = testClock
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := Execute(context.Background(), args, deps, stdout, stderr)
	return stdout.String(), stderr.String(), code
}
