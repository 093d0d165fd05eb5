package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	sessionStore "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeAuthClient struct {
	token       string
	err         error
	registerErr error
	calls       int
	registered  []string
}

func (c *fakeAuthClient) Register(_ context.Context, req *bookingapi.RegisterRequest) (*bookingapi.User, error) {
	if c.registerErr != nil {
		return nil, c.registerErr
	}
	c.registered = append(c.registered, req.Email)
	return &bookingapi.User{ID: 1, Username: req.Username, Email: req.Email, Role: "client"}, nil
}

func (c *fakeAuthClient) Login(_ context.Context, _, _ string) (*bookingapi.Token, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &bookingapi.Token{AccessToken: c.token, TokenType: "bearer"}, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*domain.Session, error) {
	return nil, errors.New("redis down")
}
func (failingStore) Save(context.Context, *domain.Session) error { return errors.New("redis down") }
func (failingStore) Delete(context.Context, string) error        { return errors.New("redis down") }

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ivan@example.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func newTestService(t *testing.T, client AuthClient) (*Service, *fixedTime) {
	t.Helper()
	clock := &fixedTime{now: time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)}
	svc := NewService(sessionStore.NewMemoryStore(24*time.Hour), client, logger.NewNop())
	svc.timeProvider = clock
	return svc, clock
}

func TestService_LoadCreatesSession(t *testing.T) {
	svc, _ := newTestService(t, &fakeAuthClient{})
	ctx := context.Background()

	var events []Event
	svc.Subscribe(func(e Event) { events = append(events, e) })

	created, err := svc.Load(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.ThemeLight, created.Theme)
	assert.False(t, created.HasToken())

	loaded, err := svc.Load(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)

	unknown, err := svc.Load(ctx, "unknown")
	require.NoError(t, err)
	assert.NotEqual(t, "unknown", unknown.ID)

	require.Len(t, events, 2)
	assert.Equal(t, EventCreated, events[0].Kind)
	assert.Equal(t, EventCreated, events[1].Kind)
}

func TestService_Login(t *testing.T) {
	client := &fakeAuthClient{}
	svc, clock := newTestService(t, client)
	ctx := context.Background()
	client.token = signedToken(t, clock.now.Add(time.Hour))

	var kinds []EventKind
	unsubscribe := svc.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	s, err := svc.Load(ctx, "")
	require.NoError(t, err)

	s, err = svc.Login(ctx, s.ID, " ivan@example.com ", "secret")
	require.NoError(t, err)
	assert.True(t, s.Authenticated(clock.now))
	require.NotNil(t, s.TokenExpiresAt)
	assert.True(t, s.TokenExpiresAt.Equal(clock.now.Add(time.Hour)))

	unsubscribe()
	_, err = svc.ToggleTheme(ctx, s.ID)
	require.NoError(t, err)

	assert.Equal(t, []EventKind{EventCreated, EventLoggedIn}, kinds)
}

func TestService_Login_OpaqueToken(t *testing.T) {
	svc, clock := newTestService(t, &fakeAuthClient{token: "opaque"})

	s, err := svc.Login(context.Background(), "", "ivan@example.com", "secret")
	require.NoError(t, err)
	assert.Nil(t, s.TokenExpiresAt)
	assert.True(t, s.Authenticated(clock.now))
}

func TestService_Login_Errors(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		clientErr error
		want      error
	}{
		{"empty email", "  ", "secret", nil, ErrInvalidInput},
		{"empty password", "ivan@example.com", "", nil, ErrInvalidInput},
		{"wrong password", "ivan@example.com", "bad", bookingapi.ErrUnauthenticated, ErrInvalidCredentials},
		{"rejected", "ivan@example.com", "bad", bookingapi.ErrRejected, ErrInvalidCredentials},
		{"network", "ivan@example.com", "secret", bookingapi.ErrNetwork, ErrNetwork},
		{"unexpected", "ivan@example.com", "secret", bookingapi.ErrInvalidResponse, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeAuthClient{err: tt.clientErr}
			svc, _ := newTestService(t, client)

			_, err := svc.Login(context.Background(), "", tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_LogoutKeepsTheme(t *testing.T) {
	svc, clock := newTestService(t, &fakeAuthClient{token: "opaque"})
	ctx := context.Background()

	s, err := svc.Login(ctx, "", "ivan@example.com", "secret")
	require.NoError(t, err)
	s, err = svc.ToggleTheme(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, s.Theme)

	s, err = svc.Logout(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, s.Authenticated(clock.now))
	assert.Equal(t, domain.ThemeDark, s.Theme)

	s, err = svc.ToggleTheme(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, s.Theme)
}

func TestService_LoadDropsExpiredToken(t *testing.T) {
	client := &fakeAuthClient{}
	svc, clock := newTestService(t, client)
	ctx := context.Background()
	client.token = signedToken(t, clock.now.Add(time.Minute))

	s, err := svc.Login(ctx, "", "ivan@example.com", "secret")
	require.NoError(t, err)

	var kinds []EventKind
	svc.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	clock.now = clock.now.Add(2 * time.Minute)
	s, err = svc.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, s.HasToken())
	assert.Equal(t, []EventKind{EventLoggedOut}, kinds)
}

func TestService_StoreFailure(t *testing.T) {
	svc := NewService(failingStore{}, &fakeAuthClient{}, logger.NewNop())

	_, err := svc.Load(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Register(t *testing.T) {
	client := &fakeAuthClient{token: "opaque"}
	svc, clock := newTestService(t, client)
	ctx := context.Background()

	s, err := svc.Register(ctx, "", "ivan", "ivan@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, s.Authenticated(clock.now))
	assert.Equal(t, []string{"ivan@example.com"}, client.registered)
	assert.Equal(t, 1, client.calls)

	_, err = svc.Register(ctx, "", "", "ivan@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	client.registerErr = bookingapi.ErrRejected
	_, err = svc.Register(ctx, "", "ivan", "ivan@example.com", "secret")
	assert.ErrorIs(t, err, ErrRegistrationRejected)
}
