package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/homefront-community/homefront/internal/logger"
	"github.com/homefront-community/homefront/models"
)

// State is the reactive view consumers observe. Loading is true only while
// the initial session validation is in flight; User is nil unless the
// session is authenticated.
type State struct {
	User    *models.User
	Loading bool
}

// Authenticated reports whether the state carries a user.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Manager owns the authentication token and the current-user identity.
// All methods are safe for concurrent use.
type Manager struct {
	gateway Gateway
	tokens  TokenStore
	log     *logger.Logger

	bootstrapOnce sync.Once

	mu      sync.RWMutex
	token   string
	user    *models.User
	loading bool
	subs    map[int]chan State
	nextSub int
}

// NewManager constructs a Manager in the Unknown state (loading=true).
// Callers must invoke Bootstrap to settle into Anonymous or Authenticated.
func NewManager(gateway Gateway, tokens TokenStore, log *logger.Logger) *Manager {
	return &Manager{
		gateway: gateway,
		tokens:  tokens,
		log:     log,
		loading: true,
		subs:    make(map[int]chan State),
	}
}

// Token returns the bearer token currently held by the session, or "" when
// anonymous. The composition root installs this accessor as the transport
// layer's token source; no other component reads the credential.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// State returns the current reactive view.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	return State{User: m.user, Loading: m.loading}
}

// Subscribe registers a consumer for state changes. The returned cancel
// function must be called when the consumer goes away. Slow consumers miss
// intermediate states rather than blocking the manager.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan State, 8)
	m.subs[id] = ch
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (m *Manager) notify(state State) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// apply performs a state mutation and notifies subscribers, unless ctx has
// been cancelled — in which case the consumer is gone and the update is
// suppressed entirely.
func (m *Manager) apply(ctx context.Context, mutate func()) {
	if ctx.Err() != nil {
		m.log.Debug().Msg("session state update suppressed after cancellation")
		return
	}

	m.mu.Lock()
	mutate()
	state := m.stateLocked()
	m.mu.Unlock()

	m.notify(state)
}

func (m *Manager) setToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// Bootstrap reconciles startup state exactly once per manager: no stored
// credential settles Anonymous without any network traffic; a stored
// credential is validated against the backend and either restores the
// session or is discarded.
//
// Cancelling ctx mid-flight suppresses all observable effects: no state
// update is published and the stored credential is left untouched for the
// next start.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.bootstrapOnce.Do(func() {
		m.bootstrap(ctx)
	})
}

func (m *Manager) bootstrap(ctx context.Context) {
	token, err := m.tokens.LoadToken()
	if err != nil {
		m.log.Warn().Err(err).Msg("reading persisted token failed")
	}

	if token == "" {
		m.apply(ctx, func() {
			m.loading = false
		})
		return
	}

	m.setToken(token)
	if subject, expiry, ok := (models.Token{AccessToken: token}).Claims(); ok {
		m.log.Debug().Str("sub", subject).Time("exp", expiry).Msg("validating persisted token")
	}

	payload, err := m.fetchCurrentUser(ctx)
	if ctx.Err() != nil {
		// The consumer went away; the in-flight result is discarded and the
		// credential stays put for the next start.
		return
	}
	if err != nil {
		m.log.Warn().Err(err).Msg("persisted token rejected, discarding")
		m.discardToken()
		m.apply(ctx, func() {
			m.user = nil
			m.loading = false
		})
		return
	}

	user := payload.Normalize()
	m.apply(ctx, func() {
		m.user = &user
		m.loading = false
	})
}

// Login exchanges credentials for a bearer token, persists it, validates it
// with a current-user fetch, and publishes the Authenticated state. A
// rejected exchange propagates with nothing persisted and state unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) (models.User, error) {
	token, err := m.gateway.Login(ctx, email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrLoginOnServer, err)
	}

	if err = m.tokens.SaveToken(token.AccessToken); err != nil {
		// The session still works in-memory; it just will not survive a
		// restart.
		m.log.Warn().Err(err).Msg("persisting token failed")
	}
	m.setToken(token.AccessToken)

	payload, err := m.fetchCurrentUser(ctx)
	if err != nil {
		m.discardToken()
		return models.User{}, fmt.Errorf("validate login: %w", err)
	}

	user := payload.Normalize()
	m.apply(ctx, func() {
		m.user = &user
		m.loading = false
	})

	m.log.Info().Int64("user_id", user.ID).Bool("is_admin", user.IsAdmin).Msg("logged in")
	return user, nil
}

// Logout clears the session locally. It always succeeds and performs no
// network round trip; a failure to remove the persisted credential is
// logged and otherwise ignored.
func (m *Manager) Logout() {
	if err := m.tokens.DeleteToken(); err != nil {
		m.log.Warn().Err(err).Msg("removing persisted token failed")
	}

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.loading = false
	state := m.stateLocked()
	m.mu.Unlock()

	m.notify(state)
	m.log.Info().Msg("logged out")
}

// Register creates an account. Session state is never mutated: the caller
// must still log in. Failures propagate for user-visible messaging.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := m.gateway.Register(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", ErrRegisterOnServer, err)
	}
	return nil
}

// fetchCurrentUser performs the cache-respecting current-user fetch, with a
// single explicitly cache-busting retry when the first attempt yields a
// hollow body.
func (m *Manager) fetchCurrentUser(ctx context.Context) (models.UserPayload, error) {
	payload, err := m.gateway.CurrentUser(ctx, false)
	if err != nil {
		return models.UserPayload{}, err
	}
	if !payload.Empty() {
		return payload, nil
	}

	m.log.Debug().Msg("current-user payload empty, retrying with cache busting")
	payload, err = m.gateway.CurrentUser(ctx, true)
	if err != nil {
		return models.UserPayload{}, err
	}
	if payload.Empty() {
		return models.UserPayload{}, ErrEmptyUserPayload
	}
	return payload, nil
}

func (m *Manager) discardToken() {
	if err := m.tokens.DeleteToken(); err != nil {
		m.log.Warn().Err(err).Msg("removing persisted token failed")
	}
	m.setToken("")
}
