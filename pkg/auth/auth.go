// Package auth wraps the site's authentication provider: record-access
// sign-in/sign-up against the document store's database, session
// invalidation, and a change-notification subscription the page uses to
// swap its navigation and (re)run save-state synchronization.
package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/newteatrade/saves/pkg/models"
)

// User is the authenticated identity delivered to subscribers. A nil *User
// means "logged out".
type User struct {
	// ID is the stable record user ID all saves are scoped under.
	ID models.UserID
	// Name is the sign-in name shown in the navigation.
	Name string
	// Session identifies this client session in logs.
	Session uuid.UUID
}

// Config names the record-access method used for sign-in and sign-up.
type Config struct {
	Namespace string
	Database  string
	// Access is the DEFINE ACCESS ... TYPE RECORD method name.
	Access string
}

// Provider tracks the current user over a shared store connection and
// notifies subscribers on every change.
type Provider struct {
	db  *surrealdb.DB
	cfg Config
	log zerolog.Logger

	mu      sync.Mutex
	current *User
	subs    map[int]func(*User)
	nextSub int
}

// NewProvider builds a provider over an already-connected DB. The same
// connection backs the store, so a successful sign-in scopes subsequent
// store calls to the user's session.
func NewProvider(db *surrealdb.DB, cfg Config, log zerolog.Logger) *Provider {
	return &Provider{
		db:   db,
		cfg:  cfg,
		log:  log.With().Str("component", "auth").Logger(),
		subs: make(map[int]func(*User)),
	}
}

// OnChange registers fn to run on every auth state change. It fires
// immediately with the current state, then on each sign-in and sign-out.
// The returned function unsubscribes.
func (p *Provider) OnChange(fn func(*User)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(current)
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Current returns the signed-in user, or nil.
func (p *Provider) Current() *User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// SignIn authenticates an existing record user. On failure the error is
// returned for inline display; the auth state is left unchanged.
func (p *Provider) SignIn(ctx context.Context, username, password string) (*User, error) {
	token, err := p.db.SignIn(ctx, surrealdb.Auth{
		Namespace: p.cfg.Namespace,
		Database:  p.cfg.Database,
		Access:    p.cfg.Access,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return p.establish(token, username)
}

// SignUp creates a new record user and signs them in.
func (p *Provider) SignUp(ctx context.Context, username, password string) (*User, error) {
	token, err := p.db.SignUp(ctx, surrealdb.Auth{
		Namespace: p.cfg.Namespace,
		Database:  p.cfg.Database,
		Access:    p.cfg.Access,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return p.establish(token, username)
}

// SignOut invalidates the session and notifies subscribers with nil.
func (p *Provider) SignOut(ctx context.Context) error {
	if err := p.db.Invalidate(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	p.setCurrent(nil)
	return nil
}

func (p *Provider) establish(token, username string) (*User, error) {
	id, err := UserIDFromToken(token)
	if err != nil {
		return nil, err
	}
	user := &User{ID: id, Name: username, Session: uuid.New()}
	p.log.Info().Str("user", id.String()).Stringer("session", user.Session).Msg("signed in")
	p.setCurrent(user)
	return user, nil
}

func (p *Provider) setCurrent(user *User) {
	p.mu.Lock()
	p.current = user
	subs := make([]func(*User), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
}

// UserIDFromToken extracts the record user ID from the session token the
// server issued. The token is parsed without signature verification:
// verification is the server's concern, the client only needs the identity
// claim to scope its store reads.
func UserIDFromToken(token string) (models.UserID, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.UserID{}, fmt.Errorf("parse session token: %w", err)
	}

	raw, ok := claims["ID"].(string)
	if !ok || raw == "" {
		return models.UserID{}, fmt.Errorf("session token has no ID claim")
	}

	// The claim carries a full record ID like `user:xyz` or `user:⟨xyz⟩`.
	id := strings.TrimPrefix(raw, "user:")
	id = strings.TrimPrefix(id, "⟨")
	id = strings.TrimSuffix(id, "⟩")
	return models.NewUserID(id)
}
