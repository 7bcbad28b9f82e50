// Package session owns the client's authenticated identity: a {token, user}
// pair held in memory and written through to the persisted metadata area.
//
// The pair moves atomically: sign-in writes both keys in one transaction,
// sign-out clears both in one transaction. A session is either fully present
// or fully absent.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gobarber-cli/internal/client/api"
	"gobarber-cli/internal/client/models"
	"gobarber-cli/internal/client/repositories/metadata"
	"gobarber-cli/internal/dbx"
	"gobarber-cli/internal/logging"
)

// Persisted keys. Both present <=> authenticated.
const (
	keyToken = "token"
	keyUser  = "user"
)

// State distinguishes "not restored yet" from "restored, signed out":
// callers must not treat a store that has not run Restore as signed out.
type State int

const (
	StateLoading State = iota
	StateSignedOut
	StateSignedIn
)

// Store is the single holder of the session, shared by every screen.
// All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	client api.Client
	log    logging.Logger

	state State
	cur   models.Session
}

// NewStore builds a store over the local database. The API client is only
// used by SignIn; Restore, SignOut and UpdateUser never touch the network.
func NewStore(db *sql.DB, client api.Client, log logging.Logger) *Store {
	return &Store{db: db, client: client, log: log, state: StateLoading}
}

func (s *Store) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Restore loads a previously persisted session. It runs once at startup.
// A partial pair (one key missing) or an expired token counts as no session
// and the stale keys are cleared. No network call is made.
func (s *Store) Restore(ctx context.Context) error {
	repo := s.repo(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}

	if len(token) == 0 || len(rawUser) == 0 {
		if len(token) != 0 || len(rawUser) != 0 {
			// Half a pair should not happen; drop it.
			_ = s.clearKeys(ctx)
		}
		s.setAbsent()
		return nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.log.Warn(ctx, "discarding undecodable persisted user", "err", err)
		_ = s.clearKeys(ctx)
		s.setAbsent()
		return nil
	}

	sess := models.Session{Token: string(token), User: user}
	if !sess.Valid() || tokenExpired(sess.Token) {
		s.log.Info(ctx, "discarding expired session", "user", user.Email)
		_ = s.clearKeys(ctx)
		s.setAbsent()
		return nil
	}

	s.mu.Lock()
	s.cur = sess
	s.state = StateSignedIn
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "user", user.Email)
	return nil
}

// SignIn authenticates against the sessions endpoint and persists the
// resulting pair. On failure the previous session, if any, is untouched.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	sess, err := s.client.CreateSession(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if !sess.Valid() {
		return fmt.Errorf("sign in: server returned an incomplete session")
	}

	if err := s.persist(ctx, sess); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	s.mu.Lock()
	s.cur = sess
	s.state = StateSignedIn
	s.mu.Unlock()

	s.log.Info(ctx, "signed in", "user", sess.User.Email)
	return nil
}

// SignOut clears the persisted pair and drops the in-memory session.
// Calling it while signed out is a no-op.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.clearKeys(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.setAbsent()
	s.log.Info(ctx, "signed out")
	return nil
}

// UpdateUser replaces the session's user record in memory and on disk.
// The token is re-persisted alongside so the pair stays together. No network.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSignedIn {
		return fmt.Errorf("update user: no active session")
	}

	next := models.Session{Token: s.cur.Token, User: user}
	if err := s.persist(ctx, next); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.cur = next
	return nil
}

// Current returns the session and whether one is present.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur, s.state == StateSignedIn
}

// State reports the store's lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

func (s *Store) setAbsent() {
	s.mu.Lock()
	s.cur = models.Session{}
	s.state = StateSignedOut
	s.mu.Unlock()
}

// persist writes both keys in one transaction.
func (s *Store) persist(ctx context.Context, sess models.Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, rawUser)
	})
}

// clearKeys removes both keys in one transaction.
func (s *Store) clearKeys(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUser)
	})
}

// tokenExpired reports whether tok is a JWT whose exp claim is in the past.
// The token is treated as opaque when it does not parse as a JWT, and kept.
// The signature is not checked: the client has no verification key, and the
// server re-checks every request anyway.
func tokenExpired(tok string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
