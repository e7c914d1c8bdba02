// Package session holds the authenticated identity for the active profile
// and persists it across restarts.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rmedina/stockroom-backend/internal/users"
	"github.com/rmedina/stockroom-backend/pkg/enums"
	"github.com/rmedina/stockroom-backend/pkg/kvstate"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/models"
)

// SlotKey is the persisted slot holding the current identity.
const SlotKey = "inventoryUser"

// Store owns the current authenticated identity. Operations run to
// completion under the lock and persist synchronously before returning.
type Store struct {
	mu        sync.Mutex
	directory *users.Directory
	slots     kvstate.Store
	logg      *logger.Logger
	current   *models.User
}

// NewStore builds the session store and restores any persisted identity.
// A restored identity is re-validated against the directory: stale or
// malformed payloads are discarded and the slot cleared rather than trusted.
func NewStore(ctx context.Context, directory *users.Directory, slots kvstate.Store, logg *logger.Logger) (*Store, error) {
	if directory == nil {
		return nil, fmt.Errorf("user directory required")
	}
	if slots == nil {
		return nil, fmt.Errorf("slot store required")
	}

	s := &Store{
		directory: directory,
		slots:     slots,
		logg:      logg,
	}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) restore(ctx context.Context) error {
	payload, ok, err := s.slots.Get(ctx, SlotKey)
	if err != nil {
		return fmt.Errorf("loading session slot: %w", err)
	}
	if !ok {
		return nil
	}

	var saved models.User
	if err := json.Unmarshal(payload, &saved); err != nil || saved.ID == "" {
		if s.logg != nil {
			s.logg.Warn(ctx, "session.restore.malformed_slot_discarded")
		}
		return s.slots.Delete(ctx, SlotKey)
	}

	// The slot is not trusted on its own: the identity must still resolve
	// in the directory, and the directory record wins over the payload.
	user, found := s.directory.ByID(saved.ID)
	if !found || user.Username != saved.Username {
		if s.logg != nil {
			s.logg.Warn(ctx, "session.restore.stale_identity_discarded")
		}
		return s.slots.Delete(ctx, SlotKey)
	}

	s.current = &user
	return nil
}

// Login authenticates against the directory with exact, case-sensitive
// matching. On a match the identity is stored and persisted; on a miss the
// store is left unchanged. The boolean reports the credential outcome; the
// error reports slot-store failures only.
func (s *Store) Login(ctx context.Context, username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, found := s.directory.ByUsername(username)
	if !found || user.Password != password {
		return false, nil
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return false, fmt.Errorf("encoding session: %w", err)
	}
	if err := s.slots.Put(ctx, SlotKey, payload); err != nil {
		return false, fmt.Errorf("persisting session: %w", err)
	}

	s.current = &user
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID), "session.login")
	}
	return true, nil
}

// Logout clears the identity and removes the persisted slot.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.slots.Delete(ctx, SlotKey); err != nil {
		return fmt.Errorf("clearing session slot: %w", err)
	}
	if s.logg != nil {
		s.logg.Info(ctx, "session.logout")
	}
	return nil
}

// Current returns the authenticated identity if one is present.
func (s *Store) Current() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// IsAuthenticated reports whether an identity is present.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// IsAdmin reports whether the current identity carries the admin role.
func (s *Store) IsAdmin() bool {
	user, ok := s.Current()
	return ok && user.Role == enums.RoleAdmin
}
