// Package users exposes read-only lookups over the bundled user directory.
package users

import "github.com/rmedina/stockroom-backend/pkg/models"

// Directory is the static identity source the session store authenticates
// against. Lookup misses are boolean, never errors.
type Directory struct {
	byID       map[string]models.User
	byUsername map[string]models.User
}

func NewDirectory(entries []models.User) *Directory {
	d := &Directory{
		byID:       make(map[string]models.User, len(entries)),
		byUsername: make(map[string]models.User, len(entries)),
	}
	for _, user := range entries {
		d.byID[user.ID] = user
		d.byUsername[user.Username] = user
	}
	return d
}

// ByID returns the user with the given identifier.
func (d *Directory) ByID(id string) (models.User, bool) {
	user, ok := d.byID[id]
	return user, ok
}

// ByUsername returns the user with the given username. Matching is exact
// and case-sensitive.
func (d *Directory) ByUsername(username string) (models.User, bool) {
	user, ok := d.byUsername[username]
	return user, ok
}
