// Package settings holds the connection settings shown by the simulated terminal.
//
// Live settings are only changed by saving a staged copy: the editor is opened
// from the live values, edits go to the staged copy, and cancelling discards
// them. Values are not validated; whatever is staged is saved as-is.
package settings

import (
	"fmt"

	"github.com/quocvuong92/remote-hub/internal/constants"
)

// Connection identifies the (pretend) remote endpoint.
type Connection struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
}

// DefaultConnection returns the built-in connection settings
func DefaultConnection() Connection {
	return Connection{
		Host:     constants.DefaultHost,
		Port:     constants.DefaultPort,
		Username: constants.DefaultUsername,
	}
}

// Address formats the connection as username@host:port
func (c Connection) Address() string {
	return fmt.Sprintf("%s@%s:%d", c.Username, c.Host, c.Port)
}

// Prompt returns the terminal prompt for this connection
func (c Connection) Prompt() string {
	return fmt.Sprintf("%s@%s:~$", c.Username, c.Host)
}

// Store holds the live settings and, while the editor is open, a staged copy.
// Store is a value type; operations return the updated store.
type Store struct {
	live   Connection
	staged *Connection
}

// NewStore creates a store with the given live settings and a closed editor.
func NewStore(live Connection) Store {
	return Store{live: live}
}

// Live returns the settings currently in effect.
func (s Store) Live() Connection {
	return s.live
}

// Staged returns the staged copy and whether the editor is open.
func (s Store) Staged() (Connection, bool) {
	if s.staged == nil {
		return Connection{}, false
	}
	return *s.staged, true
}

// IsOpen reports whether the editor is open.
func (s Store) IsOpen() bool {
	return s.staged != nil
}

// Open seeds the staged copy from the live settings. Opening an already open
// editor reseeds it.
func (s Store) Open() Store {
	staged := s.live
	return Store{live: s.live, staged: &staged}
}

// Stage replaces the staged copy. It is a no-op when the editor is closed.
func (s Store) Stage(c Connection) (Store, bool) {
	if s.staged == nil {
		return s, false
	}
	return Store{live: s.live, staged: &c}, true
}

// Edit applies fn to a copy of the staged settings. It is a no-op when the
// editor is closed.
func (s Store) Edit(fn func(c *Connection)) (Store, bool) {
	if s.staged == nil {
		return s, false
	}
	staged := *s.staged
	fn(&staged)
	return Store{live: s.live, staged: &staged}, true
}

// Save copies the staged settings to live and closes the editor. saved is
// false when the editor was not open.
func (s Store) Save() (next Store, saved bool) {
	if s.staged == nil {
		return s, false
	}
	return Store{live: *s.staged}, true
}

// Cancel discards staged edits and closes the editor.
func (s Store) Cancel() Store {
	return Store{live: s.live}
}
