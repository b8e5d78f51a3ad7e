// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

// Package config stores the user's fan registry: named handset identities
// plus application preferences. Identities live here so a lost shell history
// never means re-pairing every fan in the house.
package config

import (
	"time"

	"github.com/skybreeze/fanctl/pkg/tr198a"
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int             `yaml:"version"`
	Fans        map[string]*Fan `yaml:"fans,omitempty"` // keyed by user-chosen name
	Preferences *Preferences    `yaml:"preferences,omitempty"`
}

// Fan is one paired ceiling fan: the handset identity its receiver learned
// plus user metadata.
type Fan struct {
	ID       string    `yaml:"id"`                  // handset identity, "0x15A9" form
	Notes    string    `yaml:"notes,omitempty"`     // free-form user notes
	PairedAt time.Time `yaml:"paired_at,omitempty"` // when the pair command was last sent
}

// HandsetID parses the stored identity string.
func (f *Fan) HandsetID() (tr198a.HandsetID, error) {
	return tr198a.ParseID(f.ID)
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultBridge   string `yaml:"default_bridge,omitempty"` // ws:// or wss:// URL used when no -u flag is given
	DefaultPort     string `yaml:"default_port,omitempty"`   // serial device used when no -p flag is given
	DiscoverTimeout int    `yaml:"discover_timeout"`         // mDNS discovery timeout in seconds
}

// NewRegistry creates a Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Fans:    make(map[string]*Fan),
		Preferences: &Preferences{
			DiscoverTimeout: 5,
		},
	}
}

// GetFan retrieves a fan by name. Returns nil if the name is unknown.
func (r *Registry) GetFan(name string) *Fan {
	return r.Fans[name]
}

// SetFan adds or replaces a named fan entry.
func (r *Registry) SetFan(name string, id tr198a.HandsetID, notes string) *Fan {
	if r.Fans == nil {
		r.Fans = make(map[string]*Fan)
	}
	fan := &Fan{ID: id.String(), Notes: notes}
	r.Fans[name] = fan
	return fan
}

// RemoveFan deletes a named fan entry. Returns false if the name is unknown.
func (r *Registry) RemoveFan(name string) bool {
	if _, ok := r.Fans[name]; !ok {
		return false
	}
	delete(r.Fans, name)
	return true
}

// MarkPaired records that a pairing broadcast was just sent for a fan.
func (r *Registry) MarkPaired(name string) {
	if fan, ok := r.Fans[name]; ok {
		fan.PairedAt = time.Now()
	}
}
