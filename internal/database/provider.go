// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"sync"
	"sync/atomic"
)

// Provider memoizes the process-wide DB handle. The first call to DB opens
// the connection; later calls return the same handle (or the same error)
// without touching the engine again.
type Provider struct {
	open   func() (*DB, error)
	opened atomic.Bool
}

// NewProvider returns a Provider that opens the DB with opts on first use.
func NewProvider(opts Options) *Provider {
	return newProviderWith(func() (*DB, error) { return New(opts) })
}

func newProviderWith(open func() (*DB, error)) *Provider {
	p := &Provider{}
	p.open = sync.OnceValues(func() (*DB, error) {
		db, err := open()
		p.opened.Store(err == nil)
		return db, err
	})
	return p
}

// DB returns the shared handle, opening it on the first call.
func (p *Provider) DB() (*DB, error) {
	return p.open()
}

// Close closes the handle if it was opened.
func (p *Provider) Close() error {
	if !p.opened.Load() {
		return nil
	}
	db, _ := p.open()
	return db.Close()
}
