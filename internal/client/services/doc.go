// Package services contains the application services of the Tempero client.
//
// AuthService runs registration, login and logout on top of the REST client
// and the session store. PostService keeps the last fetched post list and
// applies create, edit and delete to it once the server has accepted them.
//
// Both services validate input before any request and reject a second
// submission while one is in flight with ErrBusy.
package services

import (
	"errors"
	"sync/atomic"
)

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("another request is in progress")

// busy is a single-flight guard for form submissions.
type busy struct{ flag atomic.Bool }

func (b *busy) acquire() error {
	if !b.flag.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (b *busy) release() { b.flag.Store(false) }
