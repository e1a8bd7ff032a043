package domain

import "errors"

var (
	ErrUnknownIntent         = errors.New("unknown reminder intent")
	ErrWakeNotFound          = errors.New("scheduled wake not found")
	ErrLockNotAcquired       = errors.New("run lock not acquired")
	ErrInvalidInstallationID = errors.New("invalid installation id")
	ErrInvalidPreferences    = errors.New("invalid preferences")
	ErrInvalidSession        = errors.New("invalid workout session")
)
