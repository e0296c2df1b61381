package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors.
//
//   - ErrNotFound: the view does not exist (never created, cancelled or evicted)
//   - ErrExpired: the view outlived its TTL
//   - ErrConflict: a compare-and-swap lost against a concurrent writer
//   - ErrUnavailable: the backing store cannot be reached
//
// Validation failures belong in pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
