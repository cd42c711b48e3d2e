package core

import "errors"

var (
	ErrNoTree         = errors.New("session has no family tree")
	ErrNoMatches      = errors.New("session has no DNA matches")
	ErrNoGraph        = errors.New("no graph database configured")
	ErrNoLLM          = errors.New("no LLM provider configured")
	ErrPersonNotFound = errors.New("individual not found in tree")
)
