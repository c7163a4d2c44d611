package domain

import "errors"

var (
	// ErrValidation wraps a missing or malformed field on question creation.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyPool is returned when a sampling operation has no questions to draw from.
	ErrEmptyPool = errors.New("no questions available in the selected units")
	// ErrEmptyUsername is returned when a challenge is started without a name.
	ErrEmptyUsername = errors.New("username is required")
	// ErrQuizActive indicates a quiz session already holds the mode gate.
	ErrQuizActive = errors.New("a quiz session is already active")
	// ErrChallengeActive indicates a timed challenge already holds the mode gate.
	ErrChallengeActive = errors.New("a timed challenge is already active")
	// ErrNoSession is returned when answering or submitting without an active session.
	ErrNoSession = errors.New("no active session")
	// ErrQuestionNotFound indicates an unknown question id.
	ErrQuestionNotFound = errors.New("question not found")
)
