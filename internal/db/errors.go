package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Credential errors
	ErrCredentialNotFound = errors.New("credential not found")

	// Tweet errors
	ErrTweetNotFound = errors.New("tweet not found")

	// Reply errors
	ErrReplyNotFound = errors.New("reply not found")
)
