package data

import "errors"

// Standard errors shared across the desktop core.
var (
	// Path and name validation errors
	ErrInvalidPath = errors.New("webtop: invalid path")
	ErrInvalidName = errors.New("webtop: invalid name")

	// Tree operation errors
	ErrNotExist     = errors.New("webtop: file does not exist")
	ErrExist        = errors.New("webtop: file already exists")
	ErrIsDirectory  = errors.New("webtop: is a directory")
	ErrNotDirectory = errors.New("webtop: not a directory")
	ErrPermission   = errors.New("webtop: permission denied")
	ErrCycle        = errors.New("webtop: cannot move a node into its own subtree")

	// Permission mode errors
	ErrInvalidMode = errors.New("webtop: invalid permission mode")

	// User database errors
	ErrUserNotFound    = errors.New("webtop: user does not exist")
	ErrUserExists      = errors.New("webtop: user already exists")
	ErrGroupNotFound   = errors.New("webtop: group does not exist")
	ErrAuthFailed      = errors.New("webtop: authentication failed")
	ErrMalformedRecord = errors.New("webtop: malformed database record")

	// Storage errors
	ErrStoreClosed = errors.New("webtop: store is closed")
)
