package webtop

import "github.com/mwantia/webtop/data"

// Re-exported sentinel errors so callers of the facade can branch with
// errors.Is without importing the data package.
var (
	ErrNotExist      = data.ErrNotExist
	ErrExist         = data.ErrExist
	ErrIsDirectory   = data.ErrIsDirectory
	ErrNotDirectory  = data.ErrNotDirectory
	ErrPermission    = data.ErrPermission
	ErrCycle         = data.ErrCycle
	ErrInvalidPath   = data.ErrInvalidPath
	ErrInvalidName   = data.ErrInvalidName
	ErrInvalidMode   = data.ErrInvalidMode
	ErrUserNotFound  = data.ErrUserNotFound
	ErrUserExists    = data.ErrUserExists
	ErrGroupNotFound = data.ErrGroupNotFound
	ErrAuthFailed    = data.ErrAuthFailed
)
