package webtop

import (
	"github.com/mwantia/webtop/log"
	"github.com/mwantia/webtop/storage"
)

type FileSystemOptions struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	JSONLog       bool
	Logger        *log.Logger

	Store       storage.Backend
	StorePrefix string

	Username string
}

type FileSystemOption func(*FileSystemOptions) error

func newDefaultFileSystemOptions() *FileSystemOptions {
	return &FileSystemOptions{
		LogLevel:    log.Info,
		StorePrefix: "webtop",
		Username:    "user",
	}
}

func WithLogLevel(logLevel log.LogLevel) FileSystemOption {
	return func(opts *FileSystemOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithLogFile(logFile string) FileSystemOption {
	return func(opts *FileSystemOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithoutTerminalLog() FileSystemOption {
	return func(opts *FileSystemOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

// WithJSONLog switches log output to one JSON object per line.
func WithJSONLog() FileSystemOption {
	return func(opts *FileSystemOptions) error {
		opts.JSONLog = true
		return nil
	}
}

// WithLogger replaces the logger entirely; the log level, file and
// terminal options are ignored when set.
func WithLogger(logger *log.Logger) FileSystemOption {
	return func(opts *FileSystemOptions) error {
		opts.Logger = logger
		return nil
	}
}

// WithStore selects the persistence backend. Defaults to the in-memory
// ephemeral store when unset.
func WithStore(store storage.Backend) FileSystemOption {
	return func(opts *FileSystemOptions) error {
		opts.Store = store
		return nil
	}
}

// WithStorePrefix changes the key prefix used for every persisted entry.
func WithStorePrefix(prefix string) FileSystemOption {
	return func(opts *FileSystemOptions) error {
		opts.StorePrefix = prefix
		return nil
	}
}

// WithUser selects which user the session starts as.
func WithUser(username string) FileSystemOption {
	return func(opts *FileSystemOptions) error {
		opts.Username = username
		return nil
	}
}
