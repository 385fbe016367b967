package productdb

import (
	"errors"
	"time"
)

// Option is a functional option for configuring a [Client].
type Option func(*Options)

// Options holds the configuration for a [Client]. Use [Option] functions
// (such as [WithDefaultLimit] or [WithAPI]) to customise the defaults.
type Options struct {
	defaultLimit int32
	dynamoDBAPI  API
	clock        func() time.Time
}

func newOptions() *Options {
	return &Options{
		defaultLimit: 100,
		clock:        time.Now,
	}
}

func (o *Options) validate() error {
	if o.defaultLimit <= 0 {
		return errors.New("default scan limit must be greater than zero")
	}

	return nil
}

// WithDefaultLimit sets the page size used by [Client.ListProducts] when
// the caller does not supply a limit. The default is 100. The limit must be
// greater than zero.
func WithDefaultLimit(limit int32) Option {
	return func(o *Options) {
		o.defaultLimit = limit
	}
}

// WithAPI sets a custom [API] implementation. This is useful when a custom
// DynamoDB configuration is required, or for injecting mocks in tests.
func WithAPI(api API) Option {
	return func(o *Options) {
		o.dynamoDBAPI = api
	}
}

// WithClock sets a custom clock function used when naming backups.
// Defaults to [time.Now]. This is useful for controlling time in tests.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		o.clock = clock
	}
}
