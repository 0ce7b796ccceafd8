package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/funcsync/pkg/constants"
	"github.com/agentstation/funcsync/pkg/errors"
	"github.com/agentstation/funcsync/pkg/record"
	"github.com/agentstation/funcsync/pkg/streams"
)

// options configures a pipeline.
type options struct {
	flavours    []streams.Flavour
	levels      []streams.Level
	layout      streams.Layout
	extractor   record.Extractor
	concurrency int
	dryRun      bool
	logger      *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		flavours:    streams.Flavours(constants.DefaultFlavours),
		levels:      streams.Levels(constants.DefaultLevels),
		layout:      streams.DefaultLayout("."),
		concurrency: constants.DefaultConcurrency,
	}
}

// Option is a function that configures a Pipeline.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns pipeline options with default values.
func newOptions(opts ...Option) (*options, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.extractor == nil {
		ex, err := record.NewJSONField(constants.DefaultKeyField)
		if err != nil {
			return nil, err
		}
		o.extractor = ex
	}
	return o, nil
}

// WithStreams sets the two enumerations whose product names the streams.
func WithStreams(flavours []streams.Flavour, levels []streams.Level) Option {
	return func(o *options) error {
		if len(flavours) == 0 {
			return &errors.ValidationError{Field: "flavours", Message: "cannot be empty"}
		}
		if len(levels) == 0 {
			return &errors.ValidationError{Field: "levels", Message: "cannot be empty"}
		}
		o.flavours = flavours
		o.levels = levels
		return nil
	}
}

// WithLayout sets how stream identities map to files.
func WithLayout(layout streams.Layout) Option {
	return func(o *options) error {
		if err := layout.Validate(); err != nil {
			return err
		}
		o.layout = layout
		return nil
	}
}

// WithKeyField extracts keys from the given JSON field (dotted paths allowed).
func WithKeyField(field string) Option {
	return func(o *options) error {
		ex, err := record.NewJSONField(field)
		if err != nil {
			return err
		}
		o.extractor = ex
		return nil
	}
}

// WithExtractor sets a custom key extractor.
func WithExtractor(ex record.Extractor) Option {
	return func(o *options) error {
		if ex == nil {
			return &errors.ValidationError{Field: "extractor", Message: "cannot be nil"}
		}
		o.extractor = ex
		return nil
	}
}

// WithConcurrency bounds how many streams are processed at once.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxConcurrency {
			return &errors.ValidationError{
				Field:   "concurrency",
				Value:   n,
				Message: fmt.Sprintf("must be between 1 and %d", constants.MaxConcurrency),
			}
		}
		o.concurrency = n
		return nil
	}
}

// WithDryRun computes the selection without writing any output.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
