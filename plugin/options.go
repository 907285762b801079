package plugin

// Options configures the binary decoder/encoder, following the
// functional-options pattern used throughout this module's packages.
type Options struct {
	preserveRecordOrder bool
}

// Option configures Options.
type Option func(*Options)

// WithPreserveRecordOrder disables sorting CellPersistentChildren and
// CellTemporaryChildren groups by form id, reproducing records in their
// original on-disk order instead.
func WithPreserveRecordOrder() Option {
	return func(o *Options) { o.preserveRecordOrder = true }
}

func newOptions(opts []Option) *Options {
	o := &Options{}
	for _, apply := range opts {
		apply(o)
	}
	return o
}
