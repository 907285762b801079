package text

// Options configures the text writer/reader.
type Options struct {
	exportTimestamp bool
	preserveJunk    bool
}

// Option configures Options.
type Option func(*Options)

// WithExportTimestamp writes a timestamp line for every record whose
// Timestamp field is non-zero. The reader accepts such a line whether or
// not this option is set.
func WithExportTimestamp() Option {
	return func(o *Options) { o.exportTimestamp = true }
}

// WithPreserveJunk disables Filter-field masking, keeping whatever bits
// the source actually stored instead of clearing ones the schema
// considers junk.
func WithPreserveJunk() Option {
	return func(o *Options) { o.preserveJunk = true }
}

func newOptions(opts []Option) *Options {
	o := &Options{}
	for _, apply := range opts {
		apply(o)
	}
	return o
}
