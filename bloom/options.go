package bloom

// Options carries the optional settings of a Filter.
type Options struct {
	// Hasher reduces keys to content hashes. Defaults to Murmur3.
	Hasher Hasher
	// Family overrides the DefaultFamily that New would build. Other
	// constructors take the family as an argument and ignore this field.
	Family Family
}

// DefaultOptions are applied before any Option.
var DefaultOptions = Options{
	Hasher: Murmur3,
}

type Option func(*Options)

func WithHasher(h Hasher) Option {
	return func(o *Options) {
		o.Hasher = h
	}
}

func WithFamily(f Family) Option {
	return func(o *Options) {
		o.Family = f
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
