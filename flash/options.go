package flash

// Options holds the optional Region behavior.
type Options struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// ProgressCallback is called after each programmed row during
	// multi-row write and erase operations (optional)
	ProgressCallback ProgressCallback

	// VerifyAfterWrite enables read-back checksum verification of each
	// row after it is programmed
	VerifyAfterWrite bool
}

// defaultOptions returns the default options.
func defaultOptions() Options {
	return Options{}
}

// Option is a functional option for configuring a Region.
type Option func(*Options)

// WithLogger sets a logger for region operations.
//
// Example:
//
//	region, err := flash.New(dev, cfg, flash.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithProgressCallback sets a callback to track multi-row write and
// erase progress.
//
// Example:
//
//	region, err := flash.New(dev, cfg,
//	    flash.WithProgressCallback(func(p flash.Progress) {
//	        fmt.Printf("[%s] row %d/%d\n", p.Op, p.CurrentRow, p.TotalRows)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(o *Options) {
		o.ProgressCallback = callback
	}
}

// WithVerifyAfterWrite enables or disables read-back verification of
// each programmed row. Default is false.
//
// Example:
//
//	region, err := flash.New(dev, cfg, flash.WithVerifyAfterWrite(true))
func WithVerifyAfterWrite(verify bool) Option {
	return func(o *Options) {
		o.VerifyAfterWrite = verify
	}
}
