package flash

// Progress contains information about a multi-row write or erase in
// flight. Passed to ProgressCallback after each programmed row.
type Progress struct {
	// Op is the operation reporting progress: "write" or "erase"
	Op string

	// CurrentRow is the number of rows completed so far (1-based)
	CurrentRow int

	// TotalRows is the total number of rows in the operation
	TotalRows int

	// BytesDone is the number of bytes programmed so far
	BytesDone int
}

// ProgressCallback is called after each programmed row to report
// progress. It is advisory only: when an operation fails mid-way, the
// returned error does not repeat what the callback saw.
// Implementations should return quickly to avoid slowing the row loop.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to a
// Region. This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	region, err := flash.New(dev, cfg, flash.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
