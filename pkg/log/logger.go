package log

// Logger is the logging surface used by services, handlers, the worker pool
// and the ZeroMQ transport.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	// WithField returns a Logger that appends key=value to every line.
	WithField(key string, value interface{}) Logger
	// WithFields is WithField for several keys at once.
	WithFields(fields map[string]interface{}) Logger
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{})              {}
func (nopLogger) Infof(string, ...interface{})               {}
func (nopLogger) Warnf(string, ...interface{})               {}
func (nopLogger) Errorf(string, ...interface{})              {}
func (nopLogger) Fatalf(string, ...interface{})              {}
func (n nopLogger) WithField(string, interface{}) Logger     { return n }
func (n nopLogger) WithFields(map[string]interface{}) Logger { return n }
