package logger

// Logger defines the logging interface used across the trust layer.
// Messages are built from args the way fmt.Sprint does.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
