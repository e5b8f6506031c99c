package logger

import "go.uber.org/zap"

type Logger interface {
	Logf(format string, v ...interface{})
}

// Zap adapts a zap SugaredLogger to the Logger interface.
func Zap(s *zap.SugaredLogger) Logger {
	return &zapLogger{s: s}
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Logf(format string, v ...interface{}) {
	l.s.Infof(format, v...)
}

// Nop discards everything.
func Nop() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (l *nopLogger) Logf(format string, v ...interface{}) {}
