package diag

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink receives diagnostic messages from the measurement pipeline. Warnings
// cover degraded-but-valid states (unresolved transfer sizes, warm cold loads,
// shrinking pages); they never indicate failure.
type Sink interface {
	Warnf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// NewLogger builds the application logger.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("diag: parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(l)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("diag: build logger: %w", err)
	}
	return logger, nil
}

type zapSink struct {
	s *zap.SugaredLogger
}

// NewZapSink wraps a zap logger as a Sink.
func NewZapSink(l *zap.Logger) Sink {
	return &zapSink{s: l.Sugar()}
}

func (z *zapSink) Warnf(format string, args ...interface{})  { z.s.Warnf(format, args...) }
func (z *zapSink) Infof(format string, args ...interface{})  { z.s.Infof(format, args...) }
func (z *zapSink) Debugf(format string, args ...interface{}) { z.s.Debugf(format, args...) }

// NewNop returns a Sink that discards everything.
func NewNop() Sink {
	return &zapSink{s: zap.NewNop().Sugar()}
}

// Recorder is a Sink that captures messages for test assertions.
type Recorder struct {
	mu       sync.Mutex
	warnings []string
	infos    []string
}

func (r *Recorder) Warnf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *Recorder) Infof(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *Recorder) Debugf(format string, args ...interface{}) {}

// Warnings returns a copy of the captured warning messages.
func (r *Recorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warnings...)
}

// Infos returns a copy of the captured info messages.
func (r *Recorder) Infos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.infos...)
}
