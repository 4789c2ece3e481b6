package server

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warn", "error"
}

// consoleCore is a zapcore.Core that forwards entries to a console channel
type consoleCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	out chan<- ConsoleMessage
}

func newConsoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
}

func (c *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	enc := c.enc.Clone()
	for _, f := range fields {
		f.AddTo(enc)
	}
	return &consoleCore{LevelEnabler: c.LevelEnabler, enc: enc, out: c.out}
}

func (c *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write never blocks: when the channel is full the message is dropped
func (c *consoleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := ConsoleMessage{
		Message:   strings.TrimRight(buf.String(), "\n"),
		Timestamp: ent.Time,
		Level:     ent.Level.String(),
	}
	buf.Free()

	select {
	case c.out <- msg:
	default:
	}
	return nil
}

func (c *consoleCore) Sync() error { return nil }

// NewWebLogger returns a logger that writes to base and also streams Info and
// above to consoleChan, tagged with the render ID.
func NewWebLogger(base *zap.Logger, renderID string, consoleChan chan<- ConsoleMessage) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	console := &consoleCore{
		LevelEnabler: zapcore.InfoLevel,
		enc:          newConsoleEncoder(),
		out:          consoleChan,
	}
	tee := zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, console)
	})
	return base.WithOptions(tee).With(zap.String("render", renderID))
}
