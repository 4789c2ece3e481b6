package server

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger(nil, "test-render-123", messageChan)

	logger.Info("tile finished", zap.Int("tile", 7))

	select {
	case msg := <-messageChan:
		if !strings.Contains(msg.Message, "tile finished") {
			t.Errorf("Expected message to contain 'tile finished', got %q", msg.Message)
		}
		if !strings.Contains(msg.Message, `"tile": 7`) {
			t.Errorf("Expected message to carry the tile field, got %q", msg.Message)
		}
		if !strings.Contains(msg.Message, "test-render-123") {
			t.Errorf("Expected message to carry the render ID, got %q", msg.Message)
		}
		if strings.HasSuffix(msg.Message, "\n") {
			t.Errorf("Expected trailing newline to be trimmed, got %q", msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_Levels(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger(nil, "levels", messageChan)

	logger.Debug("hidden")
	logger.Warn("careful")
	logger.Error("broken")

	var levels []string
	for len(messageChan) > 0 {
		levels = append(levels, (<-messageChan).Level)
	}

	want := []string{"warn", "error"}
	if len(levels) != len(want) {
		t.Fatalf("Expected levels %v, got %v", want, levels)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("Message %d: expected level %q, got %q", i, want[i], levels[i])
		}
	}
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger(nil, "test-render-456", messageChan)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Info(msg)
	}

	var receivedMessages []string
	timeout := time.After(200 * time.Millisecond)
	for i := 0; i < len(messages); i++ {
		select {
		case msg := <-messageChan:
			receivedMessages = append(receivedMessages, msg.Message)
		case <-timeout:
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}

	for i, expected := range messages {
		if !strings.Contains(receivedMessages[i], expected) {
			t.Errorf("Message %d: expected %q, got %q", i, expected, receivedMessages[i])
		}
	}
}

func TestWebLogger_FullChannelDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger(nil, "full", messageChan)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			logger.Info("flood")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Logging blocked on a full console channel")
	}

	if len(messageChan) != 1 {
		t.Errorf("Expected the channel to hold 1 message, got %d", len(messageChan))
	}
}

func TestWebLogger_WritesToBaseLogger(t *testing.T) {
	observed, logs := observer.New(zapcore.DebugLevel)
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger(zap.New(observed), "tee", messageChan)

	logger.Debug("base only")
	logger.Info("both")

	if logs.Len() != 2 {
		t.Fatalf("Expected 2 entries on the base logger, got %d", logs.Len())
	}
	entry := logs.All()[1]
	if entry.ContextMap()["render"] != "tee" {
		t.Errorf("Expected render field on base entries, got %v", entry.ContextMap())
	}
	if len(messageChan) != 1 {
		t.Errorf("Expected only the info entry on the console, got %d", len(messageChan))
	}
}
