package pubsub

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestReplayAllKeepsLastN(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic("analysis_status", TopicConfig{
		BufferSize: 3,
		ReplayAll:  true,
	})

	for i := 1; i <= 5; i++ {
		if err := pub.Publish("analysis_status", "status", AnalysisStatus{State: "analyzing", Step: i, Total: 5}); err != nil {
			t.Fatalf("Failed to publish event %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, "analysis_status")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	// Buffer holds the last 3 events, versions 3 through 5.
	for i := 0; i < 3; i++ {
		select {
		case event := <-sub.Events():
			if event.Version != i+3 {
				t.Errorf("Expected version %d, got %d", i+3, event.Version)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for replayed event %d", i+1)
		}
	}
}

func TestReplayLastOnly(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic("analysis_status", TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})

	for i := 1; i <= 3; i++ {
		if err := pub.Publish("analysis_status", "status", AnalysisStatus{State: "loading", Step: i}); err != nil {
			t.Fatalf("Failed to publish event %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, "analysis_status")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		if event.Version != 3 {
			t.Errorf("Expected version 3, got %d", event.Version)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for replayed event")
	}

	select {
	case event := <-sub.Events():
		t.Errorf("Received unexpected extra event version %d", event.Version)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNoBufferNoReplay(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic("analysis_status", TopicConfig{BufferSize: 0})

	for i := 1; i <= 3; i++ {
		if err := pub.Publish("analysis_status", "status", AnalysisStatus{Step: i}); err != nil {
			t.Fatalf("Failed to publish event %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, "analysis_status")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		t.Errorf("Received unexpected replayed event version %d", event.Version)
	case <-time.After(50 * time.Millisecond):
	}

	// Live events still flow.
	if err := pub.Publish("analysis_status", "status", AnalysisStatus{State: "ready", Step: 4}); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	select {
	case event := <-sub.Events():
		if event.Version != 4 {
			t.Errorf("Expected version 4, got %d", event.Version)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for live event")
	}
}

func TestPublishAfterClose(t *testing.T) {
	pub := NewSSEPublisher()
	pub.Close()

	if err := pub.Publish("analysis_status", "status", AnalysisStatus{}); err == nil {
		t.Error("Expected error publishing on a closed publisher")
	}
	if _, err := pub.Subscribe(context.Background(), "analysis_status"); err == nil {
		t.Error("Expected error subscribing on a closed publisher")
	}
}

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	event := Event{Topic: "analysis_status", Type: "status", Data: []byte(`{"state":"ready"}`), Version: 7}

	if err := WriteSSE(&buf, event); err != nil {
		t.Fatalf("WriteSSE failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "data: ") {
		t.Errorf("Output missing data prefix: %q", out)
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Errorf("Output missing terminating blank line: %q", out)
	}
	if !strings.Contains(out, `"version":7`) {
		t.Errorf("Output missing version field: %q", out)
	}
}
