package tui

import (
	"errors"
	"strings"
	"testing"
)

func TestModelCarriesWorkerError(t *testing.T) {
	ch := make(chan ProgressMsg)
	errCh := make(chan error, 1)
	m := NewModel("batch op", 3, ch, errCh)

	errCh <- errors.New("write failed")
	close(ch)

	msg := m.waitForActivity()()
	result, ok := msg.(ResultMsg)
	if !ok {
		t.Fatalf("Expected ResultMsg, got %T", msg)
	}
	if result.Err == nil || result.Err.Error() != "write failed" {
		t.Fatalf("Expected worker error in result, got %v", result.Err)
	}

	updated, _ := m.Update(result)
	final := updated.(Model)
	if !final.completed || !final.quitting {
		t.Errorf("Expected completed quitting model, got %+v", final)
	}
	if view := final.View(); !strings.Contains(view, "write failed") || strings.Contains(view, "✓") {
		t.Errorf("Expected error view without success mark, got %q", view)
	}
}

func TestModelSuccessView(t *testing.T) {
	ch := make(chan ProgressMsg)
	errCh := make(chan error, 1)
	m := NewModel("batch op", 2, ch, errCh)

	errCh <- nil
	close(ch)

	msg := m.waitForActivity()()
	updated, _ := m.Update(msg)
	final := updated.(Model)
	if final.err != nil {
		t.Fatalf("Expected no error, got %v", final.err)
	}
	if view := final.View(); !strings.Contains(view, "✓") {
		t.Errorf("Expected success mark, got %q", view)
	}
}

func TestQuitBeforeCompletionRendersNothing(t *testing.T) {
	ch := make(chan ProgressMsg)
	errCh := make(chan error, 1)
	m := NewModel("batch op", 2, ch, errCh)
	m.quitting = true

	if view := m.View(); view != "" {
		t.Errorf("Expected empty view after early quit, got %q", view)
	}
}

func TestRunPlainPropagatesError(t *testing.T) {
	err := RunPlain(func(ch chan<- ProgressMsg) error {
		ch <- ProgressMsg{Done: 1, Total: 2, Message: "page 1"}
		return errors.New("aborted")
	})
	if err == nil || err.Error() != "aborted" {
		t.Errorf("Expected worker error, got %v", err)
	}

	if err := RunPlain(func(ch chan<- ProgressMsg) error { return nil }); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}
