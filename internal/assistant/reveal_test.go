package assistant_test

import (
	"bytes"
	"testing"

	"github.com/noshnavigator/nosh-cli/internal/assistant"
)

func TestRevealWritesFullText(t *testing.T) {
	var revealer assistant.Revealer
	token := revealer.Begin()
	var buf bytes.Buffer
	if err := revealer.Reveal(token, &buf, "Here's what I found for you today", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "Here's what I found for you today" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRevealStopsWhenSuperseded(t *testing.T) {
	var revealer assistant.Revealer
	stale := revealer.Begin()
	revealer.Begin()
	var buf bytes.Buffer
	if err := revealer.Reveal(stale, &buf, "this should never appear", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for stale token, got %q", buf.String())
	}
}

func TestStaleTracksLatestTurn(t *testing.T) {
	var revealer assistant.Revealer
	first := revealer.Begin()
	if revealer.Stale(first) {
		t.Fatal("fresh token reported stale")
	}
	second := revealer.Begin()
	if !revealer.Stale(first) {
		t.Fatal("superseded token reported fresh")
	}
	if revealer.Stale(second) {
		t.Fatal("latest token reported stale")
	}
}
