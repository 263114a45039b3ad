package tui_test

import (
	"testing"

	"github.com/mattn/go-runewidth"

	"shipwatch/internal/tui"
)

func TestTruncate_ShortStringUnchanged(t *testing.T) {
	if got := tui.Truncate("deploy", 10); got != "deploy" {
		t.Errorf("expected 'deploy', got '%s'", got)
	}
}

func TestTruncate_LongStringGetsEllipsis(t *testing.T) {
	got := tui.Truncate("fix: navbar layout regression", 12)
	if runewidth.StringWidth(got) > 12 {
		t.Errorf("expected width <= 12, got %d (%q)", runewidth.StringWidth(got), got)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Errorf("expected ellipsis suffix, got '%s'", got)
	}
}

func TestTruncate_CountsWideRunes(t *testing.T) {
	got := tui.Truncate("日本語テスト", 7)
	if runewidth.StringWidth(got) > 7 {
		t.Errorf("expected width <= 7, got %d (%q)", runewidth.StringWidth(got), got)
	}
}

func TestTruncate_ZeroWidth(t *testing.T) {
	if got := tui.Truncate("anything", 0); got != "" {
		t.Errorf("expected empty string, got '%s'", got)
	}
}

func TestPad_ExactWidth(t *testing.T) {
	for _, s := range []string{"ok", "a much longer string than fits", "日本語"} {
		got := tui.Pad(s, 10)
		if w := runewidth.StringWidth(got); w != 10 {
			t.Errorf("expected padded width 10 for %q, got %d (%q)", s, w, got)
		}
	}
}
