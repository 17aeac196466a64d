package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{99999, "99,999"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "directory", "directories"); got != "1 directory" {
		t.Errorf("Pluralize(1) = %q", got)
	}
	if got := Pluralize(0, "directory", "directories"); got != "0 directories" {
		t.Errorf("Pluralize(0) = %q", got)
	}
}

func TestRenderPlain(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	if got := RenderCreated("/tmp/00001_api"); got != "Created directory: /tmp/00001_api" {
		t.Errorf("RenderCreated = %q", got)
	}
	if got := RenderTarget("/srv/7_x", true); got != "Target directory: /srv/7_x (created)" {
		t.Errorf("RenderTarget = %q", got)
	}
	if got := RenderError(errors.New("boom")); got != "error: boom" {
		t.Errorf("RenderError = %q", got)
	}
	if got := RenderSaved("7_x", 1200, 2); got != "Saved counter 1,200 for 7_x (2 directories this session)" {
		t.Errorf("RenderSaved = %q", got)
	}
	if got := RenderPrompt(); !strings.HasSuffix(got, "\n-> ") {
		t.Errorf("RenderPrompt = %q", got)
	}
}

func TestRenderKeyValues(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	got := RenderKeyValues([][2]string{{"Table", "numbers"}, {"Root", "."}})
	want := "  Table: numbers\n  Root:  .\n"
	if got != want {
		t.Errorf("RenderKeyValues = %q, want %q", got, want)
	}
}
