package ui

import (
	"strings"
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(\"\").Name = %q, want Nightfox", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"Background": th.Background, "Surface": th.Surface, "SurfaceAlt": th.SurfaceAlt,
			"FocusBg": th.FocusBg, "SelectionBg": th.SelectionBg,
			"Border": th.Border, "BorderFocus": th.BorderFocus,
			"Text": th.Text, "Muted": th.Muted, "Faint": th.Faint, "Accent": th.Accent,
			"Warning": th.Warning, "Danger": th.Danger, "Favorite": th.Favorite,
		}
		for field, color := range colors {
			if len(color) != 7 || color[0] != '#' {
				t.Fatalf("theme %s: %s = %q, want #rrggbb", name, field, color)
			}
		}
	}
}

func TestBgStyleRender_KeepsSpaces(t *testing.T) {
	bg := NewBgStyle("#000000")
	if got := bg.Render("", GetTheme("").Styles().Text); got != "" {
		t.Fatalf("Render(\"\") = %q, want empty", got)
	}
	got := bg.Render("a  b", GetTheme("").Styles().Text)
	if n := strings.Count(got, bg.Space()); n != 2 {
		t.Fatalf("Render kept %d styled spaces, want 2", n)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Portland International Airport", 11, "Portland..."},
		{"  PDX  ", 10, "PDX"},
		{"Seattle", 3, "Sea"},
		{"Seattle", 0, "Seattle"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
