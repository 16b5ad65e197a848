package ui

import "testing"

func TestThemes(t *testing.T) {
	defer SetThemeByName("default")

	if SetThemeByName("neon") {
		t.Error("Expected unknown theme to be refused")
	}

	names := GetAvailableThemes()
	SetThemeByName(names[0])
	for i := range names {
		want := names[(i+1)%len(names)]
		if got := NextTheme(); got != want {
			t.Errorf("NextTheme() = %s, want %s", got, want)
		}
		theme := GetTheme()
		if theme.Name != want || theme.Primary.Dark == "" || theme.Track.Light == "" {
			t.Errorf("Expected a complete %s palette, got %+v", want, theme)
		}
	}
}
