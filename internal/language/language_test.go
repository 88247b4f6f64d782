package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"en", "en"},
		{"EN", "en"},
		{"es", "es"},
		// 3-letter codes convert
		{"eng", "en"},
		{"spa", "es"},
		{"fre", "fr"},
		{"ger", "de"},
		{"chi", "zh"},
		{"dut", "nl"},
		// Resolved through the base language registry
		{"tur", "tr"},
		{"ces", "cs"},
		// Regional tags
		{"en-US", "en"},
		{"pt_BR", "pt"},
		// Word forms
		{"english", "en"},
		{"French", "fr"},
		{"Deutsch", "de"},
		// Unknown input
		{"x1", ""},
		{"klingon", ""},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToISO2(tt.input); got != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		tag, want string
		expected  bool
	}{
		{"eng", "en", true},
		{"en", "english", true},
		{"ger", "de", true},
		{"fra", "en", false},
		{"", "en", false},
		{"eng", "", false},
	}
	for _, tt := range tests {
		if got := Matches(tt.tag, tt.want); got != tt.expected {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.tag, tt.want, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"eng": "English",
		"de":  "German",
		"":    "Unknown",
		"x1":  "X1",
	}
	for input, want := range tests {
		if got := DisplayName(input); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestExtractFromTags(t *testing.T) {
	if got := ExtractFromTags(map[string]string{"LANGUAGE": " ENG\u0000"}); got != "eng" {
		t.Fatalf("unexpected language: %q", got)
	}
	if got := ExtractFromTags(map[string]string{"title": "Main"}); got != "" {
		t.Fatalf("expected empty language, got %q", got)
	}
	if got := ExtractFromTags(nil); got != "" {
		t.Fatalf("expected empty language for nil tags, got %q", got)
	}
}
