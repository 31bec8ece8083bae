package generation

import (
	"strings"
	"testing"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"a sharp sword", "weapon"},
		{"red sports car", "vehicle"},
		{"wooden chair with armrests", "furniture"},
		{"fire breathing dragon", "creature"},
		{"medieval stone castle", "architecture"}, // castle wins over stone
		{"claw hammer", "tool"},
		{"gold ring with a ruby", "jewelry"},
		{"chocolate cake", "food"},
		{"old oak tree", "nature"},
		{"folding smart phone", "electronic"},
		{"abstract swirl", "generic"},
		{"", "generic"},
		{"A GIANT SWORD", "weapon"}, // case-insensitive
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			if got := DetectCategory(tt.prompt); got != tt.want {
				t.Errorf("DetectCategory(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestEnhancePrompt(t *testing.T) {
	enhanced := EnhancePrompt("a red cube")

	if !strings.HasPrefix(enhanced, "a red cube, ") {
		t.Errorf("enhanced prompt should start with the original: %q", enhanced)
	}
	if !strings.HasSuffix(enhanced, ", 3D model") {
		t.Errorf("enhanced prompt should end with comma-3D model: %q", enhanced)
	}

	// prompt + 2 category terms + 2 tech specs + quality + style + "3D model"
	parts := strings.Split(enhanced, ", ")
	if len(parts) != 8 {
		t.Errorf("enhanced prompt has %d segments, want 8: %q", len(parts), enhanced)
	}

	// The two category picks must be distinct.
	if parts[1] == parts[2] {
		t.Errorf("category terms repeated: %q", parts[1])
	}
	if parts[3] == parts[4] {
		t.Errorf("tech specs repeated: %q", parts[3])
	}
}

func TestEnhancePromptUsesCategoryTerms(t *testing.T) {
	weaponTerms := make(map[string]bool)
	for _, term := range categoryTerms["weapon"] {
		weaponTerms[term] = true
	}

	enhanced := EnhancePrompt("a steel sword")
	parts := strings.Split(enhanced, ", ")
	if len(parts) != 8 {
		t.Fatalf("enhanced prompt has %d segments: %q", len(parts), enhanced)
	}
	if !weaponTerms[parts[1]] || !weaponTerms[parts[2]] {
		t.Errorf("expected weapon terms in positions 1-2, got %q, %q", parts[1], parts[2])
	}
}

func TestEnhancePromptTrimsWhitespace(t *testing.T) {
	enhanced := EnhancePrompt("  a cube  ")
	if !strings.HasPrefix(enhanced, "a cube, ") {
		t.Errorf("whitespace not trimmed: %q", enhanced)
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"a red cube", "a_red_cube"},
		{"A Red DRAGON", "a_red_dragon"},
		{"sword!!! of DOOM", "sword_of_doom"},
		{"one two three four five", "one_two_three"},
		{"!!! ???", "model"},
		{"", "model"},
		{"   ", "model"},
		{"extraordinarily magnificent dragon", "extraordinarily_magn"},
		{"café au lait", "caf_au_lait"},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			if got := SafeName(tt.prompt); got != tt.want {
				t.Errorf("SafeName(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestSafeNameLength(t *testing.T) {
	long := strings.Repeat("abcdefgh ", 5)
	if got := SafeName(long); len(got) > 20 {
		t.Errorf("SafeName length = %d, want <= 20", len(got))
	}
}
