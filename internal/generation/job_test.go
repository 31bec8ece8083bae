package generation

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"pending", StatusPending},
		{"queued", StatusPending},
		{"starting", StatusPending},
		{"running", StatusRunning},
		{"generating", StatusRunning},
		{"processing", StatusRunning},
		{"", StatusRunning},
		{"completed", StatusCompleted},
		{"error", StatusError},
		{"failed", StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseStatus(tt.in); got != tt.want {
				t.Errorf("parseStatus(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusRunning, false},
		{StatusCompleted, true},
		{StatusError, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("%v.IsTerminal() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in      string
		want    Quality
		wantErr bool
	}{
		{"draft", QualityDraft, false},
		{"standard", QualityStandard, false},
		{"high", QualityHigh, false},
		{"", QualityStandard, false},
		{"ultra", "", true},
		{"HIGH", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuality(tt.in)
			if tt.wantErr {
				if !IsValidation(err) {
					t.Errorf("ParseQuality(%q) err = %v, want validation error", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuality(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuality(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilesPrimary(t *testing.T) {
	tests := []struct {
		name  string
		files Files
		want  string
	}{
		{"ply preferred", Files{PLY: "m.ply", GLB: "m.glb", OBJ: "m.obj"}, "m.ply"},
		{"glb fallback", Files{GLB: "m.glb", OBJ: "m.obj"}, "m.glb"},
		{"obj last", Files{OBJ: "m.obj"}, "m.obj"},
		{"empty", Files{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.files.Primary(); got != tt.want {
				t.Errorf("Primary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilesList(t *testing.T) {
	files := Files{PLY: "m.ply", OBJ: "m.obj"}
	got := files.List()
	if len(got) != 2 || got[0] != "m.ply" || got[1] != "m.obj" {
		t.Errorf("List() = %v, want [m.ply m.obj]", got)
	}
	if list := (Files{}).List(); list != nil {
		t.Errorf("empty List() = %v, want nil", list)
	}
}

func TestClampProgress(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{250, 100},
	}

	for _, tt := range tests {
		if got := clampProgress(tt.in); got != tt.want {
			t.Errorf("clampProgress(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
