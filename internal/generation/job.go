package generation

import "time"

// Status tracks a job through its client-side lifecycle.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusCompleted
	StatusError
	StatusCancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transitions can occur.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError || s == StatusCancelled
}

// parseStatus folds the server's status strings onto the client
// lifecycle. Workers report a few in-flight variants ("starting",
// "generating"); anything not explicitly terminal counts as running.
func parseStatus(s string) Status {
	switch s {
	case "pending", "queued", "starting":
		return StatusPending
	case "completed":
		return StatusCompleted
	case "error", "failed":
		return StatusError
	default:
		return StatusRunning
	}
}

// Quality selects the generation fidelity tier.
type Quality string

const (
	QualityDraft    Quality = "draft"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

// ParseQuality validates a quality name from config or flags.
// An empty string selects the standard tier.
func ParseQuality(s string) (Quality, error) {
	switch q := Quality(s); q {
	case QualityDraft, QualityStandard, QualityHigh:
		return q, nil
	case "":
		return QualityStandard, nil
	default:
		return "", newError(KindValidation, "quality", "unknown quality "+s)
	}
}

// Files holds the artifact filenames reported for a completed job.
type Files struct {
	PLY string `json:"ply,omitempty"`
	GLB string `json:"glb,omitempty"`
	OBJ string `json:"obj,omitempty"`
}

// Primary returns the artifact the viewer loads, preferring PLY.
func (f Files) Primary() string {
	switch {
	case f.PLY != "":
		return f.PLY
	case f.GLB != "":
		return f.GLB
	default:
		return f.OBJ
	}
}

// List returns the non-empty artifact filenames.
func (f Files) List() []string {
	var names []string
	for _, name := range []string{f.PLY, f.GLB, f.OBJ} {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Job is a snapshot of one generation request's client-side state.
// The controller owns the live job; everyone else sees copies.
type Job struct {
	ID       string
	Prompt   string
	Quality  Quality
	Status   Status
	Progress float64
	Message  string
	Files    Files
	Started  time.Time
}

// clampProgress keeps reported progress inside [0,100].
func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
