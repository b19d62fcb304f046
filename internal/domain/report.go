package domain

import "sync"

// DiagnosticKind names a data-quality problem that does not stop a run.
type DiagnosticKind string

const (
	DiagLowConfidence  DiagnosticKind = "low_confidence"
	DiagFileMismatch   DiagnosticKind = "spdx_file_mismatch"
	DiagNoLicenseFiles DiagnosticKind = "no_license_files"
	DiagUnreadableFile DiagnosticKind = "unreadable_file"
	DiagUnknownLicense DiagnosticKind = "unknown_license"
)

type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Package string         `json:"package"`
	Message string         `json:"message"`
}

// Report collects diagnostics. It is safe for concurrent use; a nil *Report
// discards everything.
type Report struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (r *Report) Add(d Diagnostic) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, d)
}

// Diagnostics returns a copy in insertion order.
func (r *Report) Diagnostics() []Diagnostic {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

func (r *Report) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range r.Diagnostics() {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Report) Len() int {
	return len(r.Diagnostics())
}
