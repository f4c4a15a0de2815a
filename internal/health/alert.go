// Package health computes alerts over scanned project summaries. Checks
// run per project in scan order, each in a fixed priority order, so that
// repeated runs over an unchanged filesystem produce identical output.
package health

// Kind classifies an alert. Listed from most to least severe: missing
// required files, an invalid or undeclared repo path, a misdirected marker
// symlink, a stale session file, a missing repo marker file.
type Kind string

const (
	KindMissingFiles Kind = "missing-files"
	KindRepoPath     Kind = "repo-path"
	KindSymlink      Kind = "symlink"
	KindStaleSession Kind = "stale-session"
	KindMarker       Kind = "marker"
)

// HealthyMessage is shown when a check produced no alerts.
const HealthyMessage = "✓ All projects healthy"

// Alert is a single failed check for one project.
type Alert struct {
	Project string
	Kind    Kind
	Message string
}

// String renders the alert as "project: message".
func (a Alert) String() string {
	return a.Project + ": " + a.Message
}

// Report is the outcome of one check pass.
type Report struct {
	// Alerts is the full flat alert list, uncapped.
	Alerts []Alert

	// MissingFiles maps project name to its missing required files, in
	// check order. Only projects missing at least one file appear. The
	// map is uncapped so remediation can consume it.
	MissingFiles map[string][]string
}

// Healthy reports whether no alerts fired.
func (r Report) Healthy() bool {
	return len(r.Alerts) == 0
}

// Top returns the first max alerts for display. The full list stays
// available in Alerts.
func (r Report) Top(max int) []Alert {
	if max < 0 {
		max = 0
	}
	return r.Alerts[:min(max, len(r.Alerts))]
}
