package policy

// #region policy-config
// Config holds the policy thresholds consulted by the validation axis.
type Config struct {
	CostCeiling     float64  // cost above this blocks validation
	RequiredMarkers []string // compliance markers every pattern must carry
}

// DefaultConfig returns the standard gating policy.
func DefaultConfig() Config {
	return Config{
		CostCeiling:     0.55,
		RequiredMarkers: []string{"#sorrynotsorry", "#hacc", "#noghosting"},
	}
}

// #endregion policy-config

// #region verdict
// Verdict carries the three boolean policy checks for one pattern. The
// validation axis consumes exactly these three booleans.
type Verdict struct {
	CostOK    bool
	MarkersOK bool
	TraceOK   bool
	AllPassed bool
	Reason    string // first failing check, empty when all pass
}

// #endregion verdict
