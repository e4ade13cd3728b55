package fault

// #region severity
// Severity orders fault levels from benign to fatal. The ordering is part
// of the contract: anything at Warning or above must be surfaced.
type Severity int

const (
	SeverityClean Severity = iota
	SeverityWarning
	SeverityError
	SeverityException
	SeverityPanic
)

// String returns the display name for a severity.
func (s Severity) String() string {
	switch s {
	case SeverityClean:
		return "CLEAN"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityException:
		return "EXCEPTION"
	case SeverityPanic:
		return "PANIC"
	}
	return "UNKNOWN"
}

// #endregion severity

// #region recovery
// Recovery is the prescribed action for a fault.
type Recovery int

const (
	RecoveryNone Recovery = iota
	RecoveryRequestMoreData
	RecoveryRollback
	RecoverySystemReset
)

// String returns the display name for a recovery action.
func (r Recovery) String() string {
	switch r {
	case RecoveryNone:
		return "NO_ACTION"
	case RecoveryRequestMoreData:
		return "REQUEST_MORE_DATA"
	case RecoveryRollback:
		return "ROLLBACK_OPERATION"
	case RecoverySystemReset:
		return "SYSTEM_RESET"
	}
	return "UNKNOWN"
}

// #endregion recovery

// #region tolerance
// Tolerance is the fault record for one analysis call: severity, prescribed
// recovery, and a human-readable diagnostic. Never mutated after creation.
type Tolerance struct {
	Severity Severity
	Recovery Recovery
	Message  string
}

// Surfaceable reports whether the record must reach the caller.
func (t Tolerance) Surfaceable() bool {
	return t.Severity >= SeverityWarning
}

// #endregion tolerance

// #region surfacer
// Surfacer receives every fault record of severity Warning or above. The
// escalator always invokes it for such records; surfacing is a mandatory
// side effect, not optional logging.
type Surfacer interface {
	Surface(Tolerance)
}

// #endregion surfacer
