package orchestrator

// DenialReason is the closed enumeration of reasons a tick ends without
// starting a resize.
type DenialReason string

const (
	DenialMaxSize        DenialReason = "MAX_SIZE"
	DenialCurrentSize    DenialReason = "CURRENT_SIZE"
	DenialInProgress     DenialReason = "IN_PROGRESS"
	DenialWithinCooldown DenialReason = "WITHIN_COOLDOWN"
)

// Outcome is the closed set of ways a tick can conclude.
type Outcome string

const (
	OutcomeDenied  Outcome = "DENIED"
	OutcomeStarted Outcome = "STARTED"
	OutcomeFailed  Outcome = "FAILED"
)

// Decision is the result of one orchestrator tick, returned for logging
// and testing.
type Decision struct {
	Outcome Outcome

	// DenialReason is set when Outcome == OutcomeDenied.
	DenialReason DenialReason

	// SuggestedSize is always populated once a size was computed.
	SuggestedSize int32

	// OperationID is set when Outcome == OutcomeStarted.
	OperationID string

	// Err carries the resize-submission error when Outcome == OutcomeFailed.
	Err error
}
