// Package operation polls the long-running resize operation a Driver
// started and reconciles the persisted state to match (component E).
package operation

// Fulfillment mirrors the service's advertised completion window for a
// still-running operation.
type Fulfillment string

const (
	FulfillmentNormal      Fulfillment = "NORMAL"
	FulfillmentExtended    Fulfillment = "EXTENDED"
	FulfillmentUnspecified Fulfillment = "UNSPECIFIED"
)

// fulfillmentFromWire maps the raw expectedFulfillmentPeriod string the
// status API returns onto the closed Fulfillment enum, defaulting to
// Unspecified on anything unrecognized.
func fulfillmentFromWire(raw string) Fulfillment {
	switch raw {
	case "NORMAL":
		return FulfillmentNormal
	case "EXTENDED":
		return FulfillmentExtended
	default:
		return FulfillmentUnspecified
	}
}

// Kind is the closed set of ways an operation reconciliation can resolve.
type Kind string

const (
	KindInProgress Kind = "IN_PROGRESS"
	KindSucceeded  Kind = "SUCCEEDED"
	KindFailed     Kind = "FAILED"
	KindUnknown    Kind = "UNKNOWN"
)

// Outcome is the result of reconciling one in-flight operation.
type Outcome struct {
	Kind Kind

	// Fulfillment is set when Kind == KindInProgress.
	Fulfillment Fulfillment

	// StartMillis/EndMillis are set when Kind == KindSucceeded and the
	// operation carried a parseable end time.
	StartMillis int64
	EndMillis   int64

	// Err is set when Kind == KindFailed or KindUnknown.
	Err error
}
