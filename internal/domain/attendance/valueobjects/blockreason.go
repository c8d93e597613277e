package valueobjects

// BlockReason is the specific cause recorded on a rejected punch attempt.
// Every BLOCKED audit row carries exactly one of these.
type BlockReason string

const (
	ReasonNotEligible           BlockReason = "NOT_ELIGIBLE"
	ReasonNoCoordinate          BlockReason = "NO_COORDINATE"
	ReasonLowAccuracy           BlockReason = "LOW_ACCURACY"
	ReasonOutOfRange            BlockReason = "OUT_OF_RANGE"
	ReasonVerificationFailed    BlockReason = "VERIFICATION_FAILED"
	ReasonMissingDeviceID       BlockReason = "MISSING_DEVICE_ID"
	ReasonRateLimited           BlockReason = "RATE_LIMITED"
	ReasonMissingIdempotencyKey BlockReason = "MISSING_IDEMPOTENCY_KEY"
	ReasonReusedIdempotencyKey  BlockReason = "REUSED_IDEMPOTENCY_KEY"
	ReasonInvalidPunchToken     BlockReason = "INVALID_PUNCH_TOKEN"
	ReasonInvalidState          BlockReason = "INVALID_STATE"
)

var validBlockReasons = map[BlockReason]bool{
	ReasonNotEligible:           true,
	ReasonNoCoordinate:          true,
	ReasonLowAccuracy:           true,
	ReasonOutOfRange:            true,
	ReasonVerificationFailed:    true,
	ReasonMissingDeviceID:       true,
	ReasonRateLimited:           true,
	ReasonMissingIdempotencyKey: true,
	ReasonReusedIdempotencyKey:  true,
	ReasonInvalidPunchToken:     true,
	ReasonInvalidState:          true,
}

func (r BlockReason) String() string {
	return string(r)
}

func (r BlockReason) IsValid() bool {
	return validBlockReasons[r]
}
