package contractor

import "context"

// Repository reads contractor eligibility records. The clock subsystem never
// writes profiles.
type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
}
