// Package billing provides the payment collaborator used by the
// regeneration gate. The backend never stores payment instruments; it asks
// the billing service to charge a user and acts on approved/declined.
package billing

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Result is the outcome of a charge attempt.
type Result string

// Charge outcomes.
const (
	ResultApproved Result = "approved"
	ResultDeclined Result = "declined"
)

// Charger collects a one-off payment. Implementations must be safe for
// concurrent use.
type Charger interface {
	Charge(ctx context.Context, userID string, amountCents int) (Result, error)
}

// Sandbox approves every charge without talking to anyone. It backs local
// development and tests when no billing service is configured.
type Sandbox struct{}

// Charge approves the charge and logs it.
func (Sandbox) Charge(ctx context.Context, userID string, amountCents int) (Result, error) {
	log.Info().
		Str("user_id", userID).
		Int("amount_cents", amountCents).
		Msg("sandbox billing approved charge")
	return ResultApproved, nil
}
