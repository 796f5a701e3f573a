// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, not_found) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes (e.g., chart_unavailable, upgrade_required) are reserved
//     for business outcomes that cannot be conveyed by status alone.
//   - All error responses must include both an HTTP status and one of these codes.
//
// Usage:
//   - Handlers select the most specific matching code and pass it to `fail()` along
//     with the corresponding HTTP status and message.
//   - Clients are expected to branch on these codes for programmatic error handling.
//     In particular, upgrade_required and regen_limit_reached are expected outcomes
//     of the regeneration gate and should be rendered as an upsell or a pay-or-wait
//     prompt, not as failures.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "regen_limit_reached",
//	  "message": "free regeneration already used; pay the posted price to proceed",
//	  "price_cents": 299
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:

	// ErrCodeChartUnavailable: the chart engine failed; onboarding cannot
	// continue and the client should offer a retry.
	ErrCodeChartUnavailable = "chart_unavailable"
	// ErrCodeGenerationFailed: the content oracle failed on a path with no
	// fallback (explicit regeneration).
	ErrCodeGenerationFailed = "generation_failed"
	// ErrCodeSaveFailed: a critical persistence step failed; the request is
	// retryable.
	ErrCodeSaveFailed = "save_failed"
	// ErrCodeUpgradeRequired: regeneration denied because the profile is not
	// premium; render an upsell, not an error.
	ErrCodeUpgradeRequired = "upgrade_required"
	// ErrCodeRegenLimitReached: the free allowance for the category is spent;
	// the posted price accompanies the response.
	ErrCodeRegenLimitReached = "regen_limit_reached"
	// ErrCodePaymentDeclined: the billing provider refused the charge.
	ErrCodePaymentDeclined = "payment_declined"
)
