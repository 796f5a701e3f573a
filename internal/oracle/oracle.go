// Package oracle defines the contract with the generative content provider
// and its OpenAI-compatible implementation.
//
// The rest of the application only sees the Oracle interface: one blocking
// call that turns a structured request (who the user is, what kind of text,
// in which language) into a finished piece of content. Everything about
// transport, prompting, retries and model choice stays inside this package,
// so tests can substitute a counting stub and the orchestrator never learns
// which vendor is behind the curtain.
package oracle

import (
	"context"
	"errors"

	"golang.org/x/text/language"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// Kind selects the flavor of content to generate.
type Kind string

// Content kinds understood by the oracle.
const (
	KindIntro         Kind = "intro"
	KindDailyForecast Kind = "daily_forecast"
	KindDeepDive      Kind = "deep_dive"
	KindYearAhead     Kind = "year_ahead"
	KindSynastryBrief Kind = "synastry_brief"
	KindSynastryFull  Kind = "synastry_full"
)

// Sentinel errors returned by oracle implementations.
var (
	// ErrEmptyCompletion is returned when the provider answered but produced
	// no usable text. Blank content is a failure, not a result.
	ErrEmptyCompletion = errors.New("oracle: empty completion")

	// ErrUnknownKind is returned for a request kind this package has no
	// prompt for.
	ErrUnknownKind = errors.New("oracle: unknown content kind")
)

// UserFacts carries the requesting user's identity and birth data into the
// prompt. All fields are already validated by the calling service.
type UserFacts struct {
	Name       string
	BirthDate  string
	BirthTime  string
	BirthPlace string
	Sign       string
}

// PartnerFacts carries the second person of a compatibility reading. Birth
// time and place are optional and omitted from the prompt when empty.
type PartnerFacts struct {
	Name         string
	BirthDate    string
	BirthTime    string
	BirthPlace   string
	Relationship string
}

// Request is one content generation order.
//
// Topic is set for deep-dive requests, Day for daily forecasts (the
// reference day the text should address), Partner for the synastry kinds.
// A zero Locale falls back to English.
type Request struct {
	Kind    Kind
	User    UserFacts
	Chart   *domain.ChartFacts
	Topic   string
	Day     string
	Partner *PartnerFacts
	Locale  language.Tag
}

// Oracle produces personalized content. Implementations must be safe for
// concurrent use; the orchestrator fans out several requests at once.
type Oracle interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// KindForCategory maps a content category to the oracle kind that produces
// it. ok is false for categories the oracle does not serve.
func KindForCategory(cat domain.Category) (Kind, bool) {
	if _, isDive := domain.DeepDiveTopic(cat); isDive {
		return KindDeepDive, true
	}
	switch cat {
	case domain.CategoryIntro:
		return KindIntro, true
	case domain.CategoryForecast:
		return KindDailyForecast, true
	case domain.CategoryYearAhead:
		return KindYearAhead, true
	}
	return "", false
}
