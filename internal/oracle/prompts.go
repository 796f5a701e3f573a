package oracle

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// promptSpec tunes one content kind: the persona the model plays, how
// adventurous the wording may be, and how long the answer should get.
type promptSpec struct {
	system      string
	temperature float32
	maxTokens   int
}

var promptSpecs = map[Kind]promptSpec{
	KindIntro: {
		system: "You are a warm, insightful astrologer welcoming a new member. " +
			"Write a personal introduction to their birth chart: what defines them, " +
			"their strengths, and what to watch for. Address them by name. No headings, no lists.",
		temperature: 0.9,
		maxTokens:   700,
	},
	KindDailyForecast: {
		system: "You are an astrologer writing the daily horoscope for one zodiac sign. " +
			"Write an encouraging, concrete forecast for the given day. Do not address " +
			"anyone by name; the text is shared by everyone of that sign. 120 words at most.",
		temperature: 0.8,
		maxTokens:   300,
	},
	KindDeepDive: {
		system: "You are an astrologer writing an in-depth themed reading based on a birth chart. " +
			"Stay on the requested topic, ground every claim in the chart facts provided, " +
			"and address the reader by name.",
		temperature: 0.85,
		maxTokens:   900,
	},
	KindYearAhead: {
		system: "You are an astrologer writing a premium year-ahead report: the major themes, " +
			"quarter by quarter, grounded in the birth chart provided. Address the reader by name.",
		temperature: 0.85,
		maxTokens:   1400,
	},
	KindSynastryBrief: {
		system: "You are an astrologer summarizing the compatibility between two people in one " +
			"tight paragraph: the core dynamic and one piece of advice. 80 words at most.",
		temperature: 0.8,
		maxTokens:   220,
	},
	KindSynastryFull: {
		system: "You are an astrologer writing a full compatibility reading between two people: " +
			"attraction, friction, communication, and long-term potential, grounded in their birth data.",
		temperature: 0.85,
		maxTokens:   1000,
	},
}

// buildUserPrompt renders the request facts into the user message. Only the
// fields relevant to the kind are included; absent optional facts are
// omitted rather than sent as empty lines.
func buildUserPrompt(req Request) string {
	var b strings.Builder

	writeFact := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	switch req.Kind {
	case KindDailyForecast:
		writeFact("Sign", req.User.Sign)
		writeFact("Date", req.Day)
	default:
		writeFact("Name", req.User.Name)
		writeFact("Born", req.User.BirthDate)
		writeFact("Birth time", req.User.BirthTime)
		writeFact("Birth place", req.User.BirthPlace)
		writeFact("Sun sign", req.User.Sign)
	}

	if req.Chart != nil && req.Kind != KindDailyForecast {
		writeFact("Moon sign", req.Chart.MoonSign)
		writeFact("Rising sign", req.Chart.RisingSign)
		planets := make([]string, 0, len(req.Chart.Placements))
		for planet := range req.Chart.Placements {
			planets = append(planets, planet)
		}
		sort.Strings(planets)
		for _, planet := range planets {
			writeFact(planet, req.Chart.Placements[planet])
		}
	}

	if req.Kind == KindDeepDive {
		writeFact("Topic", req.Topic)
	}

	if req.Partner != nil {
		writeFact("Partner name", req.Partner.Name)
		writeFact("Partner born", req.Partner.BirthDate)
		writeFact("Partner birth time", req.Partner.BirthTime)
		writeFact("Partner birth place", req.Partner.BirthPlace)
		writeFact("Relationship", req.Partner.Relationship)
	}

	loc := req.Locale
	if loc == language.Und {
		loc = language.English
	}
	fmt.Fprintf(&b, "Respond in the language with BCP-47 tag %q.", loc)

	return b.String()
}
