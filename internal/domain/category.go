package domain

import "strings"

// Category identifies one slot of generated content. Deep-dive categories
// are parameterized by topic and spelled "deep_dive:<topic>".
type Category string

// Kind is the freshness class of a category. Exactly one table maps each
// category to its kind; every component that needs the classification asks
// KindOf instead of keeping its own copy.
type Kind int

const (
	// KindOneTime content is generated once and only replaced through the
	// regeneration gate.
	KindOneTime Kind = iota
	// KindDailyScheduled content expires when the reference day rolls over.
	KindDailyScheduled
	// KindPaidOnly content is never produced by the automatic paths; the
	// regeneration gate is its only producer.
	KindPaidOnly
)

// Content categories.
const (
	CategoryIntro     Category = "intro"
	CategoryForecast  Category = "daily_forecast"
	CategoryYearAhead Category = "year_ahead"

	deepDivePrefix = "deep_dive:"
)

// DeepDiveTopics lists the themed reading topics generated for every new
// profile, in fan-out order.
var DeepDiveTopics = []string{"love", "career", "health", "money", "growth"}

// DeepDiveCategory returns the category for a themed reading topic.
func DeepDiveCategory(topic string) Category {
	return Category(deepDivePrefix + topic)
}

// DeepDiveTopic extracts the topic from a deep-dive category. ok is false
// when cat is not a deep-dive category.
func DeepDiveTopic(cat Category) (string, bool) {
	s := string(cat)
	if !strings.HasPrefix(s, deepDivePrefix) {
		return "", false
	}
	return s[len(deepDivePrefix):], true
}

// kinds is the single authoritative category classification table.
var kinds = map[Category]Kind{
	CategoryIntro:     KindOneTime,
	CategoryForecast:  KindDailyScheduled,
	CategoryYearAhead: KindPaidOnly,
}

// KindOf classifies a category. Deep-dive categories are one-time; unknown
// categories default to one-time, the most conservative class (never
// regenerated automatically, at most generated once).
func KindOf(cat Category) Kind {
	if _, ok := DeepDiveTopic(cat); ok {
		return KindOneTime
	}
	if k, ok := kinds[cat]; ok {
		return k
	}
	return KindOneTime
}

// KnownCategory reports whether cat names content this backend produces.
func KnownCategory(cat Category) bool {
	if topic, ok := DeepDiveTopic(cat); ok {
		for _, t := range DeepDiveTopics {
			if t == topic {
				return true
			}
		}
		return false
	}
	_, ok := kinds[cat]
	return ok
}
