package oracle

import "golang.org/x/text/language"

// fallbackLocales lists the languages with hand-written fallback copy, in
// matcher priority order. English is the base and catches everything else.
var fallbackLocales = []language.Tag{
	language.English,
	language.Spanish,
	language.German,
}

var fallbackMatcher = language.NewMatcher(fallbackLocales)

// fallbackTexts holds the static copy served when generation fails. The
// texts are intentionally self-contained: they read as a calm placeholder,
// not as an apology or an error message.
var fallbackTexts = [][6]string{
	// English
	{
		"The skies are settling. Your personal introduction is on its way and will appear here shortly.",
		"The stars are aligning for today. Check back in a little while for your daily forecast.",
		"This reading is still taking shape. Give the stars a moment and look again soon.",
		"Your year-ahead report is being charted. It will be ready shortly.",
		"The two charts are still in conversation. Your compatibility snapshot will appear shortly.",
		"The two charts are still in conversation. Your full compatibility reading will appear shortly.",
	},
	// Spanish
	{
		"Los cielos se están asentando. Tu introducción personal está en camino y aparecerá aquí en breve.",
		"Las estrellas se están alineando para hoy. Vuelve en un momento para ver tu pronóstico diario.",
		"Esta lectura aún está tomando forma. Dale un momento a las estrellas y vuelve pronto.",
		"Tu informe del año está siendo trazado. Estará listo en breve.",
		"Las dos cartas siguen en conversación. Tu resumen de compatibilidad aparecerá en breve.",
		"Las dos cartas siguen en conversación. Tu lectura completa de compatibilidad aparecerá en breve.",
	},
	// German
	{
		"Der Himmel ordnet sich noch. Deine persönliche Einführung ist unterwegs und erscheint in Kürze hier.",
		"Die Sterne richten sich für heute aus. Schau gleich noch einmal für deine Tagesvorhersage vorbei.",
		"Diese Deutung nimmt noch Gestalt an. Gib den Sternen einen Moment und schau bald wieder vorbei.",
		"Dein Jahresbericht wird gerade erstellt. Er ist in Kürze fertig.",
		"Die beiden Horoskope sind noch im Gespräch. Dein Kompatibilitätsüberblick erscheint in Kürze.",
		"Die beiden Horoskope sind noch im Gespräch. Deine vollständige Kompatibilitätsdeutung erscheint in Kürze.",
	},
}

// fallbackIndex maps a kind to its column in fallbackTexts.
var fallbackIndex = map[Kind]int{
	KindIntro:         0,
	KindDailyForecast: 1,
	KindDeepDive:      2,
	KindYearAhead:     3,
	KindSynastryBrief: 4,
	KindSynastryFull:  5,
}

// Fallback returns the static placeholder text for a content kind in the
// best supported match for locale. Unknown kinds fall back to the deep-dive
// copy, the most generic of the set.
func Fallback(kind Kind, locale language.Tag) string {
	_, i, _ := fallbackMatcher.Match(locale)
	col, ok := fallbackIndex[kind]
	if !ok {
		col = fallbackIndex[KindDeepDive]
	}
	return fallbackTexts[i][col]
}
