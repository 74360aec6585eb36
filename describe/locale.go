package describe

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-scene/labels"
	"github.com/nvr-ai/go-scene/zones"
)

// Locale holds every string the describer emits for one language.
type Locale struct {
	// Name is the locale tag, e.g. "pt-BR".
	Name string
	// Nothing is the full sentence used when there are no detections.
	Nothing string
	// IntroSingular prefixes a description of exactly one object.
	IntroSingular string
	// IntroPlural prefixes a description of two or more objects.
	IntroPlural string
	// Zones is the directional phrase per zone, indexed by zones.Zone.
	Zones [3]string
	// Articles is the indefinite article per labels.Gender.
	Articles [2]string
	// VowelArticle replaces Articles before a word starting with a vowel
	// letter, when set.
	VowelArticle string
	// Conjunction joins distinct labels in one phrase.
	Conjunction string
	// Preposition precedes the distance.
	Preposition string
	// Unit follows the distance.
	Unit      string
	Inflector Inflector
}

// PortugueseBR is the Brazilian Portuguese locale.
var PortugueseBR = Locale{
	Name:          "pt-BR",
	Nothing:       "Não foi identificado nenhum objeto na imagem.",
	IntroSingular: "Foi identificado na imagem ",
	IntroPlural:   "Foram identificados na imagem ",
	Zones: [3]string{
		zones.Left:   "à sua esquerda",
		zones.Center: "na sua frente",
		zones.Right:  "à sua direita",
	},
	Articles: [2]string{
		labels.Masculine: "um",
		labels.Feminine:  "uma",
	},
	Conjunction: "e",
	Preposition: "a",
	Unit:        "metros",
	Inflector: Inflector{
		Nasal: []SuffixRule{
			{Suffixes: []string{"ão"}, Strip: true, Ending: "ões"},
			{Suffixes: []string{"m"}, Strip: true, Ending: "ns"},
		},
		Liquid: []SuffixRule{
			{Suffixes: []string{"l"}, Strip: true, Ending: "is"},
		},
		Epenthetic: []SuffixRule{
			{Suffixes: []string{"z", "r", "s"}, Ending: "es"},
		},
		Default: "s",
	},
}

// English is the English locale.
var English = Locale{
	Name:          "en",
	Nothing:       "No objects were detected in the image.",
	IntroSingular: "There is ",
	IntroPlural:   "There are ",
	Zones: [3]string{
		zones.Left:   "to your left",
		zones.Center: "in front of you",
		zones.Right:  "to your right",
	},
	Articles: [2]string{
		labels.Masculine: "a",
		labels.Feminine:  "a",
	},
	VowelArticle: "an",
	Conjunction:  "and",
	Preposition:  "at",
	Unit:         "meters",
	Inflector: Inflector{
		Irregular: map[string]string{
			"person":   "people",
			"mouse":    "mice",
			"knife":    "knives",
			"sheep":    "sheep",
			"skis":     "skis",
			"scissors": "scissors",
		},
		Epenthetic: []SuffixRule{
			{Suffixes: []string{"s", "x", "z", "ch", "sh"}, Ending: "es"},
		},
		Default: "s",
	},
}

// LocaleByName returns a built-in locale.
func LocaleByName(name string) (Locale, error) {
	switch strings.ToLower(name) {
	case "pt", "pt-br", "portuguese":
		return PortugueseBR, nil
	case "en", "en-us", "english":
		return English, nil
	default:
		return Locale{}, errors.Errorf("unsupported locale %q", name)
	}
}

// Article returns the indefinite article agreeing with l.
func (loc Locale) Article(l labels.Label) string {
	if loc.VowelArticle != "" {
		if r, _ := utf8.DecodeRuneInString(l.Name); strings.ContainsRune("aeiou", unicode.ToLower(r)) {
			return loc.VowelArticle
		}
	}
	if l.Gender == labels.Feminine {
		return loc.Articles[labels.Feminine]
	}
	return loc.Articles[labels.Masculine]
}

// ZonePhrase returns the directional phrase for z.
func (loc Locale) ZonePhrase(z zones.Zone) string {
	if z < zones.Left || z > zones.Right {
		return ""
	}
	return loc.Zones[z]
}
