package analysis

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Lexicon holds the static word lists used for scoring and keyword
// extraction. It is immutable after construction and safe to share across
// concurrent callers without locking.
type Lexicon struct {
	positiveWords map[string]bool
	negativeWords map[string]bool
	negationWords map[string]bool
	intensifiers  map[string]float64
	stopWords     map[string]bool
}

// IsPositive reports whether word carries positive polarity.
func (l *Lexicon) IsPositive(word string) bool {
	return l.positiveWords[word]
}

// IsNegative reports whether word carries negative polarity.
func (l *Lexicon) IsNegative(word string) bool {
	return l.negativeWords[word]
}

// IsNegation reports whether word inverts the polarity of a nearby
// sentiment word.
func (l *Lexicon) IsNegation(word string) bool {
	return l.negationWords[word]
}

// IntensifierFactor returns the multiplier for an intensifier word and
// whether the word is an intensifier at all. Unknown words return 1.0.
func (l *Lexicon) IntensifierFactor(word string) (float64, bool) {
	if factor, ok := l.intensifiers[word]; ok {
		return factor, true
	}
	return 1.0, false
}

// IsStopWord reports whether word is excluded from keyword extraction.
func (l *Lexicon) IsStopWord(word string) bool {
	return l.stopWords[word]
}

// LexiconFile is the YAML shape of an operator-provided lexicon extension.
// Entries are merged into the built-in defaults.
type LexiconFile struct {
	PositiveWords []string           `yaml:"positive_words"`
	NegativeWords []string           `yaml:"negative_words"`
	NegationWords []string           `yaml:"negation_words"`
	Intensifiers  map[string]float64 `yaml:"intensifiers"`
	StopWords     []string           `yaml:"stop_words"`
}

// LoadLexicon builds a lexicon from the built-in defaults extended with the
// word lists in a YAML file. An empty path returns the defaults unchanged.
func LoadLexicon(path string) (*Lexicon, error) {
	lexicon := DefaultLexicon()
	if path == "" {
		return lexicon, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}

	var file LexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}

	for _, word := range file.PositiveWords {
		lexicon.positiveWords[strings.ToLower(word)] = true
	}
	for _, word := range file.NegativeWords {
		lexicon.negativeWords[strings.ToLower(word)] = true
	}
	for _, word := range file.NegationWords {
		lexicon.negationWords[strings.ToLower(word)] = true
	}
	for word, factor := range file.Intensifiers {
		if factor <= 1.0 {
			return nil, fmt.Errorf("intensifier %q must have a multiplier above 1.0, got %v", word, factor)
		}
		lexicon.intensifiers[strings.ToLower(word)] = factor
	}
	for _, word := range file.StopWords {
		lexicon.stopWords[strings.ToLower(word)] = true
	}

	if err := lexicon.validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon file %s: %w", path, err)
	}

	return lexicon, nil
}

// validate enforces the lexicon invariant: no word may appear in both the
// positive and negative sets.
func (l *Lexicon) validate() error {
	for word := range l.positiveWords {
		if l.negativeWords[word] {
			return fmt.Errorf("word %q appears in both positive and negative sets", word)
		}
	}
	return nil
}

// DefaultLexicon returns the built-in Swedish/English lexicon. All entries
// are lowercase; lookups compare against lowercase tokens only.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		positiveWords: wordSet(
			// Swedish
			"bra", "fantastisk", "utmärkt", "perfekt", "underbar", "toppenklass",
			"rekommenderar", "nöjd", "glad", "lysande", "grym", "suverän",
			"strålande", "magnifik", "förtjusande", "härlig",
			"fenomenal", "otrolig", "enastående", "felfri", "imponerande",
			"tillfredsställande", "prisvärd", "effektiv", "snabb", "hjälpsam",
			"vänlig", "professionell", "kvalitet", "värd", "rekommenderar starkt",
			"älskar", "fantastisk service", "bästa", "toppen", "superbra",
			"kämpa", "tacksam", "imponerad", "överträffade förväntningar",

			// English
			"excellent", "amazing", "great", "good", "perfect", "wonderful",
			"love", "awesome", "best", "brilliant", "outstanding", "fantastic",
			"superb", "marvelous", "exceptional", "impressive", "satisfying",
			"pleased", "delighted", "thrilled", "happy", "satisfied",
			"recommend", "worth", "value", "quality", "fast", "friendly",
			"helpful", "professional", "efficient", "exceeded expectations",
		),
		negativeWords: wordSet(
			// Swedish
			"dålig", "hemsk", "fruktansvärd", "besviken", "sämst", "trasig",
			"problem", "fel", "kass", "usel", "ruskig", "otillfredsställande",
			"besvikelse", "irriterande", "förfärlig", "katastrofal", "värdelös",
			"opålitlig", "långsam", "dyr", "överpris", "svårt", "komplicerat",
			"otrevlig", "oprofessionell", "slarvig", "bristfällig", "misslyckad",
			"ånger", "slöseri", "inte värt", "rekommenderar inte", "undvik",
			"bedrägeri", "bluff", "skandal", "försenad", "förlorad", "skadad",

			// English
			"bad", "terrible", "awful", "worst", "horrible", "hate",
			"disappointed", "broken", "failed", "poor", "wrong", "disgusting",
			"useless", "waste", "scam", "fraud", "delayed", "damaged",
			"unreliable", "slow", "expensive", "overpriced", "complicated",
			"unprofessional", "rude", "regret", "avoid", "not recommend",
		),
		negationWords: wordSet(
			"inte", "icke", "ej", "aldrig", "ingenting", "inget", "ingen",
			"not", "no", "never", "nothing", "none", "neither", "nor",
		),
		intensifiers: map[string]float64{
			"mycket": 1.5, "väldigt": 1.5, "extremt": 2.0, "otroligt": 2.0,
			"helt": 1.3, "verkligen": 1.4, "absolut": 1.8, "definitivt": 1.4,
			"very": 1.5, "extremely": 2.0, "absolutely": 1.8, "really": 1.4,
			"incredibly": 2.0, "totally": 1.6, "completely": 1.7, "quite": 1.2,
		},
		stopWords: wordSet(
			"och", "i", "att", "det", "som", "på", "de", "av", "för", "till",
			"är", "en", "den", "har", "inte", "var", "om", "med", "kan", "man",
			"så", "från", "ut", "när", "bara", "sina", "där", "nu", "över",
			"skulle", "då", "hade", "upp", "mot", "också", "än", "mycket",
			"bra", "dålig", "dåligt", "bättre", "sämre", "helt", "väldigt",
			"riktigt",
		),
	}
}

// wordSet builds a lookup set from a list of words.
func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
