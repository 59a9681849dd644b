package analysis

// Service bundles the sentiment analyzer and keyword extractor over one
// shared immutable lexicon. It is the unit the ingestion pipeline consumes:
// construct once at startup, pass by reference to whoever needs it.
type Service struct {
	lexicon     *Lexicon
	analyzer    *SentimentAnalyzer
	extractor   *KeywordExtractor
	maxKeywords int
}

// NewService creates an analysis service. A nil lexicon uses the built-in
// defaults.
func NewService(lexicon *Lexicon) *Service {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Service{
		lexicon:     lexicon,
		analyzer:    NewSentimentAnalyzer(lexicon),
		extractor:   NewKeywordExtractor(lexicon),
		maxKeywords: DefaultMaxKeywords,
	}
}

// Analyze scores a single review text.
func (s *Service) Analyze(text string) SentimentResult {
	return s.analyzer.Analyze(text)
}

// Keywords extracts up to DefaultMaxKeywords keywords from a single text.
func (s *Service) Keywords(text string) []string {
	return s.extractor.Extract(text, s.maxKeywords)
}

// AnalyzeBatch scores and extracts keywords for each text independently,
// preserving input order. A text that individually degrades still produces
// a neutral result in place; a single bad record never aborts the batch.
func (s *Service) AnalyzeBatch(texts []string) []ReviewAnalysis {
	results := make([]ReviewAnalysis, 0, len(texts))
	for _, text := range texts {
		results = append(results, ReviewAnalysis{
			SentimentResult: s.analyzer.Analyze(text),
			Keywords:        s.extractor.Extract(text, s.maxKeywords),
		})
	}
	return results
}
