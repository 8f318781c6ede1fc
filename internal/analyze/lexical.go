package analyze

import (
	"strings"
	"unicode"
)

// Keyword extraction keeps noun-like content words: tokens with particles
// stripped, longer than one rune, not stopwords, not punctuation or bare
// numbers. Verbal endings disqualify a token (predicates are not content
// words). The result is a set; order carries no meaning.

// stopwords are high-frequency function words excluded from keywords.
var stopwords = map[string]bool{
	"그리고": true, "그래서": true, "하지만": true, "그러나": true,
	"또한": true, "그냥": true, "정말": true, "매우": true, "아주": true,
	"너무": true, "요즘": true, "이번": true, "저번": true, "우리": true,
	"제가": true, "내가": true, "같이": true, "함께": true, "대해": true,
	"위해": true, "모든": true, "어떤": true, "이런": true, "그런": true,
}

// particles are postpositions stripped from token tails, longest first.
// A particle is only stripped when at least two runes remain, so "회의"
// keeps its final syllable.
var particles = []string{
	"에서는", "에게서", "으로는", "까지는",
	"에서", "에게", "으로", "까지", "부터", "처럼", "보다", "께서", "라고", "마다",
	"은", "는", "이", "가", "을", "를", "에", "로", "와", "과", "의", "도", "만",
}

// verbalEndings mark predicate tokens that are not noun-like.
var verbalEndings = []string{
	"습니다", "합니다", "입니다", "됩니다",
	"했다", "한다", "하다", "된다", "되다", "이다",
	"있다", "없다", "하고", "해서", "하며", "했고",
	"해요", "에요", "예요", "네요",
}

// extractKeywords returns the deduplicated content words of the text.
// Never nil.
func extractKeywords(text string) []string {
	keywords := []string{}
	seen := map[string]bool{}

	for _, tok := range splitTokens(text) {
		w := stripParticle(tok)
		if !isContentWord(w) {
			continue
		}
		if !seen[w] {
			seen[w] = true
			keywords = append(keywords, w)
		}
	}
	return keywords
}

// splitTokens breaks text into letter/digit runs.
func splitTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// stripParticle removes one trailing postposition when enough of the token
// remains to stand alone.
func stripParticle(tok string) string {
	runes := []rune(tok)
	for _, p := range particles {
		pr := []rune(p)
		if len(runes)-len(pr) < 2 {
			continue
		}
		if strings.HasSuffix(tok, p) {
			return string(runes[:len(runes)-len(pr)])
		}
	}
	return tok
}

func isContentWord(w string) bool {
	runes := []rune(w)
	if len(runes) <= 1 {
		return false
	}
	if stopwords[w] {
		return false
	}
	hasLetter := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}
	for _, end := range verbalEndings {
		if strings.HasSuffix(w, end) {
			return false
		}
	}
	return true
}

// Sentiment word lists. Scoring counts list words present in the text
// (substring containment, one point per listed word); majority wins and
// ties are neutral.
var (
	positiveWords = []string{"좋다", "성공", "완료", "달성", "만족"}
	negativeWords = []string{"문제", "지연", "실패", "어려움", "부족"}
)

// Sentiment values.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// analyzeSentiment scores the full text against the fixed word lists.
func analyzeSentiment(text string) string {
	positive, negative := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(text, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
