package matcher

import (
	"sort"
	"strings"

	"quixbot/internal/domain"
)

// Match é uma entrada da base com a similaridade calculada para a consulta.
type Match struct {
	Entry domain.Entry
	Score float64
}

// Tokenize normaliza o texto para minúsculas e separa por espaços em
// branco, devolvendo o conjunto de tokens.
func Tokenize(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Similarity calcula o índice de Jaccard entre os conjuntos de tokens dos
// dois textos: |interseção| / |união|, sempre em [0,1].
func Similarity(a, b string) float64 {
	return jaccard(Tokenize(a), Tokenize(b))
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// BestMatch retorna a entrada do corpus com a maior similaridade com a
// consulta. Empates ficam com a primeira ocorrência na ordem do corpus.
func BestMatch(query string, corpus []domain.Entry) (Match, bool) {
	if len(corpus) == 0 {
		return Match{}, false
	}

	queryTokens := Tokenize(query)
	best := Match{Entry: corpus[0], Score: jaccard(queryTokens, Tokenize(corpus[0].Question))}
	for _, entry := range corpus[1:] {
		score := jaccard(queryTokens, Tokenize(entry.Question))
		if score > best.Score {
			best = Match{Entry: entry, Score: score}
		}
	}
	return best, true
}

// Suggestions retorna até k entradas com similaridade acima de minScore,
// ordenadas da maior para a menor. A ordenação é estável para preservar a
// ordem do corpus em empates.
func Suggestions(query string, corpus []domain.Entry, k int, minScore float64) []Match {
	if k <= 0 {
		return nil
	}

	queryTokens := Tokenize(query)
	var matches []Match
	for _, entry := range corpus {
		score := jaccard(queryTokens, Tokenize(entry.Question))
		if score > minScore {
			matches = append(matches, Match{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
