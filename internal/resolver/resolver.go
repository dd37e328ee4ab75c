package resolver

import (
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"quixbot/internal/domain"
	"quixbot/internal/knowledge"
	"quixbot/internal/matcher"
)

// SimilarityIntent marca respostas obtidas pelo fallback de similaridade
// léxica, e não pelo classificador.
const SimilarityIntent = "similarity_match"

// minQueryLength é o tamanho mínimo, em runas, de uma consulta que vale a
// pena resolver. Abaixo disso a mensagem é tratada como ruído.
const minQueryLength = 3

// Outcome distingue os resultados possíveis de uma resolução.
type Outcome int

const (
	// Answered indica que uma resposta foi encontrada.
	Answered Outcome = iota
	// Unresolved indica que nenhuma resposta passou dos limiares.
	Unresolved
	// TooShort indica que a consulta foi descartada como ruído.
	TooShort
)

// Result é o resultado tipado de uma resolução.
type Result struct {
	Outcome    Outcome
	Answer     string
	Intent     string
	Confidence float64
}

// Classifier é a visão que o resolvedor tem do classificador de intents.
type Classifier interface {
	GetClassifications(text string) []domain.Classification
}

// Resolver combina o classificador e o matcher de similaridade sobre a
// base de conhecimento, aplicando a política de limiares de confiança.
type Resolver struct {
	kb                  *knowledge.Base
	classifier          Classifier
	classifierThreshold float64
	similarityThreshold float64
}

// New cria um resolvedor com os limiares informados.
func New(kb *knowledge.Base, c Classifier, classifierThreshold, similarityThreshold float64) *Resolver {
	return &Resolver{
		kb:                  kb,
		classifier:          c,
		classifierThreshold: classifierThreshold,
		similarityThreshold: similarityThreshold,
	}
}

// Resolve aplica a política de resolução em duas etapas:
//
//  1. consultas com menos de 3 runas são descartadas como ruído;
//  2. se a melhor classificação tem confiança >= classifierThreshold, a
//     resposta do intent é retornada;
//  3. senão, se a melhor similaridade de Jaccard >= similarityThreshold, a
//     resposta dessa entrada é retornada marcada como similarity_match;
//  4. senão, a consulta fica sem resposta.
func (r *Resolver) Resolve(query string) Result {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return Result{Outcome: TooShort}
	}

	if classifications := r.classifier.GetClassifications(query); len(classifications) > 0 {
		top := classifications[0]
		if top.Confidence >= r.classifierThreshold {
			if entry, ok := r.kb.FindByIntent(top.Label); ok {
				logrus.WithFields(logrus.Fields{
					"intent":     top.Label,
					"confidence": top.Confidence,
				}).Debug("Consulta resolvida pelo classificador")
				return Result{
					Outcome:    Answered,
					Answer:     entry.Answer,
					Intent:     top.Label,
					Confidence: top.Confidence,
				}
			}
		}
	}

	if best, ok := matcher.BestMatch(query, r.kb.Snapshot()); ok && best.Score >= r.similarityThreshold {
		logrus.WithFields(logrus.Fields{
			"intent": best.Entry.Intent,
			"score":  best.Score,
		}).Debug("Consulta resolvida por similaridade")
		return Result{
			Outcome:    Answered,
			Answer:     best.Entry.Answer,
			Intent:     SimilarityIntent,
			Confidence: best.Score,
		}
	}

	return Result{Outcome: Unresolved}
}
