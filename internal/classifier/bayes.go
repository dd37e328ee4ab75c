package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"quixbot/internal/domain"
)

// Classifier é um classificador de intents bag-of-words (naive Bayes
// multinomial com suavização de Laplace). Os documentos são acumulados com
// AddDocument e só passam a valer depois de Train.
//
// Escritas (AddDocument/Train/Load) são serializadas por mutex; leituras
// (GetClassifications/Classify) usam o último modelo publicado, trocado
// atomicamente ao fim de cada treinamento, e nunca observam um modelo pela
// metade.
type Classifier struct {
	mu    sync.Mutex
	docs  []document
	seen  map[string]struct{}
	model atomic.Pointer[model]
}

type document struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// model é o estado treinado, imutável depois de construído.
type model struct {
	labels      []string
	docCounts   map[string]int
	tokenCounts map[string]map[string]int
	totalTokens map[string]int
	vocabSize   int
	totalDocs   int
}

// New cria um classificador vazio, ainda sem documentos.
func New() *Classifier {
	return &Classifier{seen: make(map[string]struct{})}
}

// AddDocument registra um exemplo de treinamento. O exemplo só é
// considerado após a próxima chamada a Train. Pares (texto, intent)
// repetidos são ignorados, o que torna o retreinamento a partir do
// histórico idempotente.
func (c *Classifier) AddDocument(text, label string) {
	text = strings.TrimSpace(text)
	if text == "" || label == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := text + "\x00" + label
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.docs = append(c.docs, document{Text: text, Label: label})
}

// Train reconstrói os parâmetros estatísticos a partir de todos os
// documentos registrados e publica o novo modelo.
func (c *Classifier) Train() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trainLocked()
}

func (c *Classifier) trainLocked() {
	if len(c.docs) == 0 {
		return
	}

	m := &model{
		docCounts:   make(map[string]int),
		tokenCounts: make(map[string]map[string]int),
		totalTokens: make(map[string]int),
		totalDocs:   len(c.docs),
	}

	vocab := make(map[string]struct{})
	for _, doc := range c.docs {
		if _, ok := m.tokenCounts[doc.Label]; !ok {
			m.tokenCounts[doc.Label] = make(map[string]int)
			m.labels = append(m.labels, doc.Label)
		}
		m.docCounts[doc.Label]++

		for _, tok := range tokenize(doc.Text) {
			m.tokenCounts[doc.Label][tok]++
			m.totalTokens[doc.Label]++
			vocab[tok] = struct{}{}
		}
	}
	m.vocabSize = len(vocab)
	sort.Strings(m.labels)

	c.model.Store(m)
}

// GetClassifications retorna todos os intents com suas confianças,
// ordenados da maior para a menor. A sequência é vazia apenas quando o
// modelo nunca foi treinado.
func (c *Classifier) GetClassifications(text string) []domain.Classification {
	m := c.model.Load()
	if m == nil || len(m.labels) == 0 {
		return nil
	}

	tokens := tokenize(text)

	// Log-verossimilhança por intent, depois normalizada em [0,1] para que
	// a soma das confianças seja 1.
	logProbs := make([]float64, len(m.labels))
	for i, label := range m.labels {
		lp := math.Log(float64(m.docCounts[label]) / float64(m.totalDocs))
		denom := float64(m.totalTokens[label] + m.vocabSize)
		for _, tok := range tokens {
			count := m.tokenCounts[label][tok]
			lp += math.Log(float64(count+1) / denom)
		}
		logProbs[i] = lp
	}

	maxLP := logProbs[0]
	for _, lp := range logProbs[1:] {
		if lp > maxLP {
			maxLP = lp
		}
	}

	var sum float64
	probs := make([]float64, len(logProbs))
	for i, lp := range logProbs {
		probs[i] = math.Exp(lp - maxLP)
		sum += probs[i]
	}

	result := make([]domain.Classification, len(m.labels))
	for i, label := range m.labels {
		result[i] = domain.Classification{Label: label, Confidence: probs[i] / sum}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	return result
}

// Classify retorna o intent mais provável para o texto. Falha com
// domain.ErrUntrainedModel quando nenhum documento foi treinado.
func (c *Classifier) Classify(text string) (string, error) {
	classifications := c.GetClassifications(text)
	if len(classifications) == 0 {
		return "", domain.ErrUntrainedModel
	}
	return classifications[0].Label, nil
}

// Trained informa se o classificador já publicou algum modelo.
func (c *Classifier) Trained() bool {
	m := c.model.Load()
	return m != nil && len(m.labels) > 0
}

type snapshot struct {
	Docs []document `json:"docs"`
}

// Save serializa o estado do classificador. O snapshot carrega os
// documentos de treinamento; Load reconstrói exatamente o mesmo modelo.
func (c *Classifier) Save() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(snapshot{Docs: c.docs})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar classificador: %w", err)
	}
	return data, nil
}

// Load restaura um snapshot produzido por Save e treina o modelo. Um
// modelo restaurado classifica de forma idêntica ao que o gerou, até que
// novos documentos sejam adicionados.
func (c *Classifier) Load(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("erro ao restaurar classificador: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = snap.Docs
	c.seen = make(map[string]struct{}, len(snap.Docs))
	for _, doc := range snap.Docs {
		c.seen[doc.Text+"\x00"+doc.Label] = struct{}{}
	}
	c.trainLocked()
	return nil
}

// tokenize normaliza para minúsculas e separa por espaços em branco,
// preservando a ordem dos tokens.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
