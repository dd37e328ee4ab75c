package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"quixbot/internal/domain"
)

// Base é a base de conhecimento em memória. Ela é carregada uma vez na
// inicialização e só cresce: o loop de feedback adiciona novas entradas
// quando uma pergunta sem resposta é respondida por um humano.
type Base struct {
	mu       sync.RWMutex
	entries  []domain.Entry
	byIntent map[string]int
}

// Load lê o arquivo JSON de perguntas e respostas e monta a base.
// Entradas sem intent recebem um derivado da própria posição.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler base de conhecimento %s: %w", path, err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("erro ao interpretar base de conhecimento %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("base de conhecimento %s está vazia", path)
	}

	base := New()
	for i, entry := range entries {
		if strings.TrimSpace(entry.Question) == "" || strings.TrimSpace(entry.Answer) == "" {
			continue
		}
		if entry.Intent == "" {
			entry.Intent = fmt.Sprintf("kb-%d", i+1)
		}
		base.Add(entry)
	}
	if base.Len() == 0 {
		return nil, fmt.Errorf("base de conhecimento %s não tem entradas válidas", path)
	}
	return base, nil
}

// New cria uma base vazia.
func New() *Base {
	return &Base{byIntent: make(map[string]int)}
}

// Add insere uma entrada. Se o intent já existe, a resposta canônica é
// mantida e a nova pergunta passa a ser só mais um exemplo de treinamento
// (responsabilidade do chamador).
func (b *Base) Add(entry domain.Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.byIntent[entry.Intent]; exists {
		b.entries = append(b.entries, entry)
		return
	}
	b.byIntent[entry.Intent] = len(b.entries)
	b.entries = append(b.entries, entry)
}

// FindByIntent retorna a entrada canônica de um intent.
func (b *Base) FindByIntent(intent string) (domain.Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	idx, ok := b.byIntent[intent]
	if !ok {
		return domain.Entry{}, false
	}
	return b.entries[idx], true
}

// Snapshot retorna uma cópia estável das entradas, na ordem de inserção.
func (b *Base) Snapshot() []domain.Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len retorna o número de entradas.
func (b *Base) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
