package domain

import (
	"context"
	"time"
)

// UnansweredQuestion é uma pergunta que o resolvedor não conseguiu
// responder, aguardando resposta humana.
type UnansweredQuestion struct {
	ID        int64
	UserID    string
	Question  string
	CreatedAt time.Time
}

// ChatLogEntry registra uma troca de mensagens para o histórico.
// Intent e Confidence são nulos quando a pergunta ficou sem resposta.
type ChatLogEntry struct {
	UserID     string
	Question   string
	Answer     string
	Intent     *string
	Confidence *float64
	Timestamp  time.Time
}

// AcademicRecord são os dados acadêmicos coletados pelo fluxo de registro.
type AcademicRecord struct {
	UserID    string
	Matricula string
	Semestre  int
}

// UnansweredRepository persiste perguntas sem resposta.
type UnansweredRepository interface {
	Save(ctx context.Context, userID, question string) error
	List(ctx context.Context) ([]UnansweredQuestion, error)
	Get(ctx context.Context, id int64) (*UnansweredQuestion, error)
	Remove(ctx context.Context, id int64) (bool, error)
}

// ChatLogRepository persiste o histórico de conversas.
type ChatLogRepository interface {
	Save(ctx context.Context, entry ChatLogEntry) error
	ListAll(ctx context.Context) ([]ChatLogEntry, error)
}

// AcademicRepository persiste os dados acadêmicos dos usuários.
type AcademicRepository interface {
	Upsert(ctx context.Context, record AcademicRecord) error
}
