package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quixbot/internal/domain"
)

// PostgresChatLogRepository guarda o histórico de conversas no PostgreSQL.
type PostgresChatLogRepository struct {
	db *sql.DB
}

// NewPostgresChatLogRepository cria uma nova instância do repositório.
func NewPostgresChatLogRepository(db *sql.DB) domain.ChatLogRepository {
	return &PostgresChatLogRepository{db: db}
}

// Save registra uma troca de mensagens no histórico.
func (r *PostgresChatLogRepository) Save(ctx context.Context, entry domain.ChatLogEntry) error {
	query := `
    INSERT INTO chat_history (user_id, user_message, bot_response, intent, confidence, timestamp)
    VALUES ($1, $2, $3, $4, $5, $6)`

	var intent sql.NullString
	if entry.Intent != nil {
		intent = sql.NullString{String: *entry.Intent, Valid: true}
	}
	var confidence sql.NullFloat64
	if entry.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *entry.Confidence, Valid: true}
	}

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query, entry.UserID, entry.Question, entry.Answer, intent, confidence, ts)
	if err != nil {
		return fmt.Errorf("erro ao salvar histórico de conversa: %w", err)
	}
	return nil
}

// ListAll retorna todo o histórico de conversas, usado pelo retreinamento
// periódico.
func (r *PostgresChatLogRepository) ListAll(ctx context.Context) ([]domain.ChatLogEntry, error) {
	query := `
    SELECT user_id, user_message, bot_response, intent, confidence, timestamp
    FROM chat_history
    ORDER BY timestamp ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico de conversas: %w", err)
	}
	defer rows.Close()

	var entries []domain.ChatLogEntry
	for rows.Next() {
		var entry domain.ChatLogEntry
		var intent sql.NullString
		var confidence sql.NullFloat64

		if err := rows.Scan(&entry.UserID, &entry.Question, &entry.Answer, &intent, &confidence, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha do histórico: %w", err)
		}
		if intent.Valid {
			entry.Intent = &intent.String
		}
		if confidence.Valid {
			entry.Confidence = &confidence.Float64
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração do histórico: %w", err)
	}
	return entries, nil
}
