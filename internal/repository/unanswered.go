package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quixbot/internal/domain"
)

// PostgresUnansweredRepository guarda as perguntas sem resposta no PostgreSQL.
type PostgresUnansweredRepository struct {
	db *sql.DB
}

// NewPostgresUnansweredRepository cria uma nova instância do repositório.
func NewPostgresUnansweredRepository(db *sql.DB) domain.UnansweredRepository {
	return &PostgresUnansweredRepository{db: db}
}

// Save registra uma pergunta que ficou sem resposta.
func (r *PostgresUnansweredRepository) Save(ctx context.Context, userID, question string) error {
	query := `INSERT INTO unanswered_questions (user_id, question) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, userID, question); err != nil {
		return fmt.Errorf("erro ao salvar pergunta sem resposta: %w", err)
	}
	return nil
}

// List retorna todas as perguntas sem resposta, das mais antigas para as
// mais recentes.
func (r *PostgresUnansweredRepository) List(ctx context.Context) ([]domain.UnansweredQuestion, error) {
	query := `
    SELECT id, user_id, question, created_at
    FROM unanswered_questions
    ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar perguntas sem resposta: %w", err)
	}
	defer rows.Close()

	var questions []domain.UnansweredQuestion
	for rows.Next() {
		var q domain.UnansweredQuestion
		if err := rows.Scan(&q.ID, &q.UserID, &q.Question, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear pergunta sem resposta: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração das perguntas sem resposta: %w", err)
	}
	return questions, nil
}

// Get busca uma pergunta sem resposta pelo id. Retorna domain.ErrNotFound
// quando ela não existe.
func (r *PostgresUnansweredRepository) Get(ctx context.Context, id int64) (*domain.UnansweredQuestion, error) {
	query := `SELECT id, user_id, question, created_at FROM unanswered_questions WHERE id = $1`

	var q domain.UnansweredQuestion
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.UserID, &q.Question, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pergunta %d: %w", id, err)
	}
	return &q, nil
}

// Remove apaga a pergunta pelo id e informa se alguma linha foi removida.
func (r *PostgresUnansweredRepository) Remove(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM unanswered_questions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("erro ao remover pergunta %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar remoção da pergunta %d: %w", id, err)
	}
	return affected > 0, nil
}
