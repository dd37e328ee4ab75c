package repository

import (
	"context"
	"database/sql"
	"fmt"

	"quixbot/internal/domain"
)

// PostgresAcademicRepository guarda os dados acadêmicos no PostgreSQL.
type PostgresAcademicRepository struct {
	db *sql.DB
}

// NewPostgresAcademicRepository cria uma nova instância do repositório.
func NewPostgresAcademicRepository(db *sql.DB) domain.AcademicRepository {
	return &PostgresAcademicRepository{db: db}
}

// Upsert insere ou atualiza os dados acadêmicos de um usuário.
func (r *PostgresAcademicRepository) Upsert(ctx context.Context, record domain.AcademicRecord) error {
	query := `
    INSERT INTO user_academic_data (user_id, matricula, semestre, updated_at)
    VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
    ON CONFLICT (user_id) DO UPDATE SET
        matricula = EXCLUDED.matricula,
        semestre = EXCLUDED.semestre,
        updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, record.UserID, record.Matricula, record.Semestre); err != nil {
		return fmt.Errorf("erro ao salvar dados acadêmicos: %w", err)
	}
	return nil
}
