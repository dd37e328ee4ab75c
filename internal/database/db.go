package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Open abre a conexão com o banco de dados PostgreSQL e garante que as
// tabelas necessárias existam.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão com o banco de dados: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar com o banco de dados (ping): %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	logrus.Info("Conexão com o banco de dados PostgreSQL estabelecida com sucesso")
	return db, nil
}

// createTables cria as tabelas do bot, se elas não existirem.
func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS chat_history (
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			user_message TEXT NOT NULL,
			bot_response TEXT NOT NULL,
			intent VARCHAR(255),
			confidence DOUBLE PRECISION,
			timestamp TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS unanswered_questions (
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			question TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_academic_data (
			user_id VARCHAR(255) PRIMARY KEY,
			matricula VARCHAR(10) NOT NULL,
			semestre INT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("erro ao criar tabelas do bot: %w", err)
		}
	}
	return nil
}
