package classifier

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore guarda o snapshot do modelo em um único arquivo, sobrescrito a
// cada salvamento.
type FileStore struct {
	path string
}

// NewFileStore cria um store apontando para o caminho informado.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadSnapshot lê o snapshot salvo. O segundo retorno indica se o arquivo
// existia.
func (s *FileStore) LoadSnapshot() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("erro ao ler snapshot do modelo: %w", err)
	}
	return data, true, nil
}

// SaveSnapshot grava o snapshot, criando os diretórios necessários.
func (s *FileStore) SaveSnapshot(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório do modelo: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("erro ao gravar snapshot do modelo: %w", err)
	}
	return nil
}
