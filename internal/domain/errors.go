package domain

import "errors"

var (
	// ErrUntrainedModel indica que o classificador foi invocado sem nenhum
	// documento de treinamento.
	ErrUntrainedModel = errors.New("classificador não foi treinado")

	// ErrNotFound indica que a pergunta sem resposta não existe.
	ErrNotFound = errors.New("pergunta não encontrada")

	// ErrAlreadyAnswered indica que a pergunta já foi respondida e o
	// classificador já foi treinado com ela.
	ErrAlreadyAnswered = errors.New("pergunta já foi respondida")
)
