package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"quixbot/internal/classifier"
	"quixbot/internal/domain"
	"quixbot/internal/knowledge"
	"quixbot/internal/matcher"
)

// ModelStore persiste o snapshot do classificador treinado.
type ModelStore interface {
	SaveSnapshot(data []byte) error
}

// Service implementa o loop de feedback: registra perguntas sem resposta,
// sugere perguntas parecidas e, quando um humano responde, devolve o novo
// conhecimento para a base e para o classificador.
type Service struct {
	kb         *knowledge.Base
	classifier *classifier.Classifier
	unanswered domain.UnansweredRepository
	chatlog    domain.ChatLogRepository
	store      ModelStore

	suggestionThreshold float64
	maxSuggestions      int
}

// New cria o serviço de feedback.
func New(
	kb *knowledge.Base,
	c *classifier.Classifier,
	unanswered domain.UnansweredRepository,
	chatlog domain.ChatLogRepository,
	store ModelStore,
	suggestionThreshold float64,
	maxSuggestions int,
) *Service {
	return &Service{
		kb:                  kb,
		classifier:          c,
		unanswered:          unanswered,
		chatlog:             chatlog,
		store:               store,
		suggestionThreshold: suggestionThreshold,
		maxSuggestions:      maxSuggestions,
	}
}

// HandleUnresolved registra a pergunta sem resposta e monta a mensagem de
// "você quis dizer" com as perguntas mais parecidas da base. Falha de
// persistência vira log e um pedido de desculpas genérico, nunca um crash.
func (s *Service) HandleUnresolved(ctx context.Context, userID, question string) string {
	if err := s.unanswered.Save(ctx, userID, question); err != nil {
		logrus.WithError(err).WithField("user_id", userID).
			Error("Falha ao registrar pergunta sem resposta")
		return "Desculpe, não consegui processar sua pergunta. Tente novamente mais tarde."
	}

	suggestions := matcher.Suggestions(question, s.kb.Snapshot(), s.maxSuggestions, s.suggestionThreshold)
	if len(suggestions) == 0 {
		return "Ainda não sei responder essa pergunta, mas ela foi registrada e a coordenação vai respondê-la em breve. 📝"
	}

	var b strings.Builder
	b.WriteString("Ainda não sei responder essa pergunta, mas ela foi registrada. Você quis dizer:\n")
	for i, sug := range suggestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sug.Entry.Question)
	}
	return strings.TrimRight(b.String(), "\n")
}

// SubmitAnswer recebe a resposta humana para uma pergunta sem resposta:
// cria a entrada de conhecimento com um intent novo, treina o
// classificador de forma síncrona e remove a pergunta da fila.
//
// A remoção acontece por último e decide o resultado: se outra submissão
// já removeu a linha, a segunda recebe domain.ErrAlreadyAnswered — no
// máximo um retreinamento efetivo por pergunta respondida.
func (s *Service) SubmitAnswer(ctx context.Context, unansweredID int64, answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fmt.Errorf("resposta vazia para a pergunta %d", unansweredID)
	}

	question, err := s.unanswered.Get(ctx, unansweredID)
	if err != nil {
		return err
	}

	removed, err := s.unanswered.Remove(ctx, unansweredID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrAlreadyAnswered
	}

	intent := "learned-" + uuid.NewString()
	s.kb.Add(domain.Entry{Intent: intent, Question: question.Question, Answer: answer})
	s.classifier.AddDocument(question.Question, intent)
	s.classifier.Train()

	s.persistModel()

	logrus.WithFields(logrus.Fields{
		"unanswered_id": unansweredID,
		"intent":        intent,
	}).Info("Pergunta respondida e classificador retreinado")
	return nil
}

// RetrainFromHistory repassa o histórico de conversas respondidas como
// documentos extras de treinamento. É um enriquecimento opcional e
// idempotente: rodar duas vezes sobre o mesmo histórico não muda o
// comportamento além do retreinamento normal.
func (s *Service) RetrainFromHistory(ctx context.Context) error {
	entries, err := s.chatlog.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("erro ao carregar histórico para retreinamento: %w", err)
	}

	added := 0
	for _, entry := range entries {
		if entry.Intent == nil || *entry.Intent == "" {
			continue
		}
		if _, ok := s.kb.FindByIntent(*entry.Intent); !ok {
			continue
		}
		s.classifier.AddDocument(entry.Question, *entry.Intent)
		added++
	}
	if added == 0 {
		return nil
	}

	s.classifier.Train()
	s.persistModel()

	logrus.WithField("documentos", added).Info("Classificador retreinado com o histórico de conversas")
	return nil
}

// persistModel salva o snapshot do modelo; falha é registrada, não
// propagada — o snapshot é reconstruível a partir da base e do histórico.
func (s *Service) persistModel() {
	if s.store == nil {
		return
	}
	data, err := s.classifier.Save()
	if err != nil {
		logrus.WithError(err).Error("Falha ao serializar o modelo")
		return
	}
	if err := s.store.SaveSnapshot(data); err != nil {
		logrus.WithError(err).Error("Falha ao salvar snapshot do modelo")
	}
}
