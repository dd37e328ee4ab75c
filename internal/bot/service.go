package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"quixbot/internal/domain"
	"quixbot/internal/resolver"
	"quixbot/internal/session"
)

// Button é um botão inline com o dado de callback associado.
type Button struct {
	Text string
	Data string
}

// Reply é uma resposta estruturada, independente de transporte: texto,
// teclado de respostas rápidas opcional e botões inline opcionais.
type Reply struct {
	Text     string
	Keyboard [][]string
	Buttons  []Button
}

// Feedback é a visão que o bot tem do loop de feedback.
type Feedback interface {
	HandleUnresolved(ctx context.Context, userID, question string) string
}

// Service é a máquina de estados conversacional: roteia cada mensagem para
// transições de menu, para o fluxo de coleta de dados ou para o resolvedor
// de respostas, conforme o modo atual da sessão do usuário.
type Service struct {
	sessions *session.Store
	resolver *resolver.Resolver
	feedback Feedback
	chatlog  domain.ChatLogRepository
	academic domain.AcademicRepository

	// menuOnly permite operar sem classificador treinado, respondendo
	// apenas pelas opções de menu.
	menuOnly bool
}

// New cria o serviço conversacional.
func New(
	sessions *session.Store,
	res *resolver.Resolver,
	fb Feedback,
	chatlog domain.ChatLogRepository,
	academic domain.AcademicRepository,
	menuOnly bool,
) *Service {
	return &Service{
		sessions: sessions,
		resolver: res,
		feedback: fb,
		chatlog:  chatlog,
		academic: academic,
		menuOnly: menuOnly,
	}
}

// HandleStart trata o /start: reinicia a sessão e apresenta o menu.
func (s *Service) HandleStart(userID, name string) []Reply {
	s.sessions.Reset(userID)
	return []Reply{{Text: greeting(name), Keyboard: mainMenuKeyboard()}}
}

// HandleMessage processa uma mensagem de texto livre do usuário e retorna
// as respostas a enviar. É o único ponto de entrada de mensagens.
func (s *Service) HandleMessage(ctx context.Context, userID, name, text string) []Reply {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var replies []Reply
	s.sessions.WithSession(userID, func(sess *session.Session) {
		replies = s.dispatch(ctx, sess, userID, name, text)
	})
	return replies
}

// HandleCallback trata os botões inline Sim/Não do acompanhamento.
func (s *Service) HandleCallback(userID, data string) []Reply {
	switch data {
	case "sim":
		return []Reply{{Text: followUpAskAgain}}
	case "nao":
		s.sessions.Reset(userID)
		return []Reply{
			{Text: followUpGoodbye},
			{Text: greeting(""), Keyboard: mainMenuKeyboard()},
		}
	default:
		return nil
	}
}

func (s *Service) dispatch(ctx context.Context, sess *session.Session, userID, name, text string) []Reply {
	// Voltar ao menu vale em qualquer estado.
	if isMenuCommand(text) {
		sess.ResetToMenu()
		return []Reply{{Text: greeting(name), Keyboard: mainMenuKeyboard()}}
	}

	if sess.Mode == session.CollectingField {
		return s.collectField(ctx, sess, userID, text)
	}

	// Seleções de menu nunca passam pelo resolvedor.
	if reply, ok := s.menuSelection(sess, text); ok {
		return reply
	}

	if s.menuOnly {
		return []Reply{{Text: menuOnlyNotice, Keyboard: mainMenuKeyboard()}}
	}

	return s.answer(ctx, userID, text)
}

// menuSelection verifica se o texto é uma opção do menu principal
// (comparação exata, sem diferenciar maiúsculas) ou um atalho numérico.
func (s *Service) menuSelection(sess *session.Session, text string) ([]Reply, bool) {
	switch strings.ToLower(text) {
	case strings.ToLower(labelEstagio), "1":
		return s.enterTopic(sess, "estagio"), true
	case strings.ToLower(labelMatricula), "2":
		return s.enterTopic(sess, "matricula"), true
	case strings.ToLower(labelOutras), "3":
		return s.enterTopic(sess, "geral"), true
	case strings.ToLower(labelRegistro), "4":
		sess.Mode = session.CollectingField
		sess.Field = "matricula"
		sess.Scratch = make(map[string]string)
		return []Reply{{Text: promptMatricula, Keyboard: backKeyboard()}}, true
	}
	return nil, false
}

func (s *Service) enterTopic(sess *session.Session, topicID string) []Reply {
	sess.Mode = session.Topic
	sess.TopicID = topicID
	return []Reply{{Text: topicPrompt, Keyboard: backKeyboard()}}
}

// collectField valida a entrada do campo atual do fluxo de registro.
// Entrada inválida repete o prompt sem mudar de estado; no último campo o
// registro é persistido e a sessão volta ao menu.
func (s *Service) collectField(ctx context.Context, sess *session.Session, userID, text string) []Reply {
	switch sess.Field {
	case "matricula":
		if !isDigits(text) || len(text) < 6 || len(text) > 10 {
			return []Reply{{Text: invalidMatricula, Keyboard: backKeyboard()}}
		}
		sess.Scratch["matricula"] = text
		sess.Field = "semestre"
		return []Reply{{Text: promptSemestre, Keyboard: backKeyboard()}}

	case "semestre":
		semestre, err := strconv.Atoi(text)
		if err != nil || semestre < 1 || semestre > 10 {
			return []Reply{{Text: invalidSemestre, Keyboard: backKeyboard()}}
		}

		record := domain.AcademicRecord{
			UserID:    userID,
			Matricula: sess.Scratch["matricula"],
			Semestre:  semestre,
		}
		sess.ResetToMenu()

		if err := s.academic.Upsert(ctx, record); err != nil {
			logrus.WithError(err).WithField("user_id", userID).
				Error("Falha ao salvar dados acadêmicos")
			return []Reply{{Text: registroFalhou, Keyboard: mainMenuKeyboard()}}
		}
		return []Reply{
			{Text: fmt.Sprintf(registroConcluidoTmpl, record.Matricula, record.Semestre)},
			{Text: greeting(""), Keyboard: mainMenuKeyboard()},
		}

	default:
		// Estado de coleta desconhecido: volta ao menu em vez de prender o
		// usuário.
		sess.ResetToMenu()
		return []Reply{{Text: greeting(""), Keyboard: mainMenuKeyboard()}}
	}
}

// answer envia a consulta ao resolvedor e registra o resultado no
// histórico. Perguntas sem resposta seguem para o loop de feedback.
func (s *Service) answer(ctx context.Context, userID, text string) []Reply {
	result := s.resolver.Resolve(text)

	switch result.Outcome {
	case resolver.TooShort:
		return []Reply{{Text: mensagemCurta}}

	case resolver.Answered:
		s.logExchange(ctx, domain.ChatLogEntry{
			UserID:     userID,
			Question:   text,
			Answer:     result.Answer,
			Intent:     &result.Intent,
			Confidence: &result.Confidence,
			Timestamp:  time.Now(),
		})
		return []Reply{
			{Text: result.Answer},
			{Text: followUpQuestion, Buttons: []Button{
				{Text: "Sim", Data: "sim"},
				{Text: "Não", Data: "nao"},
			}},
		}

	default:
		reply := s.feedback.HandleUnresolved(ctx, userID, text)
		s.logExchange(ctx, domain.ChatLogEntry{
			UserID:    userID,
			Question:  text,
			Answer:    reply,
			Timestamp: time.Now(),
		})
		return []Reply{{Text: reply, Keyboard: backKeyboard()}}
	}
}

// logExchange grava o histórico em melhor esforço: falha vira log, nunca
// impede a resposta ao usuário.
func (s *Service) logExchange(ctx context.Context, entry domain.ChatLogEntry) {
	if err := s.chatlog.Save(ctx, entry); err != nil {
		logrus.WithError(err).WithField("user_id", entry.UserID).
			Error("Falha ao salvar histórico de conversa")
	}
}

func isMenuCommand(text string) bool {
	lower := strings.ToLower(text)
	return lower == strings.ToLower(labelMenu) || lower == "menu" || lower == "/menu"
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
