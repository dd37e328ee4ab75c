package bot

import (
	"context"
	"strings"
	"testing"

	"quixbot/internal/domain"
	"quixbot/internal/knowledge"
	"quixbot/internal/resolver"
	"quixbot/internal/session"
)

type fakeFeedback struct {
	calls []string
}

func (f *fakeFeedback) HandleUnresolved(_ context.Context, _, question string) string {
	f.calls = append(f.calls, question)
	return "Ainda não sei responder essa pergunta, mas ela foi registrada."
}

type fakeChatLog struct {
	entries []domain.ChatLogEntry
}

func (f *fakeChatLog) Save(_ context.Context, entry domain.ChatLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeChatLog) ListAll(context.Context) ([]domain.ChatLogEntry, error) {
	return f.entries, nil
}

type fakeAcademic struct {
	records []domain.AcademicRecord
}

func (f *fakeAcademic) Upsert(_ context.Context, record domain.AcademicRecord) error {
	f.records = append(f.records, record)
	return nil
}

type fixedClassifier struct {
	classifications []domain.Classification
}

func (f *fixedClassifier) GetClassifications(string) []domain.Classification {
	return f.classifications
}

type fixture struct {
	svc      *Service
	feedback *fakeFeedback
	chatlog  *fakeChatLog
	academic *fakeAcademic
}

func newFixture(classifications []domain.Classification) *fixture {
	kb := knowledge.New()
	kb.Add(domain.Entry{
		Intent:   "prazo_matricula",
		Question: "Qual o prazo de matrícula?",
		Answer:   "O prazo é até 30 dias.",
	})

	res := resolver.New(kb, &fixedClassifier{classifications: classifications}, 0.7, 0.6)
	fb := &fakeFeedback{}
	chatlog := &fakeChatLog{}
	academic := &fakeAcademic{}

	return &fixture{
		svc:      New(session.NewStore(), res, fb, chatlog, academic, false),
		feedback: fb,
		chatlog:  chatlog,
		academic: academic,
	}
}

func onlyText(replies []Reply) string {
	var parts []string
	for _, r := range replies {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, "\n")
}

func TestHandleStart_PresentsMenu(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	replies := f.svc.HandleStart("user-1", "Maria")

	if len(replies) != 1 {
		t.Fatalf("esperava 1 resposta, recebi %d", len(replies))
	}
	if !strings.Contains(replies[0].Text, "Maria") {
		t.Errorf("saudação deveria usar o nome, veio %q", replies[0].Text)
	}
	if len(replies[0].Keyboard) != 4 {
		t.Errorf("menu principal deveria ter 4 opções, tem %d", len(replies[0].Keyboard))
	}
}

func TestMenuShortcut_EntersTopicThenResolves(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	ctx := context.Background()

	// "1" do menu principal entra no tópico de estágio sem consultar o
	// resolvedor.
	replies := f.svc.HandleMessage(ctx, "user-1", "João", "1")
	if !strings.Contains(onlyText(replies), "Faça sua pergunta") {
		t.Fatalf("seleção de menu deveria abrir o tópico, veio %q", onlyText(replies))
	}
	if len(f.feedback.calls) != 0 {
		t.Fatal("seleção de menu não pode chegar ao loop de feedback")
	}

	// A próxima mensagem livre vai para o resolvedor (aqui, similaridade).
	replies = f.svc.HandleMessage(ctx, "user-1", "João", "qual o prazo de matricula")
	if !strings.Contains(onlyText(replies), "O prazo é até 30 dias.") {
		t.Errorf("texto livre no tópico deveria ser resolvido, veio %q", onlyText(replies))
	}
}

func TestMenuLabel_CaseInsensitive(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	replies := f.svc.HandleMessage(context.Background(), "user-1", "Ana", "📚 informações sobre estágio")
	if !strings.Contains(onlyText(replies), "Faça sua pergunta") {
		t.Errorf("rótulo em minúsculas deveria selecionar o tópico, veio %q", onlyText(replies))
	}
}

func TestBackToMenu_FromAnyState(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	ctx := context.Background()

	f.svc.HandleMessage(ctx, "user-1", "Ana", "4")
	replies := f.svc.HandleMessage(ctx, "user-1", "Ana", "🏠 Menu principal")

	if len(replies) != 1 || len(replies[0].Keyboard) != 4 {
		t.Fatalf("voltar ao menu deveria reapresentar as 4 opções, veio %+v", replies)
	}

	// A sessão de fato voltou: entrada que era do fluxo de coleta agora é
	// texto livre.
	replies = f.svc.HandleMessage(ctx, "user-1", "Ana", "123456")
	if strings.Contains(onlyText(replies), "semestre") {
		t.Error("após voltar ao menu o fluxo de coleta não deveria continuar")
	}
}

func TestCollectingFlow_ValidatesAndPersists(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	ctx := context.Background()

	f.svc.HandleMessage(ctx, "user-1", "Ana", "📝 Registrar Dados Acadêmicos")

	// Matrícula inválida repete o prompt sem avançar.
	replies := f.svc.HandleMessage(ctx, "user-1", "Ana", "abc123")
	if !strings.Contains(onlyText(replies), "Formato inválido") {
		t.Fatalf("matrícula inválida deveria repetir o prompt, veio %q", onlyText(replies))
	}

	// Matrícula válida avança para o semestre.
	replies = f.svc.HandleMessage(ctx, "user-1", "Ana", "123456")
	if !strings.Contains(onlyText(replies), "semestre") {
		t.Fatalf("matrícula válida deveria pedir o semestre, veio %q", onlyText(replies))
	}

	// Semestre fora do intervalo repete o prompt.
	replies = f.svc.HandleMessage(ctx, "user-1", "Ana", "12")
	if !strings.Contains(onlyText(replies), "Semestre inválido") {
		t.Fatalf("semestre inválido deveria repetir o prompt, veio %q", onlyText(replies))
	}

	// Semestre válido persiste o registro e volta ao menu.
	replies = f.svc.HandleMessage(ctx, "user-1", "Ana", "5")
	if !strings.Contains(onlyText(replies), "Dados registrados") {
		t.Fatalf("fim do fluxo deveria confirmar o registro, veio %q", onlyText(replies))
	}
	if len(f.academic.records) != 1 {
		t.Fatalf("esperava 1 registro persistido, tenho %d", len(f.academic.records))
	}
	record := f.academic.records[0]
	if record.Matricula != "123456" || record.Semestre != 5 {
		t.Errorf("registro persistido incorreto: %+v", record)
	}
}

func TestShortQuery_ProducesNoFeedback(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	replies := f.svc.HandleMessage(context.Background(), "user-1", "Ana", "ok")

	if !strings.Contains(onlyText(replies), "mensagem mais longa") {
		t.Errorf("consulta curta deveria pedir mensagem mais longa, veio %q", onlyText(replies))
	}
	if len(f.feedback.calls) != 0 {
		t.Error("consulta curta não pode gerar pergunta sem resposta")
	}
	if len(f.chatlog.entries) != 0 {
		t.Error("consulta curta não deveria entrar no histórico")
	}
}

func TestUnresolved_GoesToFeedbackAndIsLogged(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	replies := f.svc.HandleMessage(context.Background(), "user-1", "Ana", "existe estacionamento no campus")

	if len(f.feedback.calls) != 1 {
		t.Fatalf("pergunta sem resposta deveria ir ao feedback, chamadas: %d", len(f.feedback.calls))
	}
	if !strings.Contains(onlyText(replies), "registrada") {
		t.Errorf("resposta deveria vir do loop de feedback, veio %q", onlyText(replies))
	}
	if len(f.chatlog.entries) != 1 || f.chatlog.entries[0].Intent != nil {
		t.Error("troca sem resposta deveria ser registrada com intent nulo")
	}
}

func TestAnswered_IsLoggedWithIntent(t *testing.T) {
	t.Parallel()

	f := newFixture([]domain.Classification{{Label: "prazo_matricula", Confidence: 0.95}})
	replies := f.svc.HandleMessage(context.Background(), "user-1", "Ana", "quando acaba a inscrição")

	if !strings.Contains(onlyText(replies), "O prazo é até 30 dias.") {
		t.Fatalf("esperava a resposta do intent, veio %q", onlyText(replies))
	}
	if len(f.chatlog.entries) != 1 {
		t.Fatalf("esperava 1 registro no histórico, tenho %d", len(f.chatlog.entries))
	}
	entry := f.chatlog.entries[0]
	if entry.Intent == nil || *entry.Intent != "prazo_matricula" {
		t.Errorf("histórico deveria carregar o intent, veio %+v", entry.Intent)
	}
	if entry.Confidence == nil || *entry.Confidence != 0.95 {
		t.Errorf("histórico deveria carregar a confiança, veio %+v", entry.Confidence)
	}

	// A resposta vem acompanhada do acompanhamento Sim/Não.
	last := replies[len(replies)-1]
	if len(last.Buttons) != 2 {
		t.Errorf("esperava botões Sim/Não, veio %+v", last.Buttons)
	}
}

func TestHandleCallback(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)

	if replies := f.svc.HandleCallback("user-1", "sim"); len(replies) != 1 {
		t.Errorf("callback sim deveria pedir a próxima dúvida, veio %+v", replies)
	}
	replies := f.svc.HandleCallback("user-1", "nao")
	if len(replies) != 2 || len(replies[1].Keyboard) != 4 {
		t.Errorf("callback não deveria despedir e reapresentar o menu, veio %+v", replies)
	}
	if replies := f.svc.HandleCallback("user-1", "outro"); replies != nil {
		t.Errorf("callback desconhecido deveria ser ignorado, veio %+v", replies)
	}
}

func TestSessions_AreIndependent(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	ctx := context.Background()

	f.svc.HandleMessage(ctx, "user-1", "Ana", "4")

	// Outro usuário continua no menu principal.
	replies := f.svc.HandleMessage(ctx, "user-2", "Bia", "123456")
	if strings.Contains(onlyText(replies), "semestre") {
		t.Error("o fluxo de coleta de um usuário não pode vazar para outro")
	}
}

func TestMenuOnlyMode(t *testing.T) {
	t.Parallel()

	kb := knowledge.New()
	kb.Add(domain.Entry{Intent: "i", Question: "q", Answer: "a"})
	res := resolver.New(kb, &fixedClassifier{}, 0.7, 0.6)
	fb := &fakeFeedback{}
	svc := New(session.NewStore(), res, fb, &fakeChatLog{}, &fakeAcademic{}, true)

	replies := svc.HandleMessage(context.Background(), "user-1", "Ana", "uma pergunta livre")
	if !strings.Contains(onlyText(replies), "opções do menu") {
		t.Errorf("modo menu-only deveria recusar texto livre, veio %q", onlyText(replies))
	}
	if len(fb.calls) != 0 {
		t.Error("modo menu-only não deveria acionar o feedback")
	}
}
