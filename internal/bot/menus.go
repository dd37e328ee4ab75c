package bot

import "fmt"

// Rótulos do menu principal, na ordem em que aparecem no teclado. Os
// atalhos numéricos "1"–"4" selecionam a mesma opção.
const (
	labelEstagio   = "📚 Informações sobre Estágio"
	labelMatricula = "🎓 Informações sobre Matrícula"
	labelOutras    = "❓ Outras Dúvidas"
	labelRegistro  = "📝 Registrar Dados Acadêmicos"
	labelMenu      = "🏠 Menu principal"
)

// mainMenuKeyboard é o teclado de respostas rápidas do menu principal.
func mainMenuKeyboard() [][]string {
	return [][]string{
		{labelEstagio},
		{labelMatricula},
		{labelOutras},
		{labelRegistro},
	}
}

// backKeyboard oferece só a volta ao menu, usado dentro dos tópicos e do
// fluxo de registro.
func backKeyboard() [][]string {
	return [][]string{{labelMenu}}
}

func greeting(name string) string {
	if name == "" {
		name = "aluno(a)"
	}
	return fmt.Sprintf("👋 Olá %s!\nSou o assistente virtual da coordenação. Como posso ajudar?", name)
}

// topicPrompt é a mensagem exibida ao entrar em um tópico.
const topicPrompt = "Faça sua pergunta ou volte ao 🏠 Menu principal"

// Mensagens do fluxo de registro de dados acadêmicos.
const (
	promptMatricula       = "Digite seu número de matrícula:"
	promptSemestre        = "Agora digite seu semestre (1-10):"
	invalidMatricula      = "Formato inválido. Digite apenas números (6-10 dígitos):"
	invalidSemestre       = "Semestre inválido. Digite 1-10:"
	registroFalhou        = "Desculpe, não consegui salvar seus dados agora. Tente novamente mais tarde."
	mensagemCurta         = "Por favor, envie uma mensagem mais longa."
	followUpQuestion      = "Precisa de mais alguma coisa?"
	followUpAskAgain      = "Por favor, digite sua próxima dúvida:"
	followUpGoodbye       = "Perfeito! 😊"
	registroConcluidoTmpl = "✅ Dados registrados:\nMatrícula: %s\nSemestre: %d"
	menuOnlyNotice        = "No momento só consigo ajudar pelas opções do menu. 👇"
)
