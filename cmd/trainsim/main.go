// trainsim simula o ciclo de revisão humana contra a API administrativa:
// registra cada pergunta como não respondida e em seguida envia a resposta,
// treinando o bot pergunta a pergunta.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
)

type qa struct {
	question string
	answer   string
}

var simulatedQuestions = []qa{
	// Estágio
	{"O estágio pode ser prorrogado? Como fazer isso?", "Sim, desde que seja formalizado com a instituição e aprovado pela coordenação."},
	{"Existe um limite de horas semanais para o estágio?", "Sim, o limite é de 30 horas semanais para estágios não obrigatórios."},
	{"O estágio pode ser realizado remotamente?", "Sim, desde que aprovado pela coordenação do curso e pela empresa."},
	{"Quais são os direitos do estagiário segundo a legislação?", "Os direitos incluem bolsa-auxílio, recesso remunerado e seguro contra acidentes pessoais."},
	{"É possível trocar de empresa durante o estágio?", "Sim, desde que seja formalizado com a universidade e a nova empresa."},

	// Matrícula
	{"Como faço para alterar minha matrícula após o prazo?", "Você deve solicitar à coordenação do curso e justificar o motivo do atraso."},
	{"O que acontece se eu não renovar minha matrícula no prazo?", "Você pode perder o vínculo com a universidade e precisará solicitar reativação."},
	{"Existe um limite de disciplinas que posso trancar?", "Sim, o limite é definido pelo regulamento acadêmico da universidade."},
	{"O que é o ajuste de matrícula e como funciona?", "O ajuste de matrícula é um período para corrigir ou alterar disciplinas matriculadas."},

	// Vida acadêmica
	{"Como posso acessar meu histórico acadêmico?", "Você pode acessar pelo sistema acadêmico da universidade."},
	{"O que é o IRA e como ele é calculado?", "O IRA é calculado com base nas notas e cargas horárias das disciplinas cursadas."},
	{"Como posso participar de projetos de pesquisa ou extensão?", "Você deve entrar em contato com os professores responsáveis pelos projetos."},
	{"Existe algum suporte para alunos com dificuldades acadêmicas?", "Sim, a universidade oferece apoio pedagógico e psicológico."},

	// Assistência estudantil
	{"Como faço para solicitar auxílio transporte?", "Você deve preencher o formulário disponível no site da PRAE."},
	{"Existe algum programa de moradia estudantil?", "Sim, a universidade oferece vagas em residências estudantis."},
	{"Existe algum suporte psicológico para os alunos?", "Sim, a PRAE oferece suporte psicológico gratuito."},

	// Gerais
	{"Como posso recuperar minha senha do sistema acadêmico?", "Você pode usar a opção de recuperação de senha no portal acadêmico."},
	{"Como posso acessar o calendário acadêmico?", "O calendário acadêmico está disponível no site da universidade."},
	{"Quais são os horários de funcionamento da biblioteca?", "Os horários estão disponíveis no site da biblioteca da universidade."},
}

type unansweredItem struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
}

func main() {
	baseURL := flag.String("api", "http://localhost:3001", "endereço da API administrativa")
	flag.Parse()

	client := &http.Client{Timeout: 15 * time.Second}
	userID := fmt.Sprintf("%d", gofakeit.Number(10000000, 99999999))

	logrus.WithField("user_id", userID).Info("Iniciando simulação de treinamento")

	for _, item := range simulatedQuestions {
		if err := postJSON(client, *baseURL+"/unanswered-questions", map[string]any{
			"user_id":  userID,
			"question": item.question,
		}); err != nil {
			logrus.WithError(err).WithField("pergunta", item.question).
				Error("Falha ao registrar pergunta")
			continue
		}

		id, err := findQuestionID(client, *baseURL, item.question)
		if err != nil {
			logrus.WithError(err).WithField("pergunta", item.question).
				Error("Pergunta não encontrada na fila")
			continue
		}

		if err := postJSON(client, *baseURL+"/add-answer", map[string]any{
			"questionId": id,
			"answer":     item.answer,
		}); err != nil {
			logrus.WithError(err).WithField("pergunta", item.question).
				Error("Falha ao enviar resposta")
			continue
		}

		logrus.WithField("pergunta", item.question).Info("Pergunta treinada com sucesso")
	}

	logrus.Info("Simulação de treinamento concluída")
}

func postJSON(client *http.Client, url string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status inesperado: %s", resp.Status)
	}
	return nil
}

func findQuestionID(client *http.Client, baseURL, question string) (int64, error) {
	resp, err := client.Get(baseURL + "/unanswered-questions")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var items []unansweredItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return 0, err
	}

	for _, item := range items {
		if item.Question == question {
			return item.ID, nil
		}
	}
	return 0, fmt.Errorf("pergunta %q não está na fila", question)
}
