package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"quixbot/config"
	"quixbot/internal/bot"
	"quixbot/internal/classifier"
	"quixbot/internal/database"
	"quixbot/internal/feedback"
	"quixbot/internal/handler"
	"quixbot/internal/knowledge"
	"quixbot/internal/logging"
	"quixbot/internal/repository"
	"quixbot/internal/resolver"
	"quixbot/internal/session"
	"quixbot/pkg/telegram"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		logrus.Fatalf("Erro ao carregar configuração: %v", err)
	}
	logging.Setup(env.LogLevel)

	botCfg, err := config.LoadBot("config.yaml")
	if err != nil {
		logrus.Fatalf("Erro ao carregar config.yaml: %v", err)
	}

	db, err := database.Open(env.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Erro ao inicializar o banco de dados: %v", err)
	}
	defer db.Close()

	kb, err := knowledge.Load(botCfg.KnowledgePath)
	if err != nil {
		logrus.Fatalf("Erro ao carregar base de conhecimento: %v", err)
	}
	logrus.WithField("entradas", kb.Len()).Info("Base de conhecimento carregada")

	clf := classifier.New()
	store := classifier.NewFileStore(botCfg.ModelPath)
	if err := trainClassifier(clf, store, kb); err != nil {
		logrus.Fatalf("Erro ao treinar o classificador: %v", err)
	}
	if !clf.Trained() && !botCfg.AllowUntrained {
		logrus.Fatal("Classificador sem documentos de treinamento; " +
			"habilite allow_untrained no config.yaml para operar só com menus")
	}

	unansweredRepo := repository.NewPostgresUnansweredRepository(db)
	chatlogRepo := repository.NewPostgresChatLogRepository(db)
	academicRepo := repository.NewPostgresAcademicRepository(db)

	fb := feedback.New(kb, clf, unansweredRepo, chatlogRepo, store,
		botCfg.SuggestionThreshold, botCfg.MaxSuggestions)
	res := resolver.New(kb, clf, botCfg.ClassifierThreshold, botCfg.SimilarityThreshold)
	botService := bot.New(session.NewStore(), res, fb, chatlogRepo, academicRepo, !clf.Trained())

	client := telegram.NewClient(env.TelegramToken)
	if env.WebhookURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := client.SetWebhook(ctx, env.WebhookURL+"/bot"+env.TelegramToken); err != nil {
			cancel()
			logrus.Fatalf("Erro ao registrar webhook: %v", err)
		}
		cancel()
		logrus.WithField("url", env.WebhookURL).Info("Webhook registrado no Telegram")
	}

	admin := handler.NewAdmin(unansweredRepo, fb)
	go func() {
		logrus.WithField("porta", env.AdminPort).Info("API administrativa iniciada")
		if err := admin.Router().Run(":" + env.AdminPort); err != nil {
			logrus.Fatalf("Erro na API administrativa: %v", err)
		}
	}()

	go retrainLoop(fb, botCfg.RetrainInterval())

	webhook := handler.NewWebhook(botService, client)
	http.Handle(fmt.Sprintf("/bot%s", env.TelegramToken), webhook)

	logrus.WithField("porta", env.Port).Info("Servidor iniciado")
	if err := http.ListenAndServe(":"+env.Port, nil); err != nil {
		logrus.Fatalf("Erro ao iniciar o servidor: %v", err)
	}
}

// trainClassifier restaura o snapshot salvo quando ele existe; senão,
// semeia o classificador com a base de conhecimento, treina e salva o
// primeiro snapshot. Snapshot corrompido é fatal.
func trainClassifier(clf *classifier.Classifier, store *classifier.FileStore, kb *knowledge.Base) error {
	snapshot, ok, err := store.LoadSnapshot()
	if err != nil {
		return err
	}
	if ok {
		if err := clf.Load(snapshot); err != nil {
			return fmt.Errorf("snapshot do modelo corrompido: %w", err)
		}
		logrus.Info("Modelo restaurado do snapshot")
		return nil
	}

	for _, entry := range kb.Snapshot() {
		clf.AddDocument(entry.Question, entry.Intent)
	}
	clf.Train()

	data, err := clf.Save()
	if err != nil {
		return err
	}
	if err := store.SaveSnapshot(data); err != nil {
		logrus.WithError(err).Warn("Falha ao salvar o snapshot inicial do modelo")
	}
	logrus.Info("Classificador treinado com a base de conhecimento")
	return nil
}

// retrainLoop roda o retreinamento periódico com o histórico de conversas,
// fora do caminho de resposta.
func retrainLoop(fb *feedback.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if err := fb.RetrainFromHistory(ctx); err != nil {
			logrus.WithError(err).Error("Falha no retreinamento periódico")
		}
		cancel()
	}
}
