package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Env guarda as variáveis de ambiente obrigatórias do processo.
type Env struct {
	TelegramToken string
	DatabaseURL   string
	WebhookURL    string
	Port          string
	AdminPort     string
	LogLevel      string
}

// Bot guarda os parâmetros de comportamento do motor de respostas,
// carregados de um arquivo config.yaml.
type Bot struct {
	ClassifierThreshold float64 `yaml:"classifier_threshold"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	SuggestionThreshold float64 `yaml:"suggestion_threshold"`
	MaxSuggestions      int     `yaml:"max_suggestions"`
	KnowledgePath       string  `yaml:"knowledge_path"`
	ModelPath           string  `yaml:"model_path"`
	AllowUntrained      bool    `yaml:"allow_untrained"`
	RetrainIntervalMins int     `yaml:"retrain_interval_mins"`
}

// RetrainInterval é o intervalo do retreinamento periódico.
func (b Bot) RetrainInterval() time.Duration {
	return time.Duration(b.RetrainIntervalMins) * time.Minute
}

// LoadEnv carrega as variaveis de ambiente do arquivo .env.
func LoadEnv() (Env, error) {
	// O .env é opcional fora do ambiente de desenvolvimento.
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return Env{}, errors.New("variavel de ambiente TELEGRAM_TOKEN nao encontrada")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Env{}, errors.New("variavel de ambiente DATABASE_URL nao encontrada")
	}

	env := Env{
		TelegramToken: token,
		DatabaseURL:   dbURL,
		WebhookURL:    os.Getenv("WEBHOOK_URL"),
		Port:          getenvDefault("PORT", "3000"),
		AdminPort:     getenvDefault("ADMIN_PORT", "3001"),
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
	}

	return env, nil
}

// LoadBot lê o config.yaml do caminho informado. Se o arquivo não existir,
// retorna os valores padrão.
func LoadBot(path string) (Bot, error) {
	cfg := defaultBot()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Bot{}, fmt.Errorf("erro ao ler %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Bot{}, fmt.Errorf("erro ao interpretar %s: %w", path, err)
	}
	applyBotDefaults(&cfg)

	return cfg, nil
}

func defaultBot() Bot {
	return Bot{
		ClassifierThreshold: 0.7,
		SimilarityThreshold: 0.6,
		SuggestionThreshold: 0.3,
		MaxSuggestions:      3,
		KnowledgePath:       "public/perguntas_respostas.json",
		ModelPath:           "data/classifier.json",
		RetrainIntervalMins: 360,
	}
}

func applyBotDefaults(cfg *Bot) {
	def := defaultBot()
	if cfg.ClassifierThreshold <= 0 {
		cfg.ClassifierThreshold = def.ClassifierThreshold
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = def.SimilarityThreshold
	}
	if cfg.SuggestionThreshold <= 0 {
		cfg.SuggestionThreshold = def.SuggestionThreshold
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = def.MaxSuggestions
	}
	if cfg.KnowledgePath == "" {
		cfg.KnowledgePath = def.KnowledgePath
	}
	if cfg.ModelPath == "" {
		cfg.ModelPath = def.ModelPath
	}
	if cfg.RetrainIntervalMins <= 0 {
		cfg.RetrainIntervalMins = def.RetrainIntervalMins
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
