package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"quixbot/internal/domain"
	"quixbot/internal/feedback"
)

// Admin expõe a API administrativa usada pelo fluxo de revisão humana das
// perguntas sem resposta.
type Admin struct {
	unanswered domain.UnansweredRepository
	feedback   *feedback.Service
}

// NewAdmin cria o handler administrativo.
func NewAdmin(unanswered domain.UnansweredRepository, fb *feedback.Service) *Admin {
	return &Admin{unanswered: unanswered, feedback: fb}
}

// Router monta o roteador gin com as rotas administrativas.
func (a *Admin) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/unanswered-questions", a.listUnanswered)
	router.POST("/unanswered-questions", a.addUnanswered)
	router.POST("/add-answer", a.addAnswer)

	return router
}

type unansweredResponse struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	Question  string `json:"question"`
	CreatedAt string `json:"created_at"`
}

func (a *Admin) listUnanswered(c *gin.Context) {
	questions, err := a.unanswered.List(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Falha ao listar perguntas sem resposta")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar perguntas"})
		return
	}

	out := make([]unansweredResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, unansweredResponse{
			ID:        q.ID,
			UserID:    q.UserID,
			Question:  q.Question,
			CreatedAt: q.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	c.JSON(http.StatusOK, out)
}

type addUnansweredRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Question string `json:"question" binding:"required"`
}

func (a *Admin) addUnanswered(c *gin.Context) {
	var req addUnansweredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id e question são obrigatórios"})
		return
	}

	if err := a.unanswered.Save(c.Request.Context(), req.UserID, req.Question); err != nil {
		logrus.WithError(err).Error("Falha ao adicionar pergunta sem resposta")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao adicionar pergunta"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pergunta adicionada com sucesso"})
}

type addAnswerRequest struct {
	QuestionID int64  `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

func (a *Admin) addAnswer(c *gin.Context) {
	var req addAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionId e answer são obrigatórios"})
		return
	}

	err := a.feedback.SubmitAnswer(c.Request.Context(), req.QuestionID, req.Answer)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "pergunta não encontrada"})
	case errors.Is(err, domain.ErrAlreadyAnswered):
		c.JSON(http.StatusConflict, gin.H{"error": "pergunta já foi respondida"})
	case err != nil:
		logrus.WithError(err).WithField("question_id", req.QuestionID).
			Error("Falha ao registrar resposta")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao adicionar resposta"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "resposta adicionada e bot treinado com sucesso"})
	}
}
