package rest

import (
	"errors"
	"net/http"
	"strconv"

	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/models"
	"cod-fraud-system/internal/scoring"
	"cod-fraud-system/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	scoringService services.ScoringService
}

// NewHandlers создает новые обработчики REST API
func NewHandlers(scoringService services.ScoringService) *Handlers {
	return &Handlers{
		scoringService: scoringService,
	}
}

// writeError переводит ошибку сервиса в HTTP статус
func writeError(c *gin.Context, err error) {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "errors": verr.Errors})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, services.ErrVerdictNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Verdict not found"})
	case errors.Is(err, services.ErrQueueExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": "No more new orders to ingest"})
	case errors.Is(err, services.ErrInvalidCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

// CreateSession создает новый сеанс оценки
// @Summary Создать сеанс
// @Description Создает сеанс с очередью сгенерированных входящих заказов и пустым множеством IP
// @Tags sessions
// @Produce json
// @Success 201 {object} models.Session
// @Failure 500 {object} map[string]string
// @Router /sessions [post]
func (h *Handlers) CreateSession(c *gin.Context) {
	sess, err := h.scoringService.CreateSession()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GetSession возвращает состояние сеанса
// @Summary Получить сеанс
// @Tags sessions
// @Produce json
// @Param id path string true "ID сеанса"
// @Success 200 {object} models.Session
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [get]
func (h *Handlers) GetSession(c *gin.Context) {
	sess, err := h.scoringService.GetSession(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// IngestNext оценивает следующий заказ из очереди сеанса
// @Summary Принять следующий заказ
// @Description Извлекает следующий заказ из очереди сеанса и возвращает вердикт
// @Tags sessions
// @Produce json
// @Param id path string true "ID сеанса"
// @Success 200 {object} models.Verdict
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Очередь пуста"
// @Router /sessions/{id}/ingest [post]
func (h *Handlers) IngestNext(c *gin.Context) {
	verdict, err := h.scoringService.IngestNext(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// ScoreOrder оценивает переданный заказ
// @Summary Оценить заказ
// @Description Прогоняет заказ через правила и модель в рамках сеанса
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сеанса"
// @Param order body models.Order true "Заказ"
// @Success 200 {object} models.Verdict
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/orders [post]
func (h *Handlers) ScoreOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict, err := h.scoringService.ScoreOrder(c.Param("id"), &order)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// ListVerdicts возвращает последние вердикты сеанса
// @Summary Список вердиктов
// @Tags sessions
// @Produce json
// @Param id path string true "ID сеанса"
// @Param limit query int false "Лимит (максимум 500)" default(100)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/verdicts [get]
func (h *Handlers) ListVerdicts(c *gin.Context) {
	verdicts, err := h.scoringService.ListVerdicts(c.Param("id"), queryInt(c, "limit", services.DefaultVerdictLimit))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verdicts": verdicts})
}

// GetVerdict возвращает вердикт по номеру заказа
// @Summary Вердикт по заказу
// @Tags sessions
// @Produce json
// @Param id path string true "ID сеанса"
// @Param order_id path int true "Номер заказа"
// @Success 200 {object} models.Verdict
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/verdicts/{order_id} [get]
func (h *Handlers) GetVerdict(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	verdict, err := h.scoringService.GetVerdict(c.Param("id"), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// GetSessionStats число сохраненных и помеченных вердиктов сеанса
// @Summary Статистика сеанса
// @Tags sessions
// @Produce json
// @Param id path string true "ID сеанса"
// @Success 200 {object} models.VerdictStats
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/stats [get]
func (h *Handlers) GetSessionStats(c *gin.Context) {
	stats, err := h.scoringService.SessionStats(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetServiceStats сводка по сервису
// @Summary Статистика сервиса
// @Tags model
// @Produce json
// @Success 200 {object} models.ServiceStats
// @Router /verdicts/stats [get]
func (h *Handlers) GetServiceStats(c *gin.Context) {
	stats, err := h.scoringService.ServiceStats()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ClearVerdicts удаляет все сохраненные вердикты и кэш
// @Summary Очистить вердикты
// @Tags model
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /verdicts [delete]
func (h *Handlers) ClearVerdicts(c *gin.Context) {
	if err := h.scoringService.ClearVerdicts(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "All verdicts and cache cleared successfully",
		"clear_storage": true,
	})
}

// GetModel описание обученной модели
// @Summary Модель
// @Tags model
// @Produce json
// @Success 200 {object} models.ModelSummary
// @Router /model [get]
func (h *Handlers) GetModel(c *gin.Context) {
	c.JSON(http.StatusOK, h.scoringService.ModelSummary())
}

// GenerateOrders генерирует входящие заказы для ручной проверки
// @Summary Сгенерировать заказы
// @Tags orders
// @Produce json
// @Param count query int false "Количество" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /orders/generate [get]
func (h *Handlers) GenerateOrders(c *gin.Context) {
	orders, err := h.scoringService.GenerateOrders(queryInt(c, "count", 1))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// PublishOrders публикует сгенерированные заказы в Kafka для потокового обработчика
// @Summary Опубликовать заказы в Kafka
// @Tags orders
// @Produce json
// @Param count query int false "Количество" default(10)
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /orders/publish [post]
func (h *Handlers) PublishOrders(c *gin.Context) {
	sent, err := h.scoringService.PublishOrders(queryInt(c, "count", 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"published": sent})
}
