package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"role-profile/internal/domain"
	"role-profile/internal/metrics"
	"role-profile/internal/service"
)

const (
	internalErrorMessage = "Internal server error"
	// maxRequestBytes is far above a full answer vector with metadata.
	maxRequestBytes = 64 << 10
)

// Scorer es el punto de entrada del pipeline de puntuacion.
type Scorer interface {
	Score(ctx context.Context, raw any) (service.ScoringOutput, error)
}

// ScoringHandler mantiene dependencias para el endpoint de calculo de roles.
type ScoringHandler struct {
	logger *zap.Logger
	scorer Scorer
	now    func() time.Time
}

// NewScoringHandler crea una instancia de ScoringHandler.
func NewScoringHandler(logger *zap.Logger, scorer Scorer) *ScoringHandler {
	return &ScoringHandler{
		logger: logger,
		scorer: scorer,
		now:    time.Now,
	}
}

type phaseStatus struct {
	Status string `json:"status"`
}

type calculationLog struct {
	Validation      phaseStatus `json:"phase_1_validation"`
	Mapping         phaseStatus `json:"phase_2_mapping"`
	Roles           phaseStatus `json:"phase_3_roles"`
	Competencies    phaseStatus `json:"phase_4_competencies"`
	Recommendations phaseStatus `json:"phase_5_recommendations"`
}

type calculateResponse struct {
	Status             string              `json:"status"`
	ProfileID          string              `json:"profile_id"`
	UserID             string              `json:"user_id,omitempty"`
	TestDate           string              `json:"test_date,omitempty"`
	CalculatedAt       string              `json:"calculated_at"`
	TablesVersion      string              `json:"tables_version"`
	AuthenticRoles     []domain.Role       `json:"authentic_roles"`
	TopCompetencies    []domain.Competency `json:"top_10_competencies"`
	BottomCompetencies []domain.Competency `json:"bottom_10_competencies"`
	Recommendations    []string            `json:"recommendations"`
	CalculationLog     calculationLog      `json:"calculation_log"`
}

type calculateRequest struct {
	Answers  any    `json:"answers"`
	UserID   string `json:"userId"`
	TestDate string `json:"testDate"`
}

// decodeCalculateRequest keeps numbers as json.Number so that values outside
// the float64 range reach the validator instead of failing the decode. An
// empty body decodes to a request without answers.
func decodeCalculateRequest(body io.Reader) (calculateRequest, error) {
	var req calculateRequest
	if body == nil {
		return req, nil
	}
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return calculateRequest{}, err
	}
	return req, nil
}

// Calculate maneja POST /api/v1/roles/calculate.
func (h *ScoringHandler) Calculate(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
	}
	req, err := decodeCalculateRequest(c.Request.Body)
	if err != nil {
		h.logger.Warn("invalid calculate request", zap.Error(err))
		metrics.ScoringRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"status": "error", "message": []string{"request body too large"}})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": []string{"invalid request body"}})
		return
	}

	out, err := h.scorer.Score(c.Request.Context(), req.Answers)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			metrics.ScoringRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": vErr.Messages})
			return
		}
		h.logger.Error("scoring failed", zap.Error(err), zap.String("user_id", req.UserID))
		metrics.ScoringRequests.WithLabelValues(metrics.OutcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": internalErrorMessage})
		return
	}

	passed := phaseStatus{Status: "passed"}
	metrics.ScoringRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusOK, calculateResponse{
		Status:             "success",
		ProfileID:          "prof_" + uuid.NewString(),
		UserID:             req.UserID,
		TestDate:           req.TestDate,
		CalculatedAt:       h.now().UTC().Format(time.RFC3339),
		TablesVersion:      out.TablesVersion,
		AuthenticRoles:     out.Roles,
		TopCompetencies:    out.TopCompetencies,
		BottomCompetencies: out.BottomCompetencies,
		Recommendations:    out.Recommendations,
		CalculationLog: calculationLog{
			Validation:      passed,
			Mapping:         passed,
			Roles:           passed,
			Competencies:    passed,
			Recommendations: passed,
		},
	})
}
