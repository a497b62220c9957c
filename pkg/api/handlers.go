package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nursemoves/beta-signup/pkg/form"
	"github.com/nursemoves/beta-signup/pkg/legal"
	"github.com/nursemoves/beta-signup/pkg/logger"
	"github.com/nursemoves/beta-signup/pkg/metrics"
	"github.com/nursemoves/beta-signup/pkg/models"
	"github.com/nursemoves/beta-signup/pkg/services"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService services.SignupSubmissionService
	forms             *form.Registry
}

// NewHandlers creates a new Handlers instance
func NewHandlers(submissionService services.SignupSubmissionService, forms *form.Registry) *Handlers {
	return &Handlers{
		submissionService: submissionService,
		forms:             forms,
	}
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/legal/:document", h.GetLegalDocument)

	api := r.Group("/api")
	api.POST("/signups", h.CreateSignup)

	forms := api.Group("/forms")
	forms.POST("", h.OpenForm)
	forms.GET("/:id", h.GetForm)
	forms.DELETE("/:id", h.DiscardForm)
	forms.PATCH("/:id/fields", h.UpdateFields)
	forms.POST("/:id/submit", h.SubmitForm)
	forms.PUT("/:id/modal", h.OpenModal)
	forms.DELETE("/:id/modal", h.CloseModal)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// OpenForm starts a new form session
func (h *Handlers) OpenForm(c *gin.Context) {
	ctrl := h.forms.Open()
	c.JSON(http.StatusCreated, gin.H{
		"id":    ctrl.ID(),
		"state": ctrl.Snapshot(),
	})
}

// GetForm returns the current state of a form
func (h *Handlers) GetForm(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// DiscardForm drops a form session
func (h *Handlers) DiscardForm(c *gin.Context) {
	if err := h.forms.Close(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateFields applies a JSON object of field edits, e.g. {"email":"a@b.c"}
func (h *Handlers) UpdateFields(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.WithContext(c.Request.Context()).WithError(err).Error("Error reading request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request"})
		return
	}

	var edits map[string]interface{}
	if err := json.Unmarshal(body, &edits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	if err := ctrl.SetFields(edits); err != nil {
		switch {
		case errors.Is(err, form.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "Submission in progress"})
		case errors.Is(err, models.ErrUnknownField), errors.Is(err, models.ErrFieldType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating form"})
		}
		return
	}

	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// SubmitForm runs the signup for a form session. The submission is not
// cancelled when the client disconnects.
func (h *Handlers) SubmitForm(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	outcome, err := ctrl.Submit(context.WithoutCancel(c.Request.Context()))
	switch {
	case errors.Is(err, form.ErrSubmissionInFlight):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Submission in progress"})
		return
	case errors.Is(err, form.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "Form already submitted"})
		return
	}

	state := ctrl.Snapshot()
	c.JSON(statusFor(outcome, http.StatusOK), gin.H{
		"outcome": outcome,
		"message": state.Message,
		"state":   state,
	})
}

type openModalRequest struct {
	Document string `json:"document" binding:"required"`
}

// OpenModal shows a legal document in the form's modal
func (h *Handlers) OpenModal(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	var req openModalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	doc, err := legal.ParseDocument(req.Document)
	if err == nil {
		err = ctrl.Open(doc)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document"})
		return
	}

	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// CloseModal hides the form's modal
func (h *Handlers) CloseModal(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	ctrl.Close()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

type signupRequest struct {
	models.SignupFields
	Date string `json:"date"`
}

// CreateSignup submits a complete field set in one request, for clients that
// keep the form state themselves
func (h *Handlers) CreateSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	record, err := h.submissionService.ProcessSignup(context.WithoutCancel(c.Request.Context()), req.SignupFields, req.Date)
	if errors.Is(err, services.ErrSubmissionInFlight) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Submission in progress"})
		return
	}
	outcome := form.OutcomeOf(err)
	metrics.SubmissionsTotal.WithLabelValues(string(outcome)).Inc()
	if outcome == form.OutcomeTransientFailure {
		logger.WithContext(c.Request.Context()).WithError(err).Warn("Signup submission failed")
	}

	resp := gin.H{
		"outcome": outcome,
		"message": outcome.Message(),
	}
	if outcome == form.OutcomeSuccess {
		resp["id"] = record.ID
	}
	c.JSON(statusFor(outcome, http.StatusCreated), resp)
}

// GetLegalDocument serves the modal fragment of a legal document as HTML
func (h *Handlers) GetLegalDocument(c *gin.Context) {
	doc, err := legal.ParseDocument(c.Param("document"))
	if err != nil || doc == legal.None {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := legal.Render(c.Writer, doc); err != nil {
		logger.WithContext(c.Request.Context()).WithError(err).Error("Error rendering legal document")
	}
}

func (h *Handlers) lookup(c *gin.Context) (*form.Controller, bool) {
	ctrl, err := h.forms.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return nil, false
	}
	return ctrl, true
}

func statusFor(outcome form.Outcome, success int) int {
	switch outcome {
	case form.OutcomeSuccess:
		return success
	case form.OutcomeAlreadyRegistered:
		return http.StatusConflict
	case form.OutcomeValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusServiceUnavailable
	}
}
