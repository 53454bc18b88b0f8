package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salonflow/config"
	"salonflow/models"
	"salonflow/services/booking"
	"salonflow/services/catalog"
	"salonflow/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the wizard engine over HTTP.
type BookingHandler struct {
	Engine booking.WizardService
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(engine booking.WizardService) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

// respondEngineError maps typed engine failures onto HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	var engineErr *booking.EngineError
	if errors.As(err, &engineErr) {
		switch engineErr.Code {
		case "sessionError":
			c.JSON(http.StatusNotFound, gin.H{"error": engineErr.Message})
		case "stepError":
			c.JSON(http.StatusConflict, gin.H{"error": engineErr.Message})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": engineErr.Message})
		}
		return
	}

	var submitErr *booking.SubmissionError
	if errors.As(err, &submitErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": submitErr.Error()})
		return
	}

	var catalogErr *catalog.CatalogError
	if errors.As(err, &catalogErr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": catalogErr.Message, "retryable": true})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// StartSession creates a new booking session and mints its token.
func (h *BookingHandler) StartSession(c *gin.Context) {
	session, err := h.Engine.StartSession(c.Request.Context())
	if err != nil {
		respondEngineError(c, err)
		return
	}

	ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	token, err := utils.GenerateSessionToken(session.SessionID, ttl)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session, "token": token})
}

// GetSession returns the current session snapshot.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Engine.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ResetSession restores the initial empty session.
func (h *BookingHandler) ResetSession(c *gin.Context) {
	session, err := h.Engine.ResetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetServices replaces the service selection.
func (h *BookingHandler) SetServices(c *gin.Context) {
	var input struct {
		ServiceIDs []string `json:"serviceIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Engine.SetServices(c.Request.Context(), c.Param("sessionID"), input.ServiceIDs)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// AddService appends one service to the selection.
func (h *BookingHandler) AddService(c *gin.Context) {
	session, err := h.Engine.AddService(c.Request.Context(), c.Param("sessionID"), c.Param("serviceID"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// RemoveService drops one service from the selection.
func (h *BookingHandler) RemoveService(c *gin.Context) {
	session, err := h.Engine.RemoveService(c.Request.Context(), c.Param("sessionID"), c.Param("serviceID"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetDateTime records the chosen appointment date and time.
func (h *BookingHandler) SetDateTime(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Engine.SetDateTime(c.Request.Context(), c.Param("sessionID"), input.Date, input.Time)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetDetails validates and stores the customer details. Validation failures
// come back as a field-keyed error map, not an error status body.
func (h *BookingHandler) SetDetails(c *gin.Context) {
	var details models.CustomerDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	fieldErrs, session, err := h.Engine.SetCustomerDetails(c.Request.Context(), c.Param("sessionID"), details)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Next advances the wizard when the current step's gate passes. Arriving at
// the date step pre-populates the rolling calendar view; arriving at the
// payment step pre-builds the base summary.
func (h *BookingHandler) Next(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("sessionID")

	session, err := h.Engine.Next(ctx, sessionID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	resp := gin.H{"session": session}
	switch session.CurrentStep {
	case models.StepDateTime:
		if calendar, err := h.Engine.Calendar(ctx, sessionID); err == nil {
			resp["calendar"] = calendar
		}
	case models.StepPayment:
		if summary, err := h.Engine.PaymentSummary(ctx, sessionID, nil, ""); err == nil {
			resp["summary"] = summary
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Previous steps back without validation.
func (h *BookingHandler) Previous(c *gin.Context) {
	session, err := h.Engine.Previous(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GoToStep jumps to an already-reachable step.
func (h *BookingHandler) GoToStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "step must be a number", "")
		return
	}
	session, err := h.Engine.GoToStep(c.Request.Context(), c.Param("sessionID"), step)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Calendar returns the rolling date window for the picker.
func (h *BookingHandler) Calendar(c *gin.Context) {
	calendar, err := h.Engine.Calendar(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calendar": calendar})
}

// Availability returns the slot grid for one date.
func (h *BookingHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date query parameter is required", "")
		return
	}
	view, err := h.Engine.Availability(c.Request.Context(), c.Param("sessionID"), date)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": view})
}

// PaymentSummary builds the checkout breakdown, with optional discount
// codes and payment method.
func (h *BookingHandler) PaymentSummary(c *gin.Context) {
	var codes []string
	if raw := c.Query("codes"); raw != "" {
		codes = strings.Split(raw, ",")
	}
	summary, err := h.Engine.PaymentSummary(c.Request.Context(), c.Param("sessionID"), codes, c.Query("method"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "methods": booking.PaymentMethods})
}

// Confirm submits the booking upstream.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input struct {
		Method        string   `json:"method" binding:"required"`
		DiscountCodes []string `json:"discountCodes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Engine.Confirm(c.Request.Context(), c.Param("sessionID"), input.Method, input.DiscountCodes)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}
