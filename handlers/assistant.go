package handlers

import (
	"net/http"
	"strings"
	"time"

	"clinicdesk/models"
	"clinicdesk/services/assistant"
	"clinicdesk/services/booking"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the conversational endpoints.
type AssistantHandler struct {
	Service assistant.AssistantService
	Booking booking.BookingService
}

func NewAssistantHandler(svc assistant.AssistantService, bookingSvc booking.BookingService) *AssistantHandler {
	return &AssistantHandler{Service: svc, Booking: bookingSvc}
}

// ChatHandler runs one conversational turn. Validation rejections come back
// as a normal 200 with outcome "rejected"; only infrastructure failures turn
// into an error status, and those never leak internal detail.
func (h *AssistantHandler) ChatHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "userPrompt is required")
		return
	}

	resp, err := h.Service.HandleUtterance(c.Request.Context(), req.SessionID, req.UserPrompt)
	if err != nil {
		logger.Error("chat turn failed", zap.String("sessionID", req.SessionID), zap.Error(err))
		if be, ok := booking.AsBookingError(err); ok && be.Code == booking.CodeSessionBusy {
			utils.JSONError(c, http.StatusTooManyRequests, "Session is busy",
				"Another turn is already in progress. Try again shortly.")
			return
		}
		c.JSON(http.StatusInternalServerError, models.ChatResponse{
			SessionID: req.SessionID,
			Reply:     "Something went wrong on our side. Please try again.",
			Outcome:   "error",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// NextSlotHandler returns the next bookable slot at or after the given
// (date, time), defaulting to the current moment.
func (h *AssistantHandler) NextSlotHandler(c *gin.Context) {
	logger := utils.GetLogger()

	after := time.Now()
	date := c.Query("date")
	timeLabel := c.Query("time")
	if date != "" || timeLabel != "" {
		t, err := booking.ParseSlot(date, timeLabel)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}
		after = t
	}

	slot, err := h.Booking.NextAvailable(c.Request.Context(), after)
	if err != nil {
		logger.Error("next-slot lookup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
			"Could not look up availability. Please try again later.")
		return
	}
	if slot == nil {
		c.JSON(http.StatusOK, gin.H{"nextSlot": nil, "message": "No availability within the booking horizon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nextSlot": slot})
}

// EndSessionHandler discards a conversation.
func (h *AssistantHandler) EndSessionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	sessionID := c.Param("sessionID")
	if err := h.Service.EndSession(c.Request.Context(), sessionID); err != nil {
		logger.Error("failed to end session", zap.String("sessionID", sessionID), zap.Error(err))
		if be, ok := booking.AsBookingError(err); ok && be.Code == booking.CodeSessionBusy {
			utils.JSONError(c, http.StatusTooManyRequests, "Session is busy",
				"Another turn is already in progress. Try again shortly.")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
			"Could not end the session. Please try again later.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}
