package handlers

import (
	"net/http"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes read access to booked appointments.
type AppointmentHandler struct {
	Repo appointmentRepo.AppointmentRepository
}

func NewAppointmentHandler(repo appointmentRepo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{Repo: repo}
}

// ListAppointmentsHandler returns every stored appointment.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	appointments, err := h.Repo.Find(c.Request.Context())
	if err != nil {
		logger.Error("failed to list appointments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
			"Could not fetch appointments. Please try again later.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}
