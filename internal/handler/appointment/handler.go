package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/handler"
	"github.com/dentique/clinic-api/internal/middleware"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/service/appointment"
	"github.com/dentique/clinic-api/internal/service/auth"
	"github.com/dentique/clinic-api/internal/service/doctor"
	"github.com/dentique/clinic-api/internal/service/profile"
)

type Handler struct {
	service    *appointment.Service
	profileSvc *profile.Service
	authSvc    *auth.Service
	doctorSvc  *doctor.Service
}

func NewHandler(service *appointment.Service, profileSvc *profile.Service, authSvc *auth.Service, doctorSvc *doctor.Service) *Handler {
	return &Handler{
		service:    service,
		profileSvc: profileSvc,
		authSvc:    authSvc,
		doctorSvc:  doctorSvc,
	}
}

// RegisterRoutes exposes the patient's own appointments.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	grp := r.Group("/appointments")
	{
		grp.GET("", h.ListMyAppointments)
		grp.POST("/:id/cancel", h.CancelAppointment)
	}
}

// RegisterDoctorRoutes exposes the doctor's schedule and status updates.
func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	grp := r.Group("/appointments")
	{
		grp.GET("", h.ListDoctorAppointments)
		grp.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) ListMyAppointments(c *gin.Context) {
	p, err := h.currentProfile(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	appointments, err := h.service.ListByPatient(c.Request.Context(), p.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	p, err := h.currentProfile(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	apt, err := h.service.Cancel(c.Request.Context(), id, p.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) ListDoctorAppointments(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	filters := &model.AppointmentFilters{
		Status: model.AppointmentStatus(c.Query("status")),
		Date:   c.Query("date"),
	}

	appointments, err := h.service.ListByDoctor(c.Request.Context(), d.ID, filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) currentProfile(c *gin.Context) (*model.Profile, error) {
	userID, _ := middleware.UserID(c)
	return h.profileSvc.GetByUserID(c.Request.Context(), userID)
}

func (h *Handler) currentDoctor(c *gin.Context) (*model.Doctor, error) {
	userID, _ := middleware.UserID(c)
	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return h.doctorSvc.GetByEmail(c.Request.Context(), user.Email)
}
