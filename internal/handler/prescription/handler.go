package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentique/clinic-api/internal/handler"
	"github.com/dentique/clinic-api/internal/middleware"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/service/auth"
	"github.com/dentique/clinic-api/internal/service/doctor"
	"github.com/dentique/clinic-api/internal/service/prescription"
	"github.com/dentique/clinic-api/internal/service/profile"
)

type Handler struct {
	service    *prescription.Service
	profileSvc *profile.Service
	authSvc    *auth.Service
	doctorSvc  *doctor.Service
}

func NewHandler(service *prescription.Service, profileSvc *profile.Service, authSvc *auth.Service, doctorSvc *doctor.Service) *Handler {
	return &Handler{
		service:    service,
		profileSvc: profileSvc,
		authSvc:    authSvc,
		doctorSvc:  doctorSvc,
	}
}

// RegisterRoutes exposes the patient's own prescriptions.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/prescriptions", h.ListMyPrescriptions)
}

// RegisterDoctorRoutes lets a doctor issue and review prescriptions.
func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	grp := r.Group("/prescriptions")
	{
		grp.GET("", h.ListDoctorPrescriptions)
		grp.POST("", h.CreatePrescription)
	}
}

func (h *Handler) ListMyPrescriptions(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	p, err := h.profileSvc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	prescriptions, err := h.service.ListByPatient(c.Request.Context(), p.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}

func (h *Handler) ListDoctorPrescriptions(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	prescriptions, err := h.service.ListByDoctor(c.Request.Context(), d.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.service.Create(c.Request.Context(), d.ID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) currentDoctor(c *gin.Context) (*model.Doctor, error) {
	userID, _ := middleware.UserID(c)
	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return h.doctorSvc.GetByEmail(c.Request.Context(), user.Email)
}
