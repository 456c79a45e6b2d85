package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/handler"
	"github.com/dentique/clinic-api/internal/middleware"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/service/auth"
	"github.com/dentique/clinic-api/internal/service/billing"
	"github.com/dentique/clinic-api/internal/service/doctor"
	"github.com/dentique/clinic-api/internal/service/profile"
)

type Handler struct {
	service    *billing.Service
	profileSvc *profile.Service
	authSvc    *auth.Service
	doctorSvc  *doctor.Service
}

func NewHandler(service *billing.Service, profileSvc *profile.Service, authSvc *auth.Service, doctorSvc *doctor.Service) *Handler {
	return &Handler{
		service:    service,
		profileSvc: profileSvc,
		authSvc:    authSvc,
		doctorSvc:  doctorSvc,
	}
}

// RegisterRoutes exposes the patient's own billing history.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/billing", h.ListMyBilling)
}

// RegisterDoctorRoutes lets a doctor create records and track payment.
func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	grp := r.Group("/billing")
	{
		grp.GET("", h.ListDoctorBilling)
		grp.GET("/summary", h.GetSummary)
		grp.POST("", h.CreateRecord)
		grp.POST("/:id/pay", h.MarkPaid)
	}
}

func (h *Handler) ListMyBilling(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	p, err := h.profileSvc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	records, err := h.service.ListByPatient(c.Request.Context(), p.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) ListDoctorBilling(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	records, err := h.service.ListByDoctor(c.Request.Context(), d.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) GetSummary(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), d.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}

func (h *Handler) CreateRecord(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.CreateBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	record, err := h.service.Create(c.Request.Context(), d.ID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid billing record ID"))
		return
	}

	record, err := h.service.MarkPaid(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) currentDoctor(c *gin.Context) (*model.Doctor, error) {
	userID, _ := middleware.UserID(c)
	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return h.doctorSvc.GetByEmail(c.Request.Context(), user.Email)
}
