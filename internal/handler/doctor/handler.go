package doctor

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/handler"
	"github.com/dentique/clinic-api/internal/middleware"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/service/appointment"
	"github.com/dentique/clinic-api/internal/service/auth"
	"github.com/dentique/clinic-api/internal/service/billing"
	"github.com/dentique/clinic-api/internal/service/doctor"
)

type Handler struct {
	service        *doctor.Service
	authSvc        *auth.Service
	appointmentSvc *appointment.Service
	billingSvc     *billing.Service
}

func NewHandler(service *doctor.Service, authSvc *auth.Service, appointmentSvc *appointment.Service, billingSvc *billing.Service) *Handler {
	return &Handler{
		service:        service,
		authSvc:        authSvc,
		appointmentSvc: appointmentSvc,
		billingSvc:     billingSvc,
	}
}

// RegisterPublicRoutes exposes the doctor directory.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	grp := r.Group("/doctors")
	{
		grp.GET("", h.ListDoctors)
		grp.GET("/:id", h.GetDoctor)
	}
}

// RegisterRoutes exposes the doctor console. The group must already be
// restricted to the doctor role.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	grp := r.Group("/doctors")
	{
		grp.POST("", h.CreateDoctor)
		grp.PUT("/:id", h.UpdateDoctor)
		grp.DELETE("/:id", h.DeleteDoctor)
	}
	r.GET("/dashboard/stats", h.DashboardStats)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	d, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(d))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	d, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// DashboardStats aggregates today's appointment count and the billing
// summary for the logged-in doctor.
func (h *Handler) DashboardStats(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	today := time.Now().Format(model.DateLayout)
	todayCount, err := h.appointmentSvc.CountForDoctorOnDate(c.Request.Context(), d.ID, today)
	if err != nil {
		handler.Error(c, err)
		return
	}

	summary, err := h.billingSvc.Summary(c.Request.Context(), d.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"appointments_today": todayCount,
		"billing":            summary,
	}))
}

// currentDoctor resolves the logged-in user to their doctor record by
// email.
func (h *Handler) currentDoctor(c *gin.Context) (*model.Doctor, error) {
	userID, _ := middleware.UserID(c)
	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return h.service.GetByEmail(c.Request.Context(), user.Email)
}
