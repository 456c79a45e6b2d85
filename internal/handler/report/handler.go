package report

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/handler"
	"github.com/dentique/clinic-api/internal/middleware"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/service/auth"
	"github.com/dentique/clinic-api/internal/service/doctor"
	"github.com/dentique/clinic-api/internal/service/profile"
	"github.com/dentique/clinic-api/internal/service/report"
)

const maxUploadSize = 10 << 20 // 10 MiB

type Handler struct {
	service    *report.Service
	profileSvc *profile.Service
	authSvc    *auth.Service
	doctorSvc  *doctor.Service
}

func NewHandler(service *report.Service, profileSvc *profile.Service, authSvc *auth.Service, doctorSvc *doctor.Service) *Handler {
	return &Handler{
		service:    service,
		profileSvc: profileSvc,
		authSvc:    authSvc,
		doctorSvc:  doctorSvc,
	}
}

// RegisterRoutes exposes the patient's own reports.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports", h.ListMyReports)
}

// RegisterDoctorRoutes lets a doctor upload and review reports.
func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	grp := r.Group("/reports")
	{
		grp.GET("", h.ListDoctorReports)
		grp.POST("", h.UploadReport)
	}
}

func (h *Handler) ListMyReports(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	p, err := h.profileSvc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	reports, err := h.service.ListByPatient(c.Request.Context(), p.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reports))
}

func (h *Handler) ListDoctorReports(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	reports, err := h.service.ListByDoctor(c.Request.Context(), d.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reports))
}

// UploadReport accepts a multipart form with the file under "file" plus
// patient_id, title and optional appointment_id and notes fields.
func (h *Handler) UploadReport(c *gin.Context) {
	d, err := h.currentDoctor(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	patientID, err := uuid.Parse(c.PostForm("patient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read file"))
		return
	}
	defer file.Close()

	req := &report.UploadRequest{
		PatientID:   patientID,
		DoctorID:    d.ID,
		Title:       c.PostForm("title"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
	if notes := c.PostForm("notes"); notes != "" {
		req.Notes = &notes
	}
	if raw := c.PostForm("appointment_id"); raw != "" {
		aptID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
			return
		}
		req.AppointmentID = &aptID
	}

	r, err := h.service.Upload(c.Request.Context(), req, file)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(r))
}

func (h *Handler) currentDoctor(c *gin.Context) (*model.Doctor, error) {
	userID, _ := middleware.UserID(c)
	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return h.doctorSvc.GetByEmail(c.Request.Context(), user.Email)
}
