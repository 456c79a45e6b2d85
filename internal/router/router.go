package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	appointmenth "github.com/dentique/clinic-api/internal/handler/appointment"
	authh "github.com/dentique/clinic-api/internal/handler/auth"
	billingh "github.com/dentique/clinic-api/internal/handler/billing"
	bookingh "github.com/dentique/clinic-api/internal/handler/booking"
	clinich "github.com/dentique/clinic-api/internal/handler/clinic"
	doctorh "github.com/dentique/clinic-api/internal/handler/doctor"
	healthh "github.com/dentique/clinic-api/internal/handler/health"
	prescriptionh "github.com/dentique/clinic-api/internal/handler/prescription"
	profileh "github.com/dentique/clinic-api/internal/handler/profile"
	reporth "github.com/dentique/clinic-api/internal/handler/report"
	"github.com/dentique/clinic-api/internal/middleware"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/pkg/metrics"
)

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
	// FilesDir, when set, is served under /files for disk-stored uploads.
	FilesDir string
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	healthH       *healthh.Handler
	authH         *authh.Handler
	profileH      *profileh.Handler
	doctorH       *doctorh.Handler
	clinicH       *clinich.Handler
	appointmentH  *appointmenth.Handler
	bookingH      *bookingh.Handler
	prescriptionH *prescriptionh.Handler
	reportH       *reporth.Handler
	billingH      *billingh.Handler
	config        Config
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH *healthh.Handler,
	authH *authh.Handler,
	profileH *profileh.Handler,
	doctorH *doctorh.Handler,
	clinicH *clinich.Handler,
	appointmentH *appointmenth.Handler,
	bookingH *bookingh.Handler,
	prescriptionH *prescriptionh.Handler,
	reportH *reporth.Handler,
	billingH *billingh.Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
	)
	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return &Router{
		engine:        engine,
		auth:          auth,
		healthH:       healthH,
		authH:         authH,
		profileH:      profileH,
		doctorH:       doctorH,
		clinicH:       clinicH,
		appointmentH:  appointmentH,
		bookingH:      bookingH,
		prescriptionH: prescriptionH,
		reportH:       reportH,
		billingH:      billingH,
		config:        config,
	}
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if r.config.FilesDir != "" {
		r.engine.Static("/files", r.config.FilesDir)
	}

	api := r.engine.Group("/api/v1")

	r.healthH.RegisterRoutes(api)
	r.setupPublicRoutes(api)
	r.setupPatientRoutes(api)
	r.setupDoctorRoutes(api)
}

// Public content needs no token.
func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterRoutes(rg)
	r.clinicH.RegisterPublicRoutes(rg)
	r.doctorH.RegisterPublicRoutes(rg)
}

// Patient portal: profile, booking wizard and the patient's own records.
func (r *Router) setupPatientRoutes(rg *gin.RouterGroup) {
	patient := rg.Group("")
	patient.Use(
		r.auth.Authenticate(),
		r.auth.RequireRole(model.UserRolePatient),
	)

	r.profileH.RegisterRoutes(patient)
	r.bookingH.RegisterRoutes(patient)
	r.appointmentH.RegisterRoutes(patient)
	r.prescriptionH.RegisterRoutes(patient)
	r.reportH.RegisterRoutes(patient)
	r.billingH.RegisterRoutes(patient)
}

// Doctor console: schedule, records, billing and content management.
func (r *Router) setupDoctorRoutes(rg *gin.RouterGroup) {
	doctor := rg.Group("/doctor")
	doctor.Use(
		r.auth.Authenticate(),
		r.auth.RequireRole(model.UserRoleDoctor),
	)

	r.doctorH.RegisterRoutes(doctor)
	r.clinicH.RegisterRoutes(doctor)
	r.appointmentH.RegisterDoctorRoutes(doctor)
	r.prescriptionH.RegisterDoctorRoutes(doctor)
	r.reportH.RegisterDoctorRoutes(doctor)
	r.billingH.RegisterDoctorRoutes(doctor)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
