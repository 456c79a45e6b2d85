package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dentique/clinic-api/internal/email"
	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/internal/repository"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
	"github.com/dentique/clinic-api/pkg/metrics"
)

// TimeSlots are the bookable half-hour slots offered for every doctor and
// every date. Availability fields on the doctor record are advisory display
// text and do not narrow this list.
var TimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
}

// Service drives the three-step booking wizard. Steps: 1 doctor and
// service, 2 date and time, 3 confirm. Forward movement is gated on the
// step's selections; backward movement is unconditional and preserves
// everything entered so far. Confirm is the only operation that writes an
// appointment row.
type Service struct {
	sessions        *sessionStore
	doctorRepo      repository.DoctorRepository
	serviceRepo     repository.ServiceRepository
	profileRepo     repository.ProfileRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	emailSvc        email.Service
	metrics         *metrics.Metrics
}

func NewService(
	sessionTTL time.Duration,
	doctorRepo repository.DoctorRepository,
	serviceRepo repository.ServiceRepository,
	profileRepo repository.ProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	m *metrics.Metrics,
) *Service {
	return &Service{
		sessions:        newSessionStore(sessionTTL),
		doctorRepo:      doctorRepo,
		serviceRepo:     serviceRepo,
		profileRepo:     profileRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		emailSvc:        emailSvc,
		metrics:         m,
	}
}

// Start opens a fresh session at step 1, replacing any session the user
// already had.
func (s *Service) Start(ctx context.Context, userID uuid.UUID) (*model.BookingSession, error) {
	session := &model.BookingSession{
		ID:        uuid.New(),
		UserID:    userID,
		Step:      model.BookingStepDoctor,
		CreatedAt: time.Now(),
	}
	s.sessions.Put(session)
	s.metrics.BookingSessionsStarted.Inc()
	return session, nil
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*model.BookingSession, error) {
	session, ok := s.sessions.Get(userID.String())
	if !ok {
		return nil, apperrors.NotFound("booking session", nil)
	}
	return session, nil
}

// SelectDoctor records the doctor and optional service choice. An empty
// service means a general consultation and stays nil.
func (s *Service) SelectDoctor(ctx context.Context, userID uuid.UUID, req *model.SelectDoctorRequest) (*model.BookingSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid doctor id", err)
	}
	if _, err := s.doctorRepo.Get(ctx, doctorID); err != nil {
		return nil, apperrors.NotFound("doctor", err)
	}
	session.DoctorID = &doctorID

	session.ServiceID = nil
	if req.ServiceID != "" {
		serviceID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			return nil, apperrors.BadRequest("invalid service id", err)
		}
		svc, err := s.serviceRepo.Get(ctx, serviceID)
		if err != nil {
			return nil, apperrors.NotFound("service", err)
		}
		if !svc.IsActive {
			return nil, apperrors.BadRequest("service is not available", nil)
		}
		session.ServiceID = &serviceID
	}

	s.sessions.Put(session)
	return session, nil
}

// SelectSchedule records the date, time slot and optional notes.
func (s *Service) SelectSchedule(ctx context.Context, userID uuid.UUID, req *model.SelectScheduleRequest) (*model.BookingSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.DoctorID == nil {
		return nil, apperrors.BadRequest("select a doctor first", nil)
	}

	day, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}
	today, _ := time.Parse(model.DateLayout, time.Now().Format(model.DateLayout))
	if day.Before(today) {
		return nil, apperrors.BadRequest("date cannot be in the past", nil)
	}

	if !validSlot(req.Time) {
		return nil, apperrors.BadRequest("invalid time slot", nil)
	}

	session.Date = req.Date
	session.Time = req.Time
	session.Notes = req.Notes

	s.sessions.Put(session)
	return session, nil
}

// Next advances the wizard one step when the current step's selections are
// complete. At the final step it is a no-op.
func (s *Service) Next(ctx context.Context, userID uuid.UUID) (*model.BookingSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case model.BookingStepDoctor:
		if session.DoctorID == nil {
			return nil, apperrors.BadRequest("select a doctor to continue", nil)
		}
		session.Step = model.BookingStepSchedule
	case model.BookingStepSchedule:
		if session.Date == "" || session.Time == "" {
			return nil, apperrors.BadRequest("select a date and time to continue", nil)
		}
		session.Step = model.BookingStepConfirm
	}

	s.sessions.Put(session)
	return session, nil
}

// Previous steps back without clearing any selection, so moving forward
// again finds the form as it was left.
func (s *Service) Previous(ctx context.Context, userID uuid.UUID) (*model.BookingSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session.Step > model.BookingStepDoctor {
		session.Step--
	}

	s.sessions.Put(session)
	return session, nil
}

// Summary assembles the step-3 review: the selections joined with the
// doctor, service and the patient's stored profile.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*model.BookingSummary, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.DoctorID == nil {
		return nil, apperrors.BadRequest("select a doctor first", nil)
	}

	doctor, err := s.doctorRepo.Get(ctx, *session.DoctorID)
	if err != nil {
		return nil, apperrors.NotFound("doctor", err)
	}

	summary := &model.BookingSummary{Session: session, Doctor: doctor}

	if session.ServiceID != nil {
		svc, err := s.serviceRepo.Get(ctx, *session.ServiceID)
		if err != nil {
			return nil, apperrors.NotFound("service", err)
		}
		summary.Service = svc
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("profile", err)
	}
	summary.Profile = profile

	return summary, nil
}

// Confirm turns the completed session into exactly one appointment row with
// status "scheduled" and closes the session. A failed confirm leaves the
// session at step 3 so the user can retry.
func (s *Service) Confirm(ctx context.Context, userID uuid.UUID) (*model.Appointment, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session.Step != model.BookingStepConfirm {
		s.metrics.BookingFailed.WithLabelValues("wrong_step").Inc()
		return nil, apperrors.BadRequest("booking is not ready to confirm", nil)
	}
	if session.DoctorID == nil || session.Date == "" || session.Time == "" {
		s.metrics.BookingFailed.WithLabelValues("missing_fields").Inc()
		return nil, apperrors.BadRequest("missing required fields", nil)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.metrics.BookingFailed.WithLabelValues("profile_not_found").Inc()
		return nil, apperrors.NotFound("profile", err)
	}

	apt := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		PatientID:       profile.ID,
		DoctorID:        *session.DoctorID,
		ServiceID:       session.ServiceID,
		AppointmentDate: session.Date,
		AppointmentTime: session.Time,
		Status:          model.AppointmentStatusScheduled,
	}
	if session.Notes != "" {
		notes := session.Notes
		apt.Notes = &notes
	}

	if err := s.appointmentRepo.Create(ctx, apt); err != nil {
		s.metrics.BookingFailed.WithLabelValues("insert_failed").Inc()
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.sessions.Delete(userID.String())
	s.metrics.BookingConfirmed.Inc()

	s.sendConfirmation(ctx, userID, profile, apt)

	return apt, nil
}

// Slots lists the bookable time slots for the schedule step.
func (s *Service) Slots() []string {
	out := make([]string, len(TimeSlots))
	copy(out, TimeSlots)
	return out
}

func (s *Service) sendConfirmation(ctx context.Context, userID uuid.UUID, profile *model.Profile, apt *model.Appointment) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to load user for confirmation email")
		return
	}
	doctor, err := s.doctorRepo.Get(ctx, apt.DoctorID)
	if err != nil {
		log.Warn().Err(err).Str("doctor_id", apt.DoctorID.String()).Msg("failed to load doctor for confirmation email")
		return
	}
	if err := s.emailSvc.SendBookingConfirmation(ctx, user.Email, profile.FullName, doctor.Name, apt.AppointmentDate, apt.AppointmentTime); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send booking confirmation")
	}
}

func validSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}
