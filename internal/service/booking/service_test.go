package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentique/clinic-api/internal/email"
	"github.com/dentique/clinic-api/internal/model"
	apperrors "github.com/dentique/clinic-api/pkg/errors"
	"github.com/dentique/clinic-api/pkg/metrics"
)

// Registered once per test binary; promauto panics on duplicates.
var testMetrics = metrics.New("clinic_booking_test")

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (f *fakeDoctorRepo) Create(ctx context.Context, d *model.Doctor) error { return nil }
func (f *fakeDoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("doctor not found")
}
func (f *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	return nil, fmt.Errorf("doctor not found")
}
func (f *fakeDoctorRepo) Update(ctx context.Context, d *model.Doctor) error { return nil }
func (f *fakeDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error    { return nil }
func (f *fakeDoctorRepo) List(ctx context.Context) ([]*model.Doctor, error) { return nil, nil }

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (f *fakeServiceRepo) Create(ctx context.Context, s *model.Service) error { return nil }
func (f *fakeServiceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("service not found")
}
func (f *fakeServiceRepo) Update(ctx context.Context, s *model.Service) error { return nil }
func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeServiceRepo) List(ctx context.Context, activeOnly bool) ([]*model.Service, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile // keyed by user ID
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *model.Profile) error { return nil }
func (f *fakeProfileRepo) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return nil, fmt.Errorf("profile not found")
}
func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("profile not found")
}
func (f *fakeProfileRepo) Update(ctx context.Context, p *model.Profile) error { return nil }
func (f *fakeProfileRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeProfileRepo) List(ctx context.Context) ([]*model.Profile, error) { return nil, nil }

type fakeAppointmentRepo struct {
	created   []*model.Appointment
	createErr error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, a)
	return nil
}
func (f *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, fmt.Errorf("appointment not found")
}
func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	return nil
}
func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeAppointmentRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentDetail, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) CountForDoctorOnDate(ctx context.Context, doctorID uuid.UUID, date string) (int, error) {
	return 0, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error { return nil }
func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user not found")
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, fmt.Errorf("user not found")
}
func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error { return nil }

type fixture struct {
	svc      *Service
	userID   uuid.UUID
	doctorID uuid.UUID
	aptRepo  *fakeAppointmentRepo
	profiles *fakeProfileRepo
	services *fakeServiceRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := uuid.New()
	doctorID := uuid.New()

	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*model.Profile{
		userID: {
			Base:     model.Base{ID: uuid.New()},
			UserID:   userID,
			FullName: "Jane Doe",
		},
	}}
	aptRepo := &fakeAppointmentRepo{}
	services := &fakeServiceRepo{services: map[uuid.UUID]*model.Service{}}

	svc := NewService(
		time.Minute,
		&fakeDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{
			doctorID: {Base: model.Base{ID: doctorID}, Name: "Dr. Smith", Email: "smith@example.com"},
		}},
		services,
		profiles,
		aptRepo,
		&fakeUserRepo{users: map[uuid.UUID]*model.User{
			userID: {Base: model.Base{ID: userID}, Email: "jane@example.com"},
		}},
		email.NewNoopService(),
		testMetrics,
	)

	return &fixture{
		svc:      svc,
		userID:   userID,
		doctorID: doctorID,
		aptRepo:  aptRepo,
		profiles: profiles,
		services: services,
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(model.DateLayout)
}

func (f *fixture) advanceToConfirm(t *testing.T, serviceID string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.SelectDoctor(ctx, f.userID, &model.SelectDoctorRequest{
		DoctorID:  f.doctorID.String(),
		ServiceID: serviceID,
	})
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.SelectSchedule(ctx, f.userID, &model.SelectScheduleRequest{
		Date:  futureDate(),
		Time:  "10:00",
		Notes: "mild toothache",
	})
	require.NoError(t, err)

	session, err := f.svc.Next(ctx, f.userID)
	require.NoError(t, err)
	require.Equal(t, model.BookingStepConfirm, session.Step)
}

func TestStartOpensSessionAtStepOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepDoctor, session.Step)
	assert.Nil(t, session.DoctorID)

	got, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestGetWithoutSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), f.userID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "booking session not found", appErr.Message)
}

func TestNextBlockedWithoutDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, f.userID)
	require.Error(t, err)

	session, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepDoctor, session.Step)
}

func TestNextBlockedWithoutSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)
	_, err = f.svc.SelectDoctor(ctx, f.userID, &model.SelectDoctorRequest{DoctorID: f.doctorID.String()})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, f.userID)
	require.Error(t, err)

	session, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepSchedule, session.Step)
}

func TestSelectDoctorUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.SelectDoctor(ctx, f.userID, &model.SelectDoctorRequest{DoctorID: uuid.NewString()})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "doctor not found", appErr.Message)
}

func TestSelectScheduleRejectsPastDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)
	_, err = f.svc.SelectDoctor(ctx, f.userID, &model.SelectDoctorRequest{DoctorID: f.doctorID.String()})
	require.NoError(t, err)

	past := time.Now().AddDate(0, 0, -1).Format(model.DateLayout)
	_, err = f.svc.SelectSchedule(ctx, f.userID, &model.SelectScheduleRequest{Date: past, Time: "10:00"})
	require.Error(t, err)
}

func TestSelectScheduleRejectsOffSlotTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)
	_, err = f.svc.SelectDoctor(ctx, f.userID, &model.SelectDoctorRequest{DoctorID: f.doctorID.String()})
	require.NoError(t, err)

	_, err = f.svc.SelectSchedule(ctx, f.userID, &model.SelectScheduleRequest{Date: futureDate(), Time: "10:15"})
	require.Error(t, err)

	_, err = f.svc.SelectSchedule(ctx, f.userID, &model.SelectScheduleRequest{Date: futureDate(), Time: "12:00"})
	require.Error(t, err)
}

func TestPreviousPreservesSelections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.advanceToConfirm(t, "")

	session, err := f.svc.Previous(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepSchedule, session.Step)
	assert.NotEmpty(t, session.Date)
	assert.NotEmpty(t, session.Time)

	session, err = f.svc.Previous(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepDoctor, session.Step)
	require.NotNil(t, session.DoctorID)
	assert.Equal(t, f.doctorID, *session.DoctorID)

	// Already at the first step, stays there.
	session, err = f.svc.Previous(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepDoctor, session.Step)

	// Selections survive, so two Nexts reach confirm again.
	_, err = f.svc.Next(ctx, f.userID)
	require.NoError(t, err)
	session, err = f.svc.Next(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepConfirm, session.Step)
}

func TestConfirmCreatesSingleScheduledAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.advanceToConfirm(t, "")

	apt, err := f.svc.Confirm(ctx, f.userID)
	require.NoError(t, err)

	require.Len(t, f.aptRepo.created, 1)
	created := f.aptRepo.created[0]
	assert.Equal(t, apt.ID, created.ID)
	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)
	assert.Equal(t, f.doctorID, created.DoctorID)
	assert.Nil(t, created.ServiceID)
	assert.Equal(t, "10:00", created.AppointmentTime)
	require.NotNil(t, created.Notes)
	assert.Equal(t, "mild toothache", *created.Notes)

	// Session is closed after a successful confirm.
	_, err = f.svc.Get(ctx, f.userID)
	require.Error(t, err)
}

func TestConfirmWithService(t *testing.T) {
	f := newFixture(t)
	serviceID := uuid.New()
	f.services.services[serviceID] = &model.Service{
		Base:     model.Base{ID: serviceID},
		Name:     "Teeth Cleaning",
		IsActive: true,
	}
	f.advanceToConfirm(t, serviceID.String())

	apt, err := f.svc.Confirm(context.Background(), f.userID)
	require.NoError(t, err)
	require.NotNil(t, apt.ServiceID)
	assert.Equal(t, serviceID, *apt.ServiceID)
}

func TestSelectDoctorRejectsInactiveService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	serviceID := uuid.New()
	f.services.services[serviceID] = &model.Service{Base: model.Base{ID: serviceID}, IsActive: false}

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.SelectDoctor(ctx, f.userID, &model.SelectDoctorRequest{
		DoctorID:  f.doctorID.String(),
		ServiceID: serviceID.String(),
	})
	require.Error(t, err)
}

func TestConfirmWithoutProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.advanceToConfirm(t, "")

	// Simulate a user whose profile row is missing.
	delete(f.profiles.profiles, f.userID)

	_, err := f.svc.Confirm(ctx, f.userID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "profile not found", appErr.Message)
	assert.Empty(t, f.aptRepo.created)

	// Session stays at the confirm step so the user can retry.
	session, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepConfirm, session.Step)
}

func TestConfirmBeforeFinalStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, f.userID)
	require.Error(t, err)
	assert.Empty(t, f.aptRepo.created)
}

func TestConfirmInsertFailureKeepsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.advanceToConfirm(t, "")

	f.aptRepo.createErr = fmt.Errorf("connection reset")

	_, err := f.svc.Confirm(ctx, f.userID)
	require.Error(t, err)

	session, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepConfirm, session.Step)
}

func TestStartReplacesExistingSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.advanceToConfirm(t, "")

	session, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepDoctor, session.Step)
	assert.Nil(t, session.DoctorID)
	assert.Empty(t, session.Date)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	f.advanceToConfirm(t, "")

	summary, err := f.svc.Summary(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Smith", summary.Doctor.Name)
	assert.Equal(t, "Jane Doe", summary.Profile.FullName)
	assert.Nil(t, summary.Service)
}

func TestConcurrentScheduleUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)
	_, err = f.svc.SelectDoctor(ctx, f.userID, &model.SelectDoctorRequest{DoctorID: f.doctorID.String()})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, f.userID)
	require.NoError(t, err)

	date := futureDate()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(slot string) {
			defer wg.Done()
			_, err := f.svc.SelectSchedule(ctx, f.userID, &model.SelectScheduleRequest{
				Date: date,
				Time: slot,
			})
			assert.NoError(t, err)
		}(TimeSlots[i%len(TimeSlots)])
	}
	wg.Wait()

	session, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepSchedule, session.Step)
	assert.Equal(t, date, session.Date)
	assert.Contains(t, TimeSlots, session.Time)
	require.NotNil(t, session.DoctorID)
	assert.Equal(t, f.doctorID, *session.DoctorID)
}

func TestSlots(t *testing.T) {
	f := newFixture(t)

	slots := f.svc.Slots()
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:00", slots[len(slots)-1])
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "13:30")
}
