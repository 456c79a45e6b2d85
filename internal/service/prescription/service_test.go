package prescription

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentique/clinic-api/internal/model"
)

type fakePrescriptionRepo struct {
	created []*model.Prescription
}

func (f *fakePrescriptionRepo) Create(ctx context.Context, p *model.Prescription) error {
	f.created = append(f.created, p)
	return nil
}
func (f *fakePrescriptionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	return nil, fmt.Errorf("prescription not found")
}
func (f *fakePrescriptionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionDetail, error) {
	return nil, nil
}
func (f *fakePrescriptionRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PrescriptionDetail, error) {
	return nil, nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		return a, nil
	}
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

func TestCreateTakesPartiesFromAppointment(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	apt := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		PatientID: patientID,
		DoctorID:  doctorID,
	}
	repo := &fakePrescriptionRepo{}
	svc := NewService(repo, &fakeAppointmentRepo{appointments: map[uuid.UUID]*model.Appointment{apt.ID: apt}})

	p, err := svc.Create(context.Background(), doctorID, &model.CreatePrescriptionRequest{
		AppointmentID: apt.ID.String(),
		Medications:   "Amoxicillin 500mg",
	})
	require.NoError(t, err)
	assert.Equal(t, patientID, p.PatientID)
	assert.Equal(t, doctorID, p.DoctorID)
	require.Len(t, repo.created, 1)
}

func TestCreateRejectsForeignAppointment(t *testing.T) {
	apt := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
	}
	svc := NewService(&fakePrescriptionRepo{}, &fakeAppointmentRepo{appointments: map[uuid.UUID]*model.Appointment{apt.ID: apt}})

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreatePrescriptionRequest{
		AppointmentID: apt.ID.String(),
		Medications:   "Amoxicillin 500mg",
	})
	require.Error(t, err)
}

func TestCreateValidatesFollowUpDate(t *testing.T) {
	doctorID := uuid.New()
	apt := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		PatientID: uuid.New(),
		DoctorID:  doctorID,
	}
	svc := NewService(&fakePrescriptionRepo{}, &fakeAppointmentRepo{appointments: map[uuid.UUID]*model.Appointment{apt.ID: apt}})

	bad := "next week"
	_, err := svc.Create(context.Background(), doctorID, &model.CreatePrescriptionRequest{
		AppointmentID: apt.ID.String(),
		Medications:   "Amoxicillin 500mg",
		FollowUpDate:  &bad,
	})
	require.Error(t, err)
}
