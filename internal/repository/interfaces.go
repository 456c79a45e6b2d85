package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dentique/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
	}

	ProfileRepository interface {
		Create(ctx context.Context, profile *model.Profile) error
		Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
		Update(ctx context.Context, profile *model.Profile) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Profile, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Doctor, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, activeOnly bool) ([]*model.Service, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentDetail, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error)
		CountForDoctorOnDate(ctx context.Context, doctorID uuid.UUID, date string) (int, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionDetail, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PrescriptionDetail, error)
	}

	ReportRepository interface {
		Create(ctx context.Context, report *model.MedicalReport) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalReport, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalReport, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.MedicalReport, error)
	}

	BillingRepository interface {
		Create(ctx context.Context, record *model.BillingRecord) error
		Get(ctx context.Context, id uuid.UUID) (*model.BillingRecord, error)
		MarkPaid(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.BillingRecord, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.BillingRecord, error)
	}

	EventRepository interface {
		Create(ctx context.Context, event *model.Event) error
		Get(ctx context.Context, id uuid.UUID) (*model.Event, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, publicOnly bool) ([]*model.Event, error)
	}

	ClinicInfoRepository interface {
		Get(ctx context.Context) (*model.ClinicInfo, error)
		Update(ctx context.Context, info *model.ClinicInfo) error
	}
)
