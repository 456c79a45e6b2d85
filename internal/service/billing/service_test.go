package billing

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentique/clinic-api/internal/model"
)

type fakeBillingRepo struct {
	records []*model.BillingRecord
}

func (f *fakeBillingRepo) Create(ctx context.Context, r *model.BillingRecord) error {
	f.records = append(f.records, r)
	return nil
}

func (f *fakeBillingRepo) Get(ctx context.Context, id uuid.UUID) (*model.BillingRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("billing record not found")
}

func (f *fakeBillingRepo) MarkPaid(ctx context.Context, id uuid.UUID) error {
	for _, r := range f.records {
		if r.ID == id && r.Status == model.BillingStatusPending {
			r.Status = model.BillingStatusPaid
			return nil
		}
	}
	return fmt.Errorf("billing record not found or already paid")
}

func (f *fakeBillingRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.BillingRecord, error) {
	return f.records, nil
}

func (f *fakeBillingRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.BillingRecord, error) {
	return f.records, nil
}

func TestSummaryCountsPaidRevenueOnly(t *testing.T) {
	repo := &fakeBillingRepo{records: []*model.BillingRecord{
		{ID: uuid.New(), Amount: 150, Status: model.BillingStatusPaid},
		{ID: uuid.New(), Amount: 250, Status: model.BillingStatusPaid},
		{ID: uuid.New(), Amount: 75, Status: model.BillingStatusPending},
	}}
	svc := NewService(repo)

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 400.0, summary.TotalRevenue)
	assert.Equal(t, 75.0, summary.PendingAmount)
	assert.Equal(t, 2, summary.PaidCount)
	assert.Equal(t, 1, summary.PendingCount)
}

func TestCreateDefaultsToPending(t *testing.T) {
	repo := &fakeBillingRepo{}
	svc := NewService(repo)

	record, err := svc.Create(context.Background(), uuid.New(), &model.CreateBillingRequest{
		PatientID:   uuid.NewString(),
		ServiceType: "consultation",
		Amount:      120,
	})
	require.NoError(t, err)
	assert.Equal(t, model.BillingStatusPending, record.Status)
	assert.Nil(t, record.AppointmentID)
	require.Len(t, repo.records, 1)
}

func TestCreateRejectsBadPatientID(t *testing.T) {
	svc := NewService(&fakeBillingRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateBillingRequest{
		PatientID:   "not-a-uuid",
		ServiceType: "consultation",
		Amount:      120,
	})
	require.Error(t, err)
}

func TestMarkPaidTwice(t *testing.T) {
	id := uuid.New()
	repo := &fakeBillingRepo{records: []*model.BillingRecord{
		{ID: id, Amount: 90, Status: model.BillingStatusPending},
	}}
	svc := NewService(repo)

	record, err := svc.MarkPaid(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.BillingStatusPaid, record.Status)

	_, err = svc.MarkPaid(context.Background(), id)
	require.Error(t, err)
}
