package model

import (
	"time"

	"github.com/google/uuid"
)

type BillingStatus string

const (
	BillingStatusPending BillingStatus = "pending"
	BillingStatusPaid    BillingStatus = "paid"
)

type BillingRecord struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	PatientID      uuid.UUID     `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID     `db:"doctor_id" json:"doctor_id"`
	AppointmentID  *uuid.UUID    `db:"appointment_id" json:"appointment_id,omitempty"`
	PrescriptionID *uuid.UUID    `db:"prescription_id" json:"prescription_id,omitempty"`
	ReportID       *uuid.UUID    `db:"report_id" json:"report_id,omitempty"`
	ServiceType    string        `db:"service_type" json:"service_type"`
	Amount         float64       `db:"amount" json:"amount"`
	Description    *string       `db:"description" json:"description,omitempty"`
	Status         BillingStatus `db:"status" json:"status"`
	PaidAt         *time.Time    `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

type CreateBillingRequest struct {
	PatientID      string  `json:"patient_id" binding:"required,uuid"`
	AppointmentID  *string `json:"appointment_id" binding:"omitempty,uuid"`
	PrescriptionID *string `json:"prescription_id" binding:"omitempty,uuid"`
	ReportID       *string `json:"report_id" binding:"omitempty,uuid"`
	ServiceType    string  `json:"service_type" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Description    *string `json:"description"`
}

// BillingSummary aggregates a doctor's billing records. TotalRevenue sums
// amounts of paid records only; pending records contribute to PendingAmount.
type BillingSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	PendingAmount float64 `json:"pending_amount"`
	PaidCount     int     `json:"paid_count"`
	PendingCount  int     `json:"pending_count"`
}
