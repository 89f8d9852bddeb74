package exam

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Modality is a DICOM imaging modality code.
type Modality string

const (
	ModalityCR Modality = "CR" // Computed Radiography
	ModalityCT Modality = "CT" // Computed Tomography
	ModalityDX Modality = "DX" // Digital Radiography
	ModalityMG Modality = "MG" // Mammography
	ModalityMR Modality = "MR" // Magnetic Resonance
	ModalityNM Modality = "NM" // Nuclear Medicine
	ModalityOT Modality = "OT" // Other
	ModalityPT Modality = "PT" // Positron Emission Tomography
	ModalityRF Modality = "RF" // Radio Fluoroscopy
	ModalityUS Modality = "US" // Ultrasound
	ModalityXA Modality = "XA" // X-Ray Angiography
)

var validModalities = map[Modality]bool{
	ModalityCR: true,
	ModalityCT: true,
	ModalityDX: true,
	ModalityMG: true,
	ModalityMR: true,
	ModalityNM: true,
	ModalityOT: true,
	ModalityPT: true,
	ModalityRF: true,
	ModalityUS: true,
	ModalityXA: true,
}

// ParseModality validates a modality code. The enumeration is closed; anything
// outside it is rejected before storage is touched.
func ParseModality(s string) (Modality, error) {
	m := Modality(s)
	if !validModalities[m] {
		return "", &ValidationError{Field: "modality", Reason: fmt.Sprintf("unknown modality %q", s)}
	}
	return m, nil
}

// Exam maps to the exams table. The idempotency key is a request-deduplication
// token: two exams can never share one, which the storage layer enforces with
// a unique index. Seq is a monotone insertion counter used only as a stable
// ordering tie-break.
type Exam struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patientId"`
	Modality       Modality  `db:"modality" json:"modality"`
	Description    *string   `db:"description" json:"description,omitempty"`
	CreatedBy      *string   `db:"created_by" json:"createdBy,omitempty"`
	IdempotencyKey string    `db:"idempotency_key" json:"idempotencyKey"`
	Seq            int64     `db:"seq" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// NormalizeDescription folds a free-text description for duplicate comparison.
// The stored value keeps its original casing and whitespace; only the
// comparison is normalized. A missing description normalizes to the empty
// string, which is a matchable value, not a wildcard.
func NormalizeDescription(desc *string) string {
	if desc == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*desc))
}
