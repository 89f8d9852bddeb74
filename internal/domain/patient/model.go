package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. Document is the national patient
// identifier (CPF), unique across patients.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Document  string    `db:"document" json:"document"`
	BirthDate time.Time `db:"birth_date" json:"birthDate"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
