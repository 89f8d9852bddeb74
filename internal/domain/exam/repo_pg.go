package exam

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radorder/radorder/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const examCols = `id, patient_id, modality, description, created_by, idempotency_key, seq, created_at`

// Create inserts the exam inside its own transaction. A unique violation on
// the idempotency-key index rolls back and surfaces as
// ErrIdempotencyKeyTaken; every other failure propagates unchanged.
func (r *repoPG) Create(ctx context.Context, e *Exam) error {
	e.ID = uuid.New()
	err := db.RunInTx(ctx, r.pool, func(ctx context.Context) error {
		return r.conn(ctx).QueryRow(ctx, `
			INSERT INTO exams (id, patient_id, modality, description, created_by, idempotency_key)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING seq, created_at`,
			e.ID, e.PatientID, e.Modality, e.Description, e.CreatedBy, e.IdempotencyKey,
		).Scan(&e.Seq, &e.CreatedAt)
	})
	if isIdempotencyKeyViolation(err) {
		return ErrIdempotencyKeyTaken
	}
	return err
}

func isIdempotencyKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == "exams_idempotency_key_key"
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Exam, error) {
	return scanExam(r.conn(ctx).QueryRow(ctx, `SELECT `+examCols+` FROM exams WHERE id = $1`, id))
}

func (r *repoPG) GetByIdempotencyKey(ctx context.Context, key string) (*Exam, error) {
	return scanExam(r.conn(ctx).QueryRow(ctx, `SELECT `+examCols+` FROM exams WHERE idempotency_key = $1`, key))
}

func (r *repoPG) FindEquivalent(ctx context.Context, patientID uuid.UUID, modality Modality, normalizedDescription string, since time.Time) (*Exam, error) {
	return scanExam(r.conn(ctx).QueryRow(ctx, `
		SELECT `+examCols+` FROM exams
		WHERE patient_id = $1
		  AND modality = $2
		  AND LOWER(TRIM(COALESCE(description, ''))) = $3
		  AND created_at >= $4
		LIMIT 1`,
		patientID, modality, normalizedDescription, since,
	))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Exam, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM exams`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+examCols+` FROM exams
		ORDER BY created_at DESC, seq ASC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	exams := []*Exam{}
	for rows.Next() {
		var e Exam
		if err := rows.Scan(&e.ID, &e.PatientID, &e.Modality, &e.Description, &e.CreatedBy, &e.IdempotencyKey, &e.Seq, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		exams = append(exams, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return exams, total, nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExam(row pgx.Row) (*Exam, error) {
	var e Exam
	err := row.Scan(&e.ID, &e.PatientID, &e.Modality, &e.Description, &e.CreatedBy, &e.IdempotencyKey, &e.Seq, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
