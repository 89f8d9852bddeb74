package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/radorder/radorder/internal/config"
	"github.com/radorder/radorder/internal/domain/exam"
	"github.com/radorder/radorder/internal/platform/db"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into the database",
		Long:  "Truncates patients, exams and users, then inserts a demo login and a realistic set of patients and exams.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			return runSeed(ctx, pool)
		},
	}
}

type seedPatient struct {
	name      string
	document  string
	birthDate string
}

type seedExam struct {
	patient     int // index into seedPatients
	modality    exam.Modality
	description string
}

var seedPatients = []seedPatient{
	{"João Silva Santos", "12345678901", "1985-03-15"},
	{"Maria Oliveira Costa", "98765432100", "1990-07-22"},
	{"Pedro Almeida Souza", "45678912345", "1978-11-30"},
	{"Ana Paula Ferreira", "78912345678", "1995-05-10"},
	{"Carlos Eduardo Lima", "32165498712", "1982-09-18"},
	{"Juliana Mendes Rocha", "15935745682", "1988-12-03"},
	{"Roberto Carlos Souza", "75395145682", "1970-04-18"},
	{"Patricia Rodrigues Silva", "95175385246", "1992-08-27"},
}

var seedExams = []seedExam{
	{0, exam.ModalityCT, "Tomografia computadorizada de tórax - investigação de nódulo pulmonar detectado em raio-x prévio"},
	{0, exam.ModalityMR, "Ressonância magnética de crânio - avaliação de cefaleia persistente há 3 meses"},
	{0, exam.ModalityXA, "Angiografia coronária - investigação de dor torácica aos esforços"},
	{0, exam.ModalityDX, "Raio-X de tórax PA e perfil - controle pós-operatório de cirurgia torácica"},
	{1, exam.ModalityUS, "Ultrassonografia abdominal total - dor em hipocôndrio direito, suspeita de colelitíase"},
	{1, exam.ModalityMG, "Mamografia bilateral digital - rastreamento anual, paciente sem queixas"},
	{1, exam.ModalityUS, "Ultrassonografia obstétrica morfológica - 20 semanas de gestação"},
	{2, exam.ModalityDX, "Raio-X de coluna lombar AP e perfil - lombalgia crônica há 2 anos"},
	{2, exam.ModalityMR, "Ressonância magnética de coluna lombar - investigação de hérnia de disco L4-L5"},
	{2, exam.ModalityCT, "Tomografia de abdome e pelve com contraste - investigação de massa abdominal palpável"},
	{2, exam.ModalityUS, "Ultrassonografia de próstata via abdominal - check-up preventivo, PSA elevado"},
	{2, exam.ModalityDX, "Raio-X de joelho esquerdo - trauma esportivo, suspeita de lesão meniscal"},
	{3, exam.ModalityMG, "Mamografia bilateral digital - nódulo palpável em mama direita"},
	{3, exam.ModalityUS, "Ultrassonografia de mamas - complementação da mamografia, caracterização de nódulo"},
	{4, exam.ModalityCR, "Radiografia computadorizada de coluna cervical - cervicalgia pós acidente automobilístico"},
	{4, exam.ModalityCT, "Tomografia de crânio sem contraste - investigação de tontura e desequilíbrio"},
	{4, exam.ModalityDX, "Raio-X de tórax PA - rotina pré-operatória para colecistectomia"},
	{5, exam.ModalityUS, "Ultrassonografia transvaginal - investigação de irregularidade menstrual"},
	{5, exam.ModalityMG, "Mamografia digital bilateral - screening, histórico familiar de câncer de mama"},
	{6, exam.ModalityCT, "Tomografia de tórax de alta resolução - DPOC, avaliação de extensão da doença"},
	{6, exam.ModalityXA, "Angiografia de membros inferiores - claudicação intermitente"},
	{6, exam.ModalityUS, "Ecocardiograma transtorácico - avaliação de função cardíaca, paciente hipertenso"},
	{6, exam.ModalityDX, "Raio-X de tórax PA e perfil - controle trimestral de DPOC"},
	{7, exam.ModalityUS, "Ultrassonografia de abdome total - dor abdominal difusa há 1 semana"},
}

func runSeed(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `TRUNCATE TABLE exams, patients, users RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	fmt.Println("Cleared existing data.")

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), "admin@teste.com", "Administrador", string(hash), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert demo user: %w", err)
	}
	fmt.Println("Created demo user (admin@teste.com / 123456).")

	now := time.Now().UTC()
	patientIDs := make([]uuid.UUID, len(seedPatients))
	for i, p := range seedPatients {
		birth, err := time.Parse("2006-01-02", p.birthDate)
		if err != nil {
			return fmt.Errorf("invalid seed birth date %q: %w", p.birthDate, err)
		}
		patientIDs[i] = uuid.New()
		if _, err := pool.Exec(ctx,
			`INSERT INTO patients (id, name, document, birth_date, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $5)`,
			patientIDs[i], p.name, p.document, birth, now,
		); err != nil {
			return fmt.Errorf("failed to insert patient %q: %w", p.name, err)
		}
	}
	fmt.Printf("Created %d patients.\n", len(seedPatients))

	for _, e := range seedExams {
		if _, err := pool.Exec(ctx,
			`INSERT INTO exams (id, patient_id, modality, description, created_by, idempotency_key, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), patientIDs[e.patient], string(e.modality), e.description, "Sistema", uuid.NewString(), now,
		); err != nil {
			return fmt.Errorf("failed to insert exam for patient %d: %w", e.patient, err)
		}
	}
	fmt.Printf("Created %d exams.\n", len(seedExams))

	fmt.Println("Seed completed successfully.")
	return nil
}
