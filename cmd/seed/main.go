package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanders-dream/compassionate-care-api/internal/db"
	"github.com/alexanders-dream/compassionate-care-api/internal/schedule"
)

// Fills a dev database with plausible practice data: a handful of clinicians
// with busy agendas, some intake backlog and enough site content to make the
// dashboard feel lived-in.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	seedCtx := context.Background()
	if err := db.ApplySchema(seedCtx, pool); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	clinicians := make([]string, 6)
	for i := range clinicians {
		clinicians[i] = "Dr. " + gofakeit.LastName()
	}

	if err := seedTeamMembers(seedCtx, pool, clinicians); err != nil {
		log.Fatalf("seed team members: %v", err)
	}
	if err := seedAppointments(seedCtx, pool, clinicians, 400); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}
	if err := seedIntake(seedCtx, pool, clinicians, 40); err != nil {
		log.Fatalf("seed intake: %v", err)
	}
	if err := seedContent(seedCtx, pool); err != nil {
		log.Fatalf("seed content: %v", err)
	}

	log.Println("seed complete")
}

func seedTeamMembers(ctx context.Context, pool *pgxpool.Pool, clinicians []string) error {
	log.Printf("seeding %d team members", len(clinicians))

	roles := []string{"Family Physician", "Physiotherapist", "Counsellor", "Nurse Practitioner"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, name := range clinicians {
		_, err := tx.Exec(ctx, `
			INSERT INTO team_members (id, name, role, bio, photo_url, display_order, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())
		`, uuid.New(), name,
			roles[gofakeit.Number(0, len(roles)-1)],
			gofakeit.Paragraph(1, 3, 12, " "),
			gofakeit.ImageURL(400, 400),
			i)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, clinicians []string, count int) error {
	log.Printf("seeding %d appointments", count)

	cal := schedule.DefaultCalendar()
	reasons := []string{"annual physical", "follow-up", "back pain", "flu symptoms", "lab review", "consultation"}
	statuses := []string{"scheduled", "scheduled", "scheduled", "completed", "cancelled", "no_show"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Walk forward from today so most seeded visits are upcoming; taken
	// tracks clinician/date/slot triples already written to keep the seed
	// data conflict-free.
	taken := make(map[string]bool)
	for i := 0; i < count; i++ {
		clinician := clinicians[gofakeit.Number(0, len(clinicians)-1)]
		date := time.Now().AddDate(0, 0, gofakeit.Number(-7, 21)).Format("2006-01-02")
		slot := cal[gofakeit.Number(0, len(cal)-1)]

		key := clinician + "|" + date + "|" + slot
		if taken[key] {
			continue
		}
		taken[key] = true

		duration := []int{30, 30, 30, 60}[gofakeit.Number(0, 3)]

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments
				(id, patient_name, patient_phone, clinician_name, visit_date, start_time,
				 duration_minutes, status, reason, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, '', now(), now())
		`, uuid.New(), gofakeit.Name(), gofakeit.Phone(), clinician, date, slot,
			duration, statuses[gofakeit.Number(0, len(statuses)-1)],
			reasons[gofakeit.Number(0, len(reasons)-1)])
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedIntake(ctx context.Context, pool *pgxpool.Pool, clinicians []string, count int) error {
	log.Printf("seeding %d visit requests and referrals", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	visitStatuses := []string{"new", "new", "contacted", "scheduled", "closed"}
	for i := 0; i < count; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO visit_requests
				(id, patient_name, email, phone, preferred_clinician, preferred_date, reason, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, now(), now())
		`, uuid.New(), gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(),
			clinicians[gofakeit.Number(0, len(clinicians)-1)],
			time.Now().AddDate(0, 0, gofakeit.Number(1, 14)).Format("2006-01-02"),
			gofakeit.Sentence(6),
			visitStatuses[gofakeit.Number(0, len(visitStatuses)-1)])
		if err != nil {
			return err
		}
	}

	urgencies := []string{"routine", "routine", "urgent", "emergency"}
	referralStatuses := []string{"received", "received", "in_review", "scheduled", "declined"}
	for i := 0; i < count/2; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO referrals
				(id, referring_provider, practice, phone, fax, patient_name, patient_dob,
				 urgency, reason, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, now(), now())
		`, uuid.New(), "Dr. "+gofakeit.LastName(), gofakeit.Company(),
			gofakeit.Phone(), gofakeit.Phone(), gofakeit.Name(),
			gofakeit.DateRange(
				time.Now().AddDate(-80, 0, 0),
				time.Now().AddDate(-18, 0, 0)).Format("2006-01-02"),
			urgencies[gofakeit.Number(0, len(urgencies)-1)],
			gofakeit.Sentence(8),
			referralStatuses[gofakeit.Number(0, len(referralStatuses)-1)])
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedContent(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("seeding site content")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < 8; i++ {
		title := gofakeit.Sentence(5)
		_, err := tx.Exec(ctx, `
			INSERT INTO blog_posts (id, slug, title, excerpt, body, cover_image_url, published, published_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, true, now(), now(), now())
		`, uuid.New(), fmt.Sprintf("post-%d-%s", i, gofakeit.Word()),
			title, gofakeit.Sentence(12), gofakeit.Paragraph(3, 5, 15, "\n\n"),
			gofakeit.ImageURL(1200, 630))
		if err != nil {
			return err
		}
	}

	services := []string{"Family Medicine", "Physiotherapy", "Counselling", "Chronic Care", "Pediatrics"}
	for i, name := range services {
		_, err := tx.Exec(ctx, `
			INSERT INTO practice_services (id, name, description, icon_name, display_order, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, true, now(), now())
		`, uuid.New(), name, gofakeit.Sentence(10), gofakeit.Word(), i)
		if err != nil {
			return err
		}
	}

	for i := 0; i < 6; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO insurance_providers (id, name, logo_url, display_order, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, now(), now())
		`, uuid.New(), gofakeit.Company(), gofakeit.ImageURL(200, 80), i)
		if err != nil {
			return err
		}
	}

	for i := 0; i < 10; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO testimonials (id, author, quote, rating, approved, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, uuid.New(), gofakeit.Name(), gofakeit.Sentence(14),
			gofakeit.Number(3, 5), gofakeit.Bool())
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
