package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/goccy/go-json"

	"github.com/alexanders-dream/compassionate-care-api/internal/schedule"
)

// Hammers the booking endpoint with workers all trying to grab slots on the
// same few clinician-days, to verify the agenda lock and availability check
// hold up under contention: every worker should see either a 201 or a clean
// 409, never a double-booked slot.

type SimConfig struct {
	BaseURL    string
	AdminToken string
	Workers    int
	Duration   time.Duration
	Clinicians int
	Days       int
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, success, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else if conflict {
		atomic.AddInt64(&om.Conflict, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	avg = sum / time.Duration(len(latencies))

	idx := func(pct int) time.Duration {
		i := len(latencies) * pct / 100
		if i >= len(latencies) {
			i = len(latencies) - 1
		}
		return latencies[i]
	}
	return avg, idx(50), idx(95)
}

type Simulator struct {
	config  SimConfig
	client  *http.Client
	metrics OperationMetrics

	clinicians []string
	dates      []string
	cal        schedule.Calendar
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := loadConfig()
	log.Printf("simulate starting base_url=%s workers=%d duration=%s clinicians=%d days=%d",
		cfg.BaseURL, cfg.Workers, cfg.Duration, cfg.Clinicians, cfg.Days)

	sim := &Simulator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		cal:    schedule.DefaultCalendar(),
	}

	// A deliberately narrow pool of agendas so workers collide.
	for i := 0; i < cfg.Clinicians; i++ {
		sim.clinicians = append(sim.clinicians, fmt.Sprintf("Dr. Sim-%d", i))
	}
	for d := 0; d < cfg.Days; d++ {
		sim.dates = append(sim.dates, time.Now().AddDate(0, 0, d+1).Format("2006-01-02"))
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	return SimConfig{
		BaseURL:    getEnv("SIM_BASE_URL", "http://localhost:8080"),
		AdminToken: getEnv("SIM_ADMIN_TOKEN", ""),
		Workers:    getInt("SIM_WORKERS", 20),
		Duration:   getDuration("SIM_DURATION", 30*time.Second),
		Clinicians: getInt("SIM_CLINICIANS", 2),
		Days:       getInt("SIM_DAYS", 3),
	}
}

func (s *Simulator) Run() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(rootCtx, s.config.Duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}
	wg.Wait()
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	faker := gofakeit.New(uint64(workerID))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.doBooking(ctx, faker)
	}
}

func (s *Simulator) doBooking(ctx context.Context, faker *gofakeit.Faker) {
	payload := map[string]any{
		"patient_name":     faker.Name(),
		"patient_phone":    faker.Phone(),
		"clinician_name":   s.clinicians[faker.Number(0, len(s.clinicians)-1)],
		"date":             s.dates[faker.Number(0, len(s.dates)-1)],
		"start_time":       s.cal[faker.Number(0, len(s.cal)-1)],
		"duration_minutes": []int{30, 60}[faker.Number(0, 1)],
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.metrics.Record(0, false, false)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.BaseURL+"/api/v1/appointments", bytes.NewReader(body))
	if err != nil {
		s.metrics.Record(0, false, false)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.AdminToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.AdminToken)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		if ctx.Err() == nil {
			s.metrics.Record(latency, false, false)
		}
		return
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		s.metrics.Record(latency, true, false)
	case http.StatusConflict:
		s.metrics.Record(latency, false, true)
	default:
		s.metrics.Record(latency, false, false)
	}
}

func (s *Simulator) PrintReport() {
	total := atomic.LoadInt64(&s.metrics.Total)

	fmt.Println("\n" + strings.Repeat("=", 72))
	fmt.Println("BOOKING RACE REPORT")
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("Duration: %s  Workers: %d  Agendas: %d clinicians x %d days\n",
		s.config.Duration, s.config.Workers, s.config.Clinicians, s.config.Days)

	if total == 0 {
		fmt.Println("no requests completed")
		return
	}

	success := atomic.LoadInt64(&s.metrics.Success)
	conflict := atomic.LoadInt64(&s.metrics.Conflict)
	errs := atomic.LoadInt64(&s.metrics.Error)
	avg, p50, p95 := s.metrics.Stats()

	fmt.Printf("Total: %d\n", total)
	fmt.Printf("Booked: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	fmt.Printf("Conflicts: %d (%.1f%%)\n", conflict, float64(conflict)/float64(total)*100)
	if errs > 0 {
		fmt.Printf("Errors: %d (%.1f%%)\n", errs, float64(errs)/float64(total)*100)
	}
	fmt.Printf("Latency: avg=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), p50.Round(time.Millisecond), p95.Round(time.Millisecond))

	// With N agendas of 19 slots each there can be at most N*19 successes,
	// minus collisions with 60-minute bookings.
	maxBookable := int64(s.config.Clinicians * s.config.Days * len(s.cal))
	if success > maxBookable {
		fmt.Printf("WARNING: %d successes exceed the %d bookable slots, double booking likely\n",
			success, maxBookable)
	}
}

// Helper functions

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
