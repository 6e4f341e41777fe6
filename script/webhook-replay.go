package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76/webhook"
)

// sessionObject is the subset of a checkout session the webhook reads
type sessionObject struct {
	ID                string            `json:"id"`
	Object            string            `json:"object"`
	PaymentIntent     string            `json:"payment_intent"`
	AmountTotal       int64             `json:"amount_total"`
	ClientReferenceID string            `json:"client_reference_id"`
	PaymentStatus     string            `json:"payment_status"`
	Metadata          map[string]string `json:"metadata"`
}

type eventEnvelope struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Type   string `json:"type"`
	Data   struct {
		Object sessionObject `json:"object"`
	} `json:"data"`
}

// delivery is one signed webhook request
type delivery struct {
	generationID uint64
	payload      []byte
	header       string
}

// ReplayResult contains metrics for a single request
type ReplayResult struct {
	GenerationID uint64
	StatusCode   int
	ResponseTime time.Duration
	Error        error
}

// ReplayStats contains aggregated statistics
type ReplayStats struct {
	TotalRequests int
	Accepted      int
	Rejected      int
	TotalTime     time.Duration
	ResponseTimes []time.Duration
	StatusCounts  map[int]int
	ErrorCounts   map[string]int
	lock          sync.Mutex
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	secret := flag.String("secret", os.Getenv("HS_STRIPE_WEBHOOK_SECRET"), "Webhook signing secret")
	generationsStr := flag.String("g", "1", "Comma-separated generation IDs, each must be PENDING_PAYMENT")
	userID := flag.Uint64("u", 1, "Owner user ID written to client_reference_id")
	amount := flag.Int64("amount", 2500, "amount_total in cents")
	duplicates := flag.Int("d", 5, "Deliveries of the same event per generation")
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "webhook secret is required (-secret or HS_STRIPE_WEBHOOK_SECRET)")
		os.Exit(2)
	}

	var generationIDs []uint64
	for _, raw := range strings.Split(*generationsStr, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err == nil && id > 0 {
			generationIDs = append(generationIDs, id)
		}
	}
	if len(generationIDs) == 0 {
		fmt.Fprintln(os.Stderr, "no valid generation IDs")
		os.Exit(2)
	}

	// The same event is redelivered so only the first delivery may start a generation
	var deliveries []delivery
	for _, id := range generationIDs {
		payload, err := completedEvent(id, *userID, *amount)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := 0; i < *duplicates; i++ {
			signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
				Payload:   payload,
				Secret:    *secret,
				Timestamp: time.Now(),
			})
			deliveries = append(deliveries, delivery{generationID: id, payload: signed.Payload, header: signed.Header})
		}
	}

	fmt.Printf("Replaying checkout.session.completed for %d generations: %v\n", len(generationIDs), generationIDs)
	fmt.Printf("Deliveries per generation: %d\n", *duplicates)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)

	stats := &ReplayStats{
		TotalRequests: len(deliveries),
		ResponseTimes: make([]time.Duration, 0, len(deliveries)),
		StatusCounts:  make(map[int]int),
		ErrorCounts:   make(map[string]int),
	}

	jobs := make(chan delivery, len(deliveries))
	for _, d := range deliveries {
		jobs <- d
	}
	close(jobs)

	results := make(chan ReplayResult, len(deliveries))
	endpoint := strings.TrimRight(*baseURL, "/") + "/api/stripe/webhook"

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(endpoint, *delayMs, jobs, results)
		}()
	}
	wg.Wait()
	close(results)
	stats.TotalTime = time.Since(start)

	for r := range results {
		stats.record(r)
	}
	printResults(stats)
}

func completedEvent(generationID, userID uint64, amount int64) ([]byte, error) {
	event := eventEnvelope{
		ID:     "evt_replay_" + uuid.NewString(),
		Object: "event",
		Type:   "checkout.session.completed",
	}
	event.Data.Object = sessionObject{
		ID:                "cs_replay_" + uuid.NewString(),
		Object:            "checkout.session",
		PaymentIntent:     "pi_replay_" + strconv.FormatUint(generationID, 10),
		AmountTotal:       amount,
		ClientReferenceID: strconv.FormatUint(userID, 10),
		PaymentStatus:     "paid",
		Metadata:          map[string]string{"generationId": strconv.FormatUint(generationID, 10)},
	}
	return json.Marshal(event)
}

func worker(endpoint string, delayMs int, jobs <-chan delivery, results chan<- ReplayResult) {
	client := &http.Client{Timeout: 10 * time.Second}

	for d := range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		result := ReplayResult{GenerationID: d.generationID}
		req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(d.payload))
		if err != nil {
			result.Error = err
			results <- result
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Stripe-Signature", d.header)

		sent := time.Now()
		resp, err := client.Do(req)
		result.ResponseTime = time.Since(sent)
		if err != nil {
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			if resp.StatusCode != http.StatusOK {
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			}
			resp.Body.Close()
		}
		results <- result
	}
}

func (s *ReplayStats) record(r ReplayResult) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if r.Error != nil {
		s.Rejected++
		s.ErrorCounts[r.Error.Error()]++
	} else {
		s.Accepted++
	}
	if r.StatusCode != 0 {
		s.StatusCounts[r.StatusCode]++
	}
	s.ResponseTimes = append(s.ResponseTimes, r.ResponseTime)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *ReplayStats) {
	sorted := make([]time.Duration, len(stats.ResponseTimes))
	copy(sorted, stats.ResponseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	fmt.Println("\n================= REPLAY RESULTS =================")
	fmt.Printf("Total Deliveries:    %d\n", stats.TotalRequests)
	fmt.Printf("Acknowledged (200):  %d\n", stats.Accepted)
	fmt.Printf("Rejected:            %d\n", stats.Rejected)
	fmt.Printf("Total Time:          %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- STATUS CODES -----------------")
	for code, count := range stats.StatusCounts {
		fmt.Printf("%d: %d\n", code, count)
	}

	if stats.Rejected > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}

	fmt.Println("\nEvery generation should show one PROCESSING transition in the server log regardless of deliveries.")
}
