// Package langfuse records bedtime estimates and user ratings in Langfuse through its HTTP
// ingestion API. Events are queued and shipped in batches by a background sender so the
// request path never waits on Langfuse. An unconfigured client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultQueueSize = 256
	defaultBatchSize = 20
	sendTimeout      = 5 * time.Second
)

// Client is the interface for Langfuse operations.
type Client interface {
	IsEnabled() bool
	// CreateTrace queues a trace and returns its ID. Disabled clients return "".
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore queues a score for an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
	// Flush blocks until every queued event has been sent or dropped.
	Flush()
}

// TraceInput describes one bedtime estimate.
type TraceInput struct {
	ID       string // generated when empty
	UserID   string
	Name     string
	Input    any
	Output   any
	Tags     []string
	Metadata map[string]any
}

// ScoreInput is a rating attached to a trace.
type ScoreInput struct {
	TraceID string
	Name    string
	Value   float64
	Comment string
}

// Config holds Langfuse client configuration.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string

	// QueueSize and BatchSize default to 256 and 20.
	QueueSize int
	BatchSize int
}

type client struct {
	cfg        Config
	enabled    bool
	httpClient *http.Client

	queue   chan ingestionEvent
	pending sync.WaitGroup
}

// NewClient returns a client that ships events to cfg.BaseURL, or a disabled client when
// any of the URL or keys is missing.
func NewClient(cfg Config) Client {
	c := &client{
		cfg:        cfg,
		enabled:    cfg.BaseURL != "" && cfg.PublicKey != "" && cfg.SecretKey != "",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	switch {
	case cfg.BaseURL == "":
		log.Println("[langfuse] disabled: LANGFUSE_BASE_URL is empty")
	case cfg.PublicKey == "":
		log.Println("[langfuse] disabled: LANGFUSE_PUBLIC_KEY is empty")
	case cfg.SecretKey == "":
		log.Println("[langfuse] disabled: LANGFUSE_SECRET_KEY is empty")
	default:
		log.Printf("[langfuse] enabled: base_url=%s env=%s", cfg.BaseURL, cfg.Environment)
	}
	if !c.enabled {
		return c
	}

	if c.cfg.QueueSize <= 0 {
		c.cfg.QueueSize = defaultQueueSize
	}
	if c.cfg.BatchSize <= 0 {
		c.cfg.BatchSize = defaultBatchSize
	}
	c.queue = make(chan ingestionEvent, c.cfg.QueueSize)
	go c.run()
	return c
}

func (c *client) IsEnabled() bool {
	return c.enabled
}

func (c *client) Flush() {
	c.pending.Wait()
}

func (c *client) CreateTrace(_ context.Context, in TraceInput) (string, error) {
	if !c.enabled {
		return "", nil
	}

	traceID := in.ID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	c.enqueue(newEvent("trace-create", traceBody{
		ID:          traceID,
		Name:        in.Name,
		UserID:      in.UserID,
		Input:       in.Input,
		Output:      in.Output,
		Tags:        in.Tags,
		Metadata:    in.Metadata,
		Environment: c.cfg.Environment,
	}))
	return traceID, nil
}

func (c *client) CreateScore(_ context.Context, in ScoreInput) error {
	if !c.enabled {
		return nil
	}

	c.enqueue(newEvent("score-create", scoreBody{
		ID:          uuid.NewString(),
		TraceID:     in.TraceID,
		Name:        in.Name,
		Value:       in.Value,
		Comment:     in.Comment,
		Environment: c.cfg.Environment,
	}))
	return nil
}

func newEvent(kind string, body any) ingestionEvent {
	return ingestionEvent{
		ID:        uuid.NewString(),
		Type:      kind,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}
}

// enqueue never blocks; a full queue drops the event.
func (c *client) enqueue(ev ingestionEvent) {
	c.pending.Add(1)
	select {
	case c.queue <- ev:
	default:
		c.pending.Done()
		log.Printf("[langfuse] queue full, dropping %s", ev.Type)
	}
}

// run sends whatever is queued, up to BatchSize events per request.
func (c *client) run() {
	for ev := range c.queue {
		batch := []ingestionEvent{ev}
	fill:
		for len(batch) < c.cfg.BatchSize {
			select {
			case next := <-c.queue:
				batch = append(batch, next)
			default:
				break fill
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := c.send(ctx, batch); err != nil {
			log.Printf("[langfuse] dropped %d event(s): %v", len(batch), err)
		}
		cancel()

		for range batch {
			c.pending.Done()
		}
	}
}

func (c *client) send(ctx context.Context, batch []ingestionEvent) error {
	body, err := json.Marshal(batchPayload{Batch: batch})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/public/ingestion", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PublicKey, c.cfg.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}
	return nil
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	UserID      string         `json:"userId,omitempty"`
	Input       any            `json:"input,omitempty"`
	Output      any            `json:"output,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Environment string         `json:"environment,omitempty"`
}

type scoreBody struct {
	ID          string  `json:"id"`
	TraceID     string  `json:"traceId"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Comment     string  `json:"comment,omitempty"`
	Environment string  `json:"environment,omitempty"`
}
