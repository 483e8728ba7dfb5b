package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
	"github.com/zatekoja/ayurvedaclinic/backend/pkg/config"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

const (
	defaultBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel        = "gemini-3-flash-preview"
	defaultPractitioner = "Dr. Rachitha"
)

// ErrUnauthorized is wrapped when the API rejects the key
var ErrUnauthorized = errors.New("gemini api key rejected")

// Client implements the AdvisoryProvider against the Gemini generateContent API
type Client struct {
	apiKey       string
	model        string
	practitioner string
	http         *resty.Client
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker
	metrics      *observability.Metrics
}

// Option customizes a Client
type Option func(*Client)

// WithMetrics records call durations on the given instruments
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithPractitioner sets the name the advisory notes are addressed to
func WithPractitioner(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.practitioner = name
		}
	}
}

// NewClient creates a new Gemini client
func NewClient(cfg *config.GeminiConfig, opts ...Option) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	c := &Client{
		apiKey:       cfg.APIKey,
		model:        model,
		practitioner: defaultPractitioner,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		limiter: newLimiter(cfg.RateLimitRPM, cfg.RateLimitBurst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "gemini",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ providers.AdvisoryProvider = (*Client)(nil)

// newLimiter returns nil (unlimited) for a negative rpm
func newLimiter(rpm, burst int) *rate.Limiter {
	if rpm < 0 {
		return nil
	}
	if rpm == 0 {
		rpm = 60
	}
	if burst <= 0 {
		burst = 5
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), burst)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type googleSearchTool struct{}

type tool struct {
	GoogleSearch *googleSearchTool `json:"googleSearch,omitempty"`
}

type generationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	Tools             []tool            `json:"tools,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type webChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type groundingChunk struct {
	Web *webChunk `json:"web"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type candidate struct {
	Content           content            `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// text concatenates the parts of the first candidate
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// sources lists the web pages of the first candidate's grounding metadata
func (r *generateResponse) sources() []entities.GroundingSource {
	sources := []entities.GroundingSource{}
	if len(r.Candidates) == 0 || r.Candidates[0].GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range r.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Source"
		}
		sources = append(sources, entities.GroundingSource{Title: title, URI: chunk.Web.URI})
	}
	return sources
}

// Search answers a knowledge query grounded on Google Search
func (c *Client) Search(ctx context.Context, query string) (*entities.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("query is required")
	}

	resp, err := c.generate(ctx, entities.AdvisoryKindSearch, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: searchSystemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: buildSearchPrompt(query)}}}},
		Tools:             []tool{{GoogleSearch: &googleSearchTool{}}},
	})
	if err != nil {
		return nil, apperrors.NewExternalError(errSearchMessage, err)
	}

	return &entities.SearchResponse{
		Content: resp.text(),
		Sources: resp.sources(),
	}, nil
}

// PatientInsight returns practitioner notes for a patient
func (c *Client) PatientInsight(ctx context.Context, patient *entities.Patient) (string, error) {
	return c.patientText(ctx, entities.AdvisoryKindInsight, patient,
		fmt.Sprintf(insightSystemInstruction, c.practitioner), buildInsightPrompt, insightTemperature, errInsightMessage)
}

// DoshaAnalysis returns the dominant dosha assessment
func (c *Client) DoshaAnalysis(ctx context.Context, patient *entities.Patient) (string, error) {
	return c.patientText(ctx, entities.AdvisoryKindDosha, patient,
		doshaSystemInstruction, buildDoshaPrompt, doshaTemperature, errDoshaMessage)
}

// WellnessPlan returns a plan with "###" section headings
func (c *Client) WellnessPlan(ctx context.Context, patient *entities.Patient) (string, error) {
	return c.patientText(ctx, entities.AdvisoryKindPlan, patient,
		fmt.Sprintf(planSystemInstruction, c.practitioner), buildPlanPrompt, planTemperature, errPlanMessage)
}

func (c *Client) patientText(
	ctx context.Context,
	kind entities.AdvisoryKind,
	patient *entities.Patient,
	system string,
	build func(*entities.Patient) string,
	temperature float64,
	failure string,
) (string, error) {
	if patient == nil {
		return "", apperrors.NewValidationError("patient is required")
	}

	resp, err := c.generate(ctx, kind, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: build(patient)}}}},
		GenerationConfig:  &generationConfig{Temperature: &temperature},
	})
	if err != nil {
		return "", apperrors.NewExternalError(failure, err)
	}
	return resp.text(), nil
}

func (c *Client) generate(ctx context.Context, kind entities.AdvisoryKind, body generateRequest) (*generateResponse, error) {
	ctx, span := observability.StartSpan(ctx, "gemini.generateContent")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", c.model),
		attribute.String("advisory.kind", string(kind)),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
	}

	start := time.Now()
	var callErr error
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.post(ctx, body)
		if err != nil && ctx.Err() != nil {
			// Caller cancellation says nothing about the upstream's health.
			callErr = err
			return nil, nil
		}
		return resp, err
	})
	if err == nil && callErr != nil {
		err = callErr
	}
	observability.RecordAdvisoryMetric(ctx, c.metrics, string(kind), time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	resp := result.(*generateResponse)
	if strings.TrimSpace(resp.text()) == "" {
		err := errors.New("gemini response missing text")
		observability.RecordError(span, err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, body generateRequest) (*generateResponse, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", c.apiKey).
		SetBody(body).
		Post("/models/" + c.model + ":generateContent")
	if err != nil {
		return nil, err
	}

	if res.IsError() {
		if res.StatusCode() == http.StatusUnauthorized || res.StatusCode() == http.StatusForbidden {
			return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, res.StatusCode())
		}
		return nil, fmt.Errorf("gemini request failed with status %d", res.StatusCode())
	}

	var out generateResponse
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	return &out, nil
}
