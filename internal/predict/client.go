package predict

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/yildizm/facemood/internal/logger"
	"github.com/yildizm/facemood/internal/media"
)

// FileField is the multipart field name the prediction endpoint reads
const FileField = "file"

// Config holds endpoint settings
type Config struct {
	// BaseURL is the prediction server address
	BaseURL string `json:"base_url"`

	// PredictPath is appended to BaseURL for submissions
	PredictPath string `json:"predict_path"`

	// HealthPath is appended to BaseURL for health checks
	HealthPath string `json:"health_path"`

	// Timeout for HTTP requests; zero leaves the transport default in place
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the endpoint the web client was built against
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "http://0.0.0.0:8000",
		PredictPath: "/predict",
		HealthPath:  "/health",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return newError(ErrKindRequest, "config", "base URL is required", nil)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return newError(ErrKindRequest, "config", "invalid base URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return newError(ErrKindRequest, "config", "base URL must use http or https", nil)
	}
	if c.Timeout < 0 {
		return newError(ErrKindRequest, "config", "timeout must be non-negative", nil)
	}
	return nil
}

// Client talks to the prediction endpoint
type Client struct {
	config *Config
	client *http.Client
	log    *logger.Logger
}

// New creates a client for the configured endpoint
func New(config *Config, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		log:    log.WithComponent("predict"),
	}, nil
}

// Endpoint returns the full submission URL
func (c *Client) Endpoint() string {
	return c.join(c.config.PredictPath)
}

func (c *Client) join(path string) string {
	base := strings.TrimRight(c.config.BaseURL, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Predict submits one image and decodes the ordered prediction list
func (c *Client) Predict(ctx context.Context, img *media.Image) (*Result, error) {
	const op = "predict"
	start := time.Now()

	body, contentType, err := encodeImage(img)
	if err != nil {
		return nil, newError(ErrKindRequest, op, "failed to encode multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), body)
	if err != nil {
		return nil, newError(ErrKindRequest, op, "failed to create request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.log.DebugWithFields("submitting image", []logger.Field{
		logger.F("url", req.URL.String()),
		logger.F("name", img.Name),
		logger.F("media_type", img.MediaType),
		logger.Bytes(img.Size()),
	})

	data, err := c.do(req, op)
	if err != nil {
		return nil, err
	}

	predictions, err := decodePredictions(data)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	c.log.DebugWithFields("prediction received", []logger.Field{
		logger.Count(len(predictions)),
		logger.Duration(elapsed),
	})

	return &Result{Predictions: predictions, Elapsed: elapsed}, nil
}

// Health queries the server health route
func (c *Client) Health(ctx context.Context) (*Health, error) {
	const op = "health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.join(c.config.HealthPath), http.NoBody)
	if err != nil {
		return nil, newError(ErrKindRequest, op, "failed to create request", err)
	}

	data, err := c.do(req, op)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(data) {
		return nil, newError(ErrKindDecode, op, "response is not valid JSON", nil)
	}

	status := gjson.GetBytes(data, "status")
	if status.Type != gjson.String {
		return nil, newError(ErrKindDecode, op, "response has no status", nil)
	}

	return &Health{
		Status:         status.String(),
		Hostname:       gjson.GetBytes(data, "hostname").String(),
		Model:          gjson.GetBytes(data, "model").String(),
		Device:         gjson.GetBytes(data, "device").String(),
		CacheHost:      gjson.GetBytes(data, "redis.host").String(),
		CacheConnected: gjson.GetBytes(data, "redis.connected").Bool(),
	}, nil
}

// do sends the request and returns the body of a 2xx response
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WarnWithFields("request failed", []logger.Field{logger.F("op", op), logger.Error(err)})
		return nil, newError(ErrKindNetwork, op, "failed to reach endpoint", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Debug("failed to close response body: %v", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(ErrKindNetwork, op, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		c.log.WarnWithFields("endpoint rejected request", []logger.Field{
			logger.F("op", op), logger.Status(resp.StatusCode), logger.F("body", snippet),
		})
		e := newError(ErrKindStatus, op, "endpoint returned "+resp.Status, nil)
		e.StatusCode = resp.StatusCode
		return nil, e
	}

	return data, nil
}

func encodeImage(img *media.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	mediaType := img.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FileField, quoteEscaper.Replace(img.Name)))
	header.Set("Content-Type", mediaType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// decodePredictions accepts probabilities encoded as strings (the model
// server formats them with four decimals) or as plain JSON numbers
func decodePredictions(data []byte) ([]Prediction, error) {
	const op = "predict"

	if !gjson.ValidBytes(data) {
		return nil, newError(ErrKindDecode, op, "response is not valid JSON", nil)
	}

	list := gjson.GetBytes(data, "predictions")
	if !list.IsArray() {
		return nil, newError(ErrKindDecode, op, "response has no predictions array", nil)
	}

	items := list.Array()
	predictions := make([]Prediction, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, newError(ErrKindDecode, op, fmt.Sprintf("prediction %d is not an object", i), nil)
		}

		emotion := item.Get("emotion")
		if emotion.Type != gjson.String {
			return nil, newError(ErrKindDecode, op, fmt.Sprintf("prediction %d has no emotion", i), nil)
		}

		prob := item.Get("probability")
		var raw string
		switch prob.Type {
		case gjson.String:
			raw = strings.TrimSpace(prob.Str)
		case gjson.Number:
			raw = prob.Raw
		default:
			return nil, newError(ErrKindDecode, op, fmt.Sprintf("prediction %d has no probability", i), nil)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, newError(ErrKindDecode, op, fmt.Sprintf("prediction %d probability %q is not a decimal", i, raw), err)
		}
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, newError(ErrKindDecode, op, fmt.Sprintf("prediction %d probability %q is outside 0..1", i, raw), nil)
		}

		predictions = append(predictions, Prediction{Emotion: emotion.String(), Probability: raw})
	}

	return predictions, nil
}
