package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/model"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 1 << 20

// ErrUpstreamCallFailed is matched by every *UpstreamError.
var ErrUpstreamCallFailed = errors.New("upstream call failed")

// UpstreamError reports a failed call to the estudiantes service: the request
// never completed, timed out, or came back with a non-2xx status.
type UpstreamError struct {
	// StatusCode is 0 when no response was received.
	StatusCode int
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("estudiantes responded %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("estudiantes unreachable: %s", e.Message)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUpstreamCallFailed}
	}
	return []error{ErrUpstreamCallFailed, e.Cause}
}

// envelope is the {message, data} body every estudiantes endpoint returns.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// StudentClient fetches student records from the estudiantes service.
type StudentClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewStudentClient creates a StudentClient. baseURL has no trailing slash,
// e.g. http://micro-estudiante:8002/api/v1.
func NewStudentClient(baseURL string, timeout time.Duration, log zerolog.Logger) *StudentClient {
	return &StudentClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "student_client").Logger(),
	}
}

// FetchStudent calls GET /students/{id}.
//
// Transport failures, timeouts and non-2xx statuses return an *UpstreamError.
// A 2xx response whose body is empty, has no data or does not decode into a
// student returns (nil, nil).
func (c *StudentClient) FetchStudent(ctx context.Context, id int64) (*model.Student, error) {
	reqURL := c.baseURL + "/students/" + strconv.FormatInt(id, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error(), Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Int64("student_id", id).Msg("estudiantes request failed")
		return nil, &UpstreamError{Message: err.Error(), Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: err.Error(), Cause: err}
	}

	c.log.Debug().
		Int64("student_id", id).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("estudiantes response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(resp, body)}
	}

	return decodeStudent(body), nil
}

func decodeStudent(body []byte) *model.Student {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}

	var s model.Student
	if err := json.Unmarshal(env.Data, &s); err != nil {
		return nil
	}
	if s.ID == 0 {
		return nil
	}
	return &s
}

func upstreamMessage(resp *http.Response, body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != nil && env.Error.Message != "" {
			return env.Error.Message
		}
		if env.Message != "" {
			return env.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}
