package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gobarber-cli/internal/client/models"
)

// HTTPClient is the concrete Client over the GoBarber REST API.
// One instance is shared by every screen; the bearer token is read from the
// TokenSource on each request so a sign-in is picked up immediately.
type HTTPClient struct {
	baseURL string
	token   TokenSource
	hc      *http.Client
}

// NewHTTPClient builds a gateway for the given API root, e.g.
// "http://localhost:3333". A nil token source means unauthenticated.
func NewHTTPClient(baseURL string, token TokenSource, timeout time.Duration) *HTTPClient {
	if token == nil {
		token = func() string { return "" }
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		hc:      &http.Client{Timeout: timeout},
	}
}

// apiError is the error body the backend returns on failures:
// {"status":"error","message":"..."}.
type apiError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Get issues a GET for path with optional query parameters, decoding the
// JSON response into out (out may be nil).
func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *HTTPClient) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, reader, contentType, out)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(method, path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) statusError(method, path string, resp *http.Response) error {
	var ae apiError
	_ = json.NewDecoder(resp.Body).Decode(&ae)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if ae.Message != "" {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, ae.Message)
	}
	return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
}

// CreateSession implements Client.
func (c *HTTPClient) CreateSession(ctx context.Context, email, password string) (models.Session, error) {
	var s models.Session
	body := map[string]string{"email": email, "password": password}
	if err := c.Post(ctx, "sessions", body, &s); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// CreateUser implements Client.
func (c *HTTPClient) CreateUser(ctx context.Context, name, email, password string) (models.User, error) {
	var u models.User
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.Post(ctx, "users", body, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ListProviders implements Client.
func (c *HTTPClient) ListProviders(ctx context.Context) ([]models.Provider, error) {
	var ps []models.Provider
	if err := c.Get(ctx, "providers", nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// DayAvailability implements Client. The day is sent as year/month/day query
// parameters; the time-of-day part of day is ignored.
func (c *HTTPClient) DayAvailability(ctx context.Context, providerID string, day time.Time) ([]models.AvailabilitySlot, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(day.Year()))
	q.Set("month", strconv.Itoa(int(day.Month())))
	q.Set("day", strconv.Itoa(day.Day()))

	var slots []models.AvailabilitySlot
	if err := c.Get(ctx, "providers/"+providerID+"/day-availability", q, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateAppointment implements Client.
func (c *HTTPClient) CreateAppointment(ctx context.Context, providerID string, date time.Time) (models.Appointment, error) {
	var a models.Appointment
	body := map[string]any{"provider_id": providerID, "date": date.Format(time.RFC3339)}
	if err := c.Post(ctx, "appointments", body, &a); err != nil {
		return models.Appointment{}, err
	}
	return a, nil
}

// UpdateProfile implements Client.
func (c *HTTPClient) UpdateProfile(ctx context.Context, p ProfileUpdate) (models.User, error) {
	var u models.User
	if err := c.Put(ctx, "profile", p, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateAvatar implements Client. The image is sent as a multipart form with
// a single "avatar" file field, matching what the backend expects.
func (c *HTTPClient) UpdateAvatar(ctx context.Context, filename string, data []byte) (models.User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("avatar", filename)
	if err != nil {
		return models.User{}, fmt.Errorf("building avatar form: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return models.User{}, fmt.Errorf("building avatar form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return models.User{}, fmt.Errorf("building avatar form: %w", err)
	}

	var u models.User
	if err := c.send(ctx, http.MethodPatch, "users/avatar", nil, &buf, mw.FormDataContentType(), &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}
