package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession_SendsCredentialsAndDecodesPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/sessions", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "johndoe@example.com", body["email"])
		require.Equal(t, "123456", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "token-123",
			"user": map[string]string{
				"id":    "user-123",
				"name":  "John Doe",
				"email": "johndoe@example.com",
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil, time.Second)

	sess, err := c.CreateSession(context.Background(), "johndoe@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "token-123", sess.Token)
	assert.Equal(t, "johndoe@example.com", sess.User.Email)
	assert.True(t, sess.Valid())
}

func TestDayAvailability_QueryParamsAndBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/providers/p1/day-availability", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		q := r.URL.Query()
		require.Equal(t, "2026", q.Get("year"))
		require.Equal(t, "8", q.Get("month"))
		require.Equal(t, "31", q.Get("day"))

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"hour": 8, "available": true},
			{"hour": 14, "available": false},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, func() string { return "token-123" }, time.Second)

	day := time.Date(2026, 8, 31, 17, 30, 0, 0, time.UTC)
	slots, err := c.DayAvailability(context.Background(), "p1", day)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 8, slots[0].Hour)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
}

func TestCreateAppointment_SendsProviderAndDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/appointments", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "p1", body["provider_id"])

		sent, err := time.Parse(time.RFC3339, body["date"].(string))
		require.NoError(t, err)
		require.Equal(t, 12, sent.Hour())
		require.Equal(t, 0, sent.Minute())

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "appt-1",
			"date": body["date"],
			"user": "user-123",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil, time.Second)

	date := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	appt, err := c.CreateAppointment(context.Background(), "p1", date)
	require.NoError(t, err)
	assert.Equal(t, "appt-1", appt.ID)
	assert.True(t, appt.Date.Equal(date))
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "server error with message", status: http.StatusInternalServerError,
			body: `{"status":"error","message":"boom"}`, wantMsg: "boom"},
		{name: "server error without message", status: http.StatusInternalServerError,
			wantMsg: "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, nil, time.Second)
			_, err := c.ListProviders(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestUnreachableServer_ErrUnavailable(t *testing.T) {
	// Closed immediately so the address refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(srv.URL, nil, time.Second)
	_, err := c.ListProviders(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUpdateAvatar_MultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/users/avatar", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("avatar")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "pixel.jpg", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": "user-123", "name": "John Doe",
			"email": "johndoe@example.com", "avatar_url": "http://x/pixel.jpg",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, func() string { return "token-123" }, time.Second)

	u, err := c.UpdateAvatar(context.Background(), "pixel.jpg", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "http://x/pixel.jpg", u.AvatarURL)
}
