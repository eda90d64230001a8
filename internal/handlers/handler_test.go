package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/config"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/middleware"
	"github.com/harentsoaR/dentist-booking-web/internal/utils"
)

const (
	carterID  = "67fde0a05a0148bd6061706c"
	patelID   = "67fde0a05a0148bd6061706d"
	bookingID = "67de5e972e209b32c9dc2c3e"
	userID    = "67de5ea92e209b32c9dc2c41"
)

const dentistsJSON = `[
	{"_id":"` + carterID + `","name":"Dr. Carter","area_expertise":["Orthodontics"],"year_experience":8,"StartingPrice":1500},
	{"_id":"` + patelID + `","name":"Dr. Patel","area_expertise":"Endodontics","year_experience":12,"StartingPrice":800}
]`

const bookingsJSON = `[
	{"_id":"67de5e972e209b32c9dc2c31","bookingDate":"2025-06-01T10:00:00.000Z","dentist":{"_id":"` + carterID + `","name":"Dr. Carter"},"status":"completed"},
	{"_id":"67de5e972e209b32c9dc2c32","bookingDate":"2025-06-02T10:00:00.000Z","dentist":{"_id":"` + carterID + `","name":"Dr. Carter"},"status":"blocked"},
	{"_id":"67de5e972e209b32c9dc2c33","bookingDate":"2025-06-03T10:00:00.000Z","dentist":{"_id":"` + patelID + `","name":"Dr. Patel"},"status":"upcoming"}
]`

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBackend struct {
	confirmCalls atomic.Int32
	createStatus int
	role         string
}

func writeOK(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true,"data":` + data + `}`))
}

func (f *fakeBackend) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/dentists", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, dentistsJSON)
	})
	mux.HandleFunc("GET /api/v1/dentists/{id}", func(w http.ResponseWriter, r *http.Request) {
		var all []map[string]any
		_ = json.Unmarshal([]byte(dentistsJSON), &all)
		for _, d := range all {
			if d["_id"] == r.PathValue("id") {
				raw, _ := json.Marshal(d)
				writeOK(w, string(raw))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Dentist not found"}`))
	})
	mux.HandleFunc("GET /api/v1/dentists/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, `[{"rating":5,"review":"Great"},{"rating":4,"review":"Good"}]`)
	})
	mux.HandleFunc("POST /api/v1/dentists/{id}/bookings", func(w http.ResponseWriter, r *http.Request) {
		if f.createStatus != 0 {
			w.WriteHeader(f.createStatus)
			_, _ = w.Write([]byte(`{"success":false,"message":"User has already made a booking"}`))
			return
		}
		writeOK(w, `{"_id":"`+bookingID+`","bookingDate":"2025-06-01T10:00:00.000Z","dentist":"`+r.PathValue("id")+`","status":"upcoming"}`)
	})
	mux.HandleFunc("GET /api/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, bookingsJSON)
	})
	mux.HandleFunc("GET /api/v1/bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, `{"_id":"`+r.PathValue("id")+`","bookingDate":"2025-06-01T10:00:00.000Z","dentist":"`+carterID+`","status":"upcoming"}`)
	})
	mux.HandleFunc("PUT /api/v1/bookings/{id}/confirm", func(w http.ResponseWriter, r *http.Request) {
		f.confirmCalls.Add(1)
		writeOK(w, `{}`)
	})
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		role := f.role
		if role == "" {
			role = "user"
		}
		writeOK(w, `{"_id":"`+userID+`","name":"Ann","role":"`+role+`"}`)
	})
	return mux
}

func newTestRouter(t *testing.T, f *fakeBackend) *gin.Engine {
	t.Helper()
	ts := httptest.NewServer(f.mux())
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		HistoryPageSize:   5,
		DisplayTimezone:   "UTC",
		ReviewNoticeDelay: 3 * time.Second,
		RedirectDelay:     2 * time.Second,
	}
	h := NewHandler(backend.NewClient(ts.URL, logging.Discard()), nil, cfg, logging.Discard())

	r := gin.New()
	RegisterRoutes(r, h, middleware.AuthMiddleware(utils.NewTokenParser("")), nil)
	return r
}

func sessionToken(t *testing.T, role string) string {
	t.Helper()
	claims := utils.Claims{
		UserID:           userID,
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return signed
}

func serve(r *gin.Engine, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})
	rec := serve(r, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListDentists(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})

	rec := serve(r, http.MethodGet, "/dentists?sort=desc", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	dentists := body["dentists"].([]any)
	require.Len(t, dentists, 2)
	assert.Equal(t, "Dr. Carter", dentists[0].(map[string]any)["name"])
	assert.Equal(t, []any{"All", "Endodontics", "Orthodontics"}, body["categories"])

	rec = serve(r, http.MethodGet, "/dentists?expertise=Endodontics", "", "")
	dentists = decode(t, rec)["dentists"].([]any)
	require.Len(t, dentists, 1)
	assert.Equal(t, []any{"Endodontics"}, dentists[0].(map[string]any)["area_expertise"])
}

func TestCompareDentists(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})

	rec := serve(r, http.MethodGet, "/dentists/compare?ids="+carterID+","+patelID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ready", body["state"])
	assert.Equal(t, []any{false, true}, body["lowerPrice"])
	assert.Equal(t, []any{false, true}, body["moreExperience"])

	rec = serve(r, http.MethodGet, "/dentists/compare?ids="+carterID, "", "")
	assert.Equal(t, "loading", decode(t, rec)["state"])

	rec = serve(r, http.MethodGet, "/dentists/compare?ids="+carterID+",67fde0a05a0148bd60617000", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to load comparison data.", decode(t, rec)["error"])
}

func TestGetDentistDetailAndNotFound(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})

	rec := serve(r, http.MethodGet, "/dentists/"+patelID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ratings := decode(t, rec)["ratings"].(map[string]any)
	assert.Equal(t, "4.5", ratings["average"])

	rec = serve(r, http.MethodGet, "/dentists/67fde0a05a0148bd60617000", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to load dentist data"}`, rec.Body.String())
}

func TestConfirmationRoutes(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRouter(t, f)

	rec := serve(r, http.MethodGet, "/confirm/"+bookingID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "idle", body["state"])
	assert.Equal(t, true, body["canConfirm"])

	rec = serve(r, http.MethodPost, "/confirm/"+bookingID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "success", body["state"])
	assert.Equal(t, "confirmed", body["booking"].(map[string]any)["status"])
	assert.Equal(t, int32(1), f.confirmCalls.Load())
}

func TestSessionRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})

	for _, target := range []string{"/bookings/history", "/profile", "/manage/users"} {
		rec := serve(r, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestBookingHistory(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})

	rec := serve(r, http.MethodGet, "/bookings/history?sort=asc", sessionToken(t, "user"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["total"])
	items := body["items"].([]any)
	assert.Equal(t, "completed", items[0].(map[string]any)["status"])

	rec = serve(r, http.MethodGet, "/bookings/history", sessionToken(t, "dentist"), "")
	assert.Equal(t, float64(3), decode(t, rec)["total"])

	rec = serve(r, http.MethodGet, "/bookings/history?search=patel&from=2025-06-03&to=2025-06-03", sessionToken(t, "user"), "")
	assert.Equal(t, float64(1), decode(t, rec)["total"])

	rec = serve(r, http.MethodGet, "/bookings/history?status=lost", sessionToken(t, "user"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, http.MethodGet, "/bookings/history?from=June", sessionToken(t, "user"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})

	rec := serve(r, http.MethodPost, "/bookings", sessionToken(t, "user"),
		`{"dentist":"`+carterID+`","date":"2025-06-01T10:00:00.000Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Booking successful!", body["notice"].(map[string]any)["message"])

	rec = serve(r, http.MethodPost, "/bookings", sessionToken(t, "user"), `{"dentist":"`+carterID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Please select a dentist and appointment date."}`, rec.Body.String())

	rec = serve(r, http.MethodPost, "/bookings", sessionToken(t, "user"), `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingBannedUser(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{createStatus: http.StatusBadRequest, role: "banned"})

	rec := serve(r, http.MethodPost, "/bookings", sessionToken(t, "user"),
		`{"dentist":"`+carterID+`","date":"2025-06-01T10:00:00.000Z"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to create booking. You got banned"}`, rec.Body.String())
}

func TestRoleGates(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})

	rec := serve(r, http.MethodGet, "/manage/users", sessionToken(t, "user"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(r, http.MethodPatch, "/bookings/"+bookingID+"/cancel", sessionToken(t, "user"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(r, http.MethodPut, "/manage/users/"+userID, sessionToken(t, "admin"), `{"role":"dentist"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Please select a role."}`, rec.Body.String())
}

func TestProfileEditRequiresDentist(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{role: "user"})

	rec := serve(r, http.MethodGet, "/profile/edit", sessionToken(t, "user"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
