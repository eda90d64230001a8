package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// LinkNotifier tells a patient where to confirm a new booking.
type LinkNotifier interface {
	SendConfirmationLink(user *models.User, booking *models.Booking)
}

// NotificationService sends confirmation links by SMS through Textbelt.
type NotificationService struct {
	apiKey      string
	endpoint    string
	frontendURL string
	httpClient  *http.Client
	logger      *logging.Logger
	wg          sync.WaitGroup
}

func NewNotificationService(apiKey, endpoint, frontendURL string, logger *logging.Logger) *NotificationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NotificationService{
		apiKey:      apiKey,
		endpoint:    endpoint,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// Enabled reports whether an SMS key is configured.
func (s *NotificationService) Enabled() bool {
	return s != nil && s.apiKey != ""
}

// ConfirmationLink is the unauthenticated page where a booking is confirmed.
func (s *NotificationService) ConfirmationLink(bookingID string) string {
	return s.frontendURL + "/confirm/" + bookingID
}

// SendConfirmationLink texts the link in the background. Users without a
// telephone are skipped.
func (s *NotificationService) SendConfirmationLink(user *models.User, booking *models.Booking) {
	if !s.Enabled() {
		return
	}
	if user == nil || user.Telephone == "" {
		s.logger.Info("confirmation SMS skipped: no telephone on file")
		return
	}
	body := fmt.Sprintf(
		"Your dental appointment on %s is booked. Confirm it here: %s",
		booking.BookingDate.UTC().Format("Jan 2 at 3:04 PM"),
		s.ConfirmationLink(booking.ID.Hex()),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.send(user.Telephone, body); err != nil {
			s.logger.Warn("confirmation SMS failed", "booking_id", booking.ID.Hex(), "error", err)
			return
		}
		s.logger.Info("confirmation SMS sent", "booking_id", booking.ID.Hex())
	}()
}

// Wait blocks until in-flight sends finish.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) send(phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return fmt.Errorf("marshal textbelt payload: %w", err)
	}

	resp, err := s.httpClient.Post(s.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode textbelt response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	return nil
}
