package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

const (
	testToken     = "session-token"
	testDentistID = "67fde0a05a0148bd6061706c"
	testBookingID = "67de5e972e209b32c9dc2c3e"
	testUserID    = "67de5ea92e209b32c9dc2c41"
)

// fakeAPI records calls by name and delegates to optional hooks.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	createBooking   func(dentistID string, at time.Time) (*models.Booking, error)
	getBooking      func(token, id string) (*models.Booking, error)
	updateBooking   func(id string, u backend.BookingUpdate) (*models.Booking, error)
	confirmBooking  func(id string) error
	me              func() (*models.User, error)
	getDentist      func(id string) (*models.Dentist, error)
	updateDentist   func(id string, u backend.DentistUpdate) error
	addExpertise    func(tag string) error
	removeExpertise func(tag string) error
	submitReview    func(dentistID string, in backend.ReviewInput) error
	listBookings    func() ([]models.Booking, error)
	updateUser      func(id string, u backend.UserUpdate) (*models.User, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) CreateBooking(_ context.Context, _ string, dentistID string, at time.Time) (*models.Booking, error) {
	f.record("CreateBooking")
	if f.createBooking != nil {
		return f.createBooking(dentistID, at)
	}
	return testBooking(models.StatusUpcoming), nil
}

func (f *fakeAPI) GetBooking(_ context.Context, token, id string) (*models.Booking, error) {
	f.record("GetBooking")
	if f.getBooking != nil {
		return f.getBooking(token, id)
	}
	return testBooking(models.StatusUpcoming), nil
}

func (f *fakeAPI) UpdateBooking(_ context.Context, _ string, id string, u backend.BookingUpdate) (*models.Booking, error) {
	f.record("UpdateBooking")
	if f.updateBooking != nil {
		return f.updateBooking(id, u)
	}
	return testBooking(models.StatusUpcoming), nil
}

func (f *fakeAPI) ConfirmBooking(_ context.Context, id string) error {
	f.record("ConfirmBooking")
	if f.confirmBooking != nil {
		return f.confirmBooking(id)
	}
	return nil
}

func (f *fakeAPI) Me(_ context.Context, _ string) (*models.User, error) {
	f.record("Me")
	if f.me != nil {
		return f.me()
	}
	return &models.User{Name: "Ann", Role: models.RoleUser, Telephone: "+15550100"}, nil
}

func (f *fakeAPI) GetDentist(_ context.Context, id string) (*models.Dentist, error) {
	f.record("GetDentist")
	if f.getDentist != nil {
		return f.getDentist(id)
	}
	return testDentist(), nil
}

func (f *fakeAPI) UpdateDentist(_ context.Context, _ string, id string, u backend.DentistUpdate) error {
	f.record("UpdateDentist")
	if f.updateDentist != nil {
		return f.updateDentist(id, u)
	}
	return nil
}

func (f *fakeAPI) AddExpertise(_ context.Context, _ string, _ string, tag string) error {
	f.record("AddExpertise")
	if f.addExpertise != nil {
		return f.addExpertise(tag)
	}
	return nil
}

func (f *fakeAPI) RemoveExpertise(_ context.Context, _ string, _ string, tag string) error {
	f.record("RemoveExpertise")
	if f.removeExpertise != nil {
		return f.removeExpertise(tag)
	}
	return nil
}

func (f *fakeAPI) SubmitReview(_ context.Context, _ string, dentistID string, in backend.ReviewInput) error {
	f.record("SubmitReview")
	if f.submitReview != nil {
		return f.submitReview(dentistID, in)
	}
	return nil
}

func (f *fakeAPI) ListBookings(_ context.Context, _ string) ([]models.Booking, error) {
	f.record("ListBookings")
	if f.listBookings != nil {
		return f.listBookings()
	}
	return nil, nil
}

func (f *fakeAPI) PatientHistory(_ context.Context, _ string, _ string) ([]models.Booking, error) {
	f.record("PatientHistory")
	if f.listBookings != nil {
		return f.listBookings()
	}
	return nil, nil
}

func (f *fakeAPI) BlockSchedule(_ context.Context, _ string, _ string, at time.Time) (*models.Booking, error) {
	f.record("BlockSchedule")
	b := testBooking(models.StatusBlocked)
	b.BookingDate = at
	return b, nil
}

func (f *fakeAPI) CancelBooking(_ context.Context, _ string, _ string) (*models.Booking, error) {
	f.record("CancelBooking")
	return testBooking(models.StatusCancelled), nil
}

func (f *fakeAPI) CompleteAppointment(_ context.Context, _ string, _ string, detail string) (*models.Booking, error) {
	f.record("CompleteAppointment")
	b := testBooking(models.StatusCompleted)
	b.TreatmentDetail = detail
	return b, nil
}

func (f *fakeAPI) DeleteBooking(_ context.Context, _ string, _ string) error {
	f.record("DeleteBooking")
	return nil
}

func (f *fakeAPI) ListUsers(_ context.Context, _ string) ([]models.User, error) {
	f.record("ListUsers")
	return []models.User{{Name: "Ann", Role: models.RoleUser}}, nil
}

func (f *fakeAPI) GetUser(_ context.Context, _ string, _ string) (*models.User, error) {
	f.record("GetUser")
	return &models.User{Name: "Ann", Role: models.RoleUser}, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, _ string, id string, u backend.UserUpdate) (*models.User, error) {
	f.record("UpdateUser")
	if f.updateUser != nil {
		return f.updateUser(id, u)
	}
	return &models.User{Name: "Ann", Role: *u.Role}, nil
}

func (f *fakeAPI) ListDentists(_ context.Context) ([]models.Dentist, error) {
	f.record("ListDentists")
	return []models.Dentist{*testDentist()}, nil
}

func (f *fakeAPI) ListReviews(_ context.Context, _ string) ([]models.Review, error) {
	f.record("ListReviews")
	return []models.Review{{Rating: 4}, {Rating: 5}}, nil
}

func (f *fakeAPI) Unavailable(_ context.Context, _ string) ([]models.Slot, error) {
	f.record("Unavailable")
	return nil, nil
}

func testBooking(status models.BookingStatus) *models.Booking {
	id, _ := primitive.ObjectIDFromHex(testBookingID)
	return &models.Booking{
		ID:          id,
		BookingDate: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		User:        models.RefTo(testUserID, "Ann"),
		Dentist:     models.RefTo(testDentistID, "Dr. Carter"),
		Status:      status,
	}
}

func testDentist() *models.Dentist {
	id, _ := primitive.ObjectIDFromHex(testDentistID)
	return &models.Dentist{
		ID:             id,
		Name:           "Dr. Carter",
		AreaExpertise:  models.Expertise{"Orthodontics", "Endodontics"},
		YearExperience: 8,
		StartingPrice:  1500,
		Picture:        "https://example.com/carter.jpg",
		Ratings:        []models.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}},
	}
}

// flowKind returns the FlowError kind and message of err.
func flowKind(err error) (Kind, string) {
	fe, ok := err.(*FlowError)
	if !ok {
		return "", ""
	}
	return fe.Kind, fe.Message
}

type recordingNotifier struct {
	mu    sync.Mutex
	users []*models.User
}

func (n *recordingNotifier) SendConfirmationLink(user *models.User, _ *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.users = append(n.users, user)
}
