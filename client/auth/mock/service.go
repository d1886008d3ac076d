package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/viant/shiftmate/internal/collection"
	"github.com/viant/shiftmate/schema"
)

// Fixture credentials
const (
	ManagerEmail    = "manager@shiftmate.test"
	ManagerPassword = "secret"
	StoreID         = "store-1"
	OTPCode         = "123456"
)

type account struct {
	user       *schema.User
	password   string
	employeeNo string
	pin        string
	rate       float64
}

// Service simulates the ShiftMate REST API
type Service struct {
	PrivateKey *rsa.PrivateKey
	Issuer     string
	AccessTTL  time.Duration
	// DoubleWrap wraps every success payload in two data envelopes
	DoubleWrap bool
	// ReissueDelay slows down /auth/reissue
	ReissueDelay time.Duration
	// Router exposes the chi router so tests can mount extra routes
	Router chi.Router

	accounts      []*account
	refreshTokens *collection.SyncMap[string, string]
	reissues      atomic.Int32
	rejectReissue atomic.Bool

	mu          sync.Mutex
	seq         int
	templates   []*schema.ShiftTemplate
	shifts      []*schema.Shift
	attendance  []*schema.AttendanceRecord
	substitutes []*schema.SubstituteRequest
}

type Option func(s *Service)

// WithAccessTTL sets the access token lifetime
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.AccessTTL = ttl
	}
}

// WithDoubleWrap makes the server wrap payloads twice
func WithDoubleWrap() Option {
	return func(s *Service) {
		s.DoubleWrap = true
	}
}

// NewService creates a mock ShiftMate API with seeded accounts and shifts
func NewService(opts ...Option) (*Service, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %v", err)
	}
	ret := &Service{
		PrivateKey:    privateKey,
		Issuer:        "shiftmate-mock",
		AccessTTL:     time.Hour,
		refreshTokens: collection.NewSyncMap[string, string](),
	}
	ret.seed()
	for _, opt := range opts {
		opt(ret)
	}
	ret.Router = ret.routes()
	return ret, nil
}

// Handler returns the API handler
func (s *Service) Handler() http.Handler {
	return s.Router
}

// Reissues returns how many times /auth/reissue was called
func (s *Service) Reissues() int {
	return int(s.reissues.Load())
}

// RejectReissue makes /auth/reissue answer 400 for every request
func (s *Service) RejectReissue(reject bool) {
	s.rejectReissue.Store(reject)
}

// RevokeRefreshTokens forgets every issued refresh token
func (s *Service) RevokeRefreshTokens() {
	s.refreshTokens.Clear()
}

func (s *Service) seed() {
	s.accounts = []*account{
		{
			user:     &schema.User{ID: "u-1", Name: "Mina Park", Email: ManagerEmail, Role: "MANAGER", StoreID: StoreID},
			password: ManagerPassword,
			rate:     15000,
		},
		{
			user:       &schema.User{ID: "u-2", Name: "Joon Lee", Phone: "+821000000002", Role: "STAFF", StoreID: StoreID},
			employeeNo: "1002",
			pin:        "2222",
			rate:       10030,
		},
		{
			user:       &schema.User{ID: "u-3", Name: "Hana Kim", Phone: "+821000000003", Role: "STAFF", StoreID: StoreID},
			employeeNo: "1003",
			pin:        "3333",
			rate:       10030,
		},
	}
	s.templates = []*schema.ShiftTemplate{
		{ID: "tpl-1", StoreID: StoreID, Name: "Opening", Position: "barista", Weekdays: []int{1, 2, 3, 4, 5}, StartTime: "07:00", EndTime: "12:00", Headcount: 2},
	}
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s.shifts = []*schema.Shift{
		{ID: "sh-1", StoreID: StoreID, TemplateID: "tpl-1", EmployeeID: "u-2", EmployeeName: "Joon Lee", Position: "barista", StartsAt: day.Add(7 * time.Hour), EndsAt: day.Add(12 * time.Hour)},
		{ID: "sh-2", StoreID: StoreID, TemplateID: "tpl-1", EmployeeID: "u-3", EmployeeName: "Hana Kim", Position: "barista", StartsAt: day.Add(31 * time.Hour), EndsAt: day.Add(36 * time.Hour)},
	}
}

func (s *Service) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq+100)
}

func (s *Service) accountByID(id string) *account {
	for _, candidate := range s.accounts {
		if candidate.user.ID == id {
			return candidate
		}
	}
	return nil
}
