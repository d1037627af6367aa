package operations

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"attendancehub/internal/model"
	"attendancehub/internal/store"
)

// TokenIssuer produces the session token handed back by a successful login.
type TokenIssuer interface {
	Issue(user model.User) (string, error)
}

// Recorder observes domain events. The zero Service uses a no-op recorder.
type Recorder interface {
	AttendanceSaved(records int)
	CaseDecided(status model.CaseStatus)
	LoginAttempt(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) AttendanceSaved(int)          {}
func (nopRecorder) CaseDecided(model.CaseStatus) {}
func (nopRecorder) LoginAttempt(string)          {}

type Service struct {
	store    store.Store
	tokens   TokenIssuer
	recorder Recorder
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func New(st store.Store, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:    st,
		tokens:   tokens,
		recorder: nopRecorder{},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) check(in any) error {
	if err := s.validate.Struct(in); err != nil {
		return &Error{Code: ErrInvalidPayload, Err: err}
	}
	return nil
}

func (s *Service) timestamp() string {
	return model.Timestamp(s.now())
}

type Health struct {
	OK        bool       `json:"ok"`
	Timestamp string     `json:"timestamp"`
	Storage   store.Mode `json:"storage"`
}

func (s *Service) Health() Health {
	return Health{OK: true, Timestamp: s.timestamp(), Storage: s.store.Mode()}
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
