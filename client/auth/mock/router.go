package mock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type subjectKey struct{}

func (s *Service) routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/login/pin", s.loginWithPIN)
		r.Post("/otp/request", s.requestOTP)
		r.Post("/otp/verify", s.verifyOTP)
		r.Post("/reissue", s.reissue)
		r.Post("/logout", s.logout)
	})
	r.Group(func(pr chi.Router) {
		pr.Use(s.authenticate)
		pr.Get("/users/me", s.me)
		pr.Route("/stores/{storeID}", func(r chi.Router) {
			r.Get("/shift-templates", s.listTemplates)
			r.Post("/shift-templates", s.createTemplate)
			r.Delete("/shift-templates/{id}", s.deleteTemplate)
			r.Get("/shifts", s.listShifts)
			r.Get("/attendance", s.listAttendance)
			r.Get("/substitutes", s.listSubstitutes)
			r.Post("/substitutes", s.createSubstitute)
			r.Get("/payroll/estimate", s.estimatePayroll)
		})
		pr.Post("/attendance/clock-in", s.clockIn)
		pr.Post("/attendance/clock-out", s.clockOut)
		pr.Post("/substitutes/{id}/claim", s.claimSubstitute)
		pr.Post("/substitutes/{id}/approve", s.approveSubstitute)
	})
	return r
}

// authenticate rejects requests without a valid bearer token; expired tokens
// are reported with the EXPIRED_TOKEN code.
func (s *Service) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			s.fail(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}
		subject, err := s.verify(strings.TrimSpace(raw[len("Bearer "):]))
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.fail(w, http.StatusUnauthorized, "EXPIRED_TOKEN", "access token expired")
			return
		}
		if err != nil || s.accountByID(subject) == nil {
			s.fail(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey{}, subject)))
	})
}

func (s *Service) current(r *http.Request) *account {
	subject, _ := r.Context().Value(subjectKey{}).(string)
	return s.accountByID(subject)
}

func (s *Service) ok(w http.ResponseWriter, status int, payload interface{}) {
	body := map[string]interface{}{"data": payload}
	if s.DoubleWrap {
		body = map[string]interface{}{"data": body}
	}
	writeJSON(w, status, body)
}

func (s *Service) fail(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   map[string]interface{}{"code": code, "message": message},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decode(r *http.Request, target interface{}) bool {
	return json.NewDecoder(r.Body).Decode(target) == nil
}
