package mock

import (
	"net/http"
	"time"

	"github.com/viant/shiftmate/schema"
)

type reissueRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	request := &schema.LoginRequest{}
	if !decode(r, request) {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid body")
		return
	}
	for _, candidate := range s.accounts {
		if candidate.user.Email == request.Email && candidate.password != "" && candidate.password == request.Password {
			s.issue(w, candidate)
			return
		}
	}
	s.fail(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
}

func (s *Service) loginWithPIN(w http.ResponseWriter, r *http.Request) {
	request := &schema.PinLoginRequest{}
	if !decode(r, request) {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid body")
		return
	}
	if candidate := s.byPIN(request.StoreID, request.EmployeeNo, request.PIN); candidate != nil {
		s.issue(w, candidate)
		return
	}
	s.fail(w, http.StatusUnauthorized, "INVALID_PIN", "invalid employee number or PIN")
}

func (s *Service) requestOTP(w http.ResponseWriter, r *http.Request) {
	request := &schema.OTPRequest{}
	if !decode(r, request) || request.Phone == "" {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "phone is required")
		return
	}
	s.ok(w, http.StatusOK, &schema.OTPChallenge{Phone: request.Phone, ExpiresIn: 180})
}

func (s *Service) verifyOTP(w http.ResponseWriter, r *http.Request) {
	request := &schema.OTPVerifyRequest{}
	if !decode(r, request) {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid body")
		return
	}
	candidate := s.byPhone(request.Phone)
	if candidate == nil || request.Code != OTPCode {
		s.fail(w, http.StatusUnauthorized, "INVALID_OTP", "invalid code")
		return
	}
	s.issue(w, candidate)
}

// reissue rotates a refresh token; every refresh token is single use
func (s *Service) reissue(w http.ResponseWriter, r *http.Request) {
	s.reissues.Add(1)
	if s.ReissueDelay > 0 {
		time.Sleep(s.ReissueDelay)
	}
	request := &reissueRequest{}
	if !decode(r, request) || request.RefreshToken == "" {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "refresh token is required")
		return
	}
	userID, ok := s.refreshTokens.Take(request.RefreshToken)
	if !ok || s.rejectReissue.Load() {
		s.fail(w, http.StatusBadRequest, "INVALID_REFRESH_TOKEN", "refresh token is invalid")
		return
	}
	access, err := s.IssueAccessToken(userID, s.AccessTTL)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	// reissue answers with a single envelope
	body := map[string]interface{}{"data": &schema.Credentials{AccessToken: access, RefreshToken: s.IssueRefreshToken(userID)}}
	writeJSON(w, http.StatusOK, body)
}

func (s *Service) logout(w http.ResponseWriter, r *http.Request) {
	request := &reissueRequest{}
	if decode(r, request) && request.RefreshToken != "" {
		s.refreshTokens.Delete(request.RefreshToken)
	}
	s.ok(w, http.StatusOK, map[string]interface{}{})
}

func (s *Service) me(w http.ResponseWriter, r *http.Request) {
	s.ok(w, http.StatusOK, s.current(r).user)
}

func (s *Service) issue(w http.ResponseWriter, candidate *account) {
	access, err := s.IssueAccessToken(candidate.user.ID, s.AccessTTL)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	s.ok(w, http.StatusOK, &schema.Credentials{AccessToken: access, RefreshToken: s.IssueRefreshToken(candidate.user.ID)})
}

func (s *Service) byPIN(storeID, employeeNo, pin string) *account {
	for _, candidate := range s.accounts {
		if candidate.user.StoreID == storeID && candidate.employeeNo != "" && candidate.employeeNo == employeeNo && candidate.pin == pin {
			return candidate
		}
	}
	return nil
}

func (s *Service) byPhone(phone string) *account {
	for _, candidate := range s.accounts {
		if phone != "" && candidate.user.Phone == phone {
			return candidate
		}
	}
	return nil
}
