package mock

import (
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/viant/shiftmate/schema"
)

const dateLayout = "2006-01-02"

// period parses the from/to query parameters as an inclusive day range
func period(r *http.Request) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil || to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to.AddDate(0, 0, 1), true
}

func within(at, from, to time.Time) bool {
	return !at.Before(from) && at.Before(to)
}

func (s *Service) listTemplates(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	s.mu.Lock()
	defer s.mu.Unlock()
	var result = make([]*schema.ShiftTemplate, 0)
	for _, candidate := range s.templates {
		if candidate.StoreID == storeID {
			result = append(result, candidate)
		}
	}
	s.ok(w, http.StatusOK, result)
}

func (s *Service) createTemplate(w http.ResponseWriter, r *http.Request) {
	if s.current(r).user.Role != "MANAGER" {
		s.fail(w, http.StatusForbidden, "FORBIDDEN", "manager role required")
		return
	}
	template := &schema.ShiftTemplate{}
	if !decode(r, template) || template.Name == "" || template.StartTime == "" || template.EndTime == "" {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "name, startTime and endTime are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	template.ID = s.nextID("tpl")
	template.StoreID = chi.URLParam(r, "storeID")
	s.templates = append(s.templates, template)
	s.ok(w, http.StatusCreated, template)
}

func (s *Service) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	storeID, id := chi.URLParam(r, "storeID"), chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.templates {
		if candidate.ID == id && candidate.StoreID == storeID {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			s.ok(w, http.StatusOK, map[string]string{"id": id})
			return
		}
	}
	s.fail(w, http.StatusNotFound, "NOT_FOUND", "shift template not found")
}

func (s *Service) listShifts(w http.ResponseWriter, r *http.Request) {
	from, to, ok := period(r)
	if !ok {
		s.fail(w, http.StatusBadRequest, "INVALID_PERIOD", "from and to must be YYYY-MM-DD")
		return
	}
	storeID := chi.URLParam(r, "storeID")
	s.mu.Lock()
	defer s.mu.Unlock()
	var result = make([]*schema.Shift, 0)
	for _, candidate := range s.shifts {
		if candidate.StoreID == storeID && within(candidate.StartsAt, from, to) {
			result = append(result, candidate)
		}
	}
	s.ok(w, http.StatusOK, result)
}

func (s *Service) clockIn(w http.ResponseWriter, r *http.Request) {
	request := &schema.ClockRequest{}
	if !decode(r, request) {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid body")
		return
	}
	employee := s.identify(request)
	if employee == nil {
		s.fail(w, http.StatusForbidden, "INVALID_CLOCK_CREDENTIALS", "employee could not be identified")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openRecord(employee.user.ID) != nil {
		s.fail(w, http.StatusConflict, "ALREADY_CLOCKED_IN", "employee is already clocked in")
		return
	}
	record := &schema.AttendanceRecord{
		ID:           s.nextID("att"),
		StoreID:      request.StoreID,
		EmployeeID:   employee.user.ID,
		EmployeeName: employee.user.Name,
		Method:       request.Method,
		ClockIn:      time.Now().UTC(),
	}
	s.attendance = append(s.attendance, record)
	s.ok(w, http.StatusCreated, record)
}

func (s *Service) clockOut(w http.ResponseWriter, r *http.Request) {
	request := &schema.ClockRequest{}
	if !decode(r, request) {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid body")
		return
	}
	employee := s.identify(request)
	if employee == nil {
		s.fail(w, http.StatusForbidden, "INVALID_CLOCK_CREDENTIALS", "employee could not be identified")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record := s.openRecord(employee.user.ID)
	if record == nil {
		s.fail(w, http.StatusConflict, "NOT_CLOCKED_IN", "employee is not clocked in")
		return
	}
	out := time.Now().UTC()
	record.ClockOut = &out
	record.Hours = math.Round(out.Sub(record.ClockIn).Hours()*100) / 100
	s.ok(w, http.StatusOK, record)
}

// AddAttendance appends a closed attendance record
func (s *Service) AddAttendance(employeeID string, clockIn time.Time, hours float64) *schema.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	employee := s.accountByID(employeeID)
	out := clockIn.Add(time.Duration(hours * float64(time.Hour)))
	record := &schema.AttendanceRecord{
		ID:         s.nextID("att"),
		StoreID:    StoreID,
		EmployeeID: employeeID,
		Method:     schema.ClockMethodPIN,
		ClockIn:    clockIn,
		ClockOut:   &out,
		Hours:      hours,
	}
	if employee != nil {
		record.EmployeeName = employee.user.Name
		record.StoreID = employee.user.StoreID
	}
	s.attendance = append(s.attendance, record)
	return record
}

func (s *Service) listAttendance(w http.ResponseWriter, r *http.Request) {
	from, to, ok := period(r)
	if !ok {
		s.fail(w, http.StatusBadRequest, "INVALID_PERIOD", "from and to must be YYYY-MM-DD")
		return
	}
	storeID := chi.URLParam(r, "storeID")
	s.mu.Lock()
	defer s.mu.Unlock()
	var result = make([]*schema.AttendanceRecord, 0)
	for _, candidate := range s.attendance {
		if candidate.StoreID == storeID && within(candidate.ClockIn, from, to) {
			result = append(result, candidate)
		}
	}
	s.ok(w, http.StatusOK, result)
}

func (s *Service) listSubstitutes(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	status := schema.SubstituteStatus(r.URL.Query().Get("status"))
	s.mu.Lock()
	defer s.mu.Unlock()
	var result = make([]*schema.SubstituteRequest, 0)
	for _, candidate := range s.substitutes {
		if candidate.StoreID == storeID && (status == "" || candidate.Status == status) {
			result = append(result, candidate)
		}
	}
	s.ok(w, http.StatusOK, result)
}

func (s *Service) createSubstitute(w http.ResponseWriter, r *http.Request) {
	request := &schema.NewSubstituteRequest{}
	if !decode(r, request) || request.ShiftID == "" {
		s.fail(w, http.StatusBadRequest, "INVALID_REQUEST", "shiftId is required")
		return
	}
	requester := s.current(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	shift := s.shift(request.ShiftID)
	if shift == nil {
		s.fail(w, http.StatusNotFound, "NOT_FOUND", "shift not found")
		return
	}
	if shift.EmployeeID != requester.user.ID {
		s.fail(w, http.StatusForbidden, "NOT_SHIFT_OWNER", "only the assigned employee can request a substitute")
		return
	}
	substitute := &schema.SubstituteRequest{
		ID:            s.nextID("sub"),
		ShiftID:       shift.ID,
		StoreID:       shift.StoreID,
		RequesterID:   requester.user.ID,
		RequesterName: requester.user.Name,
		Reason:        request.Reason,
		Status:        schema.SubstituteOpen,
		CreatedAt:     time.Now().UTC(),
	}
	s.substitutes = append(s.substitutes, substitute)
	s.ok(w, http.StatusCreated, substitute)
}

func (s *Service) claimSubstitute(w http.ResponseWriter, r *http.Request) {
	claimant := s.current(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	substitute := s.substitute(chi.URLParam(r, "id"))
	switch {
	case substitute == nil:
		s.fail(w, http.StatusNotFound, "NOT_FOUND", "substitute request not found")
	case substitute.Status != schema.SubstituteOpen:
		s.fail(w, http.StatusConflict, "INVALID_STATE", "substitute request is not open")
	case substitute.RequesterID == claimant.user.ID:
		s.fail(w, http.StatusConflict, "SELF_CLAIM", "requester cannot claim own shift")
	default:
		substitute.Status = schema.SubstituteClaimed
		substitute.ClaimantID = claimant.user.ID
		substitute.ClaimantName = claimant.user.Name
		s.ok(w, http.StatusOK, substitute)
	}
}

func (s *Service) approveSubstitute(w http.ResponseWriter, r *http.Request) {
	if s.current(r).user.Role != "MANAGER" {
		s.fail(w, http.StatusForbidden, "FORBIDDEN", "manager role required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	substitute := s.substitute(chi.URLParam(r, "id"))
	switch {
	case substitute == nil:
		s.fail(w, http.StatusNotFound, "NOT_FOUND", "substitute request not found")
	case substitute.Status != schema.SubstituteClaimed:
		s.fail(w, http.StatusConflict, "INVALID_STATE", "substitute request is not claimed")
	default:
		substitute.Status = schema.SubstituteApproved
		if shift := s.shift(substitute.ShiftID); shift != nil {
			shift.EmployeeID = substitute.ClaimantID
			shift.EmployeeName = substitute.ClaimantName
		}
		s.ok(w, http.StatusOK, substitute)
	}
}

func (s *Service) estimatePayroll(w http.ResponseWriter, r *http.Request) {
	from, to, ok := period(r)
	if !ok {
		s.fail(w, http.StatusBadRequest, "INVALID_PERIOD", "from and to must be YYYY-MM-DD")
		return
	}
	storeID := chi.URLParam(r, "storeID")
	estimate := &schema.PayrollEstimate{
		StoreID:  storeID,
		From:     from.Format(dateLayout),
		To:       to.AddDate(0, 0, -1).Format(dateLayout),
		Currency: "KRW",
		Lines:    make([]*schema.PayrollLine, 0),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := map[string]*schema.PayrollLine{}
	for _, record := range s.attendance {
		if record.StoreID != storeID || record.ClockOut == nil || !within(record.ClockIn, from, to) {
			continue
		}
		line, ok := lines[record.EmployeeID]
		if !ok {
			line = &schema.PayrollLine{EmployeeID: record.EmployeeID, EmployeeName: record.EmployeeName}
			if employee := s.accountByID(record.EmployeeID); employee != nil {
				line.HourlyRate = employee.rate
			}
			lines[record.EmployeeID] = line
			estimate.Lines = append(estimate.Lines, line)
		}
		line.Hours += record.Hours
	}
	for _, line := range estimate.Lines {
		line.EstimatedPay = math.Round(line.Hours * line.HourlyRate)
		estimate.TotalHours += line.Hours
		estimate.LaborCost += line.EstimatedPay
	}
	s.ok(w, http.StatusOK, estimate)
}

func (s *Service) identify(request *schema.ClockRequest) *account {
	switch request.Method {
	case schema.ClockMethodPIN:
		return s.byPIN(request.StoreID, request.EmployeeNo, request.PIN)
	case schema.ClockMethodOTP:
		if request.Code != OTPCode {
			return nil
		}
		return s.byPhone(request.Phone)
	}
	return nil
}

func (s *Service) openRecord(employeeID string) *schema.AttendanceRecord {
	for _, candidate := range s.attendance {
		if candidate.EmployeeID == employeeID && candidate.ClockOut == nil {
			return candidate
		}
	}
	return nil
}

func (s *Service) shift(id string) *schema.Shift {
	for _, candidate := range s.shifts {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

func (s *Service) substitute(id string) *schema.SubstituteRequest {
	for _, candidate := range s.substitutes {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}
