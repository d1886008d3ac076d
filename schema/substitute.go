package schema

import "time"

// SubstituteStatus tracks a substitute request through claiming and approval
type SubstituteStatus string

const (
	SubstituteOpen      SubstituteStatus = "OPEN"
	SubstituteClaimed   SubstituteStatus = "CLAIMED"
	SubstituteApproved  SubstituteStatus = "APPROVED"
	SubstituteCancelled SubstituteStatus = "CANCELLED"
)

// SubstituteRequest asks for somebody to take over a shift
type SubstituteRequest struct {
	ID            string           `json:"id"`
	ShiftID       string           `json:"shiftId"`
	StoreID       string           `json:"storeId"`
	RequesterID   string           `json:"requesterId"`
	RequesterName string           `json:"requesterName,omitempty"`
	ClaimantID    string           `json:"claimantId,omitempty"`
	ClaimantName  string           `json:"claimantName,omitempty"`
	Reason        string           `json:"reason,omitempty"`
	Status        SubstituteStatus `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// NewSubstituteRequest opens a substitute request for a shift
type NewSubstituteRequest struct {
	ShiftID string `json:"shiftId"`
	Reason  string `json:"reason,omitempty"`
}
