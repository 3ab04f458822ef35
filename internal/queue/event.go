// Package queue defines message payloads exchanged over the message broker.
package queue

// RequestDecidedEvent is published whenever a booth request reaches a
// terminal status, whether through an explicit organizer decision or a
// sibling auto-reject. It carries enough detail for downstream
// consumers to log or notify without querying the primary database.
type RequestDecidedEvent struct {
	RequestID   uint64 `json:"request_id"`
	ExpoID      uint64 `json:"expo_id"`
	ExpoTitle   string `json:"expo_title"`
	BoothID     uint64 `json:"booth_id"`
	BoothNumber string `json:"booth_number"`
	CompanyID   uint64 `json:"company_id"`
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
	DecidedBy   uint64 `json:"decided_by,omitempty"`
	DecidedAt   string `json:"decided_at"`
}

// ContactExchangedEvent is published when an organizer pulls the
// contact sheet of an accepted request.
type ContactExchangedEvent struct {
	RequestID   uint64 `json:"request_id"`
	CompanyName string `json:"company_name"`
	RequestedBy uint64 `json:"requested_by"`
	ExchangedAt string `json:"exchanged_at"`
}
