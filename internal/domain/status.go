package domain

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew                  TicketStatus = "NEW"
	TicketStatusAssigned             TicketStatus = "ASSIGNED"
	TicketStatusInProgress           TicketStatus = "IN_PROGRESS"
	TicketStatusAwaitingResponse     TicketStatus = "AWAITING_RESPONSE"
	TicketStatusReadyForVerification TicketStatus = "READY_FOR_VERIFICATION"
	TicketStatusEscalated            TicketStatus = "ESCALATED"
	TicketStatusClosed               TicketStatus = "CLOSED"
)

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusNew, TicketStatusAssigned, TicketStatusInProgress,
		TicketStatusAwaitingResponse, TicketStatusReadyForVerification,
		TicketStatusEscalated, TicketStatusClosed:
		return true
	}
	return false
}

// TicketCategory classifies the subject of a ticket. Fixed at creation.
type TicketCategory string

const (
	CategoryIT      TicketCategory = "IT"
	CategoryHR      TicketCategory = "HR"
	CategoryFinance TicketCategory = "FINANCE"
	CategoryGeneral TicketCategory = "GENERAL"
	CategoryOther   TicketCategory = "OTHER"
)

// Valid reports whether c is a known category.
func (c TicketCategory) Valid() bool {
	switch c {
	case CategoryIT, CategoryHR, CategoryFinance, CategoryGeneral, CategoryOther:
		return true
	}
	return false
}
