package domain

import "time"

// Path is the lane family chosen by triage.
type Path string

const (
	PathCritical Path = "critical"
	PathNormal   Path = "normal"
)

// RiskLevel is the risk assigned by triage.
type RiskLevel string

const (
	RiskLow  RiskLevel = "low"
	RiskHigh RiskLevel = "high"
)

// IssueType is the customer-selected category.
type IssueType string

const (
	IssueTypeLostCard       IssueType = "Lost card"
	IssueTypeStolenCard     IssueType = "Stolen card"
	IssueTypeMoneyMissing   IssueType = "Money missing"
	IssueTypeFraud          IssueType = "Unauthorized / fraud transaction"
	IssueTypeAccountLocked  IssueType = "Account locked"
	IssueTypeDigitalBanking IssueType = "Digital banking issue"
	IssueTypeOthers         IssueType = "Others"
)

// IssueTypes lists the known categories in display order.
var IssueTypes = []IssueType{
	IssueTypeLostCard,
	IssueTypeStolenCard,
	IssueTypeMoneyMissing,
	IssueTypeFraud,
	IssueTypeAccountLocked,
	IssueTypeDigitalBanking,
	IssueTypeOthers,
}

// Issue is a customer report held by the queue store.
// Everything except the booking fields is fixed at creation.
type Issue struct {
	ID          string
	Name        string
	Contact     string
	IssueType   IssueType
	Description string
	Summary     string
	IsUrgent    bool
	Path        Path
	RiskLevel   RiskLevel
	CreatedAt   time.Time
	BookingDate *string
	BookingSlot *string
}

// BookedInto reports whether the issue holds the given date and slot.
func (i *Issue) BookedInto(date, slot string) bool {
	return i.BookingDate != nil && i.BookingSlot != nil &&
		*i.BookingDate == date && *i.BookingSlot == slot
}

// SetBooking replaces the booking fields with fresh values so that
// copies handed out earlier keep their old booking.
func (i *Issue) SetBooking(date, slot string) {
	d, s := date, slot
	i.BookingDate = &d
	i.BookingSlot = &s
}
