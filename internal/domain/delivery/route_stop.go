package delivery

import (
	"strings"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// RouteStop is one delivery on a route. Its request links are fixed when the route is created.
type RouteStop struct {
	shared.TenantAggregateRoot
	RouteID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	StopOrder         int        `gorm:"not null"`
	LocationID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID        *uuid.UUID `gorm:"type:uuid"`
	Address           string     `gorm:"type:text"`
	Status            StopStatus `gorm:"type:varchar(30);not null;default:'Pending'"`
	CompletedAt       *time.Time
	DeliveryOTP       string     `gorm:"column:delivery_otp;type:varchar(12)"`
	RestockRequestID  *uuid.UUID `gorm:"type:uuid;index"`
	FollowupRequestID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (RouteStop) TableName() string {
	return "route_stops"
}

// RequiresOTP reports whether hand-over is gated by a passcode
func (s *RouteStop) RequiresOTP() bool {
	return s.DeliveryOTP != ""
}

// ChangeStatus moves the stop to a new status. Moving into Delivered or
// Completed on a stop with an OTP requires the matching passcode.
// CompletedAt is stamped on hand-over and otherwise left as it was.
func (s *RouteStop) ChangeStatus(status StopStatus, suppliedOTP *string, now time.Time, userID uuid.UUID) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf("INVALID_STATUS", "Unknown route stop status %q", status)
	}
	if status.IsHandedOver() && s.RequiresOTP() {
		if suppliedOTP == nil || strings.TrimSpace(*suppliedOTP) == "" {
			return ErrOTPRequired
		}
		if !otpEqual(s.DeliveryOTP, strings.TrimSpace(*suppliedOTP)) {
			return ErrOTPMismatch
		}
	}

	from := s.Status
	s.Status = status
	if status.IsHandedOver() {
		completed := now
		s.CompletedAt = &completed
	}
	s.Touch(userID)
	s.AddDomainEvent(NewRouteStopStatusChangedEvent(s, from))
	return nil
}

// VerifyOTP checks a passcode without changing anything
func (s *RouteStop) VerifyOTP(otp string) error {
	if !s.RequiresOTP() {
		return ErrNoOTPRequired
	}
	if !otpEqual(s.DeliveryOTP, strings.TrimSpace(otp)) {
		return ErrInvalidOTP
	}
	return nil
}
