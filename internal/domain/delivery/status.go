// Package delivery models routes, their stops, and the restock and follow-up
// requests whose status is driven by stop progress.
package delivery

import (
	"strings"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
)

// StopStatus is the delivery status of a route stop
type StopStatus string

const (
	StopStatusPending      StopStatus = "Pending"
	StopStatusInProgress   StopStatus = "In Progress"
	StopStatusDelivered    StopStatus = "Delivered"
	StopStatusCompleted    StopStatus = "Completed"
	StopStatusNotDelivered StopStatus = "Not Delivered"
	StopStatusSkipped      StopStatus = "Skipped"
)

// AllStopStatuses lists every stop status
func AllStopStatuses() []StopStatus {
	return []StopStatus{
		StopStatusPending, StopStatusInProgress, StopStatusDelivered,
		StopStatusCompleted, StopStatusNotDelivered, StopStatusSkipped,
	}
}

// ParseStopStatus matches a status label case-insensitively
func ParseStopStatus(s string) (StopStatus, error) {
	for _, status := range AllStopStatuses() {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, nil
		}
	}
	return "", shared.NewDomainErrorf("INVALID_STATUS", "Unknown route stop status %q", s)
}

// IsValid reports whether s is a known stop status
func (s StopStatus) IsValid() bool {
	switch s {
	case StopStatusPending, StopStatusInProgress, StopStatusDelivered,
		StopStatusCompleted, StopStatusNotDelivered, StopStatusSkipped:
		return true
	}
	return false
}

// IsHandedOver reports whether goods reached the customer: Delivered or Completed.
// These are the statuses gated by a delivery OTP.
func (s StopStatus) IsHandedOver() bool {
	return s == StopStatusDelivered || s == StopStatusCompleted
}

// RouteStatus is the status of a whole route
type RouteStatus string

const (
	RouteStatusNotStarted RouteStatus = "Not Started"
	RouteStatusInProgress RouteStatus = "In Progress"
)

// RequestStatus is the status label shared by restock and follow-up requests
type RequestStatus string

const (
	RequestStatusRestockRequested  RequestStatus = "Restock Request"
	RequestStatusFollowupRequested RequestStatus = "Followup Requested"
	RequestStatusInTransit         RequestStatus = "In Transit"
	RequestStatusDelivered         RequestStatus = "Delivered"
)

// ParseRequestStatus matches a request status label case-insensitively
func ParseRequestStatus(s string) (RequestStatus, error) {
	for _, status := range []RequestStatus{
		RequestStatusRestockRequested, RequestStatusFollowupRequested,
		RequestStatusInTransit, RequestStatusDelivered,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, nil
		}
	}
	return "", shared.NewDomainErrorf("INVALID_STATUS", "Unknown request status %q", s)
}

// RequestKind distinguishes the two request types in the status mapping
type RequestKind int

const (
	RequestKindRestock RequestKind = iota + 1
	RequestKindFollowup
)

// InitialStatus is the status a new request of this kind starts in,
// and the status it falls back to when a delivery fails.
func (k RequestKind) InitialStatus() RequestStatus {
	if k == RequestKindFollowup {
		return RequestStatusFollowupRequested
	}
	return RequestStatusRestockRequested
}

// MapStopStatus projects a stop status onto a request status.
// Statuses with no mapping leave the request status unchanged.
func MapStopStatus(kind RequestKind, stop StopStatus, current RequestStatus) RequestStatus {
	switch stop {
	case StopStatusInProgress:
		return RequestStatusInTransit
	case StopStatusCompleted, StopStatusDelivered:
		return RequestStatusDelivered
	case StopStatusNotDelivered:
		return kind.InitialStatus()
	case StopStatusPending, StopStatusSkipped:
		return current
	}
	return current
}
