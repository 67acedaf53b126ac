// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into guest
// notifications.
package queue

// Event discriminators carried in ReservationEvent.Event.
const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published after a reservation lifecycle change
// commits. It carries enough information for downstream consumers to
// notify the guest or feed analytics without querying the primary
// database. Delivery is best-effort: losing an event never rolls back
// the reservation.
type ReservationEvent struct {
	Event         string   `json:"event"`
	ReservationID uint64   `json:"reservation_id"`
	GuestID       uint64   `json:"guest_id"`
	CheckIn       string   `json:"check_in"`
	CheckOut      string   `json:"check_out"`
	Status        string   `json:"status"`
	RoomNumbers   []string `json:"rooms"`
	TotalAmount   string   `json:"total_amount"`
	OccurredAt    string   `json:"occurred_at"`
}
