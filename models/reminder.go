package models

// ReminderPayload is the queued task body for a booking reminder push.
type ReminderPayload struct {
	OrderID     string `json:"orderId"`
	CustomerID  string `json:"customerId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	BookingDate string `json:"bookingDate"`
	BookingTime string `json:"bookingTime"`
}
