package update_specialist_notifications

// UpdateNotificationsRequest HTTP request model
type UpdateNotificationsRequest struct {
	NotifyOnBooking     bool `json:"notifyOnBooking"`
	NotifyBeforeSession bool `json:"notifyBeforeSession"`
}

// UpdateNotificationsResponse HTTP response model
type UpdateNotificationsResponse struct {
	SpecialistID        int64 `json:"specialistId"`
	NotifyOnBooking     bool  `json:"notifyOnBooking"`
	NotifyBeforeSession bool  `json:"notifyBeforeSession"`
}
