package cancel_appointment

// CancelAppointmentRequest HTTP-модель запроса на отмену сеанса
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason,omitempty"`
}
