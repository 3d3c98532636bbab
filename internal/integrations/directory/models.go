package directory

import "github.com/google/uuid"

// Роли пользователей в сервисе профилей
// Роли терапевтов имеют префикс "therapist" (например, "therapist_admin")
const (
	RolePatient         = "patient"
	RoleTherapistPrefix = "therapist"
)

// User профиль пользователя из сервиса профилей
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// IsTherapist возвращает true, если пользователь — терапевт
func (u *User) IsTherapist() bool {
	return len(u.Role) >= len(RoleTherapistPrefix) && u.Role[:len(RoleTherapistPrefix)] == RoleTherapistPrefix
}

// IsPatient возвращает true, если пользователь — пациент
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

// ErrorResponse модель ошибки от сервиса профилей
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
