package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса профилей (пациенты и терапевты живут там,
// сервис расписания хранит только их идентификаторы)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса профилей
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает профиль пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	url := fmt.Sprintf("%s/internal/users/%s", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}

// GetTherapist получает профиль терапевта, проверяя роль
func (c *Client) GetTherapist(ctx context.Context, therapistID uuid.UUID) (*User, error) {
	user, err := c.GetUser(ctx, therapistID)
	if err != nil {
		return nil, err
	}

	if !user.IsTherapist() {
		c.log.Warn("GetTherapist: user id=%s has role %q, expected therapist", therapistID, user.Role)
		return nil, fmt.Errorf("%w: id=%s role=%s", ErrWrongRole, therapistID, user.Role)
	}

	return user, nil
}

// GetPatient получает профиль пациента, проверяя роль
func (c *Client) GetPatient(ctx context.Context, patientID uuid.UUID) (*User, error) {
	user, err := c.GetUser(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if !user.IsPatient() {
		c.log.Warn("GetPatient: user id=%s has role %q, expected patient", patientID, user.Role)
		return nil, fmt.Errorf("%w: id=%s role=%s", ErrWrongRole, patientID, user.Role)
	}

	return user, nil
}
