package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRG-ScheduleService/internal/api/middleware"
	createAppointment "github.com/m04kA/TRG-ScheduleService/internal/usecase/create_appointment"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

type fakeUseCase struct {
	resp    *createAppointment.Response
	err     error
	lastReq *createAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// newTestRouter собирает роутер с реальным auth-middleware, как в main
func newTestRouter(uc *fakeUseCase) *mux.Router {
	h := NewHandler(uc, noopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/appointments", h.Handle).Methods(http.MethodPost)
	return r
}

func validBody(therapistID uuid.UUID) string {
	return `{"therapist_id":"` + therapistID.String() + `","date":"2026-09-01","start_time":"10:00"}`
}

func TestHandle_Created(t *testing.T) {
	therapistID := uuid.New()
	patientID := uuid.New()

	uc := &fakeUseCase{
		resp: &createAppointment.Response{
			ID:              42,
			TherapistID:     therapistID,
			PatientID:       patientID,
			Date:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          "pending",
			TherapistName:   "Анна Ким",
			PatientName:     "Игорь Лебедев",
			CreatedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validBody(therapistID)))
	req.Header.Set(middleware.HeaderUserID, patientID.String())
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "pending", body.Status)
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "Анна Ким", body.TherapistName)

	// Пациент взят из заголовка аутентификации, а не из тела
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, patientID, uc.lastReq.PatientID)
}

func TestHandle_MissingUserID(t *testing.T) {
	uc := &fakeUseCase{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validBody(uuid.New())))
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandle_BadBody(t *testing.T) {
	patientID := uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{"битый JSON", `{"therapist_id":`},
		{"неизвестное поле", `{"therapist_id":"` + uuid.NewString() + `","date":"2026-09-01","start_time":"10:00","price":100}`},
		{"нечитаемый therapist_id", `{"therapist_id":"abc","date":"2026-09-01","start_time":"10:00"}`},
		{"нечитаемая дата", `{"therapist_id":"` + uuid.NewString() + `","date":"завтра","start_time":"10:00"}`},
		{"нечитаемое время", `{"therapist_id":"` + uuid.NewString() + `","date":"2026-09-01","start_time":"25:99"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(tt.body))
			req.Header.Set(middleware.HeaderUserID, patientID.String())
			rec := httptest.NewRecorder()

			newTestRouter(uc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.lastReq, "use case must not be called")
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	therapistID := uuid.New()
	patientID := uuid.New()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"слот занят", createAppointment.ErrSlotConflict, http.StatusConflict},
		{"терапевт не найден", createAppointment.ErrTherapistNotFound, http.StatusNotFound},
		{"пациент не найден", createAppointment.ErrPatientNotFound, http.StatusNotFound},
		{"некорректные данные", createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"дата в прошлом", createAppointment.ErrInvalidDate, http.StatusBadRequest},
		{"дата за горизонтом", createAppointment.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"слишком поздно", createAppointment.ErrTooLateToBook, http.StatusBadRequest},
		{"вне рабочих часов", createAppointment.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"внутренняя ошибка", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validBody(therapistID)))
			req.Header.Set(middleware.HeaderUserID, patientID.String())
			rec := httptest.NewRecorder()

			newTestRouter(uc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
