// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ сервера,
// успешный или нет, заворачивается в единый конверт с кодом статуса,
// сообщением и отметкой времени.
package response

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Success — признак успеха запроса.
// Поле StatusCode — HTTP-код, продублированный в теле.
// Поле Message — человеко-читаемое сообщение.
// Поле Data — данные ответа (опционально, при успехе).
// Поле Timestamp — момент формирования ответа в формате RFC3339.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Success    bool   `json:"success" example:"false"`
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"invalid request body"`
	Timestamp  string `json:"timestamp" example:"2025-01-01T00:00:00Z"`
}

// OK возвращает успешный Response с переданным сообщением и данными.
func OK(statusCode int, message string, data any) Response {
	return Response{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(statusCode int, msg string) Response {
	return Response{
		Success:    false,
		StatusCode: statusCode,
		Message:    msg,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// ValidationError формирует Response с ошибкой на основе нарушений валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(statusCode int, errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than zero", err.Field()))
		case "len":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has invalid length", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has unsupported value", err.Field()))
		case "datetime=2006-01-02":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only date in format 2006-01-02", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(statusCode, strings.Join(errsMsgs, ", "))
}
