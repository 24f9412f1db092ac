package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeMissingRequiredField  = "missing_required_field"
	codeInvalidDate           = "invalid_date"
	codeInvalidID             = "invalid_id"
	codeTitleRequired         = "event_title_required"
	codeInvalidCategory       = "invalid_category"
	codeInvalidCapacity       = "invalid_capacity"
	codeEventNotFound         = "event_not_found"
	codeRegistrationNotFound  = "registration_not_found"
	codeEventFull             = "event_full"
	codeRegistrationClosed    = "registration_closed"
	codeDuplicateRegistration = "duplicate_registration"
	codeAlreadyFinalized      = "already_finalized"
	codeDuplicateTitle        = "duplicate_title"
	codeCapacityBelowBooked   = "capacity_below_booked"
	codeEventHasRegistrations = "event_has_registrations"
	codeLetterNotAvailable    = "letter_not_available"
	codeLedgerDrift           = "ledger_drift"
	codeUnauthorized          = "unauthorized"
	codeForbidden             = "forbidden"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the domain error taxonomy to HTTP statuses and
// stable machine-readable codes. Unknown errors become opaque 500s;
// ledger drift is surfaced explicitly for operator attention.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrRegistrationNotFound):
		writeError(w, http.StatusNotFound, codeRegistrationNotFound, err.Error())
	case errors.Is(err, domain.ErrEventFull):
		writeError(w, http.StatusConflict, codeEventFull, err.Error())
	case errors.Is(err, domain.ErrRegistrationClosed):
		writeError(w, http.StatusConflict, codeRegistrationClosed, err.Error())
	case errors.Is(err, domain.ErrDuplicateRegistration):
		writeError(w, http.StatusConflict, codeDuplicateRegistration, err.Error())
	case errors.Is(err, domain.ErrAlreadyFinalized):
		writeError(w, http.StatusConflict, codeAlreadyFinalized, err.Error())
	case errors.Is(err, domain.ErrDuplicateTitle):
		writeError(w, http.StatusConflict, codeDuplicateTitle, err.Error())
	case errors.Is(err, domain.ErrCapacityBelowBooked):
		writeError(w, http.StatusConflict, codeCapacityBelowBooked, err.Error())
	case errors.Is(err, domain.ErrEventHasRegistrations):
		writeError(w, http.StatusConflict, codeEventHasRegistrations, err.Error())
	case errors.Is(err, domain.ErrLetterNotAvailable):
		writeError(w, http.StatusConflict, codeLetterNotAvailable, err.Error())
	case errors.Is(err, domain.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, codeInvalidCategory, err.Error())
	case errors.Is(err, domain.ErrInvalidCapacity):
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case errors.Is(err, domain.ErrMissingField):
		writeError(w, http.StatusBadRequest, codeMissingRequiredField, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case errors.Is(err, domain.ErrLedgerDrift):
		writeError(w, http.StatusInternalServerError, codeLedgerDrift, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
