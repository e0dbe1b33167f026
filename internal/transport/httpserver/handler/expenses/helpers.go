package expenses

import (
	"net/http"
	"time"

	commonhandler "movein-app-go/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func parseIDParam(value string) (int64, error) {
	return commonhandler.ParseIDParam(value)
}

func parseOptionalIDParam(value string) (*int64, error) {
	return commonhandler.ParseOptionalIDParam(value)
}

func parseBoolParam(value string) (*bool, error) {
	return commonhandler.ParseBoolParam(value)
}

func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return commonhandler.ParseDateParam(*value)
}
