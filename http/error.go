package http

import (
	"net/http"
	"strconv"

	"github.com/fwojciec/viewdocs"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	viewdocs.ECONFLICT:    http.StatusConflict,
	viewdocs.EINVALID:     http.StatusBadRequest,
	viewdocs.ENOTFOUND:    http.StatusNotFound,
	viewdocs.EUNAVAILABLE: http.StatusServiceUnavailable,
	viewdocs.EINTERNAL:    http.StatusInternalServerError,
	viewdocs.ERENDER:      http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes an HTML error page for err. Internal errors are logged and
// their details are not shown to the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := viewdocs.ErrorCode(err), viewdocs.ErrorMessage(err)
	status := ErrorStatusCode(code)

	if code == viewdocs.EINTERNAL {
		s.Logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}

	data := s.layoutData(r, "")
	data.Title = http.StatusText(status)
	data.Heading = strconv.Itoa(status) + " " + http.StatusText(status)
	data.Message = message
	if code == viewdocs.ENOTFOUND {
		data.Message = "Nothing is served at " + r.URL.Path + "."
	}
	s.render(w, errorTmpl, status, data)
}
