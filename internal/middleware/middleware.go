package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/PDFSummarizer/internal/handlers"
	"github.com/akolanti/PDFSummarizer/internal/metrics"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// empty means the api is open
var authToken string

// Init sets the bearer token the api routes require.
func Init(token string) {
	authToken = token
}

var GetHandler = Wrap(handlers.GetHandler)
var FormHandler = Wrap(handlers.FormHandler)
var SubmitFormHandler = Wrap(handlers.SubmitFormHandler)

var PostSummarizeHandler = WrapAPI(handlers.PostSummarizeHandler)
var GetStatusHandler = WrapAPI(handlers.GetStatusHandler)

// Wrap adds tracing, per ip rate limiting and request metrics.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, false)
}

// WrapAPI is Wrap plus bearer token authentication.
func WrapAPI(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, true)
}

func wrap(next http.HandlerFunc, withAuth bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		re := processRequest(requestResponseStruct{req: r, writer: rec}, withAuth)

		if !handleBadRequest(re) {
			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
	}
}

func processRequest(re requestResponseStruct, withAuth bool) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re.logger.Info("New request received", "method", re.req.Method, "path", re.req.URL.Path)

	if withAuth {
		re = authenticate(re)
		if re.badRequest.isBadRequest {
			return re
		}
	}
	return rateLimiter(re)
}
