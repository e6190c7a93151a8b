package response

import (
	"bytes"
	"context"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Result is everything a handler may answer with.
// Only the types of this package implement it.
type Result interface {
	isResult()
}

// Page renders an HTML template with status 200.
type Page struct {
	Template string
	Data     interface{}
	Cookies  []*http.Cookie
}

// Redirect sends the client to URL with status 302.
type Redirect struct {
	URL     string
	Cookies []*http.Cookie
}

// Text is a plain text body, status defaults to 200.
type Text struct {
	Body   string
	Status int
}

// ValidationFailed is rendered as JSON with status 400.
type ValidationFailed struct {
	Errors []string
}

// BadRequest answers a request whose body could not be parsed.
type BadRequest struct{}

type NotFound struct {
	Message string
}

type Unauthorized struct{}

// InternalError is logged and rendered as a generic 500.
type InternalError struct {
	Err error
}

func (Page) isResult()             {}
func (Redirect) isResult()         {}
func (Text) isResult()             {}
func (ValidationFailed) isResult() {}
func (BadRequest) isResult()       {}
func (NotFound) isResult()         {}
func (Unauthorized) isResult()     {}
func (InternalError) isResult()    {}

type Renderer interface {
	Render(w io.Writer, name string, data interface{}) error
}

type Writer struct {
	log      logging.Logger
	renderer Renderer
}

func NewWriter(log logging.Logger, renderer Renderer) *Writer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if renderer == nil {
		panic(e.NewNilArgumentError("renderer"))
	}
	return &Writer{log: log, renderer: renderer}
}

func (w *Writer) Write(rw http.ResponseWriter, r *http.Request, res Result) {
	switch res := res.(type) {
	case Page:
		w.writePage(rw, r, res)
	case Redirect:
		setCookies(rw, res.Cookies)
		http.Redirect(rw, r, res.URL, http.StatusFound)
	case Text:
		status := res.Status
		if status == 0 {
			status = http.StatusOK
		}
		RenderText(rw, res.Body, status)
	case ValidationFailed:
		RenderValidationFailed(rw, res.Errors)
	case BadRequest:
		RenderText(rw, "bad request", http.StatusBadRequest)
	case NotFound:
		RenderText(rw, res.Message, http.StatusNotFound)
	case Unauthorized:
		RenderUnauthorized(rw)
	case InternalError:
		if !errors.Is(res.Err, context.Canceled) {
			logging.Error(r.Context(), w.log, res.Err, logging.Entry("path", r.URL.Path))
		}
		RenderInternalError(rw)
	default:
		w.log.Error(r.Context(), "Unknown handler result.", logging.Entry("path", r.URL.Path))
		RenderInternalError(rw)
	}
}

func (w *Writer) writePage(rw http.ResponseWriter, r *http.Request, page Page) {
	buf := bytes.Buffer{}
	if err := w.renderer.Render(&buf, page.Template, page.Data); err != nil {
		logging.Error(r.Context(), w.log, err, logging.Entry("template", page.Template))
		RenderInternalError(rw)
		return
	}
	setCookies(rw, page.Cookies)
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	rw.Write(buf.Bytes())
}

func setCookies(rw http.ResponseWriter, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		http.SetCookie(rw, cookie)
	}
}

type validationFailedResponse struct {
	Status string   `json:"status"`
	Errors []string `json:"errors"`
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderText(rw, "authentication required", http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderText(rw, "internal error", http.StatusInternalServerError)
}

func RenderValidationFailed(rw http.ResponseWriter, errs []string) {
	if errs == nil {
		errs = []string{}
	}
	Render(rw, validationFailedResponse{Status: "400", Errors: errs}, http.StatusBadRequest)
}

func RenderText(rw http.ResponseWriter, body string, status int) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(status)
	io.WriteString(rw, body)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
