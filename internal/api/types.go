package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/KirkDiggler/chapterplate/internal/common/uuid"
)

// Config holds configuration for the API client
type Config struct {
	// BaseURL is the scheme and host of the meal API, e.g. http://localhost:5000
	BaseURL string

	// HTTPClient defaults to a client with no timeout; deadlines come from
	// the caller's context
	HTTPClient *http.Client

	Logger  *slog.Logger
	Metrics *Metrics

	// UUIDGenerator stamps each request with an X-Request-ID
	UUIDGenerator uuid.UUID
}

// Request describes one API call
type Request struct {
	// Method defaults to GET
	Method string

	// Path is appended to the base URL and must start with /
	Path string

	Query url.Values

	// Body is encoded as JSON. Ignored when Multipart is set.
	Body any

	// Multipart sends a multipart/form-data body
	Multipart *Form

	Header map[string]string
}

// Form is a multipart body. Fields are written before files, each in order.
type Form struct {
	Fields []FormField
	Files  []FormFile
}

type FormField struct {
	Name  string
	Value string
}

// FormFile is an uploaded file part
type FormFile struct {
	// Field is the form field name, e.g. image_0
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// AddField appends a plain field
func (f *Form) AddField(name, value string) {
	f.Fields = append(f.Fields, FormField{Name: name, Value: value})
}

// AddFile appends a file part
func (f *Form) AddFile(file FormFile) {
	f.Files = append(f.Files, file)
}
