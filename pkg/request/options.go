package request

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	werrors "github.com/vango-dev/widgets/internal/errors"
)

// Response types understood by Options.Type.
const (
	TypeJSON        = "json"
	TypeText        = "text"
	TypeArrayBuffer = "arraybuffer"
	TypeBlob        = "blob"
	TypeDocument    = "document"
)

// Options describes one call.
type Options struct {
	URL string

	// Params is the request payload: nil, a map[string]string or
	// map[string]any (sent as multipart form data), a *FormData, a
	// url.Values (sent urlencoded), a string, a []byte or an io.Reader.
	// For GET, HEAD and DELETE, form-like params are put in the query
	// string instead.
	Params any

	// Timeout bounds the whole call. Zero uses req.tmo; negative disables
	// the limit.
	Timeout time.Duration

	// Type selects how a successful body is decoded. Empty uses req.type.
	Type string

	Header http.Header
}

// FormData is an ordered multipart form.
type FormData struct {
	fields []formField
}

type formField struct {
	name     string
	value    string
	filename string
	data     []byte
}

// NewFormData returns an empty form.
func NewFormData() *FormData {
	return &FormData{}
}

// Append adds a text field.
func (f *FormData) Append(name, value string) *FormData {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AppendFile adds a file field.
func (f *FormData) AppendFile(name, filename string, data []byte) *FormData {
	f.fields = append(f.fields, formField{name: name, filename: filename, data: data})
	return f
}

// Len returns the number of fields.
func (f *FormData) Len() int { return len(f.fields) }

// Values returns the text fields as url.Values.
func (f *FormData) Values() url.Values {
	v := url.Values{}
	for _, fld := range f.fields {
		if fld.filename == "" {
			v.Add(fld.name, fld.value)
		}
	}
	return v
}

func (f *FormData) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, fld := range f.fields {
		if fld.filename != "" {
			w, err := mw.CreateFormFile(fld.name, fld.filename)
			if err != nil {
				return nil, "", err
			}
			if _, err := w.Write(fld.data); err != nil {
				return nil, "", err
			}
			continue
		}
		if err := mw.WriteField(fld.name, fld.value); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// formFromMap builds a FormData from a plain map, in key order.
func formFromMap[V any](m map[string]V) *FormData {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fd := NewFormData()
	for _, k := range keys {
		fd.Append(k, fmt.Sprint(m[k]))
	}
	return fd
}

// bodyOf converts params into a request body, or into query values for
// methods without a body.
func bodyOf(method string, params any) (body io.Reader, contentType string, query url.Values, err error) {
	switch p := params.(type) {
	case nil:
		return nil, "", nil, nil
	case map[string]string:
		params = formFromMap(p)
	case map[string]any:
		params = formFromMap(p)
	}

	queryOnly := method == http.MethodGet || method == http.MethodHead || method == http.MethodDelete

	switch p := params.(type) {
	case *FormData:
		if queryOnly {
			return nil, "", p.Values(), nil
		}
		body, contentType, err = p.encode()
		return body, contentType, nil, err
	case url.Values:
		if queryOnly {
			return nil, "", p, nil
		}
		return strings.NewReader(p.Encode()), "application/x-www-form-urlencoded", nil, nil
	case string:
		return strings.NewReader(p), "text/plain;charset=UTF-8", nil, nil
	case []byte:
		return bytes.NewReader(p), "application/octet-stream", nil, nil
	case io.Reader:
		return p, "", nil, nil
	}
	return nil, "", nil, werrors.New("R002").WithDetailf("%T", params)
}
