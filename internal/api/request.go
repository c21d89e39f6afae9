package api

import (
	"net/http"
	"strings"
)

// RequestDescriptor is the view of an incoming request that validation needs.
type RequestDescriptor interface {
	Method() string
	// QueryParameterCount returns the number of non-empty query pairs,
	// including pairs a strict parser would reject.
	QueryParameterCount() int
	// ContentLength returns the declared length, or -1 when unknown.
	ContentLength() int64
	Header(name string) string
}

type httpRequest struct {
	r *http.Request
}

// DescribeRequest adapts an *http.Request to a RequestDescriptor.
func DescribeRequest(r *http.Request) RequestDescriptor {
	return httpRequest{r: r}
}

func (h httpRequest) Method() string { return h.r.Method }

// QueryParameterCount counts the non-empty "&" separated segments of the raw
// query. url.ParseQuery drops pairs containing ";" or bad escapes, so it
// cannot be used here.
func (h httpRequest) QueryParameterCount() int {
	n := 0
	for _, pair := range strings.Split(h.r.URL.RawQuery, "&") {
		if pair != "" {
			n++
		}
	}
	return n
}

func (h httpRequest) ContentLength() int64 { return h.r.ContentLength }

// Header looks name up in the request headers. net/http strips
// Transfer-Encoding from the header map into r.TransferEncoding, so that
// header is answered from there.
func (h httpRequest) Header(name string) string {
	if http.CanonicalHeaderKey(name) == "Transfer-Encoding" && len(h.r.TransferEncoding) > 0 {
		return strings.Join(h.r.TransferEncoding, ", ")
	}
	return h.r.Header.Get(name)
}

// hasQueryParameters reports whether the request carries any query parameter.
func hasQueryParameters(req RequestDescriptor) bool {
	return req.QueryParameterCount() > 0
}

// hasRequestBody reports whether the request declares a body: a positive
// content length or chunked transfer encoding. A request with neither is
// treated as bodiless even if bytes follow.
func hasRequestBody(req RequestDescriptor) bool {
	if req.ContentLength() > 0 {
		return true
	}
	return strings.EqualFold(req.Header("Transfer-Encoding"), "chunked")
}

// validateHealthzRequest checks query parameters before the body.
func validateHealthzRequest(req RequestDescriptor) error {
	if hasQueryParameters(req) {
		return ErrQueryParameters
	}
	if hasRequestBody(req) {
		return ErrRequestBody
	}
	return nil
}
