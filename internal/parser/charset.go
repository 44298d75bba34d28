package parser

import (
	"io"
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps an io.Reader with character encoding conversion to UTF-8.
//
// JSON is UTF-8 unless the server says otherwise, so the body is only
// transcoded when contentType carries an explicit charset parameter
// (e.g. "application/json; charset=ISO-8859-1"). There is no sniffing.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}

	cs := strings.ToLower(strings.TrimSpace(params["charset"]))
	if cs == "" || cs == "utf-8" || cs == "utf8" {
		return body, nil
	}

	return charset.NewReader(body, contentType)
}
