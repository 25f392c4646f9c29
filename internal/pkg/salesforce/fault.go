package salesforce

import (
	"fmt"
)

// Fault is a SOAP fault returned by the Metadata API, for example on an invalid session.
type Fault struct {
	Code    string `xml:"faultcode"`
	Message string `xml:"faultstring"`
}

// HTTPError is returned if the response is not successful and it is not a SOAP fault.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *Fault) Error() string {
	return fmt.Sprintf(`metadata API fault "%s": %s`, e.Code, e.Message)
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`%s %s | returned http code %d`, e.Method, e.URL, e.StatusCode)
}
