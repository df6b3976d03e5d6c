package http

// Method is one of the nine standard request methods.
type Method uint8

const (
	MethodGet Method = iota + 1
	MethodPost
	MethodPut
	MethodDelete
	MethodHead
	MethodOptions
	MethodPatch
	MethodConnect
	MethodTrace
)

var methodNames = [...]string{
	MethodGet:     "GET",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodHead:    "HEAD",
	MethodOptions: "OPTIONS",
	MethodPatch:   "PATCH",
	MethodConnect: "CONNECT",
	MethodTrace:   "TRACE",
}

// Methods lists every known method in declaration order.
var Methods = []Method{
	MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead,
	MethodOptions, MethodPatch, MethodConnect, MethodTrace,
}

// ParseMethod matches token against the known methods ignoring case.
func ParseMethod(token string) (Method, error) {
	for _, m := range Methods {
		if equalFoldASCII(token, methodNames[m]) {
			return m, nil
		}
	}
	return 0, &MethodError{Token: token}
}

func (m Method) String() string {
	if m == 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}
	return methodNames[m]
}
