package http

import (
	"iter"
	"strings"
	"unicode"
)

// Common header names.
const (
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderHost          = "Host"
	HeaderUserAgent     = "User-Agent"
	HeaderAccept        = "Accept"
	HeaderAllow         = "Allow"
	HeaderRequestID     = "X-Request-Id"
)

// HeaderName is a validated header field name. It keeps the casing it was
// created with.
type HeaderName struct {
	name string
}

// HeaderValue is a validated header field value.
type HeaderValue struct {
	value string
}

// NewHeaderName rejects names that are blank or contain control or
// whitespace characters.
func NewHeaderName(s string) (HeaderName, error) {
	if strings.TrimSpace(s) == "" {
		return HeaderName{}, &HeaderError{Name: s, Err: ErrInvalidHeaderName}
	}
	for _, r := range s {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return HeaderName{}, &HeaderError{Name: s, Err: ErrInvalidHeaderName}
		}
	}
	return HeaderName{name: s}, nil
}

// NewHeaderValue rejects values containing control characters other than tab.
func NewHeaderValue(s string) (HeaderValue, error) {
	for _, r := range s {
		if r != '\t' && unicode.IsControl(r) {
			return HeaderValue{}, &HeaderError{Err: ErrInvalidHeaderValue}
		}
	}
	return HeaderValue{value: s}, nil
}

func (n HeaderName) String() string  { return n.name }
func (v HeaderValue) String() string { return v.value }

// key is the lookup form of the name. Field names are case-insensitive.
func (n HeaderName) key() string {
	return lowerASCII(n.name)
}

type headerEntry struct {
	name  HeaderName
	value HeaderValue
}

// Headers maps header names to a single value each. Names compare without
// regard to ASCII case; a later insert of an equal name replaces the value
// and the stored casing. The zero value is an empty collection.
//
// Like a slice, a copied Headers shares its storage with the original. Use
// Clone to get an independent collection.
type Headers struct {
	entries []headerEntry
	index   map[string]int
}

// NewHeaders returns an empty collection sized for n entries.
func NewHeaders(n int) Headers {
	return Headers{
		entries: make([]headerEntry, 0, n),
		index:   make(map[string]int, n),
	}
}

// Insert validates name and value and stores them. On error the
// collection is left untouched.
func (h *Headers) Insert(name, value string) error {
	hn, err := NewHeaderName(name)
	if err != nil {
		return err
	}
	hv, err := NewHeaderValue(value)
	if err != nil {
		return &HeaderError{Name: name, Err: ErrInvalidHeaderValue}
	}
	h.Set(hn, hv)
	return nil
}

// Set stores an already validated pair.
func (h *Headers) Set(name HeaderName, value HeaderValue) {
	if h.index == nil {
		h.index = make(map[string]int)
	}

	key := name.key()
	if i, found := h.index[key]; found {
		h.entries[i] = headerEntry{name: name, value: value}
		return
	}

	h.index[key] = len(h.entries)
	h.entries = append(h.entries, headerEntry{name: name, value: value})
}

// Get returns the value stored under name. A missing name is not an error.
func (h *Headers) Get(name string) (string, bool) {
	i, found := h.index[lowerASCII(name)]
	if !found {
		return "", false
	}
	return h.entries[i].value.value, true
}

func (h *Headers) Has(name string) bool {
	_, found := h.index[lowerASCII(name)]
	return found
}

// Del removes name, reporting whether it was present.
func (h *Headers) Del(name string) bool {
	key := lowerASCII(name)
	i, found := h.index[key]
	if !found {
		return false
	}

	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	delete(h.index, key)
	for j := i; j < len(h.entries); j++ {
		h.index[h.entries[j].name.key()] = j
	}
	return true
}

func (h *Headers) Len() int {
	return len(h.entries)
}

// All yields every stored pair once. The sequence is a view and may be
// ranged over any number of times.
func (h *Headers) All() iter.Seq2[HeaderName, HeaderValue] {
	return func(yield func(HeaderName, HeaderValue) bool) {
		for _, e := range h.entries {
			if !yield(e.name, e.value) {
				return
			}
		}
	}
}

// Clone returns an independent copy of h.
func (h *Headers) Clone() Headers {
	c := NewHeaders(len(h.entries))
	c.entries = append(c.entries, h.entries...)
	for k, v := range h.index {
		c.index[k] = v
	}
	return c
}
