// Package http implements an HTTP/1.1 message layer: request parsing,
// response serialization, a validated header collection and the status
// code table, plus a small handler layer built on top of them.
package http

const (
	DefaultWriteBufferSize = 4096 // 4kB
	ContextPoolSize        = 1024 // rounded up to a power of 2

	instrumentationName = "github.com/freekieb7/rin/http"
)
