package backend

import (
	"context"

	"github.com/GlintPay/storefront/config"
)

type Backends []Backend

// Backend is one place the store document can live. Payloads are the serialized document;
// interpreting them is left to the caller.
type Backend interface {
	Ordering
	Name() string
	Kind() Kind
	Init(ctxt context.Context, config config.ApplicationConfiguration) error
	// Read returns ErrNotFound if nothing has been stored yet
	Read(ctxt context.Context) ([]byte, error)
	Write(ctxt context.Context, payload []byte) error
	Close()
}

type Ordering interface {
	Order() int // lower is higher priority
}

// Checker is implemented by backends that can tell whether their remote end is reachable
type Checker interface {
	Check(ctxt context.Context) error
}

type Kind int

const (
	LocalFile Kind = iota
	RemoteDocument
	KeyValue
)

func (k Kind) String() string {
	switch k {
	case LocalFile:
		return "local-file"
	case RemoteDocument:
		return "remote-document"
	case KeyValue:
		return "key-value"
	default:
		return "unknown"
	}
}

func (bs Backends) Names() []string {
	names := make([]string, len(bs))
	for i, each := range bs {
		names[i] = each.Name()
	}
	return names
}

func (bs Backends) Close() {
	for _, each := range bs {
		each.Close()
	}
}
