package backend

import (
	"context"
	"fmt"
	"testing"

	"github.com/GlintPay/storefront/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type ordered struct {
	name  string
	order int
}

func (o ordered) Order() int                                                  { return o.order }
func (o ordered) Name() string                                                { return o.name }
func (o ordered) Kind() Kind                                                  { return KeyValue }
func (o ordered) Init(context.Context, config.ApplicationConfiguration) error { return nil }
func (o ordered) Read(context.Context) ([]byte, error)                        { return nil, ErrNotFound }
func (o ordered) Write(context.Context, []byte) error                         { return nil }
func (o ordered) Close()                                                      {}

func TestSorted(t *testing.T) {
	bs := Backends{ordered{"file", 100}, ordered{"gist", 10}, ordered{"postgres", 30}, ordered{"configmap", 30}}

	sorted := bs.Sorted()
	assert.Equal(t, []string{"gist", "postgres", "configmap", "file"}, sorted.Names())
	assert.Equal(t, []string{"file", "gist", "postgres", "configmap"}, bs.Names(), "original untouched")
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, "remote unavailable", Classify(errors.Wrap(ErrRemoteUnavailable, "gist")))
	assert.Equal(t, "local I/O failure", Classify(fmt.Errorf("write: %w", ErrLocalIO)))
	assert.Equal(t, "configuration missing", Classify(ErrConfigurationMissing))
	assert.Equal(t, "not found", Classify(ErrNotFound))
	assert.Equal(t, "failed", Classify(errors.New("boom")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "local-file", LocalFile.String())
	assert.Equal(t, "remote-document", RemoteDocument.String())
	assert.Equal(t, "key-value", KeyValue.String())
}

func TestFailureKeepsBothChains(t *testing.T) {
	cause := errors.New("permission denied")
	err := Failure(ErrLocalIO, cause, "write %s", "data/data.json")

	assert.ErrorIs(t, err, ErrLocalIO)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "local storage failure: write data/data.json: permission denied", err.Error())

	err = Failure(ErrConfigurationMissing, nil, "no gist id")
	assert.ErrorIs(t, err, ErrConfigurationMissing)
	assert.Equal(t, "storage backend misconfigured: no gist id", err.Error())
}
