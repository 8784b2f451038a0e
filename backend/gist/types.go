package gist

import (
	"net/http"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
)

type Backend struct {
	Config config.GistConfig
	Client *http.Client
}

func (s *Backend) Order() int {
	return s.Config.Order
}

func (s *Backend) Name() string {
	return "gist"
}

func (s *Backend) Kind() backend.Kind {
	return backend.RemoteDocument
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
	RawUrl    string `json:"raw_url,omitempty"`
}

type gistResponse struct {
	Files map[string]*gistFile `json:"files"`
}

type gistUpdate struct {
	Files map[string]gistFile `json:"files"`
}
