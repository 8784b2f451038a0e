package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog/log"
)

const maxErrorBody = 512

func (s *Backend) Init(_ context.Context, appConfig config.ApplicationConfiguration) error {
	s.Config = appConfig.Gist
	if !s.Config.IsConfigured() {
		return backend.Failure(backend.ErrConfigurationMissing, nil, "gist id and token are both required")
	}

	if s.Client == nil {
		s.Client = cleanhttp.DefaultPooledClient()
		s.Client.Timeout = time.Duration(s.Config.TimeoutMillis) * time.Millisecond
	}

	log.Debug().Msgf("Using gist %s, file %s", s.Config.ID, s.Config.FileName)
	return nil
}

func (s *Backend) Read(ctxt context.Context) ([]byte, error) {
	var gist gistResponse
	if err := s.call(ctxt, http.MethodGet, s.gistUrl(), nil, &gist); err != nil {
		return nil, err
	}

	f, ok := gist.Files[s.Config.FileName]
	if !ok || f == nil {
		return nil, backend.ErrNotFound
	}

	// the API inlines at most 1MB of content
	if f.Truncated && f.RawUrl != "" {
		return s.fetchRaw(ctxt, f.RawUrl)
	}

	if strings.TrimSpace(f.Content) == "" {
		return nil, backend.ErrNotFound
	}
	return []byte(f.Content), nil
}

func (s *Backend) Write(ctxt context.Context, payload []byte) error {
	update := gistUpdate{Files: map[string]gistFile{
		s.Config.FileName: {Content: string(payload)},
	}}

	body, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.call(ctxt, http.MethodPatch, s.gistUrl(), body, nil)
}

// Check verifies that the gist is reachable with the configured token
func (s *Backend) Check(ctxt context.Context) error {
	return s.call(ctxt, http.MethodGet, s.gistUrl(), nil, nil)
}

func (s *Backend) Close() {
	if s.Client != nil {
		s.Client.CloseIdleConnections()
	}
}

func (s *Backend) gistUrl() string {
	return strings.TrimSuffix(s.Config.ApiUrl, "/") + "/gists/" + s.Config.ID
}

func (s *Backend) call(ctxt context.Context, method string, url string, body []byte, result any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctxt, method, url, reader)
	if err != nil {
		return backend.Failure(backend.ErrConfigurationMissing, err, "gist request")
	}
	req.Header.Set("Authorization", "Bearer "+s.Config.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return backend.Failure(backend.ErrRemoteUnavailable, err, "%s gist %s", method, s.Config.ID)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return backend.Failure(backend.ErrConfigurationMissing, statusError(resp), "gist token rejected")
	case resp.StatusCode == http.StatusNotFound:
		return backend.Failure(backend.ErrConfigurationMissing, statusError(resp), "gist %s not found", s.Config.ID)
	case resp.StatusCode >= 300:
		return backend.Failure(backend.ErrRemoteUnavailable, statusError(resp), "%s gist %s", method, s.Config.ID)
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(result); err != nil {
		return backend.Failure(backend.ErrRemoteUnavailable, err, "decode gist %s", s.Config.ID)
	}
	return nil
}

func (s *Backend) fetchRaw(ctxt context.Context, rawUrl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctxt, http.MethodGet, rawUrl, nil)
	if err != nil {
		return nil, backend.Failure(backend.ErrRemoteUnavailable, err, "raw gist url")
	}
	req.Header.Set("Authorization", "Bearer "+s.Config.Token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, backend.Failure(backend.ErrRemoteUnavailable, err, "fetch raw gist %s", s.Config.ID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return nil, backend.Failure(backend.ErrRemoteUnavailable, statusError(resp), "fetch raw gist %s", s.Config.ID)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, backend.Failure(backend.ErrRemoteUnavailable, err, "fetch raw gist %s", s.Config.ID)
	}
	return data, nil
}

func statusError(resp *http.Response) error {
	bs, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(bs)))
}
