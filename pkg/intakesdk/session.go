package intakesdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Session performs admin operations with a bearer token.
type Session struct {
	client *SDKClient
	token  string
}

// NewSession wraps an existing access token, such as one printed by the
// "intake token" command.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// AccessToken returns the bearer token in use.
func (s *Session) AccessToken() string { return s.token }

func (s *Session) get(ctx context.Context, path string) (*http.Response, error) {
	return s.client.doRequest(ctx, http.MethodGet, path, nil, map[string]string{
		"Authorization": "Bearer " + s.token,
	})
}

// ListClients returns every submission, newest first.
func (s *Session) ListClients(ctx context.Context) ([]ClientResponse, error) {
	resp, err := s.get(ctx, "/admin/clients")
	if err != nil {
		return nil, err
	}

	var out []ClientResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns the submission counters.
func (s *Session) Stats(ctx context.Context) (*StatsResponse, error) {
	resp, err := s.get(ctx, "/admin/stats")
	if err != nil {
		return nil, err
	}

	var out StatsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportCSV streams the CSV export into w.
func (s *Session) ExportCSV(ctx context.Context, w io.Writer) error {
	resp, err := s.get(ctx, "/admin/clients/export")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}
	return nil
}
