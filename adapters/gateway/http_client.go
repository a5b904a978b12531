// Package gateway implements the client side of the content
// persistence API. Responses are content-type-checked before parsing;
// anything non-JSON or non-2xx surfaces as an unavailable error, never
// a crash or a half-parsed state.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/internal/application/session"
	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  logger.Logger
}

var _ session.Gateway = (*HTTPClient)(nil)

// NewHTTPClient builds a gateway client against baseURL. The token is
// attached as a Bearer credential when non-empty. Pass a custom
// http.Client to control timeouts; nil uses http.DefaultClient.
func NewHTTPClient(baseURL, token string, client *http.Client, log logger.Logger) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		logger:  log,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.NewInternal("failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apperror.NewInternal("failed to build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, apperror.NewUnavailable(fmt.Sprintf("%s %s failed", method, path), err)
	}
	return resp, nil
}

// decodeJSON enforces the JSON content type before touching the body.
// An HTML error page from a proxy must read as gateway failure, not as
// a parse panic.
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || mediaType != "application/json" {
		return apperror.NewUnavailable(fmt.Sprintf("unexpected content type %q", ct), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUnavailable("response body is not valid JSON", err)
	}
	return nil
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func statusErr(resp *http.Response, op string) error {
	drain(resp)
	if resp.StatusCode == http.StatusNotFound {
		return apperror.NewNotFound("resource", op)
	}
	return apperror.NewUnavailable(fmt.Sprintf("%s returned status %d", op, resp.StatusCode), nil)
}

func (c *HTTPClient) FetchProfile(ctx context.Context) (*profile.Profile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/admin/profile", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		drain(resp)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp, "GET profile")
	}

	var p profile.Profile
	if err := decodeJSON(resp, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) FetchSections(ctx context.Context) ([]section.Section, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/admin/sections", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		drain(resp)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp, "GET sections")
	}

	var sections []section.Section
	if err := decodeJSON(resp, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch profile.Patch) error {
	resp, err := c.do(ctx, http.MethodPut, "/api/admin/profile", patch)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return statusErr(resp, "PUT profile")
	}
	drain(resp)
	return nil
}

// sectionPatchWire is the JSON body of a partial section update.
// Content travels in its polymorphic wire shape.
type sectionPatchWire struct {
	Title   *string         `json:"title,omitempty"`
	Type    *section.Type   `json:"type,omitempty"`
	Order   *int            `json:"order,omitempty"`
	Visible *bool           `json:"visible,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

func encodePatch(patch section.Patch) (sectionPatchWire, error) {
	wire := sectionPatchWire{
		Title:   patch.Title,
		Type:    patch.Type,
		Order:   patch.Order,
		Visible: patch.Visible,
	}
	if patch.Content != nil {
		typ := patch.EffectiveType(patch.Content.InferType())
		raw, err := section.EncodeContent(typ, *patch.Content)
		if err != nil {
			return wire, err
		}
		wire.Content = raw
	}
	return wire, nil
}

func (c *HTTPClient) UpdateSection(ctx context.Context, id string, patch section.Patch) error {
	wire, err := encodePatch(patch)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPut, "/api/admin/sections/"+url.PathEscape(id), wire)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return statusErr(resp, "PUT section")
	}
	drain(resp)
	return nil
}

func (c *HTTPClient) CreateSection(ctx context.Context, s section.Section) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/admin/sections", s)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", statusErr(resp, "POST section")
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(resp, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", apperror.NewUnavailable("POST section returned no id", nil)
	}
	return created.ID, nil
}

func (c *HTTPClient) DeleteSection(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/admin/sections/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return statusErr(resp, "DELETE section")
	}
	drain(resp)
	return nil
}

func (c *HTTPClient) ReorderSections(ctx context.Context, orderedIDs []string) error {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: orderedIDs}

	resp, err := c.do(ctx, http.MethodPut, "/api/admin/sections/reorder", body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return statusErr(resp, "PUT sections/reorder")
	}
	drain(resp)
	return nil
}
