// Package apiclient is the typed HTTP client for the listing API. The
// presentation layer constructs one explicitly, with its own timeout and
// connection-reuse policy, instead of sharing a process-wide client.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"classifieds-portal/internal/auth"
	"classifieds-portal/internal/models"
)

// APIError is a non-2xx response decoded from the wire, carrying the
// machine-readable code the server attached.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client calls the listing API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API at baseURL. Requests share one pooled
// transport and are bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Ads returns every listing.
func (c *Client) Ads(ctx context.Context) ([]models.ListingDTO, error) {
	var ads []models.ListingDTO
	err := c.getJSON(ctx, "/api/ads", &ads)
	return ads, err
}

// Ad returns one listing by id.
func (c *Client) Ad(ctx context.Context, id uint) (*models.ListingDTO, error) {
	var ad models.ListingDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/api/ads/%d", id), &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// SearchAds returns listings whose title or description contains query.
func (c *Client) SearchAds(ctx context.Context, query string) ([]models.ListingDTO, error) {
	var ads []models.ListingDTO
	err := c.getJSON(ctx, "/api/ads/search/"+url.PathEscape(query), &ads)
	return ads, err
}

// UserAds returns the listings visible to the caller.
func (c *Client) UserAds(ctx context.Context, caller auth.Caller) ([]models.ListingDTO, error) {
	var ads []models.ListingDTO
	path := fmt.Sprintf("/api/ads/user/%s/%s", url.PathEscape(caller.UserID), url.PathEscape(string(caller.Role)))
	err := c.getJSON(ctx, path, &ads)
	return ads, err
}

// CreateAd posts a new listing and returns the created projection.
func (c *Client) CreateAd(ctx context.Context, listing models.Listing) (*models.ListingDTO, error) {
	var ad models.ListingDTO
	if err := c.sendJSON(ctx, http.MethodPost, "/api/ads", listing, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// UpdateAd submits the mutable fields of a listing on behalf of the caller.
func (c *Client) UpdateAd(ctx context.Context, id uint, caller auth.Caller, listing models.Listing) error {
	path := fmt.Sprintf("/api/ads/%d/update/%s/%s",
		id, url.PathEscape(caller.UserID), url.PathEscape(string(caller.Role)))
	return c.sendJSON(ctx, http.MethodPost, path, listing, nil)
}

// DeleteAd deletes a listing on behalf of the caller.
func (c *Client) DeleteAd(ctx context.Context, id uint, caller auth.Caller) error {
	path := fmt.Sprintf("/api/ads/%d/%s/%s",
		id, url.PathEscape(caller.UserID), url.PathEscape(string(caller.Role)))
	return c.send(ctx, http.MethodDelete, path, "", nil, nil)
}

// AttachAdImage uploads a single image file for a listing and returns the
// stored path.
func (c *Client) AttachAdImage(ctx context.Context, id uint, caller auth.Caller, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	path := fmt.Sprintf("/api/ads/%d/image/%s/%s",
		id, url.PathEscape(caller.UserID), url.PathEscape(string(caller.Role)))
	var out struct {
		ImagePath string `json:"image_path"`
	}
	err = c.send(ctx, http.MethodPost, path, mw.FormDataContentType(), &body, &out)
	return out.ImagePath, err
}

// Categories returns all listing categories.
func (c *Client) Categories(ctx context.Context) ([]models.CategoryDTO, error) {
	var categories []models.CategoryDTO
	err := c.getJSON(ctx, "/api/categories", &categories)
	return categories, err
}

// CreateCategory adds a listing category.
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.CategoryDTO, error) {
	var category models.CategoryDTO
	if err := c.sendJSON(ctx, http.MethodPost, "/api/categories", map[string]string{"name": name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a listing category.
func (c *Client) UpdateCategory(ctx context.Context, id uint, name string) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), map[string]string{"name": name}, nil)
}

// DeleteCategory removes a listing category and its dependent listings.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), "", nil, nil)
}

// Types returns all listing types.
func (c *Client) Types(ctx context.Context) ([]models.TypeDTO, error) {
	var types []models.TypeDTO
	err := c.getJSON(ctx, "/api/types", &types)
	return types, err
}

// CreateType adds a listing type.
func (c *Client) CreateType(ctx context.Context, name string) (*models.TypeDTO, error) {
	var adType models.TypeDTO
	if err := c.sendJSON(ctx, http.MethodPost, "/api/types", map[string]string{"name": name}, &adType); err != nil {
		return nil, err
	}
	return &adType, nil
}

// UpdateType renames a listing type.
func (c *Client) UpdateType(ctx context.Context, id uint, name string) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/types/%d", id), map[string]string{"name": name}, nil)
}

// DeleteType removes a listing type and its dependent listings.
func (c *Client) DeleteType(ctx context.Context, id uint) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/types/%d", id), "", nil, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.send(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, "application/json", bytes.NewReader(payload), out)
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var wire struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err == nil {
		apiErr.Code = wire.Code
		apiErr.Message = wire.Error
	}
	return apiErr
}
