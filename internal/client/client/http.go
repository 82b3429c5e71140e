package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/common"
)

// UploadField is the multipart form field carrying the file.
const UploadField = "file"

const defaultTimeout = 30 * time.Second

type HTTPClient struct {
	baseURL string
	http    *http.Client
	// upload has no overall deadline; the body is streamed and may take as
	// long as the file needs. It still bounds the wait for response headers.
	upload *http.Client
	tokens TokenProvider
}

// NewHTTPClient returns a client for the API rooted at baseURL, for example
// "http://localhost:5000/api". tokens may be nil; timeout <= 0 selects a
// default.
func NewHTTPClient(baseURL string, tokens TokenProvider, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
		upload:  &http.Client{Transport: transport},
		tokens:  tokens,
	}, nil
}

type credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if _, err := c.do(ctx, http.MethodPost, "/login", "application/json", bytes.NewReader(body), &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: %w: no token", ErrMalformedResponse)
	}
	return resp.Token, nil
}

// Register succeeds only on 201 Created.
func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	body, err := json.Marshal(credentials{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}

	status, err := c.do(ctx, http.MethodPost, "/register", "application/json", bytes.NewReader(body), nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return &APIError{StatusCode: status}
	}
	return nil
}

func (c *HTTPClient) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	var resp dataResponse
	if _, err := c.do(ctx, http.MethodGet, "/files", "", nil, &resp); err != nil {
		return nil, err
	}
	if !isJSONKind(resp.Data, '[') {
		return nil, fmt.Errorf("list files: %w: data is not an array", ErrMalformedResponse)
	}

	var records []models.FileRecord
	if err := json.Unmarshal(resp.Data, &records); err != nil {
		return nil, fmt.Errorf("list files: %w: %v", ErrMalformedResponse, err)
	}
	return records, nil
}

// Upload streams body as a single multipart file named filename. The body
// is read while the request is being sent, so its size is not limited by
// memory.
func (c *HTTPClient) Upload(ctx context.Context, filename string, body io.Reader) (models.FileRecord, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	writeErr := make(chan error, 1)
	go func() {
		err := writeMultipart(mw, filename, body)
		_ = pw.CloseWithError(err)
		writeErr <- err
	}()

	var resp dataResponse
	_, err := c.send(ctx, c.upload, http.MethodPost, "/upload", mw.FormDataContentType(), pr, &resp)

	// Unblocks the writer if the request ended before the body was consumed.
	_ = pr.Close()
	if werr := <-writeErr; werr != nil && !errors.Is(werr, io.ErrClosedPipe) {
		return models.FileRecord{}, werr
	}
	if err != nil {
		return models.FileRecord{}, err
	}
	if !isJSONKind(resp.Data, '{') {
		return models.FileRecord{}, fmt.Errorf("upload: %w: data is not an object", ErrMalformedResponse)
	}

	var rec models.FileRecord
	if err := json.Unmarshal(resp.Data, &rec); err != nil {
		return models.FileRecord{}, fmt.Errorf("upload: %w: %v", ErrMalformedResponse, err)
	}
	if err := rec.Validate(); err != nil {
		return models.FileRecord{}, fmt.Errorf("upload: %w: %v", ErrMalformedResponse, err)
	}
	return rec, nil
}

func writeMultipart(mw *multipart.Writer, filename string, body io.Reader) error {
	part, err := mw.CreateFormFile(UploadField, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, body); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	return mw.Close()
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/files/"+url.PathEscape(id), "", nil, nil)
	return err
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	c.upload.CloseIdleConnections()
	return nil
}

// do sends the request with the deadline-bound client and, for a 2xx reply,
// decodes the body into out when out is non-nil. Non-2xx replies become
// *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) (int, error) {
	return c.send(ctx, c.http, method, path, contentType, body, out)
}

func (c *HTTPClient) send(ctx context.Context, hc *http.Client, method, path, contentType string, body io.Reader, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, c.mapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, c.mapError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e errorResponse
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return resp.StatusCode, apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("%s %s: %w: %v", method, path, ErrMalformedResponse, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *HTTPClient) mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}
