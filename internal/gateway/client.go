package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"labelverse/contributor-portal/portal-console/internal/models"
)

// Client is a thin HTTP client for the dataset/contribution gateway. All
// entities are owned by the remote service; the client holds no state beyond
// the connection itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a gateway client for the given base URL. A zero timeout
// leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ListDatasets fetches all datasets.
func (c *Client) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	var datasets []models.Dataset
	if err := c.doJSON(ctx, http.MethodGet, "/datasets", nil, &datasets); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return datasets, nil
}

// GetDataset fetches a single dataset by id. Returns ErrNotFound when the
// dataset does not exist.
func (c *Client) GetDataset(ctx context.Context, id string) (*models.Dataset, error) {
	var dataset models.Dataset
	if err := c.doJSON(ctx, http.MethodGet, "/datasets/"+id, nil, &dataset); err != nil {
		return nil, fmt.Errorf("get dataset %s: %w", id, err)
	}
	return &dataset, nil
}

// CreateDataset creates a dataset from a draft. The server assigns id,
// createdAt, the initial sample count and status.
func (c *Client) CreateDataset(ctx context.Context, draft models.DatasetDraft) (*models.Dataset, error) {
	var created models.Dataset
	if err := c.doJSON(ctx, http.MethodPost, "/datasets", draft, &created); err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	return &created, nil
}

// UpdateDataset replaces a dataset record in full.
func (c *Client) UpdateDataset(ctx context.Context, ds models.Dataset) (*models.Dataset, error) {
	var updated models.Dataset
	if err := c.doJSON(ctx, http.MethodPut, "/datasets/"+ds.ID, ds, &updated); err != nil {
		return nil, fmt.Errorf("update dataset %s: %w", ds.ID, err)
	}
	return &updated, nil
}

// ListContributions fetches all contributions.
func (c *Client) ListContributions(ctx context.Context) ([]models.Contribution, error) {
	var contributions []models.Contribution
	if err := c.doJSON(ctx, http.MethodGet, "/contributions", nil, &contributions); err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return contributions, nil
}

// GetContribution fetches a single contribution by id.
func (c *Client) GetContribution(ctx context.Context, id string) (*models.Contribution, error) {
	var contribution models.Contribution
	if err := c.doJSON(ctx, http.MethodGet, "/contributions/"+id, nil, &contribution); err != nil {
		return nil, fmt.Errorf("get contribution %s: %w", id, err)
	}
	return &contribution, nil
}

// ContributionUpload is the multipart payload for creating a contribution.
// For TEXT datasets the sample travels as a file part named content.txt so
// the wire contract has a single shape for all data types.
type ContributionUpload struct {
	UserID      string
	DatasetID   string
	Description string
	FileName    string
	File        io.Reader
}

// CreateContribution submits a sample. Exactly one request is issued per
// call; there is no idempotency key, so callers must guard double-submits.
func (c *Client) CreateContribution(ctx context.Context, upload ContributionUpload) (*models.Contribution, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", upload.FileName)
	if err != nil {
		return nil, fmt.Errorf("create contribution: build form: %w", err)
	}
	if _, err := io.Copy(part, upload.File); err != nil {
		return nil, fmt.Errorf("create contribution: read sample: %w", err)
	}
	if err := writer.WriteField("userId", upload.UserID); err != nil {
		return nil, fmt.Errorf("create contribution: build form: %w", err)
	}
	if err := writer.WriteField("datasetId", upload.DatasetID); err != nil {
		return nil, fmt.Errorf("create contribution: build form: %w", err)
	}
	if upload.Description != "" {
		if err := writer.WriteField("description", upload.Description); err != nil {
			return nil, fmt.Errorf("create contribution: build form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("create contribution: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contributions", body)
	if err != nil {
		return nil, fmt.Errorf("create contribution: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var created models.Contribution
	if err := c.send(req, &created); err != nil {
		return nil, fmt.Errorf("create contribution: %w", err)
	}
	return &created, nil
}

// SetContributionStatus issues a partial update carrying only the new
// verification status.
func (c *Client) SetContributionStatus(ctx context.Context, id string, status models.VerificationStatus) (*models.Contribution, error) {
	payload := struct {
		Status models.VerificationStatus `json:"status"`
	}{Status: status}

	var updated models.Contribution
	if err := c.doJSON(ctx, http.MethodPut, "/contributions/"+id, payload, &updated); err != nil {
		return nil, fmt.Errorf("set contribution %s status: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("gateway request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// apiError extracts a structured {"error": ...} payload when the gateway
// sends one, so the message can be surfaced verbatim.
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			if payload.Error != "" {
				apiErr.Message = payload.Error
			} else if payload.Message != "" {
				apiErr.Message = payload.Message
			}
		}
	}

	c.logger.Error("gateway returned error status",
		zap.String("method", resp.Request.Method),
		zap.String("url", resp.Request.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.String("message", apiErr.Message))
	return apiErr
}
