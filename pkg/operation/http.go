package operation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lwolf/dbautoscaler/pkg/opwire"
	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// HTTPStatusClient polls snapshot.OperationStatusEndpoint for the status
// of a named operation, appending it as a query parameter.
type HTTPStatusClient struct {
	Client *http.Client
}

func NewHTTPStatusClient(client *http.Client) *HTTPStatusClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPStatusClient{Client: client}
}

func (c *HTTPStatusClient) Status(ctx context.Context, s snapshot.Snapshot, operationID string) (opwire.OperationStatus, error) {
	endpoint := s.OperationStatusEndpoint + "?operation=" + url.QueryEscape(operationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return opwire.OperationStatus{}, fmt.Errorf("operation status: build request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return opwire.OperationStatus{}, fmt.Errorf("operation status: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return opwire.OperationStatus{}, fmt.Errorf("operation status: unexpected status %d", resp.StatusCode)
	}

	var status opwire.OperationStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return opwire.OperationStatus{}, fmt.Errorf("operation status: decode response: %w", err)
	}
	return status, nil
}
