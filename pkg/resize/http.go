package resize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lwolf/dbautoscaler/pkg/helpers"
	"github.com/lwolf/dbautoscaler/pkg/opwire"
	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// HTTPDriver submits a resize as a JSON POST against
// snapshot.ResizeEndpoint.
type HTTPDriver struct {
	Client *http.Client
}

func NewHTTPDriver(client *http.Client) *HTTPDriver {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPDriver{Client: client}
}

func (d *HTTPDriver) Start(ctx context.Context, s snapshot.Snapshot, targetSize int32) (string, error) {
	req := opwire.ResizeRequest{
		Instance: s.InstanceID,
		Size:     sizeFor(s.Units, targetSize),
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("resize: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ResizeEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("resize: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("resize: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("resize: unexpected status %d", resp.StatusCode)
	}

	var desc opwire.OperationDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		return "", fmt.Errorf("resize: decode response: %w", err)
	}
	if desc.Name == "" {
		return "", fmt.Errorf("resize: response carried no operation name")
	}
	return desc.Name, nil
}

// sizeFor builds the exactly-one-of request body the resize API requires.
func sizeFor(units snapshot.Units, target int32) opwire.InstanceSize {
	if units == snapshot.ProcessingUnits {
		return opwire.InstanceSize{ProcessingUnits: helpers.PtrInt32(target)}
	}
	return opwire.InstanceSize{NodeCount: helpers.PtrInt32(target)}
}
