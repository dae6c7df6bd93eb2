// Package busenvelope decodes a base64-encoded JSON payload out of a
// message-bus push envelope — the shape used by managed-bus webhooks that
// wrap the actual payload in {"message":{"data":"<base64>"}}.
package busenvelope

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

type envelope struct {
	Message struct {
		Data string `json:"data"`
	} `json:"message"`
}

// Decode unwraps body as a push envelope and decodes its payload into a
// Snapshot.
func Decode(body []byte) (snapshot.Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("busenvelope: decode envelope: %w", err)
	}
	if env.Message.Data == "" {
		return snapshot.Snapshot{}, fmt.Errorf("busenvelope: envelope carried no data field")
	}
	raw, err := base64.StdEncoding.DecodeString(env.Message.Data)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("busenvelope: decode base64 payload: %w", err)
	}
	var s snapshot.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("busenvelope: decode payload: %w", err)
	}
	return s, nil
}
