package acl

import (
	"encoding/json"
	"fmt"

	"github.com/acme/quote-manager/internal/domain"
)

// Entity names used in not-found errors.
const (
	entityQuote = "quote"
)

// decode unmarshals a gateway payload. A payload that does not match the
// expected shape is reported as a RemoteError of the operation.
func decode[T any](op string, data json.RawMessage) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, domain.NewRemoteError(op, fmt.Sprintf("unexpected response shape: %v", err), err)
	}

	return &out, nil
}

// missingPayload reports a mutation that succeeded without returning the
// object it was asked to change.
func missingPayload(op, what string) error {
	return domain.NewRemoteError(op, fmt.Sprintf("response did not include %s", what), nil)
}
