// Package clientmock provides a testify mock of client.Requester.
package clientmock

import (
	"context"
	"encoding/json"

	"ims/internal/client"

	"github.com/stretchr/testify/mock"
)

type Requester struct {
	mock.Mock
}

func (m *Requester) Request(ctx context.Context, method, path string, body client.Body) (json.RawMessage, error) {
	args := m.Called(ctx, method, path, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	switch data := args.Get(0).(type) {
	case string:
		return json.RawMessage(data), args.Error(1)
	default:
		return args.Get(0).(json.RawMessage), args.Error(1)
	}
}

// Decode encodes body and unmarshals it into v, for asserting JSON payloads.
func Decode(body client.Body, v interface{}) error {
	reader, _, err := body.Encode()
	if err != nil {
		return err
	}
	return json.NewDecoder(reader).Decode(v)
}
