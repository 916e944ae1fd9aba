package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/xid"

	"github.com/aretw0/mcdgen/pkg/domain"
)

// Operations the bridge host must expose. The handshake verifies the
// whole set up front so a missing symbol fails initialization instead of
// the first workflow call.
const (
	opHello              = "hello"
	opParse              = "parse"
	opConvertToMcd       = "convertToMcd"
	opConvertToJSON      = "convertToJson"
	opCalculate          = "calculateParameters"
	opReadFromFile       = "readFromFile"
	opWriteToFile        = "writeToFile"
	opConfigurationFiles = "configurationFiles"
	opShutdown           = "shutdown"
)

var requiredOps = []string{
	opParse,
	opConvertToMcd,
	opConvertToJSON,
	opCalculate,
	opReadFromFile,
	opWriteToFile,
	opConfigurationFiles,
}

// request and response are the NDJSON frames exchanged with the host.
// Exactly one request is in flight at a time.
type request struct {
	ID   string         `json:"id"`
	Op   string         `json:"op"`
	Args map[string]any `json:"args,omitempty"`
}

type response struct {
	ID       string          `json:"id"`
	Result   json.RawMessage `json:"result,omitempty"`
	Warnings domain.Warnings `json:"warnings,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type conn struct {
	mu  sync.Mutex
	enc *json.Encoder
	dec *json.Decoder
}

func newConn(w io.Writer, r io.Reader) *conn {
	return &conn{enc: json.NewEncoder(w), dec: json.NewDecoder(r)}
}

// roundTrip sends one request and blocks for its response. The host is
// synchronous, so responses arrive in request order; an id mismatch means
// the stream is corrupt and the session cannot continue.
func (c *conn) roundTrip(ctx context.Context, op string, args map[string]any) (*response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := request{ID: xid.New().String(), Op: op, Args: args}
	if err := c.enc.Encode(req); err != nil {
		return nil, fmt.Errorf("send %s: %w", op, err)
	}

	var resp response
	if err := c.dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("receive %s: %w", op, err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("receive %s: response id %q does not match request %q", op, resp.ID, req.ID)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%s: %s", op, resp.Error)
	}
	return &resp, nil
}
