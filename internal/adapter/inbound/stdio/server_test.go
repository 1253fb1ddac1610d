package stdio_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/assistant-mcp/internal/adapter/inbound/stdio"
	"github.com/halcyon-labs/assistant-mcp/pkg/shared/mcpjsonrpc"
)

type echoHandler struct{}

func (echoHandler) HandleMessage(_ context.Context, req *mcpjsonrpc.Request) *mcpjsonrpc.Response {
	return mcpjsonrpc.NewResult(req.ID, map[string]string{"method": req.Method})
}

type panicHandler struct{}

func (panicHandler) HandleMessage(context.Context, *mcpjsonrpc.Request) *mcpjsonrpc.Response {
	panic("handler exploded")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runServer(t *testing.T, handler stdio.Handler, input string) []map[string]interface{} {
	t.Helper()

	var out bytes.Buffer
	server := stdio.New(handler, testLogger())
	require.NoError(t, server.Listen(context.Background(), strings.NewReader(input), &out))

	var responses []map[string]interface{}
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if line == "" {
			continue
		}
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &resp), "output line must be valid JSON: %s", line)
		responses = append(responses, resp)
	}
	return responses
}

func TestListen_OneResponsePerLineInOrder(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"a"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"b"}` + "\n" +
		`{"jsonrpc":"2.0","id":3,"method":"c"}` + "\n"

	responses := runServer(t, echoHandler{}, input)
	require.Len(t, responses, 3)
	for i, want := range []float64{1, 2, 3} {
		assert.Equal(t, want, responses[i]["id"])
	}
}

func TestListen_ParseErrorDoesNotStopLoop(t *testing.T) {
	input := "this is not json\n" +
		`{"jsonrpc":"2.0","id":5,"method":"after"}` + "\n"

	responses := runServer(t, echoHandler{}, input)
	require.Len(t, responses, 2)

	errObj := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(-32700), errObj["code"])
	assert.Contains(t, errObj["message"], "Parse error")
	assert.Nil(t, responses[0]["id"])

	assert.Equal(t, float64(5), responses[1]["id"])
}

func TestListen_EmptyLinesSkipped(t *testing.T) {
	input := "\n   \n" + `{"id":1,"method":"x"}` + "\n\n"

	responses := runServer(t, echoHandler{}, input)
	require.Len(t, responses, 1)
}

func TestListen_PanicBecomesInternalError(t *testing.T) {
	responses := runServer(t, panicHandler{}, `{"jsonrpc":"2.0","id":9,"method":"boom"}`+"\n")
	require.Len(t, responses, 1)

	errObj := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(-32603), errObj["code"])
	assert.Contains(t, errObj["message"], "Internal error")
	assert.Contains(t, errObj["message"], "handler exploded")
	assert.Equal(t, float64(9), responses[0]["id"])
}

func TestListen_CleanEOFReturnsNil(t *testing.T) {
	server := stdio.New(echoHandler{}, testLogger())
	var out bytes.Buffer
	assert.NoError(t, server.Listen(context.Background(), strings.NewReader(""), &out))
	assert.Zero(t, out.Len())
}

func TestListen_RequestWithoutIDStillAnswered(t *testing.T) {
	responses := runServer(t, echoHandler{}, `{"jsonrpc":"2.0","method":"no-id"}`+"\n")
	require.Len(t, responses, 1)
	id, present := responses[0]["id"]
	assert.True(t, present)
	assert.Nil(t, id)
}
