package mcpjsonrpc_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/assistant-mcp/pkg/shared/mcpjsonrpc"
)

func TestRequest_IsNotification(t *testing.T) {
	var withID mcpjsonrpc.Request
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":7,"method":"tools/list"}`), &withID))
	assert.False(t, withID.IsNotification())

	var withoutID mcpjsonrpc.Request
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"initialized"}`), &withoutID))
	assert.True(t, withoutID.IsNotification())
}

func TestResponse_AlwaysEmitsID(t *testing.T) {
	data, err := json.Marshal(mcpjsonrpc.NewError(nil, mcpjsonrpc.CodeParseError, "Parse error: bad input"))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	id, present := raw["id"]
	assert.True(t, present, "id must be present even when the request had none")
	assert.Nil(t, id)
	assert.NotContains(t, raw, "result")
}

func TestResponse_ExactlyOneOfResultError(t *testing.T) {
	resultData, err := json.Marshal(mcpjsonrpc.NewResult("abc", map[string]string{"ok": "yes"}))
	require.NoError(t, err)
	var success map[string]interface{}
	require.NoError(t, json.Unmarshal(resultData, &success))
	assert.Contains(t, success, "result")
	assert.NotContains(t, success, "error")
	assert.Equal(t, "abc", success["id"])

	errData, err := json.Marshal(mcpjsonrpc.NewError(float64(3), mcpjsonrpc.CodeMethodNotFound, "Method not found: foo/bar"))
	require.NoError(t, err)
	var failure map[string]interface{}
	require.NoError(t, json.Unmarshal(errData, &failure))
	assert.NotContains(t, failure, "result")
	errObj := failure["error"].(map[string]interface{})
	assert.Equal(t, float64(-32601), errObj["code"])
	assert.Equal(t, "Method not found: foo/bar", errObj["message"])
	assert.Equal(t, float64(3), failure["id"])
}

func TestRequest_IDRoundTrip(t *testing.T) {
	for _, line := range []string{
		`{"id":1,"method":"x"}`,
		`{"id":"req-9","method":"x"}`,
	} {
		var req mcpjsonrpc.Request
		require.NoError(t, json.Unmarshal([]byte(line), &req))

		data, err := json.Marshal(mcpjsonrpc.NewResult(req.ID, struct{}{}))
		require.NoError(t, err)
		var in, out map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &in))
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in["id"], out["id"])
	}
}
