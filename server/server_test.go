package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobile-next/gesturecli/engine"
)

func newRPCServer(t *testing.T, eng *engine.Engine) *httptest.Server {
	t.Helper()
	currentEngine = eng

	mux := http.NewServeMux()
	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", handleJSONRPC)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		currentEngine = nil
	})
	return server
}

func testEngine() *engine.Engine {
	return engine.New(engine.NewBindingTable(), engine.NewDispatcher(nil, true), engine.Options{})
}

func postRPC(t *testing.T, url, body string) JSONRPCResponse {
	t.Helper()
	resp, err := http.Post(url+"/rpc", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	assert.Equal(t, "2.0", rpcResp.JSONRPC)
	return rpcResp
}

func errorCode(t *testing.T, resp JSONRPCResponse) int {
	t.Helper()
	errorMap, ok := resp.Error.(map[string]interface{})
	require.True(t, ok, "response has no error object: %+v", resp)
	return int(errorMap["code"].(float64))
}

func TestRPC_ParseError(t *testing.T) {
	server := newRPCServer(t, nil)
	resp := postRPC(t, server.URL, "this is not json")
	assert.Equal(t, ErrCodeParseError, errorCode(t, resp))
	assert.Nil(t, resp.ID)
}

func TestRPC_InvalidVersion(t *testing.T) {
	server := newRPCServer(t, nil)
	resp := postRPC(t, server.URL, `{"jsonrpc":"1.0","method":"status","id":1}`)
	assert.Equal(t, ErrCodeInvalidRequest, errorCode(t, resp))
}

func TestRPC_MissingID(t *testing.T) {
	server := newRPCServer(t, nil)
	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"status"}`)
	assert.Equal(t, ErrCodeInvalidRequest, errorCode(t, resp))
}

func TestRPC_MissingMethod(t *testing.T) {
	server := newRPCServer(t, nil)
	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","id":1}`)
	assert.Equal(t, ErrCodeInvalidRequest, errorCode(t, resp))
}

func TestRPC_MethodNotFound(t *testing.T) {
	server := newRPCServer(t, nil)
	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"no.such.method","id":7}`)
	assert.Equal(t, ErrCodeMethodNotFound, errorCode(t, resp))
	assert.Equal(t, 7, int(resp.ID.(float64)))
}

func TestRPC_Status(t *testing.T) {
	server := newRPCServer(t, testEngine())
	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"status","id":1}`)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "result = %+v", resp.Result)
	assert.Equal(t, float64(0), result["gestures"])
	assert.Equal(t, float64(0), result["dispatched"])
}

func TestRPC_StatusWithoutEngine(t *testing.T) {
	server := newRPCServer(t, nil)
	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"status","id":1}`)
	assert.Equal(t, ErrCodeServerError, errorCode(t, resp))
}

func TestRPC_LastGesture(t *testing.T) {
	server := newRPCServer(t, testEngine())
	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"last_gesture","id":1}`)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "", result["lastGesture"])
}

func TestRPC_GetNotAllowed(t *testing.T) {
	server := newRPCServer(t, nil)
	resp, err := http.Get(server.URL + "/rpc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestBanner(t *testing.T) {
	server := newRPCServer(t, nil)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "gesturecli")

	missing, err := http.Get(server.URL + "/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestCORSMiddleware(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	server := httptest.NewServer(handler)
	defer server.Close()

	req, err := http.NewRequest(http.MethodOptions, server.URL, bytes.NewReader(nil))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// preflight is answered by the middleware, not the wrapped handler
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
