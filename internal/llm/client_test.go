package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "https://llm.test/v1/chat/completions"

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func completion(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": content}},
		},
	}
}

func testClient(opts ...Option) *Client {
	return NewClient(Config{APIKey: "test", BaseURL: "https://llm.test/v1/", Model: "demo-model"}, opts...)
}

func TestCompleteJSONSendsPrompts(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPost, testEndpoint, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer test", req.Header.Get("Authorization"))

		var body chatCompletionRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "demo-model", body.Model)
		assert.Equal(t, jsonResponseType, body.ResponseFormat["type"])
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "be json", body.Messages[0].Content)
		assert.Equal(t, "hello", body.Messages[1].Content)

		return httpmock.NewJsonResponse(http.StatusOK, completion(`{"ok":true}`))
	})

	content, err := testClient().CompleteJSON(context.Background(), "be json", "hello")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, content)
}

func TestCompleteObjectCodeFence(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, completion("```json\n{\"brand\":\"Canon\"}\n```")))

	var out struct {
		Brand string `json:"brand"`
	}
	require.NoError(t, testClient().CompleteObject(context.Background(), "sys", "user", &out))
	assert.Equal(t, "Canon", out.Brand)
}

func TestCompleteJSONRequiresKey(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.CompleteJSON(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key required")
}

func TestCompleteJSONStatusError(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"error":{"message":"bad key"}}`))

	_, err := testClient().CompleteJSON(context.Background(), "sys", "user")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestCompleteJSONSingleAttemptByDefault(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusServiceUnavailable, "down"))

	_, err := testClient().CompleteJSON(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestCompleteJSONRetriesTransientFailures(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.ResponderFromMultipleResponses([]*http.Response{
			httpmock.NewStringResponse(http.StatusTooManyRequests, "slow down"),
			httpmock.NewStringResponse(http.StatusOK, `{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`),
		}))

	var slept []time.Duration
	client := testClient(
		WithRetryMaxAttempts(3),
		WithSleeper(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}),
	)

	content, err := client.CompleteJSON(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, content)
	assert.Equal(t, []time.Duration{time.Second}, slept)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestCompleteJSONEmptyContent(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, completion("  ")))

	_, err := testClient().CompleteJSON(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty content")
}

func TestSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
