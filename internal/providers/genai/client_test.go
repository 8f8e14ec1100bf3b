package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	c, err := NewClient(Options{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestGenerateJSONMissingKey(t *testing.T) {
	c, err := NewClient(Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.GenerateJSON(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
}

func TestGenerateJSONTransportFailure(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	_, err := c.GenerateJSON(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestGenerateJSONOverloadedBackend(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
			return jsonResponse(status, `{"error":{"code":429,"message":"quota"}}`), nil
		})
		_, err := c.GenerateJSON(context.Background(), "prompt")
		if !errors.Is(err, domain.ErrProviderUnavailable) {
			t.Fatalf("status %d: error = %v, want ErrProviderUnavailable", status, err)
		}
	}
}

func TestGenerateJSONClientError(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"error":{"code":400,"message":"bad prompt"}}`), nil
	})
	_, err := c.GenerateJSON(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}
	if !strings.Contains(err.Error(), "bad prompt") {
		t.Fatalf("error %q does not carry the API message", err)
	}
}

func TestGenerateJSONReturnsCandidateText(t *testing.T) {
	var gotPath, gotKey string
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"{\"hook\":\"h\"}"}]}}]}`), nil
	})
	text, err := c.GenerateJSON(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateJSON returned error: %v", err)
	}
	if text != `{"hook":"h"}` {
		t.Fatalf("text = %q, want candidate text", text)
	}
	if gotKey != "test-key" {
		t.Fatalf("x-goog-api-key = %q, want test-key", gotKey)
	}
	if !strings.HasSuffix(gotPath, "/models/gemini-2.5-flash:generateContent") {
		t.Fatalf("path = %q, want text model endpoint", gotPath)
	}
}

func TestGenerateJSONEmptyCompletion(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[]}`), nil
	})
	_, err := c.GenerateJSON(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}
}

func TestGenerateImagePNGDecodesInlineData(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(png)
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		body := fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":"here you go"},{"inlineData":{"mimeType":"image/png","data":"%s"}}]}}]}`, encoded)
		return jsonResponse(http.StatusOK, body), nil
	})
	data, err := c.GenerateImagePNG(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateImagePNG returned error: %v", err)
	}
	if string(data) != string(png) {
		t.Fatalf("data = %v, want decoded png bytes", data)
	}
}

func TestGenerateImagePNGNoImage(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"sorry"}]}}]}`), nil
	})
	_, err := c.GenerateImagePNG(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}
}
