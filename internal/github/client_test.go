package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token").WithBaseURL(srv.URL), srv
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("tok")

	assert.Equal(t, "tok", c.Token)
	assert.Equal(t, DefaultAPIEndpoint, c.BaseURL)
	require.NotNil(t, c.HTTPClient)
	assert.Equal(t, DefaultTimeout, c.HTTPClient.Timeout)
}

func TestCreateIssue(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody NewIssue

	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Issue{
			Number:  42,
			Title:   gotBody.Title,
			State:   "open",
			HTMLURL: "https://github.com/acme/widgets/issues/42",
		})
	}))

	issue, err := c.CreateIssue(context.Background(), "acme", "widgets", NewIssue{
		Title:  "Fix login bug",
		Body:   "Steps to reproduce...",
		Labels: []string{"bug", "agent-ready"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/repos/acme/widgets/issues", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, []string{"bug", "agent-ready"}, gotBody.Labels)
	assert.Equal(t, 42, issue.Number)
	assert.Equal(t, "https://github.com/acme/widgets/issues/42", issue.HTMLURL)
}

func TestGetIssue(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/issues/7", r.URL.Path)
		json.NewEncoder(w).Encode(Issue{
			Number: 7,
			Title:  "Database migration",
			State:  "open",
			Labels: []Label{{Name: "agent-ready", Color: "0e8a16"}},
		})
	}))

	issue, err := c.GetIssue(context.Background(), "acme", "widgets", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, issue.Number)
	require.Len(t, issue.Labels, 1)
	assert.Equal(t, "agent-ready", issue.Labels[0].Name)
}

func TestListIssues_StateAndLabels(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "closed", r.URL.Query().Get("state"))
		assert.Equal(t, "bug,api", r.URL.Query().Get("labels"))
		json.NewEncoder(w).Encode([]Issue{{Number: 1}, {Number: 2}})
	}))

	issues, err := c.ListIssues(context.Background(), "acme", "widgets", ListOptions{
		State:  "closed",
		Labels: []string{"bug", "api"},
	})
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestCreateBranch_ResolvesDefaultBranch(t *testing.T) {
	var createPayload map[string]string

	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/acme/widgets" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(Repository{DefaultBranch: "main"})
		case r.URL.Path == "/repos/acme/widgets/git/ref/heads/main":
			ref := Ref{Ref: "refs/heads/main"}
			ref.Object.SHA = "abc123"
			json.NewEncoder(w).Encode(ref)
		case r.URL.Path == "/repos/acme/widgets/git/refs" && r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createPayload))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Ref{Ref: createPayload["ref"]})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ref, err := c.CreateBranch(context.Background(), "acme", "widgets", "feature/login-fix", "")
	require.NoError(t, err)

	assert.Equal(t, "refs/heads/feature/login-fix", ref.Ref)
	assert.Equal(t, "abc123", createPayload["sha"])
}

func TestUpdatePull_OmitsNilFields(t *testing.T) {
	var raw map[string]interface{}

	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(PullRequest{Number: 3, State: "closed"})
	}))

	state := "closed"
	_, err := c.UpdatePull(context.Background(), "acme", "widgets", 3, PullUpdate{State: &state})
	require.NoError(t, err)

	assert.Equal(t, "closed", raw["state"])
	assert.NotContains(t, raw, "title")
	assert.NotContains(t, raw, "body")
}

func TestDo_RetriesOnServerError(t *testing.T) {
	var calls int32

	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Issue{Number: 9})
	}))

	issue, err := c.GetIssue(context.Background(), "acme", "widgets", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, issue.Number)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_NoRetryOnClientError(t *testing.T) {
	var calls int32

	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	}))

	_, err := c.GetIssue(context.Background(), "acme", "widgets", 404)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.Message)
}
