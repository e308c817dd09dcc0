package store

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
)

// stubTransport serves a canned Elasticsearch response.
type stubTransport struct {
	status int
	body   string
}

func (s *stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}, "Content-Type": []string{"application/json"}},
	}, nil
}

func newESClient(t *testing.T, status int, body string) *Client {
	t.Helper()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://stub:9200"},
		Transport: &stubTransport{status: status, body: body},
	})
	require.NoError(t, err)
	return New(nil, es, nil, 0, logger.NewNoOpLogger())
}

func TestListJobs(t *testing.T) {
	body := `{
		"hits": {
			"hits": [
				{"_source": {"id": "job-1", "role": "Engineer", "companyName": "Acme", "skills": ["go", "sql"]}},
				{"_source": {"id": "job-2", "role": "Analyst", "companyName": "Globex", "skills": "python, sql"}}
			]
		}
	}`
	client := newESClient(t, http.StatusOK, body)

	jobs, err := client.ListJobs(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-1", jobs[0].ID)
	assert.Equal(t, []string{"go", "sql"}, []string(jobs[0].Skills))
	// String-shaped skills resolve at decode time.
	assert.Equal(t, []string{"python", " sql"}, []string(jobs[1].Skills))
}

func TestListJobs_EmptyPool(t *testing.T) {
	client := newESClient(t, http.StatusOK, `{"hits":{"hits":[]}}`)

	jobs, err := client.ListJobs(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestListJobs_SearchError(t *testing.T) {
	client := newESClient(t, http.StatusInternalServerError, `{"error":"boom"}`)

	jobs, err := client.ListJobs(context.Background(), 10)
	assert.Nil(t, jobs)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeJobPoolFetchFailed, stdErr.Code)
}
