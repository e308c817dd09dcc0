// internal/store/jobs.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/models"
)

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.Job `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ListJobs fetches the candidate job pool from the jobs index. The pool is a
// consistent snapshot with no ordering guarantee; the ranking pipeline does
// its own sorting. The fetch is always bounded at MaxJobPool.
func (c *Client) ListJobs(ctx context.Context, limit int) ([]models.Job, error) {
	if limit <= 0 || limit > MaxJobPool {
		limit = MaxJobPool
	}

	body := `{"query":{"match_all":{}}}`
	req := esapi.SearchRequest{
		Index: []string{jobIndexName},
		Body:  strings.NewReader(body),
		Size:  &limit,
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, stderrors.NewSearchTimeoutError("list_jobs")
		}
		return nil, stderrors.NewJobPoolFetchFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, stderrors.NewJobPoolFetchFailedError(fmt.Errorf("search failed: %s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, stderrors.NewJobPoolFetchFailedError(err)
	}

	jobs := make([]models.Job, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		jobs = append(jobs, hit.Source)
	}

	c.logger.Debug("fetched candidate pool", map[string]interface{}{
		"count": len(jobs),
		"limit": limit,
	})
	return jobs, nil
}
