package source

import (
	"context"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/adzuna"
)

// defaultJobPlatforms is the comprehensive-mode platform set; deep mode
// widens it via params.
var defaultJobPlatforms = []string{"adzuna"}

// JobsSource fetches the company's open job postings.
type JobsSource struct {
	client  adzuna.Client
	country string
}

// NewJobsSource wraps an Adzuna client as a Source.
func NewJobsSource(client adzuna.Client, country string) *JobsSource {
	if country == "" {
		country = "au"
	}
	return &JobsSource{client: client, country: country}
}

func (s *JobsSource) Name() string { return "job_boards" }

func (s *JobsSource) Fetch(ctx context.Context, company string, params Params) (Payload, error) {
	platforms := params.Strings("platforms", defaultJobPlatforms)
	maxResults := params.Int("max_results", 20)

	resp, err := s.client.SearchJobs(ctx, adzuna.JobSearchRequest{
		Company:    company,
		Country:    s.country,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]any, 0, len(resp.Results))
	for _, j := range resp.Results {
		jobs = append(jobs, map[string]any{
			"title":       j.Title,
			"description": j.Description,
			"location":    j.Location.DisplayName,
			"posted":      j.Created,
			"url":         j.RedirectURL,
		})
	}

	return Payload{
		"status":    "success",
		"jobs":      jobs,
		"job_count": resp.Count,
		"platforms": platforms,
	}, nil
}
