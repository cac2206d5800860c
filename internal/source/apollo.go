package source

import (
	"context"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/apollo"
)

// decisionMakerTitles are the roles the people search targets.
var decisionMakerTitles = []string{"CEO", "CTO", "CFO", "COO", "Founder", "VP", "Director"}

// ApolloSource fetches contact-enrichment data from Apollo.
type ApolloSource struct {
	client apollo.Client
}

// NewApolloSource wraps an Apollo client as a Source.
func NewApolloSource(client apollo.Client) *ApolloSource {
	return &ApolloSource{client: client}
}

func (s *ApolloSource) Name() string { return "apollo" }

// Fetch enriches the organization and pulls decision-maker contacts. The
// people search failing is not fatal as long as the org enrich succeeded.
func (s *ApolloSource) Fetch(ctx context.Context, company string, params Params) (Payload, error) {
	org, err := s.client.EnrichOrganization(ctx, company)
	if err != nil {
		return nil, err
	}

	payload := Payload{
		"status":       "success",
		"organization": orgToMap(org),
	}

	perPage := params.Int("contacts_per_page", 10)
	people, err := s.client.SearchPeople(ctx, apollo.PeopleSearchRequest{
		OrganizationName: company,
		PersonTitles:     decisionMakerTitles,
		PerPage:          perPage,
	})
	if err == nil && people != nil {
		contacts := make([]any, 0, len(people.People))
		for _, p := range people.People {
			contacts = append(contacts, map[string]any{
				"name":         p.Name,
				"title":        p.Title,
				"email":        p.Email,
				"linkedin_url": p.LinkedInURL,
				"seniority":    p.Seniority,
			})
		}
		payload["people"] = contacts
		payload["contacts_found"] = len(contacts)
	}

	return payload, nil
}

func orgToMap(org *apollo.Organization) map[string]any {
	return map[string]any{
		"name":         org.Name,
		"website_url":  org.WebsiteURL,
		"linkedin_url": org.LinkedInURL,
		"industry":     org.Industry,
		"employees":    org.EstimatedNumEmployees,
		"description":  org.ShortDescription,
		"keywords":     org.Keywords,
		"founded_year": org.FoundedYear,
		"city":         org.City,
		"country":      org.Country,
	}
}
