package source

import (
	"context"
	"strings"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/browserless"
)

// LinkedInSource renders the company's LinkedIn page through the headless
// browser, optionally with an authenticated session cookie.
type LinkedInSource struct {
	client        browserless.Client
	sessionCookie string
}

// NewLinkedInSource wraps a browserless client as a LinkedIn Source. The
// session cookie (li_at) comes from the configured LinkedIn credentials flow
// and may be empty for public pages.
func NewLinkedInSource(client browserless.Client, sessionCookie string) *LinkedInSource {
	return &LinkedInSource{client: client, sessionCookie: sessionCookie}
}

func (s *LinkedInSource) Name() string { return "linkedin" }

func (s *LinkedInSource) Fetch(ctx context.Context, company string, params Params) (Payload, error) {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(company)), " ", "-")
	target := "https://www.linkedin.com/company/" + slug

	req := browserless.ContentRequest{
		URL:       target,
		WaitUntil: "networkidle2",
	}
	if s.sessionCookie != "" {
		req.Cookies = []browserless.Cookie{
			{Name: "li_at", Value: s.sessionCookie, Domain: ".linkedin.com"},
		}
	}

	html, err := s.client.Content(ctx, req)
	if err != nil {
		return nil, err
	}

	page, err := parsePage(html)
	if err != nil {
		return nil, err
	}

	// LinkedIn serves an auth wall instead of a 4xx for unknown slugs.
	if strings.Contains(page.title, "Page not found") {
		return Payload{"status": "failed", "url": target}, nil
	}

	return Payload{
		"status":      "success",
		"url":         target,
		"title":       page.title,
		"description": page.description,
		"about":       page.text,
	}, nil
}
