package source

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/browserless"
)

// maxPageText caps the amount of page text carried in a payload.
const maxPageText = 8000

// BrowserSource renders the company website through a headless browser and
// extracts its visible text. Produces the playwright_data payload.
type BrowserSource struct {
	client browserless.Client
}

// NewBrowserSource wraps a browserless client as a Source.
func NewBrowserSource(client browserless.Client) *BrowserSource {
	return &BrowserSource{client: client}
}

func (s *BrowserSource) Name() string { return "playwright" }

func (s *BrowserSource) Fetch(ctx context.Context, company string, params Params) (Payload, error) {
	target, _ := params["website"].(string)
	if target == "" {
		// Best-effort guess when no website is known yet.
		target = "https://www." + companySlug(company) + ".com"
	}

	html, err := s.client.Content(ctx, browserless.ContentRequest{
		URL:       target,
		WaitUntil: "networkidle2",
	})
	if err != nil {
		return nil, err
	}

	page, err := parsePage(html)
	if err != nil {
		return nil, err
	}

	return Payload{
		"status":      "success",
		"url":         target,
		"title":       page.title,
		"description": page.description,
		"text":        page.text,
		"links":       page.links,
	}, nil
}

type pageContent struct {
	title       string
	description string
	text        string
	links       []any
}

func parsePage(html string) (*pageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	p := &pageContent{
		title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		p.description = strings.TrimSpace(desc)
	}

	doc.Find("script, style, noscript").Remove()
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(text) > maxPageText {
		// Back up to a rune boundary so the cut never leaves invalid UTF-8.
		cut := maxPageText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	p.text = text

	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, "http") {
			return
		}
		if _, ok := seen[href]; ok || len(p.links) >= 25 {
			return
		}
		seen[href] = struct{}{}
		p.links = append(p.links, href)
	})

	return p, nil
}

// companySlug lowercases a company name and strips non-alphanumerics, for
// URL guessing.
func companySlug(company string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(company) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			fmt.Fprintf(&b, "%c", r)
		}
	}
	return b.String()
}
