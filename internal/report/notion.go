package report

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/notion"
)

// NotionPublisher writes research reports into a Notion database, one page
// per company. Re-publishing the same company updates the existing page
// properties and appends nothing.
type NotionPublisher struct {
	client notion.Client
	dbID   string
}

// NewNotionPublisher creates a publisher targeting the given database.
func NewNotionPublisher(client notion.Client, databaseID string) *NotionPublisher {
	return &NotionPublisher{client: client, dbID: databaseID}
}

// Publish creates or updates the company's page. Returns the page ID.
func (p *NotionPublisher) Publish(ctx context.Context, agg *model.AggregateResult, enh *model.EnhancementResult) (string, error) {
	props := p.properties(agg, enh)

	existing, err := p.findPage(ctx, agg.Company)
	if err != nil {
		return "", err
	}
	if existing != "" {
		_, err := p.client.UpdatePage(ctx, existing, &notionapi.PageUpdateRequest{Properties: props})
		if err != nil {
			return "", eris.Wrapf(err, "report: update notion page for %s", agg.Company)
		}
		return existing, nil
	}

	page, err := p.client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent:     notionapi.Parent{Type: notionapi.ParentTypeDatabaseID, DatabaseID: notionapi.DatabaseID(p.dbID)},
		Properties: props,
		Children:   p.blocks(agg, enh),
	})
	if err != nil {
		return "", eris.Wrapf(err, "report: create notion page for %s", agg.Company)
	}
	return string(page.ID), nil
}

func (p *NotionPublisher) findPage(ctx context.Context, company string) (string, error) {
	resp, err := p.client.QueryDatabase(ctx, p.dbID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Name",
			RichText: &notionapi.TextFilterCondition{Equals: company},
		},
		PageSize: 1,
	})
	if err != nil {
		return "", eris.Wrapf(err, "report: query notion database for %s", company)
	}
	if len(resp.Results) == 0 {
		return "", nil
	}
	return string(resp.Results[0].ID), nil
}

func (p *NotionPublisher) properties(agg *model.AggregateResult, enh *model.EnhancementResult) notionapi.Properties {
	score := float64(agg.QualityScore)
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: agg.Company}}},
		},
		"Quality": notionapi.NumberProperty{Number: score},
		"Grade": notionapi.SelectProperty{
			Select: notionapi.Option{Name: agg.QualityGrade},
		},
		"Mode": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(agg.Mode)},
		},
	}
	if enh != nil {
		props["Enhancement"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(enh.EnhancementStatus)},
		}
	}
	return props
}

func (p *NotionPublisher) blocks(agg *model.AggregateResult, enh *model.EnhancementResult) []notionapi.Block {
	var blocks []notionapi.Block

	blocks = append(blocks, heading("Analysis"))
	if enh != nil {
		blocks = append(blocks, paragraph(enh.CompanyBackground))
		blocks = append(blocks, paragraph(fmt.Sprintf("Business model: %s", enh.BusinessModel)))
		blocks = append(blocks, bullets("Technology stack", enh.TechnologyStack)...)
		blocks = append(blocks, bullets("Pain points", enh.PainPoints)...)
		blocks = append(blocks, bullets("Recent developments", enh.RecentDevelopments)...)
		blocks = append(blocks, bullets("Decision makers", enh.DecisionMakers)...)
	} else {
		blocks = append(blocks, paragraph("No analysis available for this run."))
	}

	blocks = append(blocks, heading("Collection"))
	blocks = append(blocks, paragraph(fmt.Sprintf(
		"%d of %d sources succeeded. Quality %d/100 (%s).",
		agg.SuccessfulCount, agg.TotalCount, agg.QualityScore, agg.QualityGrade)))
	for _, rec := range agg.Recommendations {
		blocks = append(blocks, bullet(rec))
	}

	return blocks
}

func heading(text string) notionapi.Block {
	return &notionapi.Heading2Block{
		BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeHeading2},
		Heading2: notionapi.Heading{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: text}}},
		},
	}
}

func paragraph(text string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeParagraph},
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: text}}},
		},
	}
}

func bullet(text string) notionapi.Block {
	return &notionapi.BulletedListItemBlock{
		BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeBulletedListItem},
		BulletedListItem: notionapi.ListItem{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: text}}},
		},
	}
}

func bullets(label string, items []string) []notionapi.Block {
	if len(items) == 0 {
		return nil
	}
	blocks := []notionapi.Block{paragraph(label + ":")}
	for _, item := range items {
		blocks = append(blocks, bullet(item))
	}
	return blocks
}
