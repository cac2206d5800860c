package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

// xlsxHeader is the column layout of the runs export sheet.
var xlsxHeader = []string{
	"Run ID", "Company", "Mode", "Status",
	"Quality Score", "Quality Grade", "Sources OK", "Sources Failed",
	"Success Rate", "Enhancement", "Created At",
}

// WriteRunsXLSX writes runs to an XLSX workbook at path, one row per run.
func WriteRunsXLSX(path string, runs []model.Run) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Runs")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range xlsxHeader {
		header.AddCell().SetString(col)
	}

	for _, run := range runs {
		row := sheet.AddRow()
		row.AddCell().SetString(run.ID)
		row.AddCell().SetString(run.Company)
		row.AddCell().SetString(string(run.Mode))
		row.AddCell().SetString(string(run.Status))

		if agg := run.Aggregate; agg != nil {
			row.AddCell().SetInt(agg.QualityScore)
			row.AddCell().SetString(agg.QualityGrade)
			row.AddCell().SetString(strings.Join(agg.SuccessfulSources, ", "))
			row.AddCell().SetString(strings.Join(agg.FailedSources, ", "))
			row.AddCell().SetString(fmt.Sprintf("%.0f%%", agg.SuccessRate*100))
		} else {
			for i := 0; i < 5; i++ {
				row.AddCell()
			}
		}

		if enh := run.Enhancement; enh != nil {
			row.AddCell().SetString(string(enh.EnhancementStatus))
		} else {
			row.AddCell()
		}

		row.AddCell().SetString(run.CreatedAt.UTC().Format(time.RFC3339))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}
