package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"api/models"
)

var statsHeader = []string{"ID", "Short Key", "Title", "Author", "Completions", "Downloads", "Likes", "Average Time (s)", "Difficulty"}

// BuildStatsWorkbook builds an xlsx workbook with one row per puzzle
// aggregate.
func BuildStatsWorkbook(puzzles []models.Puzzle) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Puzzles"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, h := range statsHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, p := range puzzles {
		author := "official"
		if p.Author != nil {
			author = p.AuthorName
		}
		values := []interface{}{p.ID, p.ShortKey, p.Title, author, p.Completions, p.Downloads, p.Likes, deref(p.AverageTime), deref(p.Difficulty)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

func deref(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
