package seed

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Header names expected on the skills worksheet.
const (
	CodeHdr        = "Code"
	NameHdr        = "Name"
	CategoryHdr    = "Category"
	LevelMinHdr    = "Level Min"
	LevelMaxHdr    = "Level Max"
	DescriptionHdr = "Description"
)

const worksheetRange = "Skills!A:F"

// SkillsFromWorksheet reads skill seed rows from a Google Sheets worksheet.
// The read range must include the header row. The returned rows still go
// through Data.Validate after merging; this only handles fetch and shape.
func SkillsFromWorksheet(ctx context.Context, spreadsheetID, credentialsPath string) ([]SkillSeed, error) {
	srv, err := sheets.NewService(
		ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("worksheet %s: unable to build Sheets client: %w", spreadsheetID, err)
	}

	resp, err := srv.Spreadsheets.Values.
		Get(spreadsheetID, worksheetRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("worksheet %s: unable to retrieve values: %w", spreadsheetID, err)
	}

	return parseSkillRows(spreadsheetID, resp.Values)
}

// parseSkillRows maps the raw worksheet values to SkillSeed records keyed by
// the header row. Blank rows are skipped; a row without a code is an error.
func parseSkillRows(source string, values [][]any) ([]SkillSeed, error) {
	if len(values) == 0 {
		return nil, &ParseError{File: source, Reason: "worksheet is empty"}
	}

	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(cell))
	}
	col := make(map[string]int, len(headers))
	for i, h := range headers {
		col[h] = i
	}
	for _, required := range []string{CodeHdr, NameHdr} {
		if _, ok := col[required]; !ok {
			return nil, &ParseError{File: source, Reason: fmt.Sprintf("worksheet header %q not found", required)}
		}
	}

	cell := func(row []any, header string) string {
		i, ok := col[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(row[i]))
	}

	var skills []SkillSeed
	for n, row := range values[1:] {
		if len(row) == 0 {
			continue
		}
		code := cell(row, CodeHdr)
		name := cell(row, NameHdr)
		if code == "" && name == "" {
			continue
		}
		if code == "" {
			return nil, &ParseError{File: source, Reason: fmt.Sprintf("worksheet row %d has no code", n+2)}
		}
		levelMin, err := cellLevel(cell(row, LevelMinHdr))
		if err != nil {
			return nil, &ParseError{File: source, Reason: fmt.Sprintf("worksheet row %d: bad level min", n+2), Err: err}
		}
		levelMax, err := cellLevel(cell(row, LevelMaxHdr))
		if err != nil {
			return nil, &ParseError{File: source, Reason: fmt.Sprintf("worksheet row %d: bad level max", n+2), Err: err}
		}
		skills = append(skills, SkillSeed{
			Code:        code,
			Name:        name,
			Category:    cell(row, CategoryHdr),
			LevelMin:    levelMin,
			LevelMax:    levelMax,
			Description: cell(row, DescriptionHdr),
		})
	}
	return skills, nil
}

func cellLevel(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
