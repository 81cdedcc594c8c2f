package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// exportPerPage is the maximum page size the CRM API allows.
const exportPerPage = 200

// ExportedNote is the slim record shape the notes export produces.
type ExportedNote struct {
	Content     string `json:"content"`
	CreatedDate string `json:"created_date"`
}

type rawExportNote struct {
	NoteContent string `json:"Note_Content"`
	CreatedTime string `json:"Created_Time"`
}

// Exporter walks the full Notes module oldest-first using page/per_page
// pagination. Unlike the dashboard facade, which reads a single page per
// call, the exporter follows info.more_records until the module is
// exhausted.
type Exporter struct {
	client *Client
}

func NewExporter(client *Client) *Exporter {
	return &Exporter{client: client}
}

// FetchAllNotes returns every note's content and creation date, sorted
// oldest to newest.
func (e *Exporter) FetchAllNotes(ctx context.Context) ([]ExportedNote, error) {
	var all []ExportedNote

	for page := 1; ; page++ {
		query := url.Values{
			"fields":     {"Note_Content,Created_Time"},
			"sort_by":    {"Created_Time"},
			"sort_order": {"asc"},
			"page":       {strconv.Itoa(page)},
			"per_page":   {strconv.Itoa(exportPerPage)},
		}

		list, err := e.client.List(ctx, ModuleNotes, query)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch notes page %d: %w", page, err)
		}

		if len(list.Data) == 0 {
			break
		}

		for _, raw := range list.Data {
			var note rawExportNote
			if err := json.Unmarshal(raw, &note); err != nil {
				log.Error().Err(err).Int("page", page).Msg("Skipping malformed note")
				continue
			}
			all = append(all, ExportedNote{
				Content:     note.NoteContent,
				CreatedDate: note.CreatedTime,
			})
		}

		if !list.Info.MoreRecords {
			break
		}
	}

	log.Info().Int("notes", len(all)).Msg("Fetched all notes")
	return all, nil
}

// WriteWorkbook writes the exported notes to an xlsx workbook at path.
func WriteWorkbook(notes []ExportedNote, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Notes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &[]any{"Content", "Created Date"}); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, note := range notes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{note.Content, note.CreatedDate}); err != nil {
			return fmt.Errorf("failed to write note row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}
