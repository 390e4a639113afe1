package export

import (
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"

	"speech2text/internal/app/model"
)

const sheetName = "Transcripts"

var header = []string{"ID", "Created At", "Status", "Text", "Audio URL"}

// Workbook builds a single-sheet workbook with one row per transcript.
// onRow, when not nil, is called after every written row.
func Workbook(transcripts []model.Transcript, onRow func()) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, title := range header {
		headerRow.AddCell().Value = title
	}

	for _, t := range transcripts {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(t.ID)
		row.AddCell().Value = t.CreatedAt.UTC().Format(time.RFC3339)
		row.AddCell().Value = string(t.Status)
		row.AddCell().Value = t.Text
		audioURL := ""
		if t.AudioURL != nil {
			audioURL = *t.AudioURL
		}
		row.AddCell().Value = audioURL

		if onRow != nil {
			onRow()
		}
	}

	return file, nil
}

// ToExcel writes transcripts to an .xlsx file at path
func ToExcel(transcripts []model.Transcript, path string, onRow func()) error {
	file, err := Workbook(transcripts, onRow)
	if err != nil {
		return err
	}

	if err := file.Save(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Write streams the workbook to w
func Write(transcripts []model.Transcript, w io.Writer) error {
	file, err := Workbook(transcripts, nil)
	if err != nil {
		return err
	}
	return file.Write(w)
}
