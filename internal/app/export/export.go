// Package export writes a participant's result table to an Excel workbook
// for sharing outside the review tool.
package export

import (
	"strconv"
	"time"

	"github.com/tealeg/xlsx"

	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/app/model"
)

// ToExcel writes the result set to an xlsx workbook at outputFilePath.
func ToExcel(set *model.ParticipantResultSet, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Results")
	if err != nil {
		return apperrors.Wrap(err, "failed to add worksheet")
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Block"
	headerRow.AddCell().Value = "Trial"
	headerRow.AddCell().Value = "Audio File"
	headerRow.AddCell().Value = "Target Phrase"
	headerRow.AddCell().Value = "Transcribed Text"
	headerRow.AddCell().Value = "Original Transcription"
	headerRow.AddCell().Value = "Similarity Score"
	headerRow.AddCell().Value = "Manual Correct"
	headerRow.AddCell().Value = "Error"
	headerRow.AddCell().Value = "Last Edited"

	for _, r := range set.Results {
		row := sheet.AddRow()
		row.AddCell().Value = r.Key.Block
		row.AddCell().Value = r.Key.Trial
		row.AddCell().Value = r.AudioPath
		row.AddCell().Value = r.TargetPhrase
		row.AddCell().Value = r.TranscribedText
		row.AddCell().Value = r.OriginalTranscription
		row.AddCell().Value = strconv.FormatFloat(r.SimilarityScore, 'f', 4, 64)
		row.AddCell().Value = strconv.FormatBool(r.ManualCorrect)
		row.AddCell().Value = r.ErrorMessage
		if !r.LastEdited.IsZero() {
			row.AddCell().Value = r.LastEdited.Format(time.RFC3339)
		} else {
			row.AddCell().Value = ""
		}
	}

	if err := file.Save(outputFilePath); err != nil {
		return apperrors.Wrapf(err, "failed to save workbook to %s", outputFilePath)
	}
	return nil
}
