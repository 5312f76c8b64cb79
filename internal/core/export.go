package core

// export.go flattens every stored registration into tabular rows and
// serializes them to a single-sheet xlsx workbook. Teams vary in size, so the
// member columns are the superset taken from the largest team and smaller
// teams pad with empty cells.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the single worksheet holding all registrations.
const ExportSheetName = "Registrations"

// ExportContentType is the MIME type of the produced workbook.
const ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// fixedColumns lead every export row, before the per-member columns.
var fixedColumns = []string{
	"sno", "event", "teamName", "teamSize", "transactionId", "submittedAt", "paymentImageUrl",
}

// memberColumns are repeated per member as memberN_<field>.
var memberColumns = []string{
	"role", "name", "clg", "dept", "email", "mobile", "gender", "degree", "year",
}

// ExportXLSX renders the current snapshot of registrations, newest first, as
// xlsx bytes. It reads once and writes nothing, so it is safe to re-run.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	regs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registrations: %w", err)
	}

	maxMembers := 0
	for _, reg := range regs {
		if len(reg.Members) > maxMembers {
			maxMembers = len(reg.Members)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := exportHeader(maxMembers)
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, reg := range regs {
		row := s.exportRow(i+1, reg, maxMembers)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// exportHeader builds the column superset for teams of up to maxMembers.
func exportHeader(maxMembers int) []any {
	header := make([]any, 0, len(fixedColumns)+maxMembers*len(memberColumns))
	for _, c := range fixedColumns {
		header = append(header, c)
	}
	for n := 1; n <= maxMembers; n++ {
		for _, c := range memberColumns {
			header = append(header, fmt.Sprintf("member%d_%s", n, c))
		}
	}
	return header
}

// exportRow flattens one registration, padding member cells up to maxMembers.
func (s *Service) exportRow(sno int, reg Registration, maxMembers int) []any {
	row := make([]any, 0, len(fixedColumns)+maxMembers*len(memberColumns))
	row = append(row,
		sno,
		reg.Event,
		reg.TeamName,
		reg.TeamSize,
		reg.TransactionID,
		reg.SubmittedAt.Format(time.RFC3339),
		s.paymentImageURL(reg.ID.String()),
	)

	for n := 0; n < maxMembers; n++ {
		var m Member
		if n < len(reg.Members) {
			m = reg.Members[n]
		}
		row = append(row, m.Role, m.Name, m.Clg, m.Dept, m.Email, m.Mobile, m.Gender, m.Degree, m.Year)
	}

	return row
}

// paymentImageURL builds the image-retrieval link for one registration.
// With no configured base URL the link is relative.
func (s *Service) paymentImageURL(id string) string {
	base := strings.TrimRight(s.cfg.Event.PublicBaseURL, "/")
	return base + "/payment-image/" + id
}
