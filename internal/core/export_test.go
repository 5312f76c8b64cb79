package core

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func exportRows(t *testing.T, svc *Service) [][]string {
	t.Helper()

	data, err := svc.ExportXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("produced workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	if err != nil {
		t.Fatalf("GetRows(%q) error = %v", ExportSheetName, err)
	}
	return rows
}

func TestExportXLSX_Empty(t *testing.T) {
	svc, _ := newTestService()

	rows := exportRows(t, svc)
	if len(rows) != 1 {
		t.Fatalf("empty export has %d rows, want header only", len(rows))
	}
	if rows[0][0] != "sno" || rows[0][2] != "teamName" {
		t.Errorf("header = %v, want fixed columns first", rows[0])
	}
}

func TestExportXLSX_RowsAndMemberColumns(t *testing.T) {
	svc, _ := newTestService()

	big := validInput()
	big.TeamName = "Trio Team"
	big.TeamSize = 3
	big.Members = []Member{
		{Name: "Asha", Clg: "Northfield University"},
		{Name: "Ben", Clg: "Northfield University"},
		{Name: "Cleo", Clg: "Northfield University"},
	}
	big.SubmittedAt = "2026-02-14T10:00:00Z"
	if _, err := svc.Register(context.Background(), big); err != nil {
		t.Fatalf("Register(Trio Team) error = %v", err)
	}

	solo := validInput()
	solo.TeamName = "Solo Act"
	solo.TeamSize = 1
	solo.Members = solo.Members[:1]
	solo.SubmittedAt = "2026-02-15T10:00:00Z"
	if _, err := svc.Register(context.Background(), solo); err != nil {
		t.Fatalf("Register(Solo Act) error = %v", err)
	}

	rows := exportRows(t, svc)
	if len(rows) != 3 {
		t.Fatalf("export has %d rows, want header + 2 data rows", len(rows))
	}

	header := strings.Join(rows[0], "|")
	if !strings.Contains(header, "member3_name") {
		t.Error("header is missing member3_* columns for the three-member team")
	}
	if strings.Contains(header, "member4_") {
		t.Error("header has member4_* columns but the largest team has 3 members")
	}
	for _, col := range []string{"member1_role", "member1_dept", "member2_mobile", "paymentImageUrl"} {
		if !strings.Contains(header, col) {
			t.Errorf("header is missing column %q", col)
		}
	}

	// Newest first: Solo Act was submitted later.
	if rows[1][2] != "Solo Act" {
		t.Errorf("first data row team = %q, want %q", rows[1][2], "Solo Act")
	}
	if rows[2][2] != "Trio Team" {
		t.Errorf("second data row team = %q, want %q", rows[2][2], "Trio Team")
	}
	if rows[1][0] != "1" || rows[2][0] != "2" {
		t.Errorf("sequence numbers = %q, %q, want 1, 2", rows[1][0], rows[2][0])
	}
}

func TestExportXLSX_ImageURL(t *testing.T) {
	svc, _ := newTestService()

	reg, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	rows := exportRows(t, svc)
	want := "https://reg.example.com/payment-image/" + reg.ID.String()
	if got := rows[1][6]; got != want {
		t.Errorf("paymentImageUrl = %q, want %q", got, want)
	}
}

func TestExportXLSX_SubmittedAtFormat(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.SubmittedAt = "2026-02-14T10:30:00Z"
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	rows := exportRows(t, svc)
	got, err := time.Parse(time.RFC3339, rows[1][5])
	if err != nil {
		t.Fatalf("submittedAt cell %q is not RFC3339: %v", rows[1][5], err)
	}
	if !got.Equal(time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("submittedAt cell = %v, want the submitted timestamp", got)
	}
}
