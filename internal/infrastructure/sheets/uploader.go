package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"RecruitIntel/internal/domain"
	"RecruitIntel/internal/ports"
)

// Uploader pushes a day's scored articles to a Google spreadsheet using a
// service-account credential.
type Uploader struct {
	credentialsFile string
	spreadsheetID   string
}

var _ ports.SheetUploader = (*Uploader)(nil)

// NewUploader records the credential location and target spreadsheet. An
// empty spreadsheet ID means a new sheet is created on first upload.
func NewUploader(credentialsFile, spreadsheetID string) *Uploader {
	return &Uploader{
		credentialsFile: credentialsFile,
		spreadsheetID:   spreadsheetID,
	}
}

// UploadDay writes the bucket as rows (header first) and freezes the
// header row. It returns the spreadsheet URL.
func (u *Uploader) UploadDay(ctx context.Context, bucket domain.DayBucket) (string, error) {
	if u.credentialsFile == "" {
		return "", fmt.Errorf("sheets uploader misconfigured: no credentials file")
	}

	credentials, err := os.ReadFile(u.credentialsFile)
	if err != nil {
		return "", fmt.Errorf("read sheets credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return "", fmt.Errorf("parse sheets credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return "", fmt.Errorf("create sheets client: %w", err)
	}

	spreadsheetID := u.spreadsheetID
	if spreadsheetID == "" {
		spreadsheetID, err = u.createSpreadsheet(service, bucket.Date)
		if err != nil {
			return "", err
		}
		u.spreadsheetID = spreadsheetID
	}

	values := [][]interface{}{
		{"Titel", "Bron", "Categorie", "Score", "Keywords", "URL", "Datum"},
	}
	for _, article := range bucket.Articles {
		values = append(values, []interface{}{
			article.Title,
			article.Source,
			article.Category,
			article.Score,
			strings.Join(article.Keywords, ", "),
			article.URL,
			bucket.Date.Format("2006-01-02"),
		})
	}

	writeRange := fmt.Sprintf("Sheet1!A1:G%d", len(values))
	_, err = service.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("update spreadsheet: %w", err)
	}

	if err := u.freezeHeader(ctx, service, spreadsheetID); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", spreadsheetID), nil
}

func (u *Uploader) createSpreadsheet(service *sheets.Service, day time.Time) (string, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: fmt.Sprintf("Dutch Recruitment News - %s", day.Format("2006-01-02")),
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: "Sheet1"}},
		},
	}

	created, err := service.Spreadsheets.Create(spreadsheet).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", err)
	}
	return created.SpreadsheetId, nil
}

func (u *Uploader) freezeHeader(ctx context.Context, service *sheets.Service, spreadsheetID string) error {
	spreadsheet, err := service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	if len(spreadsheet.Sheets) == 0 {
		return fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: spreadsheet.Sheets[0].Properties.SheetId,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		},
	}

	if _, err := service.Spreadsheets.BatchUpdate(spreadsheetID, request).Context(ctx).Do(); err != nil {
		return fmt.Errorf("freeze header row: %w", err)
	}
	return nil
}
