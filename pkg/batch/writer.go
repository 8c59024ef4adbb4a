package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

var resultHeader = []string{
	"name", "address", "phone_number", "website",
	"success", "status_code", "error_message",
	"emails", "phone_numbers", "business_hours",
	"facebook", "twitter", "instagram", "linkedin",
	"meta_title", "meta_description", "meta_keywords",
	"products_and_services", "pages_checked",
	"last_modified", "crawl_timestamp",
	"business_type", "run_id",
}

// WriteResultsXLSX writes one row per processed business to a new workbook
func WriteResultsXLSX(path, sheetName string, results []models.BusinessResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return fmt.Errorf("renaming sheet: %w", err)
		}
	}

	if err := setRow(f, sheetName, 1, resultHeader); err != nil {
		return err
	}
	for i, r := range results {
		if err := setRow(f, sheetName, i+2, resultRow(r)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func resultRow(r models.BusinessResult) []string {
	var status string
	if r.StatusCode != 0 {
		status = fmt.Sprintf("%d", r.StatusCode)
	}

	var emails, phones, hours string
	var facebook, twitter, instagram, linkedin string
	var title, description, keywords string
	var items, pages, lastModified, crawlTime string
	if a := r.Aggregate; a != nil {
		emails = strings.Join(a.Emails, "; ")
		phones = strings.Join(a.Contact.PhoneNumbers, "; ")
		hours = strDeref(a.Contact.BusinessHours)
		facebook = strDeref(a.Social.Facebook)
		twitter = strDeref(a.Social.Twitter)
		instagram = strDeref(a.Social.Instagram)
		linkedin = strDeref(a.Social.LinkedIn)
		title = strDeref(a.Meta.Title)
		description = strDeref(a.Meta.Description)
		keywords = strDeref(a.Meta.Keywords)
		if len(a.Items) > 0 {
			items = jsonCell(a.Items)
		}
		if len(a.PagesChecked) > 0 {
			pages = jsonCell(a.PagesChecked)
		}
		lastModified = strDeref(a.LastModified)
		if !a.CrawlTime.IsZero() {
			crawlTime = a.CrawlTime.Format(time.RFC3339)
		}
	}

	var businessType string
	if r.Analysis != nil {
		businessType = r.Analysis.BusinessType
	}

	return []string{
		r.Name, r.Address, r.Phone, r.Website,
		fmt.Sprintf("%t", r.Success), status, r.ErrorMessage,
		emails, phones, hours,
		facebook, twitter, instagram, linkedin,
		title, description, keywords,
		items, pages,
		lastModified, crawlTime,
		businessType, r.RunID,
	}
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// jsonCell serializes structured values into a single spreadsheet cell
func jsonCell(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WriteResultsJSONL writes the full structured results, one JSON object per
// line. This is the lossless companion to the spreadsheet summary.
func WriteResultsJSONL(path string, results []models.BusinessResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding result for %q: %w", r.Name, err)
		}
	}
	return nil
}
