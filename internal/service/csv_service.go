package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/util"
)

// CSVService handles bulk transaction import and export
type CSVService struct {
	transactionRepo domain.TransactionRepository
	ownerRepo       domain.OwnerRepository
	categoryRepo    domain.CategoryRepository
	gate            *ConfirmationGate
}

// NewCSVService creates a new CSVService
func NewCSVService(transactionRepo domain.TransactionRepository, ownerRepo domain.OwnerRepository, categoryRepo domain.CategoryRepository, gate *ConfirmationGate) *CSVService {
	return &CSVService{
		transactionRepo: transactionRepo,
		ownerRepo:       ownerRepo,
		categoryRepo:    categoryRepo,
		gate:            gate,
	}
}

// ImportResult reports the outcome of a CSV import
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

type importRow struct {
	txnDate     string
	ownerLabel  string
	category    string
	description string
	amount      decimal.Decimal
}

// Import parses a transactions CSV and inserts every row in one batch. Row
// problems are collected and reported together; nothing is written unless the
// whole file is clean. A batch touching any closed month needs one
// confirmation covering all its months.
func (s *CSVService) Import(r io.Reader, confirmed bool) (*ImportResult, error) {
	rows, parseErrs, err := s.parse(r)
	if err != nil {
		return nil, err
	}
	if len(parseErrs) > 0 {
		return &ImportResult{Errors: parseErrs}, nil
	}
	if len(rows) == 0 {
		return &ImportResult{}, nil
	}

	owners, err := s.ownerRepo.GetAll()
	if err != nil {
		return nil, err
	}
	ownerByLabel := make(map[string]string, len(owners)*2)
	for _, o := range owners {
		ownerByLabel[strings.ToLower(o.DisplayName)] = o.ID
		ownerByLabel[strings.ToLower(o.SystemKey)] = o.ID
	}

	var resolveErrs []string
	months := make([]string, 0, len(rows))
	for i, row := range rows {
		if _, ok := ownerByLabel[strings.ToLower(row.ownerLabel)]; !ok {
			resolveErrs = append(resolveErrs, fmt.Sprintf("row %d: unknown owner %q", i+2, row.ownerLabel))
		}
		months = append(months, util.MonthOfDate(row.txnDate))
	}
	if len(resolveErrs) > 0 {
		return &ImportResult{Errors: resolveErrs}, nil
	}

	ok, err := s.gate.Authorize(ActionImport, confirmed, months...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConfirmationRequired
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		category, err := s.categoryRepo.GetOrCreate(row.category)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, &domain.Transaction{
			ID:          uuid.New().String(),
			TxnDate:     row.txnDate,
			OwnerID:     ownerByLabel[strings.ToLower(row.ownerLabel)],
			CategoryID:  category.ID,
			Description: row.description,
			Amount:      row.amount,
		})
	}
	if err := s.transactionRepo.CreateBatch(transactions); err != nil {
		return nil, err
	}

	log.Info().Int("rows", len(transactions)).Msg("CSV import completed")
	return &ImportResult{Imported: len(transactions)}, nil
}

func (s *CSVService) parse(r io.Reader) ([]*importRow, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateCol, ok := cols["txn_date"]
	if !ok {
		dateCol, ok = cols["date"]
	}
	ownerCol, okOwner := cols["owner"]
	categoryCol, okCategory := cols["category"]
	amountCol, okAmount := cols["amount"]
	if !ok || !okOwner || !okCategory || !okAmount {
		return nil, nil, fmt.Errorf("csv header must include date (or txn_date), owner, category and amount")
	}
	descriptionCol, hasDescription := cols["description"]

	var rows []*importRow
	var errs []string
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		row := &importRow{
			txnDate:    strings.TrimSpace(record[dateCol]),
			ownerLabel: strings.TrimSpace(record[ownerCol]),
			category:   strings.TrimSpace(record[categoryCol]),
		}
		if hasDescription && descriptionCol < len(record) {
			row.description = strings.TrimSpace(record[descriptionCol])
		}

		if !util.ValidDate(row.txnDate) {
			errs = append(errs, fmt.Sprintf("row %d: invalid date %q, want YYYY-MM-DD", line, row.txnDate))
		}
		if row.ownerLabel == "" {
			errs = append(errs, fmt.Sprintf("row %d: missing owner", line))
		}
		if row.category == "" {
			errs = append(errs, fmt.Sprintf("row %d: missing category", line))
		}

		amount, err := parseAmount(record[amountCol])
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", line, err))
		} else {
			row.amount = amount
		}

		rows = append(rows, row)
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}
	return rows, nil, nil
}

// parseAmount accepts money formatting like "$1,234.56"
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", raw)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount %q must be positive", raw)
	}
	return amount, nil
}

// Export writes the month's non-deleted transactions as CSV, date-ascending.
// An empty month exports everything.
func (s *CSVService) Export(w io.Writer, month string) error {
	if month != "" && !util.ValidMonth(month) {
		return domain.ErrInvalidMonth
	}

	rows, err := s.transactionRepo.Export(month)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "owner", "category", "amount", "description"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.TxnDate, row.Owner, row.Category, row.Amount.StringFixed(2), row.Description}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
