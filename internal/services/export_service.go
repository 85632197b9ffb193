package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService builds a project's full financial workbook: a summary
// sheet plus one sheet per underlying table.
type ExportService struct {
	projectSvc    *ProjectService
	txRepo        repository.TransactionRepository
	expenseRepo   repository.ExpenseRepository
	saleRepo      repository.SaleRepository
	pettyCashRepo repository.PettyCashRepository
}

// NewExportService creates a new export service
func NewExportService(
	projectSvc *ProjectService,
	txRepo repository.TransactionRepository,
	expenseRepo repository.ExpenseRepository,
	saleRepo repository.SaleRepository,
	pettyCashRepo repository.PettyCashRepository,
) *ExportService {
	return &ExportService{
		projectSvc:    projectSvc,
		txRepo:        txRepo,
		expenseRepo:   expenseRepo,
		saleRepo:      saleRepo,
		pettyCashRepo: pettyCashRepo,
	}
}

// ExportProjectXLSX builds the workbook and returns its bytes and a
// suggested filename.
func (s *ExportService) ExportProjectXLSX(ctx context.Context, projectID uint) ([]byte, string, error) {
	stats, err := s.projectSvc.Statistics(ctx, projectID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	if err := s.writeSummarySheet(f, headerStyle, &stats); err != nil {
		return nil, "", err
	}
	if err := s.writeTransactionsSheet(ctx, f, headerStyle, projectID); err != nil {
		return nil, "", err
	}
	if err := s.writeExpensesSheet(ctx, f, headerStyle, projectID); err != nil {
		return nil, "", err
	}
	if err := s.writeSalesSheet(ctx, f, headerStyle, projectID); err != nil {
		return nil, "", err
	}
	if err := s.writePettyCashSheet(ctx, f, headerStyle, projectID); err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("project_%d_report_%s.xlsx", projectID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) writeSummarySheet(f *excelize.File, headerStyle int, stats *models.ProjectStatistics) error {
	sheet := "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	_ = f.SetCellValue(sheet, "A1", stats.ProjectName)
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	rows := [][2]interface{}{
		{"Total Units", stats.Units.TotalUnits},
		{"Total Area", stats.Units.TotalArea.InexactFloat64()},
		{"Total Unit Value", stats.Units.TotalPrice.InexactFloat64()},
		{"Total Deposits", stats.Transactions.Deposits.InexactFloat64()},
		{"Total Withdrawals", stats.Transactions.Withdrawals.InexactFloat64()},
		{"Total Profits", stats.Transactions.Profits.InexactFloat64()},
		{"Net Capital", stats.Transactions.NetCapital.InexactFloat64()},
		{"Grand Total", stats.GrandTotal.InexactFloat64()},
		{"Total Expenses", stats.TotalExpenses.InexactFloat64()},
		{"Total Sales", stats.TotalSales.InexactFloat64()},
		{"Final Cost", stats.FinalCost.InexactFloat64()},
		{"Investors", stats.InvestorCount},
		{"Project Duration (days)", stats.ProjectDurationDays},
		{"Active Days", stats.ActiveDays},
	}
	for i, row := range rows {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", i+3), row[0])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", i+3), row[1])
	}
	return nil
}

func (s *ExportService) writeTransactionsSheet(ctx context.Context, f *excelize.File, headerStyle int, projectID uint) error {
	sheet := "Transactions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"ID", "Investor", "Date", "Type", "Amount", "Days Remaining", "System Generated", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetCellStyle(sheet, "A1", "H1", headerStyle)

	txs, err := s.txRepo.FindByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for i := range txs {
		tx := &txs[i]
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tx.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), tx.InvestorID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), tx.DateShamsi)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), tx.TransactionType)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), tx.Amount.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), tx.DayRemaining)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), tx.IsSystemGenerated)
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), tx.Description)
	}
	return nil
}

func (s *ExportService) writeExpensesSheet(ctx context.Context, f *excelize.File, headerStyle int, projectID uint) error {
	sheet := "Expenses"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"ID", "Type", "Amount", "Period", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetCellStyle(sheet, "A1", "E1", headerStyle)

	expenses, err := s.expenseRepo.FindByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for i := range expenses {
		e := &expenses[i]
		row := i + 2
		periodID := ""
		if e.PeriodID != nil {
			periodID = fmt.Sprintf("%d", *e.PeriodID)
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), models.ExpenseTypeLabel(e.ExpenseType))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.Amount.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), periodID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Description)
	}
	return nil
}

func (s *ExportService) writeSalesSheet(ctx context.Context, f *excelize.File, headerStyle int, projectID uint) error {
	sheet := "Sales"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"ID", "Amount", "Period", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetCellStyle(sheet, "A1", "D1", headerStyle)

	sales, err := s.saleRepo.FindByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for i := range sales {
		sale := &sales[i]
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sale.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sale.Amount.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sale.PeriodID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sale.Description)
	}
	return nil
}

func (s *ExportService) writePettyCashSheet(ctx context.Context, f *excelize.File, headerStyle int, projectID uint) error {
	sheet := "PettyCash"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"ID", "Agent", "Type", "Amount", "Signed Amount", "Date", "Receipt", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetCellStyle(sheet, "A1", "H1", headerStyle)

	entries, err := s.pettyCashRepo.FindByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for i := range entries {
		e := &entries[i]
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), models.ExpenseTypeLabel(e.ExpenseType))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.TransactionType)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), e.Amount.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.SignedAmount().InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), e.DateShamsi)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), e.ReceiptNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), e.Description)
	}
	return nil
}
