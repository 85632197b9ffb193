package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sazehapp/sazeh-api/internal/models"
	"github.com/sazehapp/sazeh-api/internal/repository"
)

// ReportService renders investor statements as PDF.
type ReportService struct {
	investorSvc *InvestorService
	projectRepo repository.ProjectRepository
	txRepo      repository.TransactionRepository
}

// NewReportService creates a new report service
func NewReportService(investorSvc *InvestorService, projectRepo repository.ProjectRepository, txRepo repository.TransactionRepository) *ReportService {
	return &ReportService{
		investorSvc: investorSvc,
		projectRepo: projectRepo,
		txRepo:      txRepo,
	}
}

// GenerateInvestorStatementPDF renders one investor's capital statement:
// the summary block, the ownership block and the transaction list.
func (s *ReportService) GenerateInvestorStatementPDF(ctx context.Context, projectID, investorID uint) ([]byte, string, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load project: %w", err)
	}
	summary, err := s.investorSvc.Summary(ctx, projectID, investorID)
	if err != nil {
		return nil, "", err
	}
	ownership, err := s.investorSvc.Ownership(ctx, projectID, investorID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Investor Statement")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Project: %s", project.Name))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Investor: %s (%s)", summary.Name, summary.ParticipationType))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Capital Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	summaryRows := [][2]string{
		{"Total Deposits", summary.TotalDeposits.StringFixed(2)},
		{"Total Withdrawals", summary.TotalWithdrawals.StringFixed(2)},
		{"Net Principal", summary.NetPrincipal.StringFixed(2)},
		{"Total Profit", summary.TotalProfit.StringFixed(2)},
		{"Grand Total", summary.GrandTotal.StringFixed(2)},
		{"Capital Ratio", summary.CapitalRatio.StringFixed(2) + "%"},
		{"Profit Ratio", summary.ProfitRatio.StringFixed(2) + "%"},
		{"Profit Index", summary.ProfitIndex.StringFixed(2)},
	}
	for _, row := range summaryRows {
		pdf.Cell(60, 6, row[0])
		pdf.Cell(0, 6, row[1])
		pdf.Ln(6)
	}
	pdf.Ln(6)

	if ownership.UnitsCount > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Unit Ownership")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		ownershipRows := [][2]string{
			{"Units", fmt.Sprintf("%d", ownership.UnitsCount)},
			{"Total Units Area", ownership.TotalUnitsArea.StringFixed(2)},
			{"Avg Price / Meter", ownership.AveragePricePerMeter.StringFixed(2)},
			{"Ownership Area", ownership.OwnershipArea.StringFixed(2)},
			{"Ownership", ownership.OwnershipPercentage.StringFixed(2) + "%"},
		}
		for _, row := range ownershipRows {
			pdf.Cell(60, 6, row[0])
			pdf.Cell(0, 6, row[1])
			pdf.Ln(6)
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Transactions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Cell(25, 6, "Date")
	pdf.Cell(40, 6, "Type")
	pdf.Cell(35, 6, "Amount")
	pdf.Cell(25, 6, "Days Left")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)

	id := investorID
	txs, err := s.txRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	for i := range txs {
		tx := &txs[i]
		if tx.InvestorID != id {
			continue
		}
		pdf.Cell(25, 5, tx.DateShamsi)
		pdf.Cell(40, 5, transactionTypeLabel(tx.TransactionType))
		pdf.Cell(35, 5, tx.Amount.StringFixed(2))
		pdf.Cell(25, 5, fmt.Sprintf("%d", tx.DayRemaining))
		pdf.Ln(5)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("failed to render pdf: %w", err)
	}

	filename := fmt.Sprintf("investor_%d_statement_%s.pdf", investorID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func transactionTypeLabel(transactionType string) string {
	switch transactionType {
	case models.TransactionTypePrincipalDeposit:
		return "Principal Deposit"
	case models.TransactionTypeLoanDeposit:
		return "Loan Deposit"
	case models.TransactionTypePrincipalWithdrawal:
		return "Withdrawal"
	case models.TransactionTypeProfitAccrual:
		return "Profit"
	}
	return transactionType
}
