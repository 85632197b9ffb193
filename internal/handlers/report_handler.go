package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sazehapp/sazeh-api/internal/services"
)

type ReportHandler struct {
	exportService *services.ExportService
	reportService *services.ReportService
}

func NewReportHandler(exportService *services.ExportService, reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{exportService: exportService, reportService: reportService}
}

// @Summary Export Project Workbook
// @Description Download the full project ledger as an XLSX workbook
// @Tags Reports
// @Produce application/octet-stream
// @Param project_id path int true "Project ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /projects/{project_id}/export/xlsx [get]
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	data, filename, err := h.exportService.ExportProjectXLSX(c.Request.Context(), uint(projectID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Investor Statement PDF
// @Description Download a PDF statement for one investor
// @Tags Reports
// @Produce application/pdf
// @Param project_id path int true "Project ID"
// @Param id path int true "Investor ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /projects/{project_id}/investors/{id}/statement [get]
func (h *ReportHandler) InvestorStatement(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	investorID, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	data, filename, err := h.reportService.GenerateInvestorStatementPDF(c.Request.Context(), uint(projectID), uint(investorID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary Verify Aggregates
// @Description Compare service aggregates against raw SQL sums and report mismatches
// @Tags Audit
// @Produce json
// @Param project_id path int true "Project ID"
// @Param period_limit query int false "Verify only the first N periods" default(0)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects/{project_id}/audit/verify [post]
func (h *AuditHandler) Verify(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	periodLimit, _ := strconv.Atoi(c.DefaultQuery("period_limit", "0"))

	mismatches, err := h.auditService.Verify(c.Request.Context(), uint(projectID), periodLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"passed":     len(mismatches) == 0,
		"mismatches": mismatches,
	})
}
