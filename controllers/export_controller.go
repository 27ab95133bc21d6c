package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/hanacard-dev/cardbenefits/utils"
)

// packageNameByID resolves a package name for display, tolerating a nil id
// (first assignment has no from-package).
func packageNameByID(id *uint) string {
	if id == nil {
		return "-"
	}
	var pkg models.BenefitPackage
	if err := config.DB.First(&pkg, *id).Error; err != nil {
		return "-"
	}
	return pkg.PackageName
}

// DownloadChangeHistoryExcel exports the user's package switch ledger as
// an Excel workbook.
func DownloadChangeHistoryExcel(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cardProductID := cardProductIDParam(c)
	utils.LogInfo("DownloadChangeHistoryExcel called - user: %d", user.ID)

	history, err := utils.GetBenefitChangeHistory(user.ID, cardProductID)
	if err != nil {
		utils.LogError("Failed to fetch change history for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch change history", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Benefit Change History")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("HANA CARD - Benefit Change History")
	infoRow := sheet.AddRow()
	infoRow.AddCell().SetString(fmt.Sprintf("Customer: %s | Card product: %d | Generated: %s",
		user.Name, cardProductID, time.Now().Format("2006-01-02 15:04")))
	sheet.AddRow() // spacing

	headers := []string{"Change Date", "From Package", "To Package", "Reason", "Effective Date"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, entry := range history {
		row := sheet.AddRow()
		row.AddCell().SetString(entry.ChangeDate.Format("2006-01-02 15:04"))
		row.AddCell().SetString(packageNameByID(entry.FromPackageID))
		row.AddCell().SetString(packageNameByID(&entry.ToPackageID))
		row.AddCell().SetString(entry.ChangeReason)
		row.AddCell().SetString(entry.EffectiveDate.Format("2006-01-02"))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=benefit_change_history.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
		return
	}
	utils.LogInfo("Generated change history Excel for user %d (%d rows)", user.ID, len(history))
}

// DownloadHanamoneyStatementPDF exports the user's hana-money ledger as a
// PDF statement.
func DownloadHanamoneyStatementPDF(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogInfo("DownloadHanamoneyStatementPDF called - user: %d", user.ID)

	membership, err := utils.GetOrCreateMembership(user.ID)
	if err != nil {
		utils.LogError("Failed to get membership for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get hana-money membership", nil)
		return
	}

	transactions, _, err := utils.GetHanamoneyTransactions(user.ID, 500, 0)
	if err != nil {
		utils.LogError("Failed to fetch transactions for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch hana-money transactions", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "HANA CARD - Hana-money Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Customer: "+user.Name)
	pdf.Ln(6)
	pdf.Cell(0, 8, "Membership: "+membership.MembershipID)
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Balance: %d P | Total earned: %d P", membership.Balance, membership.TotalEarned))
	pdf.Ln(10)

	headers := []string{"Date", "Type", "Amount", "Balance After", "Description"}
	colWidths := []float64{35, 20, 25, 30, 80}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, txn := range transactions {
		pdf.CellFormat(colWidths[0], 7, txn.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, txn.Type, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, fmt.Sprintf("%d", txn.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, fmt.Sprintf("%d", txn.BalanceAfter), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 7, txn.Description, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=hanamoney_statement.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF: %v", err)
		utils.InternalServerError(c, "Failed to write PDF", nil)
		return
	}
	utils.LogInfo("Generated hana-money statement PDF for user %d (%d rows)", user.ID, len(transactions))
}
