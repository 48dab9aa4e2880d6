package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"labdesk/internal/analytics"
	"labdesk/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const reportBucket = "labdesk-reports"

type ReportServiceInterface interface {
	BuildInvoicePDF(ctx context.Context, invoice *models.Invoice) ([]byte, error)
	BuildRevenueXLSX(ctx context.Context, summary *analytics.Summary, fromDate, toDate time.Time) ([]byte, error)
}

type reportService struct {
	minioSvc MinioService
}

// NewReportService creates a new report/export service. Generated documents
// are archived to object storage as a side copy; archival failures never
// fail the export itself.
func NewReportService(minioSvc MinioService) ReportServiceInterface {
	return &reportService{minioSvc: minioSvc}
}

// BuildInvoicePDF renders a printable invoice. Numeric fields are echoed
// verbatim with two-decimal currency formatting.
func (s *reportService) BuildInvoicePDF(ctx context.Context, invoice *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 10, "Laboratory Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice No: %s", invoice.InvoiceNumber))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Patient: %s", invoice.PatientName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", invoice.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Payment Mode: %s", invoice.PaymentMode))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 6, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(110, 6, "Test", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, "Price", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for i, item := range invoice.Items {
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(110, 6, item.TestName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Subtotal: %.2f", invoice.Subtotal))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Discount: %.2f", invoice.Discount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Final Amount: %.2f", invoice.FinalAmount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Paid: %.2f", invoice.PaidAmount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Balance: %.2f", invoice.Balance))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", invoice.Status))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	s.archive(ctx, fmt.Sprintf("invoices/%s.pdf", invoice.InvoiceNumber), "application/pdf", buf.Bytes())
	return buf.Bytes(), nil
}

// BuildRevenueXLSX renders an analytics summary as a workbook with a
// summary sheet and an invoice sheet.
func (s *reportService) BuildRevenueXLSX(ctx context.Context, summary *analytics.Summary, fromDate, toDate time.Time) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	invoiceSheet := "invoices"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(invoiceSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Revenue Report")
	_ = f.SetCellValue(summarySheet, "A3", "From")
	_ = f.SetCellValue(summarySheet, "B3", fromDate.Format("2006-01-02"))
	_ = f.SetCellValue(summarySheet, "A4", "To")
	_ = f.SetCellValue(summarySheet, "B4", toDate.Format("2006-01-02"))
	_ = f.SetCellValue(summarySheet, "A5", "Total Revenue")
	_ = f.SetCellValue(summarySheet, "B5", summary.TotalRevenue)
	_ = f.SetCellValue(summarySheet, "A6", "Today Revenue")
	_ = f.SetCellValue(summarySheet, "B6", summary.TodayRevenue)
	_ = f.SetCellValue(summarySheet, "A7", "Today Collections")
	_ = f.SetCellValue(summarySheet, "B7", summary.TodayCollections)
	_ = f.SetCellValue(summarySheet, "A8", "Total Tests")
	_ = f.SetCellValue(summarySheet, "B8", summary.TotalTests)

	row := 10
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Payment Method")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), "Count")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), "Amount")
	for _, entry := range summary.PaymentBreakdown {
		row++
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), entry.Method)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), entry.Count)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), entry.Amount)
	}

	_ = f.SetCellValue(invoiceSheet, "A1", "Invoice No")
	_ = f.SetCellValue(invoiceSheet, "B1", "Patient")
	_ = f.SetCellValue(invoiceSheet, "C1", "Date")
	_ = f.SetCellValue(invoiceSheet, "D1", "Final Amount")
	_ = f.SetCellValue(invoiceSheet, "E1", "Paid")
	_ = f.SetCellValue(invoiceSheet, "F1", "Balance")
	_ = f.SetCellValue(invoiceSheet, "G1", "Status")
	for i, invoice := range summary.Invoices {
		r := i + 2
		_ = f.SetCellValue(invoiceSheet, fmt.Sprintf("A%d", r), invoice.InvoiceNumber)
		_ = f.SetCellValue(invoiceSheet, fmt.Sprintf("B%d", r), invoice.PatientName)
		_ = f.SetCellValue(invoiceSheet, fmt.Sprintf("C%d", r), invoice.CreatedAt.Format("2006-01-02"))
		_ = f.SetCellValue(invoiceSheet, fmt.Sprintf("D%d", r), invoice.FinalAmount)
		_ = f.SetCellValue(invoiceSheet, fmt.Sprintf("E%d", r), invoice.PaidAmount)
		_ = f.SetCellValue(invoiceSheet, fmt.Sprintf("F%d", r), invoice.Balance)
		_ = f.SetCellValue(invoiceSheet, fmt.Sprintf("G%d", r), invoice.Status)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("reports/revenue-%s-%s.xlsx", fromDate.Format("20060102"), toDate.Format("20060102"))
	s.archive(ctx, objectName, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	return buf.Bytes(), nil
}

func (s *reportService) archive(ctx context.Context, objectName, contentType string, data []byte) {
	if s.minioSvc == nil {
		return
	}
	if err := s.minioSvc.UploadDocument(ctx, reportBucket, objectName, contentType, data); err != nil {
		log.Printf("Failed to archive %s: %v", objectName, err)
	}
}
