package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"jzf-portal/internal/features/client"
	"jzf-portal/internal/features/document"
)

// ReportService exports a client's document statuses as a spreadsheet.
type ReportService interface {
	ClientDocumentReport(ctx context.Context, clientID string) (*excelize.File, string, error)
}

type ReportServiceImpl struct {
	Documents document.DocumentStore
	Clients   client.ClientRepository
	Logger    *zap.Logger
}

func NewReportService(documents document.DocumentStore, clients client.ClientRepository, logger *zap.Logger) ReportService {
	return &ReportServiceImpl{Documents: documents, Clients: clients, Logger: logger}
}

const sheetName = "Documentos"

var reportHeaders = []string{"Documento", "Tipo", "Origem", "Status", "Etapa", "Assinaturas", "Enviado por", "Data de envio"}

// ClientDocumentReport builds the spreadsheet and returns it along with the
// suggested file name.
func (s *ReportServiceImpl) ClientDocumentReport(ctx context.Context, clientID string) (*excelize.File, string, error) {
	cl, err := s.Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load client: %w", err)
	}
	if cl == nil {
		return nil, "", fmt.Errorf("%w: cliente %s", document.ErrNotFound, clientID)
	}

	docs, err := s.Documents.ListByClient(ctx, clientID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list documents: %w", err)
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "H1", headerStyle)
	}

	for i, doc := range docs {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), doc.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), string(doc.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), string(doc.Source))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), string(doc.Status))
		if doc.Workflow != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row),
				fmt.Sprintf("%d/%d", doc.Workflow.CurrentStep, doc.Workflow.TotalSteps))
		}
		if len(doc.RequiredSignatories) > 0 {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row),
				fmt.Sprintf("%d/%d", len(doc.Signatures), len(doc.RequiredSignatories)))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), doc.UploadedBy)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), doc.UploadDate.Format("02/01/2006 15:04"))
	}

	f.SetColWidth(sheetName, "A", "A", 40)
	f.SetColWidth(sheetName, "B", "H", 20)

	s.Logger.Info("client document report generated",
		zap.String("clientId", clientID),
		zap.Int("documentCount", len(docs)))

	return f, cl.Name, nil
}
