package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"crm-golang/internal/storage"
)

type GenerateExcelStorage interface {
	GetDeals(ctx context.Context) ([]*storage.Deal, error)
}

// GenerateExcelService renders the deal pipeline into a spreadsheet for
// the managers who live in Excel rather than the dashboard.
type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, stageID string) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	deals, err := g.storage.GetDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch deals: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Pipeline"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{
		"Deal #", "Name", "Owner", "Type", "Country", "Stage",
		"Probability %", "Amount", "Currency", "Weighted", "Products Total",
		"Closing Date",
	}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	rowNum := 2
	for _, d := range deals {
		if stageID != "" && d.StageID != stageID {
			continue
		}

		var productsTotal float64
		for _, p := range d.Products {
			productsTotal += p.TotalPrice
		}

		closing := ""
		if d.ClosingDate != nil {
			closing = *d.ClosingDate
		}

		f.SetCellValue(sheet, cellName(1, rowNum), d.DealNumber)
		f.SetCellValue(sheet, cellName(2, rowNum), d.Name)
		f.SetCellValue(sheet, cellName(3, rowNum), d.OwnerID)
		f.SetCellValue(sheet, cellName(4, rowNum), d.DealType)
		f.SetCellValue(sheet, cellName(5, rowNum), d.Country)
		f.SetCellValue(sheet, cellName(6, rowNum), d.StageID)
		f.SetCellValue(sheet, cellName(7, rowNum), d.Probability)
		f.SetCellValue(sheet, cellName(8, rowNum), d.Amount)
		f.SetCellValue(sheet, cellName(9, rowNum), d.Currency)
		f.SetCellValue(sheet, cellName(10, rowNum), d.Amount*float64(d.Probability)/100)
		f.SetCellValue(sheet, cellName(11, rowNum), productsTotal)
		f.SetCellValue(sheet, cellName(12, rowNum), closing)
		rowNum++
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "A", "L", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
