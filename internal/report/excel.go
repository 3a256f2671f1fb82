package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetInventory = "Inventario"
	sheetSales     = "Ventas"
	sheetPurchases = "Compras"
)

// Workbook renders the catalog and full transaction history as an xlsx
// workbook with one sheet per concern. Monetary cells are written as strings
// so decimal amounts survive the trip untouched.
func (s *Service) Workbook(ctx context.Context) (*excelize.File, error) {
	file := excelize.NewFile()

	if err := s.writeInventorySheet(ctx, file); err != nil {
		file.Close()
		return nil, err
	}
	if err := s.writeSalesSheet(ctx, file); err != nil {
		file.Close()
		return nil, err
	}
	if err := s.writePurchasesSheet(ctx, file); err != nil {
		file.Close()
		return nil, err
	}

	index, err := file.GetSheetIndex(sheetInventory)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("selecting inventory sheet: %w", err)
	}
	file.SetActiveSheet(index)

	return file, nil
}

func (s *Service) writeInventorySheet(ctx context.Context, file *excelize.File) error {
	if err := file.SetSheetName("Sheet1", sheetInventory); err != nil {
		return fmt.Errorf("naming inventory sheet: %w", err)
	}

	header := []interface{}{"Producto", "SKU", "Categoría", "Precio USD", "Costo USD", "Stock", "Stock Mínimo"}
	if err := file.SetSheetRow(sheetInventory, "A1", &header); err != nil {
		return fmt.Errorf("writing inventory header: %w", err)
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}

	for i, p := range products {
		row := []interface{}{
			p.Name,
			p.SKU,
			p.Category,
			p.PriceUSD.String(),
			p.CostUSD.String(),
			p.Stock.String(),
			p.MinStock.String(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheetInventory, cell, &row); err != nil {
			return fmt.Errorf("writing inventory row %d: %w", i+2, err)
		}
	}

	return nil
}

func (s *Service) writeSalesSheet(ctx context.Context, file *excelize.File) error {
	if _, err := file.NewSheet(sheetSales); err != nil {
		return fmt.Errorf("creating sales sheet: %w", err)
	}

	header := []interface{}{"Fecha", "Cliente", "Vendedor", "Artículos", "Total USD", "Total BS", "Pagado USD", "Estado"}
	if err := file.SetSheetRow(sheetSales, "A1", &header); err != nil {
		return fmt.Errorf("writing sales header: %w", err)
	}

	sales, err := s.engine.Sales(ctx)
	if err != nil {
		return fmt.Errorf("listing sales: %w", err)
	}

	for i, sale := range sales {
		row := []interface{}{
			sale.Date.Format("2006-01-02 15:04"),
			sale.CustomerName,
			sale.SellerName,
			len(sale.Items),
			sale.TotalUSD.String(),
			sale.TotalBS.String(),
			sale.PaidAmountUSD.String(),
			string(sale.Status),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheetSales, cell, &row); err != nil {
			return fmt.Errorf("writing sales row %d: %w", i+2, err)
		}
	}

	return nil
}

func (s *Service) writePurchasesSheet(ctx context.Context, file *excelize.File) error {
	if _, err := file.NewSheet(sheetPurchases); err != nil {
		return fmt.Errorf("creating purchases sheet: %w", err)
	}

	header := []interface{}{"Fecha", "Proveedor", "Artículos", "Total USD", "Pagado USD", "Estado"}
	if err := file.SetSheetRow(sheetPurchases, "A1", &header); err != nil {
		return fmt.Errorf("writing purchases header: %w", err)
	}

	purchases, err := s.engine.Purchases(ctx)
	if err != nil {
		return fmt.Errorf("listing purchases: %w", err)
	}

	for i, purchase := range purchases {
		row := []interface{}{
			purchase.Date.Format("2006-01-02 15:04"),
			purchase.SupplierName,
			len(purchase.Items),
			purchase.TotalUSD.String(),
			purchase.PaidAmountUSD.String(),
			string(purchase.Status),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheetPurchases, cell, &row); err != nil {
			return fmt.Errorf("writing purchases row %d: %w", i+2, err)
		}
	}

	return nil
}
