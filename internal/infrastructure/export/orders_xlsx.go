package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/urmu/storefront/domain"
)

// OrdersSheet is the sheet name of the order history workbook
const OrdersSheet = "Orders"

var orderHeaders = []interface{}{"شماره سفارش", "تاریخ", "وضعیت", "تعداد اقلام", "مبلغ کل", "گیرنده", "شهر", "واحد"}

// OrdersXLSX renders an order history as a right-to-left spreadsheet
func OrdersXLSX(orders []domain.Order, currencyLabel string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	rtl := true
	if err := f.SetSheetView(OrdersSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, fmt.Errorf("failed to set sheet direction: %w", err)
	}

	if err := f.SetSheetRow(OrdersSheet, "A1", &orderHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, o := range orders {
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		receiver, city := "", ""
		if o.Address != nil {
			receiver, city = o.Address.ReceiverName, o.Address.City
		}
		created := ""
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Format("2006-01-02 15:04")
		}

		row := []interface{}{o.ID, created, o.Status, items, o.TotalPrice, receiver, city, currencyLabel}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write order %s: %w", o.ID, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
