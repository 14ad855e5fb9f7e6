package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService composes sale receipts and sends them to the thermal printer.
type PrinterService struct {
	printer    printer.Printer
	sales      *SaleService
	header     entity.ReceiptHeader
	paperWidth int
	location   *time.Location
	logger     *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	sales *SaleService,
	header entity.ReceiptHeader,
	paperWidth int,
	loc *time.Location,
	logger *zap.Logger,
) *PrinterService {
	if loc == nil {
		loc = time.UTC
	}
	return &PrinterService{
		printer:    p,
		sales:      sales,
		header:     header,
		paperWidth: paperWidth,
		location:   loc,
		logger:     logger.Named("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	PaperWidth int    `json:"paper_width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != printer.TypeNone,
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Type(),
		PaperWidth: s.paperWidth,
	}
}

// PrintSaleReceipt loads a sale and prints its receipt. The receipt is
// returned even when printing fails so the caller can show it on screen.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.sales.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	receipt := s.BuildReceipt(sale)
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.paperWidth)); err != nil {
		s.logger.Warn("Printer error",
			zap.String("sale_number", sale.SaleNumber),
			zap.String("printer", s.printer.Type()),
			zap.Error(err),
		)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// BuildReceipt turns a sale with its details into a printable receipt.
func (s *PrinterService) BuildReceipt(sale *entity.Sale) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:        s.header,
		SaleNumber:    sale.SaleNumber,
		Date:          sale.CreatedAt.In(s.location).Format("2006-01-02 15:04"),
		PaymentMethod: string(sale.PaymentMethod),
		Items:         make([]entity.ReceiptItem, 0, len(sale.Items)),
		Subtotal:      sale.Subtotal.Add(sale.DiscountAmount),
		Discount:      sale.DiscountAmount,
		Total:         sale.TotalAmount,
		Paid:          sale.PaidAmount,
		Change:        sale.ChangeAmount,
		Cancelled:     sale.IsCancelled(),
	}
	if sale.User != nil {
		receipt.Cashier = sale.User.FullName()
	}
	if sale.Customer != nil {
		receipt.Customer = sale.Customer.DisplayName()
	}

	for _, it := range sale.Items {
		item := entity.ReceiptItem{
			Name:      "Product",
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.DiscountAmount,
			Total:     it.Subtotal,
		}
		if it.Product != nil && it.Product.Name != "" {
			item.Name = it.Product.Name
		}
		receipt.Items = append(receipt.Items, item)
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("RFC: %s", r.Header.TaxID)
	}
	if r.Cancelled {
		doc.SetBold(true).Text("*** CANCELLED ***").SetBold(false)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Sale:", r.SaleNumber).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, money(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", money(item.UnitPrice))
		}
		if item.Discount.IsPositive() {
			doc.TextF("  discount -%s", money(item.Discount))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", money(r.Subtotal))
	if r.Discount.IsPositive() {
		doc.KeyValue("Discount:", "-"+money(r.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", money(r.Total)).
		SetBold(false)

	doc.KeyValue("Paid:", money(r.Paid))
	if r.Change.IsPositive() {
		doc.KeyValue("Change:", money(r.Change))
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your purchase!").
		Text("Drink responsibly").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
