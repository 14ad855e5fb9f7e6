package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/testutil"
	"github.com/sangkips/liquorpos-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPrinterService_PrintSaleReceipt(t *testing.T) {
	f := newSaleFixture(t)
	p := testutil.CreateProduct(t, f.db, "Tequila Blanco")

	input := saleOf(SaleItemInput{ProductID: p.ID, Quantity: 2, DiscountAmount: decimal.NewFromInt(10)})
	paid := decimal.NewFromInt(200)
	input.PaidAmount = &paid
	sale, err := f.svc.CreateSale(context.Background(), f.actor, input)
	require.NoError(t, err)

	buf := &printer.BufferPrinter{}
	header := entity.ReceiptHeader{StoreName: "Vinos y Licores", Phone: "555-0100"}
	svc := NewPrinterService(buf, f.svc, header, printer.Width58mm, time.UTC, zap.NewNop())

	receipt, err := svc.PrintSaleReceipt(context.Background(), sale.ID)
	require.NoError(t, err)

	assert.Equal(t, sale.SaleNumber, receipt.SaleNumber)
	assert.Equal(t, "2026-10-17 18:30", receipt.Date)
	assert.Equal(t, "200.00", receipt.Subtotal.StringFixed(2), "before discount")
	assert.Equal(t, "190.00", receipt.Total.StringFixed(2))
	assert.Equal(t, "10.00", receipt.Change.StringFixed(2))
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Tequila Blanco", receipt.Items[0].Name)
	assert.Equal(t, "Test cashier1", receipt.Cashier)

	jobs := buf.Jobs()
	require.Len(t, jobs, 1)
	assert.True(t, bytes.Contains(jobs[0], []byte("Vinos y Licores")))
	assert.True(t, bytes.Contains(jobs[0], []byte(sale.SaleNumber)))
	assert.True(t, bytes.Contains(jobs[0], []byte("$190.00")))
	assert.False(t, bytes.Contains(jobs[0], []byte("CANCELLED")))
}

func TestPrinterService_PrintFailureStillReturnsReceipt(t *testing.T) {
	f := newSaleFixture(t)
	p := testutil.CreateProduct(t, f.db, "Ron")
	sale, err := f.svc.CreateSale(context.Background(), f.actor, saleOf(line(p.ID, 1)))
	require.NoError(t, err)
	_, err = f.svc.CancelSale(context.Background(), f.actor, sale.ID, "test")
	require.NoError(t, err)

	buf := &printer.BufferPrinter{Err: errors.New("paper out")}
	svc := NewPrinterService(buf, f.svc, entity.ReceiptHeader{StoreName: "Store"}, 0, nil, zap.NewNop())

	receipt, err := svc.PrintSaleReceipt(context.Background(), sale.ID)
	assert.Error(t, err)
	require.NotNil(t, receipt)
	assert.True(t, receipt.Cancelled)

	status := svc.GetStatus(context.Background())
	assert.True(t, status.Configured)
	assert.False(t, status.Connected)
}

func TestFormatReceipt_Cancelled(t *testing.T) {
	data := FormatReceipt(&entity.Receipt{
		Header:     entity.ReceiptHeader{StoreName: "Store"},
		SaleNumber: "V-20261017-0001",
		Cancelled:  true,
	}, printer.Width80mm)
	assert.True(t, bytes.Contains(data, []byte("*** CANCELLED ***")))
}
