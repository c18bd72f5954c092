package trade

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"agrobooks/internal/platform/querier"
	"agrobooks/internal/platform/timeutil"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const saleColumns = `
    id, bill_no, bill_date, customer_name, mobile, gstin, address, vehicle_no,
    payment_mode, remarks, goods, freight, cash_discount_percent, taxable_value,
    total_amount, amount_received, payment_due, created_at, delivery_note`

func (s *Store) CreateSale(ctx context.Context, sale Sale) error {
	goods, err := json.Marshal(sale.Goods)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO sales (`+saleColumns+`)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
  `, sale.ID, sale.BillNo, timeutil.DateParam(sale.Date), sale.CustomerName, sale.Mobile, sale.GSTIN,
		sale.Address, sale.VehicleNo, sale.PaymentMode, sale.Remarks, goods, sale.Freight,
		sale.CashDiscountPercent, sale.TaxableValue, sale.TotalAmount, sale.AmountReceived,
		sale.PaymentDue, sale.CreatedAt, sale.DeliveryNote)
	return err
}

func (s *Store) ListSales(ctx context.Context) ([]Sale, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY bill_date, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (s *Store) GetSale(ctx context.Context, id string) (Sale, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
	sale, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, ErrNotFound
	}
	return sale, err
}

func scanSale(row pgx.Row) (Sale, error) {
	var sale Sale
	var date time.Time
	var goods []byte
	var due decimal.NullDecimal
	if err := row.Scan(&sale.ID, &sale.BillNo, &date, &sale.CustomerName, &sale.Mobile, &sale.GSTIN,
		&sale.Address, &sale.VehicleNo, &sale.PaymentMode, &sale.Remarks, &goods, &sale.Freight,
		&sale.CashDiscountPercent, &sale.TaxableValue, &sale.TotalAmount, &sale.AmountReceived,
		&due, &sale.CreatedAt, &sale.DeliveryNote); err != nil {
		return Sale{}, err
	}
	sale.Date = timeutil.FromDate(date)
	sale.Goods = []Goods{}
	if len(goods) > 0 {
		if err := json.Unmarshal(goods, &sale.Goods); err != nil {
			return Sale{}, err
		}
	}
	if due.Valid {
		sale.PaymentDue = &due.Decimal
	}
	return sale, nil
}

func (s *Store) CreatePurchase(ctx context.Context, p Purchase) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO purchases (
      id, bill_no, bill_date, supplier_name, mobile, product, quantity, rate,
      traveling_cost, cash_discount_percent, total_amount, paid_amount, balance_amount,
      remarks, created_at
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
  `, p.ID, p.BillNo, timeutil.DateParam(p.Date), p.SupplierName, p.Mobile, p.Product, p.Quantity, p.Rate,
		p.TravelingCost, p.CashDiscountPercent, p.TotalAmount, p.PaidAmount, p.BalanceAmount,
		p.Remarks, p.CreatedAt)
	return err
}

func (s *Store) ListPurchases(ctx context.Context) ([]Purchase, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, bill_no, bill_date, supplier_name, mobile, product, quantity, rate,
           traveling_cost, cash_discount_percent, total_amount, paid_amount, balance_amount,
           remarks, created_at
    FROM purchases
    ORDER BY bill_date, created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := []Purchase{}
	for rows.Next() {
		var p Purchase
		var date time.Time
		var balance decimal.NullDecimal
		if err := rows.Scan(&p.ID, &p.BillNo, &date, &p.SupplierName, &p.Mobile, &p.Product, &p.Quantity, &p.Rate,
			&p.TravelingCost, &p.CashDiscountPercent, &p.TotalAmount, &p.PaidAmount, &balance,
			&p.Remarks, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Date = timeutil.FromDate(date)
		if balance.Valid {
			p.BalanceAmount = &balance.Decimal
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
