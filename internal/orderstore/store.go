package orderstore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"restropos-services/internal/report"
	"restropos-services/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

// Store loads and persists orders. Reads materialize full report.Order
// values, items included: the reporting core only ever works on resolved
// in-memory collections.
type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// All returns every order, oldest first, with line items attached.
func (s *Store) All(ctx context.Context) ([]report.Order, error) {
	rows, err := s.db.Query(ctx, `
        select id, order_number, customer_name, customer_mobile, outlet,
               subtotal, discount_amount, tax_rate, tax_amount, total_amount,
               payment_type, status, placed_at
        from orders
        order by placed_at
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]report.Order, 0)
	ids := make([]int64, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id    int64
			o     report.Order
			sub   pgtype.Numeric
			disc  pgtype.Numeric
			rate  pgtype.Numeric
			tax   pgtype.Numeric
			total pgtype.Numeric
		)
		if err := rows.Scan(&id, &o.Number, &o.Customer.Name, &o.Customer.Mobile, &o.Outlet,
			&sub, &disc, &rate, &tax, &total, &o.PaymentType, &o.Status, &o.PlacedAt); err != nil {
			return nil, err
		}
		o.Subtotal = utils.NumericToFloat64(sub)
		o.DiscountAmount = utils.NumericToFloat64(disc)
		o.TaxRate = utils.NumericToFloat64(rate)
		o.TaxAmount = utils.NumericToFloat64(tax)
		o.Total = utils.NumericToFloat64(total)
		o.Items = []report.Item{}
		index[id] = len(orders)
		ids = append(ids, id)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := s.db.Query(ctx, `
        select order_id, product_id, product_name, price, quantity
        from order_items
        where order_id = any($1)
        order by id
    `, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID int64
			item    report.Item
			price   pgtype.Numeric
		)
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Name, &price, &item.Quantity); err != nil {
			return nil, err
		}
		item.Price = utils.NumericToFloat64(price)
		if pos, ok := index[orderID]; ok {
			orders[pos].Items = append(orders[pos].Items, item)
		}
	}
	return orders, itemRows.Err()
}

// ByNumber loads one order with its items.
func (s *Store) ByNumber(ctx context.Context, number string) (report.Order, error) {
	var (
		id    int64
		o     report.Order
		sub   pgtype.Numeric
		disc  pgtype.Numeric
		rate  pgtype.Numeric
		tax   pgtype.Numeric
		total pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, `
        select id, order_number, customer_name, customer_mobile, outlet,
               subtotal, discount_amount, tax_rate, tax_amount, total_amount,
               payment_type, status, placed_at
        from orders
        where order_number = $1
    `, number).Scan(&id, &o.Number, &o.Customer.Name, &o.Customer.Mobile, &o.Outlet,
		&sub, &disc, &rate, &tax, &total, &o.PaymentType, &o.Status, &o.PlacedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return report.Order{}, ErrNotFound
	}
	if err != nil {
		return report.Order{}, err
	}
	o.Subtotal = utils.NumericToFloat64(sub)
	o.DiscountAmount = utils.NumericToFloat64(disc)
	o.TaxRate = utils.NumericToFloat64(rate)
	o.TaxAmount = utils.NumericToFloat64(tax)
	o.Total = utils.NumericToFloat64(total)
	o.Items = []report.Item{}

	itemRows, err := s.db.Query(ctx, `
        select product_id, product_name, price, quantity
        from order_items
        where order_id = $1
        order by id
    `, id)
	if err != nil {
		return report.Order{}, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			item  report.Item
			price pgtype.Numeric
		)
		if err := itemRows.Scan(&item.ProductID, &item.Name, &price, &item.Quantity); err != nil {
			return report.Order{}, err
		}
		item.Price = utils.NumericToFloat64(price)
		o.Items = append(o.Items, item)
	}
	return o, itemRows.Err()
}

// Insert persists a new order and its items in one transaction.
func (s *Store) Insert(ctx context.Context, o report.Order) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var orderID int64
	err = tx.QueryRow(ctx, `
        insert into orders (order_number, customer_name, customer_mobile, outlet,
                            subtotal, discount_amount, tax_rate, tax_amount, total_amount,
                            payment_type, status, placed_at)
        values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        returning id
    `, o.Number, o.Customer.Name, o.Customer.Mobile, o.Outlet,
		o.Subtotal, o.DiscountAmount, o.TaxRate, o.TaxAmount, o.Total,
		string(o.PaymentType), string(o.Status), o.PlacedAt).Scan(&orderID)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		if _, err := tx.Exec(ctx, `
            insert into order_items (order_id, product_id, product_name, price, quantity)
            values ($1, $2, $3, $4, $5)
        `, orderID, item.ProductID, item.Name, item.Price, item.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// UpdateStatus flips the one mutable field of a persisted order.
func (s *Store) UpdateStatus(ctx context.Context, number string, status report.OrderStatus) error {
	tag, err := s.db.Exec(ctx, `update orders set status = $2 where order_number = $1`,
		number, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, number string) error {
	tag, err := s.db.Exec(ctx, `delete from orders where order_number = $1`, number)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NewOrderNumber derives a display identifier from the outlet code and the
// creation instant, with a short random suffix so same-second entries stay
// unique.
func NewOrderNumber(storeCode string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%03d", storeCode, at.Format("20060102-150405"), rand.Intn(1000))
}
