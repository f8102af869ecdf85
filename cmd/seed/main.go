package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"restropos-services/internal/db"
	"restropos-services/internal/orderstore"
	"restropos-services/internal/report"
	"restropos-services/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaswdr/faker"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type seedStore struct {
	code    string
	name    string
	address string
	phone   string
}

var stores = []seedStore{
	{"KDP", "Kondapur", "Plot 42, Kondapur Main Road, Hyderabad", "+91 90000 10001"},
	{"GCH", "Gachibowli", "DLF Gate 2, Gachibowli, Hyderabad", "+91 90000 10002"},
	{"MDP", "Madhapur", "Image Gardens Road, Madhapur, Hyderabad", "+91 90000 10003"},
	{"KKP", "Kukatpally", "KPHB Phase 3, Kukatpally, Hyderabad", "+91 90000 10004"},
}

type seedProduct struct {
	name     string
	category string
	price    float64
}

var products = []seedProduct{
	{"Chicken Biryani", "Biryani", 320},
	{"Mutton Biryani", "Biryani", 420},
	{"Veg Biryani", "Biryani", 240},
	{"Paneer Butter Masala", "Curries", 280},
	{"Butter Chicken", "Curries", 340},
	{"Dal Tadka", "Curries", 180},
	{"Butter Naan", "Breads", 45},
	{"Garlic Naan", "Breads", 55},
	{"Tandoori Roti", "Breads", 30},
	{"Chicken 65", "Starters", 260},
	{"Paneer Tikka", "Starters", 240},
	{"Gulab Jamun", "Desserts", 90},
	{"Masala Soda", "Beverages", 60},
	{"Sweet Lassi", "Beverages", 80},
}

// mangleOutlet reproduces the inconsistent outlet strings order entry
// produces in the field, so normalization has something to chew on.
func mangleOutlet(rng *rand.Rand, name string) string {
	switch rng.Intn(5) {
	case 0:
		return strings.ToLower(name)
	case 1:
		return strings.ToUpper(name)
	case 2:
		return " " + name
	case 3:
		return name + "  "
	default:
		return name
	}
}

// slotHour picks an order hour with an uneven slot distribution: dinner
// heaviest, then lunch, evening, a thin late-night tail.
func slotHour(rng *rand.Rand) (hour, minute int) {
	roll := rng.Intn(100)
	switch {
	case roll < 35: // dinner 19:30-23:29
		total := 19*60 + 30 + rng.Intn(4*60)
		return total / 60, total % 60
	case roll < 65: // lunch 11:30-15:59
		total := 11*60 + 30 + rng.Intn(4*60+30)
		return total / 60, total % 60
	case roll < 90: // evening 16:00-19:29
		total := 16*60 + rng.Intn(3*60+30)
		return total / 60, total % 60
	default: // late night 23:30-01:59 (wraps past midnight)
		total := 23*60 + 30 + rng.Intn(2*60+30)
		return (total / 60) % 24, total % 60
	}
}

func main() {
	months := flag.Int("months", 3, "months of order history to generate")
	ordersPerDay := flag.Int("orders-per-day", 25, "average orders per day across the chain")
	dsn := flag.String("dsn", "", "postgres connection string (defaults to DATABASE_URL)")
	flag.Parse()

	_ = godotenv.Load()
	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}
	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "seed: -dsn or DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, *dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "seed: migrate: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fake := faker.NewWithSeed(rand.NewSource(rng.Int63()))

	if err := seedCatalogue(ctx, pool, fake); err != nil {
		fmt.Fprintf(os.Stderr, "seed: catalogue: %v\n", err)
		os.Exit(1)
	}

	count, err := seedOrders(ctx, pool, rng, fake, *months, *ordersPerDay)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: orders: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded %d stores, %d products, %d orders over %d months\n",
		len(stores), len(products), count, *months)
}

func seedCatalogue(ctx context.Context, pool *pgxpool.Pool, fake faker.Faker) error {
	for _, s := range stores {
		_, err := pool.Exec(ctx, `
            insert into stores (code, name, address, phone)
            values ($1, $2, $3, $4)
            on conflict (code) do nothing
        `, s.code, s.name, s.address, s.phone)
		if err != nil {
			return err
		}
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
            insert into products (name, category, price)
            select $1, $2, $3
            where not exists (select 1 from products where name = $1)
        `, p.name, p.category, p.price)
		if err != nil {
			return err
		}
	}

	for i := 0; i < 3; i++ {
		company := fake.Company()
		var vendorID int64
		err := pool.QueryRow(ctx, `
            insert into vendors (name, contact_person, phone, email, address)
            values ($1, $2, $3, $4, $5)
            returning id
        `, company.Name(), fake.Person().Name(), fake.Phone().Number(),
			fake.Internet().Email(), fake.Address().Address()).Scan(&vendorID)
		if err != nil {
			return err
		}

		materials := [][2]string{{"Basmati Rice", "kg"}, {"Chicken", "kg"}, {"Paneer", "kg"},
			{"Cooking Oil", "l"}, {"Atta", "kg"}, {"Spice Mix", "kg"}}
		m := materials[i*2 : i*2+2]
		for _, mat := range m {
			_, err := pool.Exec(ctx, `
                insert into raw_materials (name, unit, stock_qty, reorder_level, vendor_id)
                values ($1, $2, $3, $4, $5)
            `, mat[0], mat[1], 20+fake.IntBetween(0, 80), 25, vendorID)
			if err != nil {
				return err
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
        insert into managers (name, email, password_hash, role)
        values ('Chain Admin', 'admin@restropos.local', $1, 'ADMIN')
        on conflict (email) do nothing
    `, string(hash))
	return err
}

func seedOrders(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, fake faker.Faker, months, perDay int) (int, error) {
	store := orderstore.New(pool)

	// A pool of repeat customers so the rollup has multi-order mobiles.
	type customer struct {
		name   string
		mobile string
	}
	regulars := make([]customer, 40)
	for i := range regulars {
		regulars[i] = customer{name: fake.Person().Name(), mobile: fake.Phone().Number()}
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -months, 0)

	count := 0
	for day := start; day.Before(now); day = day.AddDate(0, 0, 1) {
		n := perDay/2 + rng.Intn(perDay)
		for i := 0; i < n; i++ {
			s := stores[rng.Intn(len(stores))]
			hour, minute := slotHour(rng)
			placedAt := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, rng.Intn(60), 0, time.Local)
			if placedAt.After(now) {
				continue
			}

			cust := regulars[rng.Intn(len(regulars))]
			if rng.Intn(10) == 0 {
				cust = customer{name: fake.Person().Name(), mobile: ""}
			}

			items := make([]report.Item, 0, 3)
			subtotal := 0.0
			for _, idx := range rng.Perm(len(products))[:1+rng.Intn(3)] {
				p := products[idx]
				qty := 1 + rng.Intn(3)
				items = append(items, report.Item{
					ProductID: int64(idx + 1),
					Name:      p.name,
					Price:     p.price,
					Quantity:  qty,
				})
				subtotal = utils.Round2(subtotal + p.price*float64(qty))
			}

			discount := 0.0
			if rng.Intn(5) == 0 {
				discount = utils.Round2(subtotal * 0.1)
			}
			taxRate := 0.05
			taxable := subtotal - discount
			status := report.StatusCompleted
			switch rng.Intn(20) {
			case 0:
				status = report.StatusCancelled
			case 1:
				status = report.StatusPending
			}

			order := report.Order{
				Number:         orderstore.NewOrderNumber(s.code, placedAt),
				Customer:       report.Customer{Name: cust.name, Mobile: cust.mobile},
				Items:          items,
				Subtotal:       subtotal,
				DiscountAmount: discount,
				TaxRate:        taxRate,
				TaxAmount:      utils.Round2(taxable * taxRate),
				Total:          utils.Round2(taxable * 1.05),
				PaymentType:    []report.PaymentType{report.PaymentCash, report.PaymentCard, report.PaymentUPI}[rng.Intn(3)],
				Status:         status,
				Outlet:         mangleOutlet(rng, s.name),
				PlacedAt:       placedAt,
			}
			if err := store.Insert(ctx, order); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
