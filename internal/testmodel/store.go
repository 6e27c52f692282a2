package testmodel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"artemis/mapping"
)

// Order is a transaction made by a customer.
type Order struct {
	mapping.Entity `entity:"orders"`

	ID         int64       `column:"_id,id"`
	Customer   Customer    `column:"customer"`
	Status     OrderStatus `column:"status"`
	TotalCents int64       `column:"total_cents"`
	Items      []OrderItem `column:"items"`
	Shipping   Address     `column:"shipping"`
	Notes      []string    `column:"notes"`
	OrderedAt  time.Time   `column:"ordered_at"`
}

// Customer is the user placing orders.
type Customer struct {
	mapping.Entity `entity:"customer"`

	ID       int64   `column:"_id,id"`
	Email    string  `column:"email"`
	FullName string  `column:"full_name"`
	Address  *string `column:"address"`
	IsActive bool    `column:"is_active"`
}

// OrderItem snapshots a product line at the time of purchase.
type OrderItem struct {
	mapping.Embeddable

	ProductID int64  `column:"product_id"`
	Name      string `column:"name"`
	Quantity  int    `column:"quantity"`
	UnitPrice int64  `column:"unit_price"`
}

// Address is flattened into its owner.
type Address struct {
	mapping.Embeddable

	Street string `column:"street"`
	City   string `column:"city"`
	Zip    string `column:"zip"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Product stores its price as a decimal string through the "money" converter.
type Product struct {
	mapping.Entity

	ID    string `column:"_id,id"`
	SKU   string `column:"sku"`
	Name  string `column:"name"`
	Price Money  `column:"price,converter=money"`
}

// Money is an amount in cents.
type Money int64

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}

// MoneyToColumn renders cents as "12.34".
func MoneyToColumn(m Money) string {
	return m.String()
}

// MoneyFromColumn parses "12.34" into cents.
func MoneyFromColumn(s string) (Money, error) {
	units, cents, _ := strings.Cut(s, ".")

	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}

	var c int64
	if cents != "" {
		c, err = strconv.ParseInt((cents + "0")[:2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse money %q: %w", s, err)
		}
	}

	return Money(u*100 + c), nil
}

// Converters returns a registry holding the converters used by the models.
func Converters() *mapping.Converters {
	convs := mapping.NewConverters()

	money, err := mapping.NewConverterFuncs(MoneyToColumn, MoneyFromColumn)
	if err != nil {
		panic(err)
	}
	convs.MustRegister("money", money)

	return convs
}
