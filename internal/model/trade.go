package model

import "main/internal/model/enum"

// Trade is a booked trade against a particular book.
type Trade struct {
	Product  Bond
	TradeID  string
	Price    float64
	Book     string
	Quantity int64
	Side     enum.TradeSide
}

// Position tracks signed quantity per book for one bond.
type Position struct {
	Product Bond
	books   map[string]int64
}

// NewPosition creates an empty position for a bond.
func NewPosition(product Bond) Position {
	return Position{Product: product, books: make(map[string]int64)}
}

// Quantity returns the net position for one book.
func (p Position) Quantity(book string) int64 {
	return p.books[book]
}

// Aggregate returns the sum over all books ever seen on this product.
func (p Position) Aggregate() int64 {
	var sum int64
	for _, q := range p.books {
		sum += q
	}
	return sum
}

// Add applies a signed quantity to a book. Mutations are additive only.
func (p *Position) Add(book string, quantity int64) {
	if p.books == nil {
		p.books = make(map[string]int64)
	}
	p.books[book] += quantity
}

// HasBook reports whether the book has traded on this product.
func (p Position) HasBook(book string) bool {
	_, ok := p.books[book]
	return ok
}

// Books returns the book identifiers seen on this product.
func (p Position) Books() []string {
	out := make([]string, 0, len(p.books))
	for book := range p.books {
		out = append(out, book)
	}
	return out
}

// Clone deep-copies the position so fan-out never aliases the stored map.
func (p Position) Clone() Position {
	cp := Position{Product: p.Product, books: make(map[string]int64, len(p.books))}
	for book, q := range p.books {
		cp.books[book] = q
	}
	return cp
}
