// Package mdg synthesizes the four input files for self-testing runs.
package mdg

import (
	"bufio"
	"fmt"
	"os"

	"github.com/yanun0323/errors"

	"main/internal/codec"
	"main/internal/model"
)

// Generator creates deterministic synthetic records for a bond set. Prices
// oscillate between 99 and 101 on the 1/256 grid; sizes, sides, and books
// cycle.
type Generator struct {
	bonds []model.Bond
}

func NewGenerator(bonds []model.Bond) (*Generator, error) {
	if len(bonds) == 0 {
		return nil, errors.New("no bonds to generate for")
	}
	return &Generator{bonds: bonds}, nil
}

const (
	priceFloor = 99.0
	priceCeil  = 101.0
	tick       = 1.0 / 256
)

// oscillate walks the 1/256 grid between the floor and ceiling, reflecting
// at both ends. step is the 0-indexed tick count.
func oscillate(step int) float64 {
	span := int((priceCeil - priceFloor) / tick)
	pos := step % (2 * span)
	if pos > span {
		pos = 2*span - pos
	}
	return priceFloor + float64(pos)*tick
}

func writeFile(path, header string, rows func(w *bufio.Writer) error) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "open generated file")
	}

	w := bufio.NewWriterSize(file, 256*1024)
	if _, err := w.WriteString(header + "\n"); err != nil {
		_ = file.Close()
		return errors.Wrap(err, "write header")
	}
	if err := rows(w); err != nil {
		_ = file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return errors.Wrap(err, "flush generated file")
	}
	return file.Close()
}

// WritePrices emits perBond price rows per bond. The spread alternates
// between 1/128 and 1/64.
func (g *Generator) WritePrices(path string, perBond int) error {
	return writeFile(path, "BondIDType,BondID,Price,Spread", func(w *bufio.Writer) error {
		for i := 0; i < perBond; i++ {
			spread := 2 * tick
			if i%2 == 1 {
				spread = 4 * tick
			}
			for _, bond := range g.bonds {
				row := fmt.Sprintf("%s,%s,%s,%s\n",
					bond.IDType, bond.ID, codec.FormatPrice(oscillate(i)), codec.FormatPrice(spread))
				if _, err := w.WriteString(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteTrades emits perBond trade rows per bond, alternating BUY/SELL,
// cycling books, and cycling quantity 1M..5M.
func (g *Generator) WriteTrades(path string, perBond int) error {
	return writeFile(path, "TradeID,BondIDType,BondID,Side,Quantity,Price,BookID", func(w *bufio.Writer) error {
		seq := 0
		for i := 0; i < perBond; i++ {
			for _, bond := range g.bonds {
				seq++
				side := "BUY"
				price := 99.0
				if seq%2 == 0 {
					side = "SELL"
					price = 100.0
				}
				quantity := int64(1_000_000 * (seq%5 + 1))
				book := model.TradingBooks[seq%len(model.TradingBooks)]
				row := fmt.Sprintf("TRD%07d,%s,%s,%s,%d,%s,%s\n",
					seq, bond.IDType, bond.ID, side, quantity, codec.FormatPrice(price), book)
				if _, err := w.WriteString(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteMarketData emits perBond depth rows per bond: five levels widening by
// one tick per level, top spread alternating 1/256 and 1/128, sizes
// 10M..50M.
func (g *Generator) WriteMarketData(path string, perBond int) error {
	header := "BondIDType,BondID,Price,Spread1,Spread2,Spread3,Spread4,Spread5,Size1,Size2,Size3,Size4,Size5"
	return writeFile(path, header, func(w *bufio.Writer) error {
		for i := 0; i < perBond; i++ {
			// top half-spread 1/256 fires the execution trigger, 1/128 does not
			top := tick
			if i%2 == 1 {
				top = 2 * tick
			}
			for _, bond := range g.bonds {
				row := fmt.Sprintf("%s,%s,%s", bond.IDType, bond.ID, codec.FormatPrice(oscillate(i)))
				for lvl := 0; lvl < codec.DepthLevels; lvl++ {
					row += "," + codec.FormatPrice(top+float64(lvl)*tick)
				}
				for lvl := 0; lvl < codec.DepthLevels; lvl++ {
					row += fmt.Sprintf(",%d", int64(10_000_000*(lvl+1)))
				}
				if _, err := w.WriteString(row + "\n"); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteInquiries emits perBond RECEIVED inquiries per bond with alternating
// sides and cycling quantity.
func (g *Generator) WriteInquiries(path string, perBond int) error {
	return writeFile(path, "InquiryID,BondIDType,BondID,Side,Quantity,Price,State", func(w *bufio.Writer) error {
		seq := 0
		for i := 0; i < perBond; i++ {
			for _, bond := range g.bonds {
				seq++
				side := "BUY"
				if seq%2 == 0 {
					side = "SELL"
				}
				quantity := int64(1_000_000 * (seq%5 + 1))
				row := fmt.Sprintf("INQ%07d,%s,%s,%s,%d,%s,RECEIVED\n",
					seq, bond.IDType, bond.ID, side, quantity, codec.FormatPrice(oscillate(seq)))
				if _, err := w.WriteString(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
