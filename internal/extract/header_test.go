package extract

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/grocerly/receipt-scan/internal/heuristics"
)

var _ = Describe("storeName", func() {
	var tables heuristics.Tables

	BeforeEach(func() {
		tables = heuristics.Default()
	})

	It("should match a known retailer in the first lines", func() {
		lines := []string{"Receipt", "TRADER JOE'S #512", "something"}
		Expect(storeName(lines, tables)).To(Equal("TRADER JOE'S #512"))
	})

	It("should match a MARKET suffix", func() {
		lines := []string{"CORNER MARKET", "123 Main St"}
		Expect(storeName(lines, tables)).To(Equal("CORNER MARKET"))
	})

	It("should match a GROCERY suffix", func() {
		lines := []string{"HILLSIDE GROCERY"}
		Expect(storeName(lines, tables)).To(Equal("HILLSIDE GROCERY"))
	})

	It("should ignore retailer lines beyond the scan window", func() {
		lines := []string{"a", "b", "c", "d", "e", "SAFEWAY"}
		Expect(storeName(lines, tables)).To(Equal("a"))
	})

	It("should fall back to the first line", func() {
		lines := []string{"Some Shop", "Milk 2.99"}
		Expect(storeName(lines, tables)).To(Equal("Some Shop"))
	})

	It("should report Unknown Store with no lines", func() {
		Expect(storeName(nil, tables)).To(Equal("Unknown Store"))
	})
})

var _ = Describe("purchaseDate", func() {
	var now time.Time

	BeforeEach(func() {
		now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	nowFn := func() time.Time { return now }

	It("should parse a Date: labeled line", func() {
		lines := []string{"STORE", "Date: 01/15/2024"}
		Expect(purchaseDate(lines, nowFn)).To(Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	})

	It("should parse a bare MM/DD/YYYY token", func() {
		lines := []string{"STORE", "03/14/2024 10:23 AM"}
		Expect(purchaseDate(lines, nowFn)).To(Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)))
	})

	It("should parse a two-digit year", func() {
		lines := []string{"3/5/24"}
		Expect(purchaseDate(lines, nowFn)).To(Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	})

	It("should parse an ISO date", func() {
		lines := []string{"2024-01-15"}
		Expect(purchaseDate(lines, nowFn)).To(Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	})

	It("should reject an impossible month", func() {
		lines := []string{"13/45/2024"}
		Expect(purchaseDate(lines, nowFn)).To(Equal(now))
	})

	It("should reject a day the month does not have", func() {
		lines := []string{"02/30/2024"}
		Expect(purchaseDate(lines, nowFn)).To(Equal(now))
	})

	It("should take the first valid date when several appear", func() {
		lines := []string{"13/45/2024", "03/14/2024", "04/01/2024"}
		Expect(purchaseDate(lines, nowFn)).To(Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)))
	})

	It("should default to now with no date token", func() {
		lines := []string{"STORE", "Milk 2.99"}
		Expect(purchaseDate(lines, nowFn)).To(Equal(now))
	})
})

var _ = Describe("scanTotals", func() {
	It("should take labeled amounts from the last lines", func() {
		lines := []string{"STORE", "Milk 2.99", "TOTAL $42.67", "TAX $2.13"}
		total, tax := scanTotals(lines)
		Expect(total).To(Equal(42.67))
		Expect(tax).To(Equal(2.13))
	})

	It("should not mistake the subtotal for the total", func() {
		lines := []string{"SUBTOTAL $40.00", "TAX $2.67", "TOTAL $42.67"}
		total, tax := scanTotals(lines)
		Expect(total).To(Equal(42.67))
		Expect(tax).To(Equal(2.67))
	})

	It("should ignore totals outside the last ten lines", func() {
		lines := []string{"TOTAL $99.99"}
		for i := 0; i < 12; i++ {
			lines = append(lines, "filler line")
		}
		total, _ := scanTotals(lines)
		Expect(total).To(BeZero())
	})

	It("should accept amounts without a dollar sign", func() {
		lines := []string{"Total 18.50", "Tax 1.25"}
		total, tax := scanTotals(lines)
		Expect(total).To(Equal(18.50))
		Expect(tax).To(Equal(1.25))
	})

	It("should default both to zero when unlabeled", func() {
		total, tax := scanTotals([]string{"Milk 2.99"})
		Expect(total).To(BeZero())
		Expect(tax).To(BeZero())
	})

	It("should take the first match per label", func() {
		lines := []string{"TOTAL $10.00", "TOTAL $20.00", "TAX $1.00", "TAX $2.00"}
		total, tax := scanTotals(lines)
		Expect(total).To(Equal(10.00))
		Expect(tax).To(Equal(1.00))
	})
})
