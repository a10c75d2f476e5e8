package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/grocerly/receipt-scan/internal/heuristics"
)

var _ = Describe("cleanName", func() {
	It("should strip a leading ORGANIC qualifier", func() {
		Expect(cleanName("ORGANIC BANANAS")).To(Equal("Bananas"))
	})

	It("should strip a leading ORG qualifier", func() {
		Expect(cleanName("ORG MILK")).To(Equal("Milk"))
	})

	It("should strip a trailing organic qualifier", func() {
		Expect(cleanName("TOMATOES ORGANIC")).To(Equal("Tomatoes"))
	})

	It("should strip trailing weight qualifiers", func() {
		Expect(cleanName("CHICKEN BREAST 2 LBS")).To(Equal("Chicken Breast"))
		Expect(cleanName("SHREDDED CHEESE 8 OZ")).To(Equal("Shredded Cheese"))
		Expect(cleanName("EGGS 12 CT")).To(Equal("Eggs"))
		Expect(cleanName("WHOLE MILK 1 GAL")).To(Equal("Whole Milk"))
	})

	It("should title-case the result", func() {
		Expect(cleanName("sourdough bread")).To(Equal("Sourdough Bread"))
	})

	It("should leave ordinary names alone apart from casing", func() {
		Expect(cleanName("Fuji Apples")).To(Equal("Fuji Apples"))
	})

	It("should not strip organic from the middle of a name", func() {
		Expect(cleanName("CAGE FREE EGGS")).To(Equal("Cage Free Eggs"))
	})
})

var _ = Describe("buildItem", func() {
	var tables heuristics.Tables

	BeforeEach(func() {
		tables = heuristics.Default()
	})

	It("should build a categorized item with defaults", func() {
		item, ok := buildItem(candidate{name: "ORGANIC BANANAS", price: 3.49, confidence: 0.9}, tables)
		Expect(ok).To(BeTrue())
		Expect(item.Name).To(Equal("Bananas"))
		Expect(item.Category).To(Equal(heuristics.CategoryFruits))
		Expect(item.Quantity).To(Equal(1))
		Expect(item.Unit).To(Equal("each"))
		Expect(item.Price).To(Equal(3.49))
		Expect(item.Confidence).To(Equal(0.9))
	})

	It("should drop items with a zero price", func() {
		_, ok := buildItem(candidate{name: "Milk", price: 0, confidence: 0.9}, tables)
		Expect(ok).To(BeFalse())
	})

	It("should drop items priced at 500 or more", func() {
		_, ok := buildItem(candidate{name: "Milk", price: 500, confidence: 0.9}, tables)
		Expect(ok).To(BeFalse())
	})

	It("should keep items just under the price ceiling", func() {
		_, ok := buildItem(candidate{name: "Milk", price: 499.99, confidence: 0.9}, tables)
		Expect(ok).To(BeTrue())
	})

	It("should drop names that clean to fewer than two characters", func() {
		_, ok := buildItem(candidate{name: "X", price: 1.00, confidence: 0.9}, tables)
		Expect(ok).To(BeFalse())
	})

	It("should drop names without a letter", func() {
		_, ok := buildItem(candidate{name: "1234", price: 1.00, confidence: 0.9}, tables)
		Expect(ok).To(BeFalse())
	})

	It("should categorize unmatched names as other", func() {
		item, ok := buildItem(candidate{name: "Paper Towels", price: 5.99, confidence: 0.85}, tables)
		Expect(ok).To(BeTrue())
		Expect(item.Category).To(Equal(heuristics.CategoryOther))
	})
})
