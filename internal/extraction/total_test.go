package extraction

import (
	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TotalAmountExtractor", func() {
	var (
		text       string
		total      decimal.Decimal
		provenance Provenance
	)

	JustBeforeEach(func() {
		total, provenance = NewTotalAmountExtractor().Extract(text)
	})

	When("a TOTAL label is present", func() {
		BeforeEach(func() {
			text = "Joe's Diner\nBURGER 12.00\nTOTAL $42.50\nTAX $3.50"
		})

		It("should use the labeled amount", func() {
			Expect(total.StringFixed(2)).To(Equal("42.50"))
		})

		It("should report the TOTAL rule", func() {
			Expect(provenance).To(Equal(Provenance{Source: SourceMatched, Rule: "TOTAL"}))
		})
	})

	When("the amount has grouping separators", func() {
		BeforeEach(func() {
			text = "Total 1,234.56"
		})

		It("should strip them before parsing", func() {
			Expect(total.StringFixed(2)).To(Equal("1234.56"))
		})
	})

	When("only an AMOUNT label is present", func() {
		BeforeEach(func() {
			text = "Gas Station\nAmount 60.01\nPUMP 99.99"
		})

		It("should use the AMOUNT rule before the fallback", func() {
			Expect(total.StringFixed(2)).To(Equal("60.01"))
			Expect(provenance.Rule).To(Equal("AMOUNT"))
		})
	})

	When("both TOTAL and AMOUNT appear", func() {
		BeforeEach(func() {
			text = "AMOUNT 10.00\nTOTAL 20.00"
		})

		It("should prefer the earlier rule regardless of text position", func() {
			Expect(total.StringFixed(2)).To(Equal("20.00"))
		})
	})

	When("only a trailing currency amount is present", func() {
		BeforeEach(func() {
			text = "Kiosk\nPaid by card $18.75\nBread 25.00"
		})

		It("should use the line-end currency rule", func() {
			Expect(total.StringFixed(2)).To(Equal("18.75"))
			Expect(provenance.Rule).To(Equal("TRAILING CURRENCY"))
		})
	})

	When("no label matches", func() {
		BeforeEach(func() {
			text = "Corner Shop\nBread 12.00\nWine 45.00\nMilk 8.00"
		})

		It("should fall back to the largest amount", func() {
			Expect(total.StringFixed(2)).To(Equal("45.00"))
		})

		It("should report an inferred value", func() {
			Expect(provenance).To(Equal(Provenance{Source: SourceInferred, Rule: LargestAmountRule}))
		})
	})

	When("the largest amount appears twice", func() {
		BeforeEach(func() {
			text = "A 9.50\nB 9.50\nC 1.00"
		})

		It("should return that amount", func() {
			Expect(total.StringFixed(2)).To(Equal("9.50"))
		})
	})

	When("the text holds no amounts", func() {
		BeforeEach(func() {
			text = "Thank you for shopping\nCome again"
		})

		It("should return zero", func() {
			Expect(total.IsZero()).To(BeTrue())
		})

		It("should report the default", func() {
			Expect(provenance.Source).To(Equal(SourceDefault))
		})
	})

	Describe("TotalRules", func() {
		It("should keep the priority order", func() {
			labels := []string{}
			for _, rule := range TotalRules() {
				labels = append(labels, rule.Label)
			}
			Expect(labels).To(Equal([]string{"TOTAL", "AMOUNT", "GRAND TOTAL", "TRAILING CURRENCY"}))
		})
	})
})

var _ = Describe("TotalAmountExtractor labels", func() {
	It("should not read a SUBTOTAL line as the total", func() {
		total, provenance := NewTotalAmountExtractor().Extract("SUBTOTAL 9.25\nTAX 0.75\nTOTAL 10.00")
		Expect(total.StringFixed(2)).To(Equal("10.00"))
		Expect(provenance.Rule).To(Equal("TOTAL"))
	})

	It("should skip a SUBTOTAL line that comes first", func() {
		total, provenance := NewTotalAmountExtractor().Extract("SUBTOTAL 40.00\nTOTAL 45.00")
		Expect(total.StringFixed(2)).To(Equal("45.00"))
		Expect(provenance).To(Equal(Provenance{Source: SourceMatched, Rule: "TOTAL"}))
	})

	It("should not match TOTAL inside SUBTOTAL when no TOTAL line exists", func() {
		total, provenance := NewTotalAmountExtractor().Extract("SUBTOTAL 40.00\nCARD 45.00")
		Expect(total.StringFixed(2)).To(Equal("45.00"))
		Expect(provenance).To(Equal(Provenance{Source: SourceInferred, Rule: LargestAmountRule}))
	})
})
