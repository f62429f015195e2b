package extraction

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DateExtractor", func() {
	var (
		now        time.Time
		text       string
		date       time.Time
		provenance Provenance
	)

	BeforeEach(func() {
		now = time.Date(2025, time.March, 9, 18, 45, 0, 0, time.UTC)
	})

	JustBeforeEach(func() {
		date, provenance = NewDateExtractor(fixedTimeSource{now: now}).Extract(text)
	})

	When("the text has a slash date", func() {
		BeforeEach(func() {
			text = "Joe's Diner\n07/21/2024 12:31"
		})

		It("should read it as month/day/year", func() {
			Expect(date).To(Equal(time.Date(2024, time.July, 21, 0, 0, 0, 0, time.UTC)))
			Expect(provenance).To(Equal(Provenance{Source: SourceMatched, Rule: "M/D/Y"}))
		})
	})

	When("the year has two digits", func() {
		BeforeEach(func() {
			text = "3-4-24"
		})

		It("should add 2000", func() {
			Expect(date).To(Equal(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)))
			Expect(provenance.Rule).To(Equal("M-D-Y"))
		})
	})

	When("the text has an ISO date", func() {
		BeforeEach(func() {
			text = "Printed 2024-07-21"
		})

		It("should read it as year-month-day", func() {
			Expect(date).To(Equal(time.Date(2024, time.July, 21, 0, 0, 0, 0, time.UTC)))
			Expect(provenance.Rule).To(Equal("Y-M-D"))
		})
	})

	When("an ISO date carries a time", func() {
		BeforeEach(func() {
			text = "Printed 2024-07-21T10:30:00"
		})

		It("should read the date part", func() {
			Expect(date).To(Equal(time.Date(2024, time.July, 21, 0, 0, 0, 0, time.UTC)))
			Expect(provenance).To(Equal(Provenance{Source: SourceMatched, Rule: "Y-M-D"}))
		})
	})

	When("letters run into the date", func() {
		BeforeEach(func() {
			text = "Joe's Diner\n07/21/2024PM"
		})

		It("should still read it", func() {
			Expect(date).To(Equal(time.Date(2024, time.July, 21, 0, 0, 0, 0, time.UTC)))
			Expect(provenance).To(Equal(Provenance{Source: SourceMatched, Rule: "M/D/Y"}))
		})

		When("the letters come first", func() {
			BeforeEach(func() {
				text = "DATE07/21/2024"
			})

			It("should still read it", func() {
				Expect(date).To(Equal(time.Date(2024, time.July, 21, 0, 0, 0, 0, time.UTC)))
				Expect(provenance.Rule).To(Equal("M/D/Y"))
			})
		})
	})

	When("an ISO date contains a shorter dashed date", func() {
		BeforeEach(func() {
			text = "2011-01-05"
		})

		It("should not split the year", func() {
			Expect(date).To(Equal(time.Date(2011, time.January, 5, 0, 0, 0, 0, time.UTC)))
			Expect(provenance.Rule).To(Equal("Y-M-D"))
		})
	})

	When("an invalid date precedes a valid one", func() {
		BeforeEach(func() {
			text = "13/40/2024\n2024-07-21"
		})

		It("should reject the invalid match and continue", func() {
			Expect(date).To(Equal(time.Date(2024, time.July, 21, 0, 0, 0, 0, time.UTC)))
		})
	})

	When("the day does not exist in the month", func() {
		BeforeEach(func() {
			text = "02/30/2024"
		})

		It("should not roll over into the next month", func() {
			Expect(provenance.Source).To(Equal(SourceDefault))
		})
	})

	When("no date is present", func() {
		BeforeEach(func() {
			text = "Corner Shop\nTOTAL 4.00"
		})

		It("should return the current date", func() {
			Expect(date).To(Equal(time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)))
		})

		It("should report the default", func() {
			Expect(provenance.Source).To(Equal(SourceDefault))
		})
	})

	Describe("DateRules", func() {
		It("should keep the priority order", func() {
			labels := []string{}
			for _, rule := range DateRules() {
				labels = append(labels, rule.Label)
			}
			Expect(labels).To(Equal([]string{"M/D/Y", "M-D-Y", "Y-M-D"}))
		})
	})
})
