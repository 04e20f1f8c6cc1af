package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TagArray", func() {
	var tags *tagArrayImpl

	BeforeEach(func() {
		tags = &tagArrayImpl{
			geometry: Geometry{
				SetIndexBits:    2,
				BlockOffsetBits: 4,
				Associativity:   4,
			},
		}
		tags.Reset()
	})

	It("should allocate all sets and ways on reset", func() {
		Expect(tags.sets).To(HaveLen(4))
		for i := range tags.sets {
			Expect(tags.sets[i].Lines).To(HaveLen(4))
		}
	})

	It("should lookup a valid line", func() {
		tags.sets[1].Lines[2].IsValid = true
		tags.sets[1].Lines[2].Tag = 0x100

		wayID, found := tags.Lookup(1, 0x100)

		Expect(found).To(BeTrue())
		Expect(wayID).To(Equal(2))
	})

	It("should not find a tag that is not resident", func() {
		_, found := tags.Lookup(1, 0x100)

		Expect(found).To(BeFalse())
	})

	It("should not match an invalid line", func() {
		tags.sets[1].Lines[2].Tag = 0x100

		_, found := tags.Lookup(1, 0x100)

		Expect(found).To(BeFalse())
	})

	It("should prefer the lowest way on lookup", func() {
		tags.sets[0].Lines[1].IsValid = true
		tags.sets[0].Lines[1].Tag = 0x100
		tags.sets[0].Lines[3].IsValid = true
		tags.sets[0].Lines[3].Tag = 0x100

		wayID, found := tags.Lookup(0, 0x100)

		Expect(found).To(BeTrue())
		Expect(wayID).To(Equal(1))
	})

	It("should find the lowest invalid way", func() {
		tags.sets[2].Lines[0].IsValid = true

		wayID, found := tags.FindInvalid(2)

		Expect(found).To(BeTrue())
		Expect(wayID).To(Equal(1))
	})

	It("should report a full set", func() {
		for i := range tags.sets[2].Lines {
			tags.sets[2].Lines[i].IsValid = true
		}

		_, found := tags.FindInvalid(2)

		Expect(found).To(BeFalse())
	})

	It("should age every other line on visit", func() {
		tags.Visit(0, 1)

		Expect(tags.sets[0].Lines[0].Age).To(Equal(uint64(1)))
		Expect(tags.sets[0].Lines[1].Age).To(Equal(uint64(0)))
		Expect(tags.sets[0].Lines[2].Age).To(Equal(uint64(1)))
		Expect(tags.sets[0].Lines[3].Age).To(Equal(uint64(1)))
	})

	It("should reset the age of a re-visited line", func() {
		tags.Visit(0, 1)
		tags.Visit(0, 2)
		tags.Visit(0, 1)

		Expect(tags.sets[0].Lines[0].Age).To(Equal(uint64(3)))
		Expect(tags.sets[0].Lines[1].Age).To(Equal(uint64(0)))
		Expect(tags.sets[0].Lines[2].Age).To(Equal(uint64(1)))
		Expect(tags.sets[0].Lines[3].Age).To(Equal(uint64(3)))
	})

	It("should not age lines in other sets", func() {
		tags.Visit(0, 1)

		Expect(tags.sets[1].Lines[0].Age).To(Equal(uint64(0)))
	})
})
