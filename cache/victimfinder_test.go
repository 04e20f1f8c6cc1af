package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRUVictimFinder", func() {
	var (
		finder *LRUVictimFinder
		set    *Set
	)

	BeforeEach(func() {
		finder = NewLRUVictimFinder()
		set = &Set{Lines: make([]Line, 4)}
	})

	It("should pick the line with the largest age", func() {
		set.Lines[0].Age = 3
		set.Lines[1].Age = 7
		set.Lines[2].Age = 5
		set.Lines[3].Age = 1

		Expect(finder.FindVictim(set)).To(Equal(1))
	})

	It("should break ties toward the lowest way", func() {
		set.Lines[0].Age = 2
		set.Lines[1].Age = 5
		set.Lines[2].Age = 5
		set.Lines[3].Age = 5

		Expect(finder.FindVictim(set)).To(Equal(1))
	})

	It("should pick way 0 when all ages are equal", func() {
		Expect(finder.FindVictim(set)).To(Equal(0))
	})
})
