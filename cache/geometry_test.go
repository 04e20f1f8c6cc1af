package cache

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Geometry", func() {
	It("should accept a degenerate single-line cache", func() {
		g := Geometry{SetIndexBits: 0, BlockOffsetBits: 0, Associativity: 1}

		Expect(g.Validate()).To(Succeed())
		Expect(g.NumSets()).To(Equal(1))
		Expect(g.BlockSize()).To(Equal(uint64(1)))
	})

	It("should reject negative set-index bits", func() {
		g := Geometry{SetIndexBits: -1, BlockOffsetBits: 0, Associativity: 1}

		err := g.Validate()

		var configErr *ConfigError
		Expect(err).To(HaveOccurred())
		Expect(errors.As(err, &configErr)).To(BeTrue())
	})

	It("should reject negative block-offset bits", func() {
		g := Geometry{SetIndexBits: 0, BlockOffsetBits: -1, Associativity: 1}

		Expect(g.Validate()).To(HaveOccurred())
	})

	It("should reject zero associativity", func() {
		g := Geometry{SetIndexBits: 1, BlockOffsetBits: 1, Associativity: 0}

		Expect(g.Validate()).To(HaveOccurred())
	})

	It("should reject geometries wider than the address", func() {
		g := Geometry{SetIndexBits: 33, BlockOffsetBits: 32, Associativity: 1}

		Expect(g.Validate()).To(HaveOccurred())
	})

	It("should accept a geometry that exactly fills the address", func() {
		g := Geometry{SetIndexBits: 32, BlockOffsetBits: 32, Associativity: 1}

		Expect(g.Validate()).To(Succeed())
	})

	It("should decode the set index and tag", func() {
		g := Geometry{SetIndexBits: 4, BlockOffsetBits: 6, Associativity: 2}

		setID, tag := g.Decode(0x12345)

		Expect(setID).To(Equal(0xD))
		Expect(tag).To(Equal(uint64(0x48)))
	})

	It("should place all addresses in set 0 when there are no index bits", func() {
		g := Geometry{SetIndexBits: 0, BlockOffsetBits: 0, Associativity: 1}

		setID, tag := g.Decode(0x2)

		Expect(setID).To(Equal(0))
		Expect(tag).To(Equal(uint64(0x2)))
	})
})
