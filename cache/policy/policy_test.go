package policy_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache/policy"
)

var _ = Describe("LRU", func() {
	var p policy.Policy

	BeforeEach(func() {
		var err error
		p, err = policy.New(policy.LRU)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should report no victim while empty", func() {
		_, ok := p.Victim()
		Expect(ok).To(BeFalse())
	})

	It("should name the oldest added tag as victim", func() {
		p.Add(1)
		p.Add(2)
		p.Add(3)

		tag, ok := p.Victim()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint64(1)))
	})

	It("should refresh a tag on access", func() {
		p.Add(1)
		p.Add(2)
		p.Add(3)
		p.Access(1)

		tag, ok := p.Victim()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint64(2)))
	})

	It("should not remove the victim when naming it", func() {
		p.Add(1)
		p.Add(2)

		p.Victim()
		tag, ok := p.Victim()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint64(1)))
	})

	It("should stop tracking removed tags", func() {
		p.Add(1)
		p.Add(2)
		p.Remove(1)

		tag, ok := p.Victim()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint64(2)))
	})

	It("should ignore removal of an untracked tag", func() {
		p.Add(1)
		p.Remove(99)

		tag, ok := p.Victim()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint64(1)))
	})
})

var _ = Describe("FIFO", func() {
	var p policy.Policy

	BeforeEach(func() {
		var err error
		p, err = policy.New(policy.FIFO)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should name the earliest added tag as victim", func() {
		p.Add(1)
		p.Add(2)
		p.Add(3)

		tag, ok := p.Victim()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint64(1)))
	})

	It("should not reorder on access", func() {
		p.Add(1)
		p.Add(2)
		p.Access(1)
		p.Access(1)

		tag, ok := p.Victim()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint64(1)))
	})

	It("should report no victim while empty", func() {
		_, ok := p.Victim()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("New", func() {
	It("should reject an unknown kind", func() {
		_, err := policy.New(policy.Kind("RANDOM"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ParseKind", func() {
	It("should parse names case-insensitively", func() {
		kind, err := policy.ParseKind("lru")
		Expect(err).NotTo(HaveOccurred())
		Expect(kind).To(Equal(policy.LRU))

		kind, err = policy.ParseKind(" FIFO ")
		Expect(err).NotTo(HaveOccurred())
		Expect(kind).To(Equal(policy.FIFO))
	})

	It("should reject unknown names", func() {
		_, err := policy.ParseKind("clock")
		Expect(err).To(HaveOccurred())
	})
})
