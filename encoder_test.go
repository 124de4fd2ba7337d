package chunktable_test

import (
	"math"

	"github.com/bsm/chunktable"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Encoder", func() {
	It("should start empty", func() {
		enc := chunktable.NewEncoder()
		Expect(enc.NumChunks()).To(Equal(0))
		Expect(enc.NumSamples()).To(Equal(int64(0)))
	})

	It("should account for registrations", func() {
		enc := chunktable.NewEncoder()

		a := enc.GenerateChunkID()
		Expect(enc.NumChunks()).To(Equal(0))
		Expect(enc.NumSamples()).To(Equal(int64(0)))

		Expect(enc.RegisterSamples(10)).To(Succeed())
		Expect(enc.NumChunks()).To(Equal(1))
		Expect(enc.NumSamples()).To(Equal(int64(10)))

		Expect(enc.RegisterSamples(10)).To(Succeed())
		Expect(enc.NumChunks()).To(Equal(1))
		Expect(enc.NumSamples()).To(Equal(int64(20)))

		b := enc.GenerateChunkID()
		Expect(enc.RegisterSamples(1)).To(Succeed())
		Expect(enc.NumChunks()).To(Equal(2))
		Expect(enc.NumSamples()).To(Equal(int64(21)))

		Expect(enc.ChunkID(19)).To(Equal(a))
		Expect(enc.ChunkID(20)).To(Equal(b))
	})

	It("should look up chunk ids", func() {
		enc, ids := seedEncoder(10)
		Expect(enc.ChunkID(0)).To(Equal(ids[0]))
		Expect(enc.ChunkID(9)).To(Equal(ids[0]))

		_, err := enc.ChunkID(10)
		Expect(err).To(MatchError(chunktable.ErrIndexOutOfRange))
		_, err = enc.ChunkID(-1)
		Expect(err).To(MatchError(chunktable.ErrIndexOutOfRange))
	})

	It("should look up across chunk boundaries", func() {
		enc, ids := seedEncoder(3, 1, 5)
		Expect(enc.NumSamples()).To(Equal(int64(9)))

		for i := int64(0); i <= 2; i++ {
			Expect(enc.ChunkID(i)).To(Equal(ids[0]), "for %d", i)
		}
		Expect(enc.ChunkID(3)).To(Equal(ids[1]))
		for i := int64(4); i <= 8; i++ {
			Expect(enc.ChunkID(i)).To(Equal(ids[2]), "for %d", i)
		}
	})

	It("should span chunk boundaries", func() {
		enc, ids := seedEncoder(10, 1)
		Expect(enc.NumSamples()).To(Equal(int64(11)))
		Expect(enc.ChunkID(10)).To(Equal(ids[1]))
		Expect(enc.LocalIndex(10)).To(Equal(int64(0)))
	})

	It("should translate local indices", func() {
		// 2 samples in chunk 0, 2 in chunk 1, 3 in chunk 2
		enc, _ := seedEncoder(2, 2, 3)
		Expect(enc.NumSamples()).To(Equal(int64(7)))
		Expect(enc.NumChunks()).To(Equal(3))

		Expect(enc.LocalIndex(0)).To(Equal(int64(0)))
		Expect(enc.LocalIndex(1)).To(Equal(int64(1)))
		Expect(enc.LocalIndex(2)).To(Equal(int64(0)))
		Expect(enc.LocalIndex(3)).To(Equal(int64(1)))
		Expect(enc.LocalIndex(4)).To(Equal(int64(0)))
		Expect(enc.LocalIndex(6)).To(Equal(int64(2)))

		_, err := enc.LocalIndex(7)
		Expect(err).To(MatchError(chunktable.ErrIndexOutOfRange))
	})

	It("should reject invalid registrations", func() {
		enc := chunktable.NewEncoder()
		Expect(enc.RegisterSamples(1)).To(MatchError(chunktable.ErrInvalidRegistration))

		enc.GenerateChunkID()
		Expect(enc.RegisterSamples(-1)).To(MatchError(chunktable.ErrInvalidRegistration))
		Expect(enc.RegisterSamples(0)).To(MatchError(chunktable.ErrInvalidRegistration))
		Expect(enc.NumSamples()).To(Equal(int64(0)))

		Expect(enc.RegisterSamples(3)).To(Succeed())
		Expect(enc.RegisterSamples(0)).To(MatchError(chunktable.ErrInvalidRegistration))
		Expect(enc.NumSamples()).To(Equal(int64(3)))

		// a zero-count registration marks a sample continued from the
		// previous chunk and requires that previous chunk to exist
		enc.GenerateChunkID()
		Expect(enc.RegisterSamples(0)).To(Succeed())
		Expect(enc.NumSamples()).To(Equal(int64(3)))
		Expect(enc.RegisterSamples(2)).To(Succeed())
		Expect(enc.NumSamples()).To(Equal(int64(5)))
	})

	It("should detect bound overflow", func() {
		enc := chunktable.NewEncoder()
		enc.GenerateChunkID()
		Expect(enc.RegisterSamples(math.MaxInt64)).To(Succeed())
		Expect(enc.NumSamples()).To(Equal(int64(math.MaxInt64)))

		Expect(enc.RegisterSamples(1)).To(MatchError(chunktable.ErrBoundOverflow))
		Expect(enc.NumSamples()).To(Equal(int64(math.MaxInt64)))
	})

	It("should generate distinct ids", func() {
		enc := chunktable.NewEncoder()
		seen := make(map[uint64]struct{})

		for i := 0; i < 1000; i++ {
			id := enc.GenerateChunkID()
			Expect(enc.RegisterSamples(1)).To(Succeed())
			Expect(seen).NotTo(HaveKey(id))
			seen[id] = struct{}{}
		}
		Expect(enc.NumChunks()).To(Equal(1000))
	})

	It("should name chunks", func() {
		enc, ids := seedEncoder(3, 4)
		Expect(enc.ChunkName(0)).To(Equal(chunktable.NameFromID(ids[0])))
		Expect(enc.ChunkName(1)).To(Equal(chunktable.NameFromID(ids[1])))

		_, err := enc.ChunkName(2)
		Expect(err).To(MatchError(chunktable.ErrIndexOutOfRange))
		_, err = enc.ChunkName(-1)
		Expect(err).To(MatchError(chunktable.ErrIndexOutOfRange))
	})

	It("should convert names and ids", func() {
		Expect(chunktable.NameFromID(0x3b9aca00)).To(Equal("3b9aca00"))
		Expect(chunktable.IDFromName("3b9aca00")).To(Equal(uint64(0x3b9aca00)))

		for _, id := range []uint64{0, 1, 0xdeadbeef, math.MaxUint64} {
			name := chunktable.NameFromID(id)
			Expect(chunktable.IDFromName(name)).To(Equal(id), "for %q", name)
		}

		_, err := chunktable.IDFromName("not-a-name")
		Expect(err).To(MatchError(chunktable.ErrBadName))
		_, err = chunktable.IDFromName("")
		Expect(err).To(MatchError(chunktable.ErrBadName))
	})

	Describe("RangeIterator", func() {
		It("should iterate chunk ranges", func() {
			enc, ids := seedEncoder(2, 2, 3)
			iter := enc.Ranges()

			Expect(iter.More()).To(BeTrue())
			Expect(iter.Next()).To(BeTrue())
			Expect(iter.ChunkID()).To(Equal(ids[0]))
			Expect(iter.Start()).To(Equal(int64(0)))
			Expect(iter.End()).To(Equal(int64(1)))

			Expect(iter.Next()).To(BeTrue())
			Expect(iter.ChunkID()).To(Equal(ids[1]))
			Expect(iter.Start()).To(Equal(int64(2)))
			Expect(iter.End()).To(Equal(int64(3)))

			Expect(iter.More()).To(BeTrue())
			Expect(iter.Next()).To(BeTrue())
			Expect(iter.ChunkID()).To(Equal(ids[2]))
			Expect(iter.Start()).To(Equal(int64(4)))
			Expect(iter.End()).To(Equal(int64(6)))

			Expect(iter.More()).To(BeFalse())
			Expect(iter.Next()).To(BeFalse())
		})

		It("should not iterate when empty", func() {
			iter := chunktable.NewEncoder().Ranges()
			Expect(iter.More()).To(BeFalse())
			Expect(iter.Next()).To(BeFalse())
		})
	})
})
