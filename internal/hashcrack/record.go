package hashcrack

import (
	"iter"

	"github.com/pkg/errors"
)

// Format describes the fixed-width shape of a hash line.
type Format struct {
	// SaltLength is the length of the salt prefix, tag included.
	SaltLength int
	// HashLength is the length of the whole line without the newline.
	HashLength int
	Tag        string
}

// DefaultFormat is SHA-512-crypt with a 16 character salt:
// "$6$" + salt + "$" + 86 character digest.
func DefaultFormat() Format {
	return Format{
		SaltLength: 20,
		HashLength: 106,
		Tag:        "$6$",
	}
}

func (f Format) Validate() error {
	if f.SaltLength <= 0 || f.HashLength <= f.SaltLength {
		return errors.Errorf("invalid hash format: salt length %d, hash length %d", f.SaltLength, f.HashLength)
	}
	if len(f.Tag) > f.SaltLength {
		return errors.Errorf("invalid hash format: tag %q longer than salt", f.Tag)
	}
	return nil
}

// HashRecord is one target hash split into its salt prefix and digest suffix.
type HashRecord struct {
	Salt   string
	Digest string
}

func (r HashRecord) String() string {
	return r.Salt + r.Digest
}

// HashSet is the immutable set of target hashes shared by all workers.
// It has no mutators, so concurrent readers need no locking.
type HashSet struct {
	records []HashRecord
}

func NewHashSet(records ...HashRecord) *HashSet {
	return &HashSet{records: append([]HashRecord(nil), records...)}
}

func (s *HashSet) Len() int {
	return len(s.records)
}

func (s *HashSet) At(i int) HashRecord {
	return s.records[i]
}

func (s *HashSet) All() iter.Seq2[int, HashRecord] {
	return func(yield func(int, HashRecord) bool) {
		for i, r := range s.records {
			if !yield(i, r) {
				return
			}
		}
	}
}
