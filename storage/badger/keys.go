package badger

import (
	"encoding/binary"
	"strings"

	"github.com/poiesic/smartsearch/core"
)

const (
	sourceRecordPrefix = "srcrec"
	sourceNamePrefix   = "srcname"
	sourceIDSeq        = "srcseq"
)

// makeSourceKey builds the primary key for a custom source. The sequence
// number is big endian so prefix iteration yields insertion order.
func makeSourceKey(seq uint64) []byte {
	prefix := sourceRecordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeSourceNameKey builds the unique index key for a source name.
// Names are folded to lower case before hashing.
func makeSourceNameKey(name string) []byte {
	prefix := sourceNamePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(normalizeName(name))))
	return buf
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
