package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/lexfeed/core"
)

// Key prefixes for different data types
const (
	docPrefix           = "regdoc"
	docURLIndexPrefix   = "regdocu" // url -> active document id (one entry per lineage)
	docHashIndexPrefix  = "regdoch" // content hash -> active document id
	docDateIndexPrefix  = "regdocd" // published date -> document id
	docSupersededPrefix = "regdocs" // superseded-at date -> document id (retention sweep)
	docIDSeq            = "regdocseq"
	knowledgeItemPrefix = "knowit"
	knowledgeChunkPrefix = "knowch"
	logPrefix           = "proclog"
	logIDSeq            = "proclogseq"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", docPrefix, id))
}

// makeURLIndexKey generates the key holding the active document ID for a URL.
// The entry survives versioning: it always points at the current version.
func makeURLIndexKey(url string) []byte {
	return []byte(docURLIndexPrefix + ":" + url)
}

// makeHashIndexKey generates the key holding the active document ID for a
// content hash.
func makeHashIndexKey(hash string) []byte {
	return []byte(docHashIndexPrefix + ":" + hash)
}

// makeDocDateKey generates a composite key for the published-date index.
// Format: prefix:timestamp:id, BigEndian so lexicographic sort is date order.
func makeDocDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := []byte(docDateIndexPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDocDateKey generates a partial key for date range queries.
func makePartialDocDateKey(timestamp time.Time) []byte {
	prefix := []byte(docDateIndexPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeSupersededKey generates a composite key for the superseded index.
// Ordered by the moment the record was superseded.
func makeSupersededKey(timestamp time.Time, id core.ID) []byte {
	prefix := []byte(docSupersededPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialSupersededKey generates a partial key for cutoff queries on the
// superseded index.
func makePartialSupersededKey(timestamp time.Time) []byte {
	prefix := []byte(docSupersededPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeKnowledgeItemKey generates a key for a knowledge item by ID.
func makeKnowledgeItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", knowledgeItemPrefix, id))
}

// makeChunkKey generates a composite key for a chunk.
// Format: prefix:itemID:index, BigEndian so iteration yields chunk order.
func makeChunkKey(itemID core.ID, index int) []byte {
	prefix := []byte(knowledgeChunkPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(itemID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// makePartialChunkKey generates a partial key for iterating an item's chunks.
func makePartialChunkKey(itemID core.ID) []byte {
	prefix := []byte(knowledgeChunkPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(itemID))
	return buf
}

// makeLogKey generates a composite key for a processing log entry.
// Format: prefix:timestamp:id. The log is append-only; keys are never reused.
func makeLogKey(timestamp time.Time, id core.ID) []byte {
	prefix := []byte(logPrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialLogKey generates a partial key for time-bounded log queries.
func makePartialLogKey(timestamp time.Time) []byte {
	prefix := []byte(logPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
