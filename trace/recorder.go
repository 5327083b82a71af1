package trace

import (
	"database/sql"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/datarecording"

	"github.com/sarchlab/cachesim/cache"
)

const accessTable = "cache_accesses"

// accessEntry is one recorded cache access in the database.
type accessEntry struct {
	Sequence   int
	Address    uint64
	Write      bool
	Hit        bool
	Eviction   bool
	EvictedTag uint64
}

// A Recorder persists every simulated access into a SQLite database through
// the Akita data recorder.
type Recorder struct {
	recorder datarecording.DataRecorder
	sequence int
}

// NewRecorder creates a recorder writing to path (without the .sqlite3
// suffix). An empty path picks a unique name.
func NewRecorder(path string) *Recorder {
	if path == "" {
		path = "cachesim_trace_" + xid.New().String()
	}

	return newRecorder(datarecording.NewDataRecorder(path))
}

// NewRecorderWithDB creates a recorder writing to an existing database
// connection.
func NewRecorderWithDB(db *sql.DB) *Recorder {
	return newRecorder(datarecording.NewDataRecorderWithDB(db))
}

func newRecorder(dr datarecording.DataRecorder) *Recorder {
	dr.CreateTable(accessTable, accessEntry{})
	return &Recorder{recorder: dr}
}

// Record stores the outcome of one access.
func (r *Recorder) Record(address uint64, write, hit bool, evicted *cache.Block) {
	entry := accessEntry{
		Sequence: r.sequence,
		Address:  address,
		Write:    write,
		Hit:      hit,
	}
	if evicted != nil {
		entry.Eviction = true
		entry.EvictedTag = evicted.Tag
	}

	r.sequence++
	r.recorder.InsertData(accessTable, entry)
}

// Flush forces buffered rows out to the database.
func (r *Recorder) Flush() {
	r.recorder.Flush()
}
