package snapshot

import (
	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/book-replay/internal/domain/snapshot/v1"
)

// Recorder appends point-in-time views of a book to an ordered sequence.
type Recorder struct {
	topDepth    int
	bottomDepth int
	snapshots   []*snapshotv1.Snapshot
}

// NewRecorder creates a recorder capturing topDepth best levels and
// bottomDepth worst levels per side.
func NewRecorder(topDepth, bottomDepth int) *Recorder {
	return &Recorder{
		topDepth:    topDepth,
		bottomDepth: bottomDepth,
	}
}

// Record captures the current state of the book and appends it.
func (r *Recorder) Record(book orderbookv1.Orderbook, arrivalTime, transactTime int64) *snapshotv1.Snapshot {
	snapshot := &snapshotv1.Snapshot{
		ArrivalTime:  arrivalTime,
		TransactTime: transactTime,
		BestBids:     book.Levels(orderbookv1.BestBids, r.topDepth),
		BestAsks:     book.Levels(orderbookv1.BestAsks, r.topDepth),
		WorstBids:    book.Levels(orderbookv1.WorstBids, r.bottomDepth),
		WorstAsks:    book.Levels(orderbookv1.WorstAsks, r.bottomDepth),
		Stats:        book.Statistics(),
	}

	r.snapshots = append(r.snapshots, snapshot)
	return snapshot
}

// Snapshots returns the recorded sequence in recording order.
func (r *Recorder) Snapshots() []*snapshotv1.Snapshot {
	return r.snapshots
}

// Len returns the number of recorded snapshots.
func (r *Recorder) Len() int {
	return len(r.snapshots)
}

// Depths returns the configured top and bottom depths.
func (r *Recorder) Depths() (top, bottom int) {
	return r.topDepth, r.bottomDepth
}
