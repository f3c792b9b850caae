package extractor

// quota tracks how many line pairs may still be written. It is
// decremented only at write time, one per emitted pair; buffering and
// validation never consume it.
type quota struct {
	remaining int
	unlimited bool
}

func newQuota(maxLines int) *quota {
	if maxLines <= 0 {
		return &quota{unlimited: true}
	}
	return &quota{remaining: maxLines}
}

func (q *quota) exhausted() bool {
	return !q.unlimited && q.remaining <= 0
}

// take consumes one line pair, reporting false once the quota is spent.
func (q *quota) take() bool {
	if q.unlimited {
		return true
	}
	if q.remaining <= 0 {
		return false
	}
	q.remaining--
	return true
}

// imminent reports whether buffered pairs already cover what remains.
func (q *quota) imminent(buffered int) bool {
	return !q.unlimited && buffered >= q.remaining
}

// sub returns the allotment for one corpus when the remaining quota is
// split across n corpora. When the even split comes out non-positive
// the corpus receives the entire remaining quota instead, so that some
// corpora still produce output rather than all being skipped. This is
// deliberately unbalanced: with fewer remaining lines than corpora,
// early corpora can use up everything.
func (q *quota) sub(n int) *quota {
	if q.unlimited {
		return &quota{unlimited: true}
	}
	share := q.remaining / n
	if share <= 0 {
		share = q.remaining
	}
	return &quota{remaining: share}
}

// consume subtracts lines written by a finished corpus.
func (q *quota) consume(n int) {
	if q.unlimited {
		return
	}
	q.remaining -= n
	if q.remaining < 0 {
		q.remaining = 0
	}
}
