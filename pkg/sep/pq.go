package sep

import "math"

// gainPQ is a two-level gain-bucket priority queue over boundary vertices,
// per the Design Notes in spec §9: a coarse bucket keyed by floor(gain)
// holding an unordered set of vertices, so inserts/removals are O(1) and
// only finding the current max bucket costs a scan — avoiding the
// quantization artifacts of bucketing the real-valued gain directly while
// still giving FM a fast "highest gain" query.
type gainPQ struct {
	buckets   map[int][]int // bucket key -> vertex ids in that bucket
	slot      map[int]int   // vertex -> index within its bucket slice
	bucketKey map[int]int   // vertex -> bucket key, for removal/update
	gain      map[int]float64
	maxKey    int
	hasMax    bool
}

func newGainPQ() *gainPQ {
	return &gainPQ{
		buckets:   make(map[int][]int),
		slot:      make(map[int]int),
		bucketKey: make(map[int]int),
		gain:      make(map[int]float64),
	}
}

func bucketOf(g float64) int { return int(math.Floor(g)) }

func (q *gainPQ) insert(k int, gain float64) {
	b := bucketOf(gain)
	q.buckets[b] = append(q.buckets[b], k)
	q.slot[k] = len(q.buckets[b]) - 1
	q.bucketKey[k] = b
	q.gain[k] = gain
	if !q.hasMax || b > q.maxKey {
		q.maxKey = b
		q.hasMax = true
	}
}

func (q *gainPQ) remove(k int) {
	b, ok := q.bucketKey[k]
	if !ok {
		return
	}
	list := q.buckets[b]
	i := q.slot[k]
	last := len(list) - 1
	moved := list[last]
	list[i] = moved
	q.slot[moved] = i
	list = list[:last]
	if len(list) == 0 {
		delete(q.buckets, b)
	} else {
		q.buckets[b] = list
	}
	delete(q.slot, k)
	delete(q.bucketKey, k)
	delete(q.gain, k)
}

func (q *gainPQ) update(k int, newGain float64) {
	if _, ok := q.bucketKey[k]; ok {
		q.remove(k)
	}
	q.insert(k, newGain)
}

func (q *gainPQ) empty() bool { return len(q.gain) == 0 }

// peekMax returns the vertex with the highest real-valued gain, breaking
// ties by lowest vertex index for determinism (spec §4.5), without removing
// it. The bucket watermark decays lazily: if the recorded max bucket is
// empty, it is walked down until a non-empty bucket is found.
func (q *gainPQ) peekMax() (int, float64, bool) {
	if q.empty() {
		return 0, 0, false
	}
	for q.hasMax {
		list, ok := q.buckets[q.maxKey]
		if ok && len(list) > 0 {
			best := list[0]
			bestGain := q.gain[best]
			for _, k := range list[1:] {
				g := q.gain[k]
				if g > bestGain || (g == bestGain && k < best) {
					best = k
					bestGain = g
				}
			}
			return best, bestGain, true
		}
		q.maxKey--
	}
	// Lost the watermark (shouldn't happen while non-empty); rescan.
	first := true
	var bestKey int
	for b := range q.buckets {
		if first || b > bestKey {
			bestKey = b
			first = false
		}
	}
	q.maxKey = bestKey
	q.hasMax = !first
	if first {
		return 0, 0, false
	}
	return q.peekMax()
}
