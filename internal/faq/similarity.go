// Package faq provides the static question/answer corpus and the similarity
// matcher used for direct answering. The corpus is loaded once at startup and
// is immutable afterwards, making it safe for unsynchronized concurrent reads
// by any number of in-flight requests. The package does no logging; callers
// decide how to report load failures.
package faq

// This file implements the classic edit-based similarity ratio used to rank
// FAQ questions against a query:
//
//	ratio = 2*M / T
//
// where M is the total size of the longest matching blocks between the two
// rune sequences and T is their combined length. The measure is symmetric,
// bounded to [0,1], and equals 1.0 exactly for identical strings. Block
// discovery follows the Ratcliff/Obershelp strategy: find the longest
// contiguous common run, then recurse on the pieces left and right of it.

// Ratio returns the similarity of a and b in [0,1]. Two empty strings are
// considered identical (ratio 1.0).
func Ratio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}
	m := newMatcher(ar, br)
	matched := 0
	for _, bl := range m.matchingBlocks() {
		matched += bl.size
	}
	return 2.0 * float64(matched) / float64(total)
}

type match struct {
	a, b, size int
}

type matcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newMatcher(a, b []rune) *matcher {
	m := &matcher{a: a, b: b, b2j: make(map[rune][]int)}
	for j, r := range b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	return m
}

// findLongestMatch returns the longest matching run within
// a[alo:ahi] × b[blo:bhi]. Among runs of equal length it prefers the one
// starting earliest in a, then earliest in b, which keeps block discovery
// (and therefore scoring) deterministic.
func (m *matcher) findLongestMatch(alo, ahi, blo, bhi int) match {
	besti, bestj, bestsize := alo, blo, 0

	// j2len[j] holds the length of the match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return match{besti, bestj, bestsize}
}

// matchingBlocks returns all maximal matching runs, found by repeatedly
// splitting around the longest match (iterative worklist, no recursion).
func (m *matcher) matchingBlocks() []match {
	type span struct {
		alo, ahi, blo, bhi int
	}
	queue := []span{{0, len(m.a), 0, len(m.b)}}

	var blocks []match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		bl := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if bl.size == 0 {
			continue
		}
		blocks = append(blocks, bl)
		if s.alo < bl.a && s.blo < bl.b {
			queue = append(queue, span{s.alo, bl.a, s.blo, bl.b})
		}
		if bl.a+bl.size < s.ahi && bl.b+bl.size < s.bhi {
			queue = append(queue, span{bl.a + bl.size, s.ahi, bl.b + bl.size, s.bhi})
		}
	}
	return blocks
}
