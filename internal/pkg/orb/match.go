package orb

import "math/bits"

// Match is a correspondence between a query and a train descriptor.
type Match struct {
	QueryIdx int
	TrainIdx int
	Distance int
}

// Hamming returns the number of differing bits.
func Hamming(a, b Descriptor) int {
	n := 0
	for i := range a {
		n += bits.OnesCount64(a[i] ^ b[i])
	}
	return n
}

// MatchCrossCheck returns the pairs that are each other's nearest neighbour by
// Hamming distance. Ties go to the lower index. Matches are ordered by query index.
func MatchCrossCheck(query, train []Descriptor) []Match {
	if len(query) == 0 || len(train) == 0 {
		return nil
	}

	bestTrain := make([]int, len(query))
	bestTrainDist := make([]int, len(query))
	bestQuery := make([]int, len(train))
	bestQueryDist := make([]int, len(train))
	for i := range bestTrainDist {
		bestTrainDist[i] = descriptorBits + 1
	}
	for j := range bestQueryDist {
		bestQueryDist[j] = descriptorBits + 1
	}

	for i, q := range query {
		for j, t := range train {
			d := Hamming(q, t)
			if d < bestTrainDist[i] {
				bestTrainDist[i], bestTrain[i] = d, j
			}
			if d < bestQueryDist[j] {
				bestQueryDist[j], bestQuery[j] = d, i
			}
		}
	}

	var matches []Match
	for i, j := range bestTrain {
		if bestQuery[j] == i {
			matches = append(matches, Match{QueryIdx: i, TrainIdx: j, Distance: bestTrainDist[i]})
		}
	}
	return matches
}
