package ranking

import (
	"sort"
	"sync"
)

// minParallelBatch is the smallest batch worth fanning out across workers;
// below it the serial path wins on overhead alone.
const minParallelBatch = 32

// RankApplicants scores every applicant against the scholarship and returns
// them in final rank order using the default weights. The input is never
// mutated and an empty batch returns an empty slice.
func RankApplicants(applicants []ApplicantRecord, scholarship Scholarship) []ScoredApplicant {
	return RankApplicantsWithWeights(applicants, scholarship, nil)
}

// RankApplicantsWithWeights is RankApplicants with a calibrated weight
// configuration. A nil weights value applies the defaults.
func RankApplicantsWithWeights(applicants []ApplicantRecord, scholarship Scholarship, weights *Weights) []ScoredApplicant {
	return rankApplicants(applicants, scholarship, weights, 1)
}

// RankApplicantsParallel is RankApplicantsWithWeights with applicant
// scoring fanned out across a bounded worker pool. Applicants are scored
// independently, so the output is identical to the serial path; small
// batches and workers <= 1 fall back to serial scoring.
func RankApplicantsParallel(applicants []ApplicantRecord, scholarship Scholarship, weights *Weights, workers int) []ScoredApplicant {
	return rankApplicants(applicants, scholarship, weights, workers)
}

func rankApplicants(applicants []ApplicantRecord, scholarship Scholarship, weights *Weights, workers int) []ScoredApplicant {
	if len(applicants) == 0 {
		return []ScoredApplicant{}
	}
	if weights == nil {
		weights = DefaultWeights()
	}

	scored := scoreAll(applicants, scholarship, weights, workers)
	sortScored(scored)
	assignRanks(scored)
	return scored
}

// scoreAll evaluates every applicant. On the parallel path each goroutine
// writes to a unique index of the result slice, so no locking is needed.
func scoreAll(applicants []ApplicantRecord, scholarship Scholarship, weights *Weights, workers int) []ScoredApplicant {
	scored := make([]ScoredApplicant, len(applicants))

	if workers <= 1 || len(applicants) < minParallelBatch {
		for i, a := range applicants {
			scored[i] = scoreApplicant(a, scholarship, weights)
		}
		return scored
	}

	if workers > len(applicants) {
		workers = len(applicants)
	}

	indexCh := make(chan int, len(applicants))
	for i := range applicants {
		indexCh <- i
	}
	close(indexCh)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				scored[i] = scoreApplicant(applicants[i], scholarship, weights)
			}
		}()
	}
	wg.Wait()

	return scored
}

// sortScored orders applicants by score descending, preferring more
// criteria matches and then higher form completeness on equal scores. The
// sort is stable, so the ordering is total and deterministic for any fixed
// input.
func sortScored(scored []ScoredApplicant) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Details.CriteriaMatches != b.Details.CriteriaMatches {
			return a.Details.CriteriaMatches > b.Details.CriteriaMatches
		}
		return a.Details.FormCompleteness > b.Details.FormCompleteness
	})
}

// assignRanks applies competition ranking over the sorted slice: exact
// score ties share a rank and the next distinct score resumes at its true
// ordinal position, leaving gaps after tie groups ([0.9, 0.9, 0.7] ranks
// as [1, 1, 3]).
func assignRanks(scored []ScoredApplicant) {
	for i := range scored {
		if i > 0 && scored[i].Score == scored[i-1].Score {
			scored[i].Rank = scored[i-1].Rank
			continue
		}
		scored[i].Rank = i + 1
	}
}
