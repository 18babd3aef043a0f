package exercise

import "github.com/shioubi0216/ToneMasterAI/internal/sampler"

// buildOptions returns the correct value plus up to OptionCount-1
// distractors, shuffled. Distractors are sampled without replacement from
// the first pool; later pools only pad when earlier ones run short.
// Duplicates and the correct value are never sampled.
func buildOptions(s *sampler.Sampler, correct string, pools ...[]string) []string {
	options := []string{correct}
	chosen := map[string]bool{correct: true}

	for _, pool := range pools {
		need := OptionCount - len(options)
		if need == 0 {
			break
		}
		var candidates []string
		dup := make(map[string]bool, len(pool))
		for _, v := range pool {
			if v == "" || chosen[v] || dup[v] {
				continue
			}
			dup[v] = true
			candidates = append(candidates, v)
		}
		for _, v := range sampler.Sample(s, candidates, need) {
			chosen[v] = true
			options = append(options, v)
		}
	}

	sampler.Shuffle(s, options)
	return options
}
