package includes

import "runtime"

type evaluateConfig struct {
	workers  int // 0 = auto, <0 = serial, >0 = fixed count
	failFast bool
}

func (c evaluateConfig) workerCount(n int) int {
	switch {
	case c.workers < 0:
		return 1
	case c.workers > 0:
		return min(c.workers, n)
	default:
		return max(min(runtime.GOMAXPROCS(0), n), 1)
	}
}

// EvaluateOption configures Evaluate.
type EvaluateOption func(*evaluateConfig)

// EvaluateWithWorkers sets the number of concurrent workers.
// Values < 0 force serial evaluation. Zero uses GOMAXPROCS.
// Values > 0 force a specific worker count.
func EvaluateWithWorkers(n int) EvaluateOption {
	return func(c *evaluateConfig) {
		c.workers = n
	}
}

// EvaluateWithFailFast stops at the first query that fails and returns its
// error.
func EvaluateWithFailFast(enabled bool) EvaluateOption {
	return func(c *evaluateConfig) {
		c.failFast = enabled
	}
}
