package metrics

import "sync"

// Collector keeps in-process request and error counters exposed on /metrics.
type Collector struct {
	mu       sync.Mutex
	requests map[string]int64
	statuses map[int]int64
	errors   map[string]int64
}

func NewCollector() *Collector {
	return &Collector{
		requests: make(map[string]int64),
		statuses: make(map[int]int64),
		errors:   make(map[string]int64),
	}
}

func (c *Collector) ObserveRequest(method string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[method]++
	c.statuses[status]++
}

func (c *Collector) ObserveError(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[code]++
}

type Snapshot struct {
	RequestsByMethod map[string]int64 `json:"requests_by_method"`
	ResponsesByCode  map[int]int64    `json:"responses_by_code"`
	ErrorsByCode     map[string]int64 `json:"errors_by_code"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := Snapshot{
		RequestsByMethod: make(map[string]int64, len(c.requests)),
		ResponsesByCode:  make(map[int]int64, len(c.statuses)),
		ErrorsByCode:     make(map[string]int64, len(c.errors)),
	}
	for k, v := range c.requests {
		snapshot.RequestsByMethod[k] = v
	}
	for k, v := range c.statuses {
		snapshot.ResponsesByCode[k] = v
	}
	for k, v := range c.errors {
		snapshot.ErrorsByCode[k] = v
	}
	return snapshot
}
