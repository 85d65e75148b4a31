package dispatch

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// keyedMutex serializes work on one order inside the process. Correctness never
// depends on it: the ledger's conditional updates decide every race.
type keyedMutex struct {
	stripes [lockStripes]sync.Mutex
}

func (m *keyedMutex) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	mu := &m.stripes[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
