package util

import (
	"strconv"
	"sync"
)

const idSeed = 1000

var (
	idMu   sync.Mutex
	idNext = idSeed
	idLast string
)

// NextID returns a new process-unique id of the form prefix_N, N starting
// at 1001.
func NextID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()
	idNext++
	idLast = prefix + "_" + strconv.Itoa(idNext)
	return idLast
}

// LastID returns the id most recently produced by NextID, or "".
func LastID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return idLast
}
