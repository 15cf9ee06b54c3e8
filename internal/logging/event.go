package logging

import (
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

var operationSeq atomic.Uint64

// NewOperationID tags the log lines of one invocation. Several xidle
// processes can append to the same query.log, so the pid is part of it.
func NewOperationID() string {
	return "op-" + strconv.Itoa(os.Getpid()) +
		"-" + strconv.FormatInt(time.Now().UnixMilli(), 36) +
		"-" + strconv.FormatUint(operationSeq.Add(1), 36)
}
