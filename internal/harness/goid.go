package harness

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the current goroutine's id from its stack
// header. The runtime offers no direct accessor; the header format
// ("goroutine N [state]:") has been stable across releases. The id is
// only compared against the id captured at NewT, to detect aborting
// calls from goroutines the guard cannot unwind.
func goroutineID() int64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i > 0 {
		if id, err := strconv.ParseInt(string(buf[:i]), 10, 64); err == nil {
			return id
		}
	}
	return -1
}
