// Package pool reuses the read buffers transport exchanges allocate on
// every UDP query, to keep per-query GC pressure down under concurrent
// fan-out across up to dispatch.MaxServers clients.
package pool

import "sync"

// replyBufferSize is one byte larger than the largest reply this module
// accepts, so a full-size read still leaves a byte free to detect and
// reject an oversized datagram.
const replyBufferSize = 4097

var replyBufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, replyBufferSize)
		return &buf
	},
}

// GetReplyBuffer returns a reply-sized scratch buffer for a single UDP read.
func GetReplyBuffer() []byte {
	bufPtr := replyBufferPool.Get().(*[]byte)
	return (*bufPtr)[:replyBufferSize]
}

// PutReplyBuffer returns buf to the pool. Callers must not retain buf, or
// any slice of it, after calling this.
func PutReplyBuffer(buf []byte) {
	if cap(buf) < replyBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	replyBufferPool.Put(&buf)
}
