package pool

import "testing"

func TestReplyBufferSizedCorrectly(t *testing.T) {
	buf := GetReplyBuffer()
	if len(buf) != replyBufferSize {
		t.Errorf("len = %d, want %d", len(buf), replyBufferSize)
	}
	PutReplyBuffer(buf)

	buf2 := GetReplyBuffer()
	if len(buf2) != replyBufferSize {
		t.Errorf("len = %d, want %d", len(buf2), replyBufferSize)
	}
}

func TestPutReplyBufferIgnoresUndersized(t *testing.T) {
	// Should not panic, and must not be pooled.
	PutReplyBuffer(make([]byte, 10))
}

func BenchmarkReplyBufferPool(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buf := GetReplyBuffer()
		PutReplyBuffer(buf)
	}
}
