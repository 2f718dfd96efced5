package safe_close

import (
	"sync"
)

// SafeClose coordinates graceful shutdown across goroutines. Each
// participant attaches once and receives a close signal channel; the owner
// fires the signal and waits for every participant to report done.
// SafeClose 协调多个协程的优雅关闭
type SafeClose struct {
	mu          sync.Mutex
	closeOnce   sync.Once
	closeSignal chan struct{}
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a participant. The callback receives a done function to
// call when cleanup finishes and the channel that fires on shutdown.
// Attach 注册一个参与方，回调收到完成函数与关闭信号通道
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.mu.Lock()
	s.wg.Add(1)
	s.mu.Unlock()

	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go fn(done, s.closeSignal)
}

// SendCloseSignal fires the shutdown signal. Safe to call multiple times.
// SendCloseSignal 发送关闭信号，可重复调用
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		close(s.closeSignal)
	})
}

// WaitClosed blocks until every attached participant has called done.
// WaitClosed 阻塞直到所有参与方完成
func (s *SafeClose) WaitClosed() {
	s.wg.Wait()
}

// CloseSignal exposes the shutdown channel for select loops that cannot
// use Attach.
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}
