// 最简单的协程池：固定数量的worker执行同一个workerFn
// 任务分发由workerFn自行完成（通常是读取一个channel），workerFn返回即worker退出
// NOTE: 没有处理worker panic，调用方需要在workerFn内自行recover
package routingpool

import (
	"context"
	"errors"
	"sync"
)

var ErrAlreadyStarted = errors.New("routing pool already started")

type SimpleRoutingPool struct {
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool

	ctx      context.Context
	size     uint32
	workerFn func(context.Context)
}

// size为0时按1处理
func NewSimpleRoutingPool(ctx context.Context, size uint32, workerFn func(context.Context)) RoutingPool {
	if size == 0 {
		size = 1
	}
	return &SimpleRoutingPool{
		ctx:      ctx,
		size:     size,
		workerFn: workerFn,
	}
}

func (s *SimpleRoutingPool) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	var i uint32
	for ; i != s.size; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.workerFn(s.ctx)
		}()
	}
	return nil
}

// Stop 等待所有worker退出
func (s *SimpleRoutingPool) Stop() {
	s.wg.Wait()
}
