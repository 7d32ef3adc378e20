package sweeper

import "sync"

type Task func()

// WorkerPool is a fixed-size pool draining a task channel. Submit blocks
// once size tasks are queued, which bounds how far a sweep can run ahead.
type WorkerPool struct {
	tasks chan Task
	wg    sync.WaitGroup
}

func NewWorkerPool(size int) *WorkerPool {
	pool := &WorkerPool{
		tasks: make(chan Task, size),
	}
	for i := 0; i < size; i++ {
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()
			for task := range pool.tasks {
				task()
			}
		}()
	}
	return pool
}

func (p *WorkerPool) Submit(task Task) {
	p.tasks <- task
}

func (p *WorkerPool) Shutdown() {
	close(p.tasks)
	p.wg.Wait()
}
