package transport

import (
	tomb "gopkg.in/tomb.v2"

	"github.com/rs/zerolog/log"
)

const taskChanSize = 100

// Task is one unit of work handed to the pool: a raw Kafka message
// payload awaiting decode.
type Task struct {
	Payload []byte
}

// WorkerFunction decodes and forwards one Task. Errors are fatal to the
// tomb the pool runs under, per the teacher's convention: a worker that
// cannot make progress brings its supervisor down rather than silently
// wedging.
type WorkerFunction = func(t *tomb.Tomb, task Task) error

// Pool is a fixed-size set of tomb-supervised goroutines that each pull
// Tasks off a shared channel and run WorkerFunction against them.
// Adapted from the teacher's internal/worker.go WorkerPool: same
// tomb.Tomb-per-worker supervision and task-channel shape, generalized
// from `any` tasks to typed decode Tasks and given an AddTask entry point
// the teacher's version never defined.
type Pool struct {
	n     int
	tasks chan Task
	work  WorkerFunction
}

// NewPool builds a pool of the given size. Call Setup to start it.
func NewPool(size int, work WorkerFunction) *Pool {
	return &Pool{
		n:     size,
		tasks: make(chan Task, taskChanSize),
		work:  work,
	}
}

// AddTask enqueues a task, blocking if the pool's backlog is full.
func (p *Pool) AddTask(task Task) {
	p.tasks <- task
}

// Setup starts n worker goroutines under t, each looping until t dies.
func (p *Pool) Setup(t *tomb.Tomb) {
	log.Info().Int("workers", p.n).Msg("transport: starting decode pool")
	for i := 0; i < p.n; i++ {
		t.Go(func() error {
			return p.worker(t)
		})
	}
}

func (p *Pool) worker(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case task := <-p.tasks:
			if err := p.work(t, task); err != nil {
				log.Error().Err(err).Msg("transport: worker exiting")
				return err
			}
		}
	}
}
