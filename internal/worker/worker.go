package worker

import (
	"sync"
	"time"

	"github.com/pagegauge/pagegauge/internal/config"
	"github.com/pagegauge/pagegauge/internal/diag"
	"github.com/pagegauge/pagegauge/pkg/models"
)

// Measurer measures one URL end to end.
type Measurer interface {
	Measure(url string) models.PageReport
}

// Pool fans URL measurements out across worker goroutines. Each measurement
// owns its own tab and capture state, so pipelines never share mutable state.
type Pool struct {
	cfg       *config.WorkerConfig
	measurer  Measurer
	diag      diag.Sink
	Jobs      chan string
	Results   chan models.PageReport
	waitGroup *sync.WaitGroup
}

// NewPool creates a worker pool sized for the given URL batch.
func NewPool(cfg *config.WorkerConfig, measurer Measurer, urls []string, sink diag.Sink) *Pool {
	return &Pool{
		cfg:       cfg,
		measurer:  measurer,
		diag:      sink,
		Jobs:      make(chan string, len(urls)),
		Results:   make(chan models.PageReport, len(urls)),
		waitGroup: &sync.WaitGroup{},
	}
}

// Start starts the workers. Results is closed once all workers have drained
// the jobs channel.
func (p *Pool) Start() {
	rateLimiter := time.NewTicker(p.cfg.RateLimit)

	for w := 1; w <= p.cfg.Count; w++ {
		p.waitGroup.Add(1)
		go p.worker(w, rateLimiter)
	}

	go func() {
		p.waitGroup.Wait()
		rateLimiter.Stop()
		close(p.Results)
	}()
}

func (p *Pool) worker(id int, rateLimiter *time.Ticker) {
	defer p.waitGroup.Done()

	for url := range p.Jobs {
		<-rateLimiter.C

		p.diag.Infof("worker %d measuring %s", id, url)
		p.Results <- p.measurer.Measure(url)
	}
}

// AddJobs queues URLs and signals workers that no more are coming.
func (p *Pool) AddJobs(urls []string) {
	for _, url := range urls {
		p.Jobs <- url
	}
	close(p.Jobs)
}
