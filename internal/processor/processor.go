package processor

import (
	"sync"
	"time"

	"github.com/deploymenttheory/go-filemeta/internal/fileanalyzer"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/storage"
)

// Analyzer runs one isolated metadata extraction
type Analyzer interface {
	Analyze(filePath string, mode fileanalyzer.Mode) (*fileanalyzer.Result, error)
}

// Stats holds processor statistics
type Stats struct {
	FilesProcessed int
	Errors         int
	StartTime      time.Time
	EndTime        time.Time
}

// Options configures a Processor
type Options struct {
	Workers int               // Number of concurrent workers, at least 1
	Mode    fileanalyzer.Mode // Decoders to run for every file
	Hash    bool              // Add the SHA3-256 digest to each record
}

// Processor analyzes queued files concurrently and stores one record per file
type Processor struct {
	opts       Options
	analyzer   Analyzer
	storage    storage.Storage
	inputQueue chan string

	wg         sync.WaitGroup
	stats      Stats
	statsMutex sync.RWMutex

	done      bool
	doneMutex sync.Mutex
	stop      chan struct{}
	stopOnce  sync.Once
}

// New creates a new Processor
func New(opts Options, analyzer Analyzer, storage storage.Storage) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Processor{
		opts:       opts,
		analyzer:   analyzer,
		storage:    storage,
		inputQueue: make(chan string, 100),
		stop:       make(chan struct{}),
	}
}

// Start begins the processing workers
func (p *Processor) Start() {
	p.statsMutex.Lock()
	p.stats.StartTime = time.Now()
	p.statsMutex.Unlock()

	for i := 0; i < p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// worker analyzes queued paths until the queue closes or Stop is called
func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stop:
			return
		case filePath, ok := <-p.inputQueue:
			if !ok {
				return
			}

			record := p.processFile(filePath)
			if record.Failed() {
				logger.Errorf("Worker %d: Failed to analyze %s: %s", id, filePath, record.Error)
				p.incrementErrors()
			}

			if err := p.storage.Store(record); err != nil {
				logger.Errorf("Worker %d: Failed to store metadata for %s: %v", id, filePath, err)
				p.incrementErrors()
				continue
			}

			p.incrementFilesProcessed()
		}
	}
}

// Submit queues every path and signals that no more files will be added
func (p *Processor) Submit(paths ...string) {
	for _, filePath := range paths {
		select {
		case <-p.stop:
			p.Done()
			return
		case p.inputQueue <- filePath:
		}
	}
	p.Done()
}

// Done signals that no more files will be added
func (p *Processor) Done() {
	p.doneMutex.Lock()
	defer p.doneMutex.Unlock()
	if p.done {
		return
	}
	p.done = true
	close(p.inputQueue)
}

// Stop signals the processor to stop
func (p *Processor) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

// Wait waits for all processing to complete
func (p *Processor) Wait() {
	p.wg.Wait()

	p.statsMutex.Lock()
	p.stats.EndTime = time.Now()
	p.statsMutex.Unlock()
}

// Stats returns the current processing statistics
func (p *Processor) Stats() Stats {
	p.statsMutex.RLock()
	defer p.statsMutex.RUnlock()
	return p.stats
}

// Increment files processed counter
func (p *Processor) incrementFilesProcessed() {
	p.statsMutex.Lock()
	p.stats.FilesProcessed++
	p.statsMutex.Unlock()
}

// Increment errors counter
func (p *Processor) incrementErrors() {
	p.statsMutex.Lock()
	p.stats.Errors++
	p.statsMutex.Unlock()
}

func (p *Processor) Duration() time.Duration {
	p.statsMutex.RLock()
	defer p.statsMutex.RUnlock()

	if p.stats.StartTime.IsZero() {
		return 0
	}

	if p.stats.EndTime.IsZero() {
		return time.Since(p.stats.StartTime)
	}

	return p.stats.EndTime.Sub(p.stats.StartTime)
}
