package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"scroll-scene-renderer/internal/loop"
	"scroll-scene-renderer/internal/postprocess"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds the settings shared by all workers of a batch run.
type Config struct {
	OutputDir   string
	Supersample int
	Workers     int
	// Progress is the interval between progress lines. Zero disables them.
	Progress time.Duration
}

// Result holds the outcome of encoding one frame.
type Result struct {
	Entry
	Success bool
	Error   string
}

// Writer encodes frames to WebP files on a worker pool. Frames are
// submitted from the render goroutine and encoded out of order.
type Writer struct {
	cfg       Config
	jobs      chan loop.Frame
	wg        sync.WaitGroup
	done      chan struct{}
	processed atomic.Int64
	submitted atomic.Int64

	mu      sync.Mutex
	results []Result
}

// Start creates the output directory and launches the workers.
func Start(cfg Config) (*Writer, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Supersample < 1 {
		cfg.Supersample = 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: create %s: %w", cfg.OutputDir, err)
	}

	w := &Writer{
		cfg:  cfg,
		jobs: make(chan loop.Frame, cfg.Workers*2),
		done: make(chan struct{}),
	}

	if cfg.Progress > 0 {
		go w.report(time.Now())
	}

	for i := 0; i < cfg.Workers; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for f := range w.jobs {
				r := w.encode(f)
				w.mu.Lock()
				w.results = append(w.results, r)
				w.mu.Unlock()
				w.processed.Add(1)
			}
		}()
	}

	return w, nil
}

// Write queues a frame. It blocks while all workers are busy and the
// queue is full. Write must not be called after Close.
func (w *Writer) Write(f loop.Frame) {
	w.submitted.Add(1)
	w.jobs <- f
}

// Close waits for queued frames and returns the results ordered by frame index.
func (w *Writer) Close() []Result {
	close(w.jobs)
	w.wg.Wait()
	close(w.done)

	w.mu.Lock()
	defer w.mu.Unlock()
	sort.Slice(w.results, func(i, j int) bool { return w.results[i].Index < w.results[j].Index })
	return w.results
}

func (w *Writer) report(start time.Time) {
	ticker := time.NewTicker(w.cfg.Progress)
	defer ticker.Stop()
	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			p := w.processed.Load()
			if p > 0 {
				elapsed := time.Since(start).Seconds()
				rate := float64(p) / elapsed
				fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, w.submitted.Load(), rate)
			}
		}
	}
}

// FrameFile returns the file name used for a frame index.
func FrameFile(index int) string {
	return fmt.Sprintf("frame_%05d.webp", index)
}

func (w *Writer) encode(f loop.Frame) Result {
	res := Result{Entry: NewEntry(f)}
	if f.Image == nil {
		res.Error = "empty frame"
		return res
	}

	img := f.Image
	if ss := w.cfg.Supersample; ss > 1 {
		b := img.Bounds()
		img = postprocess.Downsample(img, max(b.Dx()/ss, 1), max(b.Dy()/ss, 1))
	}

	out, err := os.Create(filepath.Join(w.cfg.OutputDir, res.Image))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer out.Close()

	if err := nativewebp.Encode(out, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
