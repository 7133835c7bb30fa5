package ditherdock

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// OutputSuffix is appended to the base name of every file written by Batch.
const OutputSuffix = "_dithered"

// listImages returns the sorted paths of the images directly inside dir.
// Subdirectories are not descended into.
func listImages(dir string) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	info, err := d.Stat()
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, errors.Errorf("%s: not a directory", dir)
	}

	entries, err := d.ReadDir(0)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		// Ignore any hidden files, otherwise we end up fighting with things like Spotlight, etc.
		if strings.HasPrefix(e.Name(), ".") || !e.Type().IsRegular() {
			continue
		}
		if IsImage(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	return files, nil
}

// outputName returns where the result for file is written within dir.
func outputName(dir, file string) string {
	ext := filepath.Ext(file)
	return filepath.Join(dir, strings.TrimSuffix(filepath.Base(file), ext)+OutputSuffix+ext)
}

func (d *DitherDock) findImages(ctx context.Context, files []string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}
			select {
			case out <- file:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc, nil
}

type batchState struct {
	dir   string
	total int
	done  atomic.Int64
	ok    atomic.Int64
}

func (d *DitherDock) imageWorker(ctx context.Context, in <-chan string, state *batchState) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if ctx.Err() != nil {
				// Drain without processing so the producer can exit
				continue
			}

			out := outputName(state.dir, file)
			if err := d.ProcessFile(file, out); err != nil {
				d.logger.Printf("Error processing %s: %v\n", file, err)
			} else {
				d.logger.Printf("Wrote \"%s\"\n", out)
				state.ok.Add(1)
			}

			done := state.done.Add(1)
			if d.progress != nil {
				d.progress(int(done), state.total)
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error reported by any stage, but only
// once every stage has finished.
func waitForPipeline(errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch renders every image directly inside inDir with Process and writes
// each result to outDir, named after the input with OutputSuffix added
// before the extension. Images that fail are logged and skipped. At most
// workers images are processed at once; zero or less means one per CPU.
// If ctx is cancelled no further images are started and Batch returns once
// those in progress have been written. The number of images written is
// returned.
func (d *DitherDock) Batch(ctx context.Context, inDir, outDir string, workers int) (int, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files, err := listImages(inDir)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	state := &batchState{
		dir:   outDir,
		total: len(files),
	}

	var errcList []<-chan error

	images, errc, err := d.findImages(ctx, files)
	if err != nil {
		return 0, err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := d.imageWorker(ctx, images, state)
		if err != nil {
			return 0, err
		}
		errcList = append(errcList, errc)
	}

	err = waitForPipeline(errcList...)

	return int(state.ok.Load()), err
}
