package strender

import (
	"context"
	"sync"

	"strender/hsd"
)

// decodeTiles decodes the given container paths concurrently. Results
// keep the input order, so callers get deterministic assembly no matter
// how many workers run.
func (r *Renderer) decodeTiles(paths []string) ([]*hsd.Tile, error) {
	workers := r.cfg.Render.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	indices := make(chan int)
	go func() {
		defer close(indices)
		for i := range paths {
			select {
			case indices <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	tiles := make([]*hsd.Tile, len(paths))

	var errcList []<-chan error
	for w := 0; w < workers; w++ {
		errc := make(chan error, 1)
		errcList = append(errcList, errc)
		go func() {
			defer close(errc)
			for i := range indices {
				t, err := hsd.Open(paths[i])
				if err != nil {
					errc <- err
					cancel()
					return
				}
				tiles[i] = t
			}
		}()
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}
	return tiles, nil
}

func waitForPipeline(errs ...<-chan error) error {
	for err := range mergeErrors(errs...) {
		if err != nil {
			return err
		}
	}
	return nil
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
