package transfer

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/browsey/browsey/pkg/runtime"
	"golang.org/x/sync/errgroup"
)

// estimateConcurrency bounds how many source entries are walked for size
// estimation at once; sources are typically independent directory trees, so
// fanning out across them (rather than within one tree) gets most of the
// available parallelism without the bookkeeping of chunking a single walk.
const estimateConcurrency = 4

// EstimateSize walks every path in sources, summing the size of every
// regular file found (directories contribute 0 bytes themselves). It polls
// cancel between entries and aborts with ErrorCodeCancelled, leaving no
// side effects, the moment cancellation is observed.
func EstimateSize(sources []string, cancel runtime.CancelFlag) (int64, error) {
	var total int64
	group := new(errgroup.Group)
	group.SetLimit(estimateConcurrency)

	for _, source := range sources {
		source := source
		group.Go(func() error {
			size, err := estimatePathSize(source, cancel)
			if err != nil {
				return err
			}
			atomic.AddInt64(&total, size)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, err
	}
	return total, nil
}

func estimatePathSize(root string, cancel runtime.CancelFlag) (int64, error) {
	var total int64
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if cancel != nil && cancel.Load() {
			return newError(ErrorCodeCancelled, "size estimation cancelled at %s", path)
		}
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
