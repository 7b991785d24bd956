package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"
)

// Source locates the WGSL program for one shader key. A non-empty Path is read from disk;
// otherwise Name is read from FS.
type Source struct {
	Key  string
	Path string
	FS   fs.FS
	Name string
}

func (src Source) load() (Shader, error) {
	if src.Path != "" {
		return NewShader(src.Key, src.Path)
	}
	if src.FS == nil {
		return nil, fmt.Errorf("shader %s: no source path", src.Key)
	}
	return NewShaderFromFS(src.Key, src.FS, src.Name)
}

// LoadShaders loads and reflects every source in parallel on a worker pool and waits for all of them.
// Every source must load; the returned error joins every individual failure.
//
// Parameters:
//   - logger: the logger for load diagnostics (nil disables logging)
//   - workers: the maximum number of concurrent loads (values below 1 mean one worker per source)
//   - sources: the programs to load
//
// Returns:
//   - map[string]Shader: the loaded shaders keyed by Source.Key
//   - error: the joined load errors, or nil
func LoadShaders(logger *zap.Logger, workers int, sources ...Source) (map[string]Shader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sources) == 0 {
		return map[string]Shader{}, nil
	}
	if workers < 1 || workers > len(sources) {
		workers = len(sources)
	}

	pool := worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		shaders = make(map[string]Shader, len(sources))
		errs    []error
	)
	for i, src := range sources {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()

				start := time.Now()
				s, err := src.load()

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return nil, err
				}
				shaders[src.Key] = s
				logger.Debug("shader loaded",
					zap.String("key", src.Key),
					zap.String("vertex", s.VertexEntryPoint()),
					zap.String("fragment", s.FragmentEntryPoint()),
					zap.Duration("took", time.Since(start)),
				)
				return s, nil
			},
		})
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return shaders, nil
}
