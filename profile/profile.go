package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler controls one profiling session. Create instances with
// [Config.NewProfiler].
type Profiler struct {
	cfg     *Config
	cpuFile *os.File
}

// Start starts CPU profiling if enabled, and sets the memory profile rate
// when a heap or allocs profile is requested. Call [Profiler.Stop] to write
// the remaining profiles.
func (p *Profiler) Start() error {
	memProfiling := p.cfg.HeapProfile != "" || p.cfg.AllocsProfile != ""
	if memProfiling && p.cfg.MemProfileRate > 0 {
		runtime.MemProfileRate = p.cfg.MemProfileRate
	}

	if p.cfg.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.cfg.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("start CPU profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop stops CPU profiling and writes the heap and allocs profiles. It is
// safe to call when nothing was started.
func (p *Profiler) Stop() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close CPU profile: %w", err))
		}

		p.cpuFile = nil
	}

	for name, path := range map[string]string{
		"heap":   p.cfg.HeapProfile,
		"allocs": p.cfg.AllocsProfile,
	} {
		if path == "" {
			continue
		}

		err := writeProfile(name, path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = pprof.Lookup(name).WriteTo(f, 0)

	return errors.Join(wrapIf(err, "write %s profile", name), wrapIf(f.Close(), "close %s profile", name))
}

func wrapIf(err error, format, name string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf(format+": %w", name, err)
}
