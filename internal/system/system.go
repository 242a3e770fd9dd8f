package system

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/ivlev/actiondirector/internal/director"
)

// InitResourceLimits raises the open file limit for large validation batches.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Failed to read open file limit: %v", err)
		return
	}

	if rLimit.Cur >= 2048 {
		return
	}
	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Failed to raise open file limit: %v", err)
	} else {
		fmt.Printf("[*] Open file limit raised to %d\n", rLimit.Cur)
	}
}

// FindLatestAsset returns path itself when it names an asset file, otherwise
// the newest asset file inside the directory.
func FindLatestAsset(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		if !director.IsAssetFile(path) {
			return "", fmt.Errorf("%s is not an asset file", path)
		}
		return path, nil
	}
	return director.FindLatestAsset(path)
}

// Stats is a snapshot of the current process.
type Stats struct {
	RSS        uint64
	CPUPercent float64
	Threads    int32
	Goroutines int
}

// ProcessStats samples resource usage of the running process.
func ProcessStats() (Stats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Stats{}, err
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return Stats{}, fmt.Errorf("memory info: %w", err)
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return Stats{}, fmt.Errorf("cpu percent: %w", err)
	}
	threads, err := p.NumThreads()
	if err != nil {
		return Stats{}, fmt.Errorf("threads: %w", err)
	}

	return Stats{
		RSS:        mem.RSS,
		CPUPercent: cpu,
		Threads:    threads,
		Goroutines: runtime.NumGoroutine(),
	}, nil
}

// PrintStats writes the benchmark block shown with --stats.
func PrintStats(w io.Writer, version string, elapsed time.Duration, files int) {
	stats, err := ProcessStats()
	if err != nil {
		fmt.Fprintf(w, "[!] Failed to read process stats: %v\n", err)
		return
	}

	perFile := 0.0
	if files > 0 {
		perFile = elapsed.Seconds() / float64(files)
	}
	fmt.Fprintf(w, "\n--- [STATS %s] ---\n", version)
	fmt.Fprintf(w, "[*] Total: %.3fs | Files: %d | Per file: %.4fs\n", elapsed.Seconds(), files, perFile)
	fmt.Fprintf(w, "[*] RSS: %.1f MB | CPU: %.1f%% | Threads: %d | Goroutines: %d\n",
		float64(stats.RSS)/(1<<20), stats.CPUPercent, stats.Threads, stats.Goroutines)
}
