package diagnostics

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// ErrorLogName returns the file name used for a run's error log.
func (c *Context) ErrorLogName() string {
	return fmt.Sprintf("backorder_error_log_%s_%s.txt", c.Started.Format("20060102_150405"), c.RunID.Short())
}

// WriteErrorLog renders the full diagnostic report of a failed run into dir
// and returns the file path. The report has three levels: the failure
// summary, the process environment, and the complete event trail.
func (c *Context) WriteErrorLog(dir string, failure error) (string, error) {
	if c == nil {
		return "", fmt.Errorf("no diagnostics context")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, c.ErrorLogName())
	if err := os.WriteFile(path, []byte(c.RenderErrorReport(failure)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}
	return path, nil
}

// RenderErrorReport builds the error report text.
func (c *Context) RenderErrorReport(failure error) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	fmt.Fprintf(&b, "%s\nBACKORDER REPORT ERROR LOG\nRun: %s\nStarted: %s\n%s\n\n", rule, c.RunID, c.Started.Format("2006-01-02 15:04:05"), rule)

	b.WriteString("LEVEL 1 - FAILURE SUMMARY:\n")
	if failure != nil {
		fmt.Fprintf(&b, "  Error: %v\n", failure)
	}
	errors := c.Filter(LevelError)
	for _, e := range errors {
		fmt.Fprintf(&b, "  Stage: %s\n  Message: %s\n", e.Stage, e.Message)
	}
	fmt.Fprintf(&b, "  Warnings recorded: %d\n\n", len(c.Warnings()))

	b.WriteString("LEVEL 2 - SYSTEM & ENVIRONMENT INFO:\n")
	for _, line := range environment() {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	b.WriteString("\n")

	b.WriteString("LEVEL 3 - COMPLETE EVENT TRAIL:\n")
	for _, e := range c.events {
		fmt.Fprintf(&b, "  %s %s\n", e.Time.Format("15:04:05.000"), e.String())
	}
	b.WriteString(rule + "\n")
	return b.String()
}

func environment() []string {
	lines := []string{
		"Go Version: " + runtime.Version(),
		"Platform: " + runtime.GOOS + "/" + runtime.GOARCH,
		fmt.Sprintf("Process ID: %d", os.Getpid()),
	}
	if wd, err := os.Getwd(); err == nil {
		lines = append(lines, "Current Working Directory: "+wd)
	}
	if exe, err := os.Executable(); err == nil {
		lines = append(lines, "Executable: "+exe)
	}
	if u, err := user.Current(); err == nil {
		lines = append(lines, "User: "+u.Username)
	} else {
		lines = append(lines, "User: Unknown")
	}
	lines = append(lines, memoryUsage())
	return lines
}

func memoryUsage() string {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return "Memory Usage: Not available"
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return "Memory Usage: Not available"
	}
	return fmt.Sprintf("Memory Usage: %.2f MB", float64(info.RSS)/1024/1024)
}
