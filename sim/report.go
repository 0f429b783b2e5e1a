package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Summary carries end-of-run metrics needed for reporting.
type Summary struct {
	Seed       int64    `json:"seed"`
	Ticks      int      `json:"ticks"`
	Generated  int      `json:"generated"`
	Delivered  int64    `json:"delivered"`
	TotalTicks int64    `json:"total_ticks"`
	AvgTicks   *float64 `json:"avg_ticks,omitempty"` // nil when nobody was delivered
	MinTicks   int      `json:"min_ticks"`
	MaxTicks   int      `json:"max_ticks"`
	Waiting    int      `json:"waiting"`
	Onboard    int      `json:"onboard"`
	Stats      Stats    `json:"-"`
}

// fill derives the flat travel-time fields from Stats.
func (s *Summary) fill() {
	s.Delivered = s.Stats.Count
	s.TotalTicks = s.Stats.Sum
	s.MinTicks = s.Stats.Min
	s.MaxTicks = s.Stats.Max
	s.AvgTicks = nil
	if avg, ok := s.Stats.Average(); ok {
		s.AvgTicks = &avg
	}
}

// CombineSummaries merges several runs into one: counters add up and the
// travel-time statistics are merged sample-wise. Seed is taken from the first run.
func CombineSummaries(runs []Summary) Summary {
	var out Summary
	for i, r := range runs {
		if i == 0 {
			out.Seed = r.Seed
		}
		out.Ticks += r.Ticks
		out.Generated += r.Generated
		out.Waiting += r.Waiting
		out.Onboard += r.Onboard
		out.Stats.Merge(r.Stats)
	}
	out.fill()
	return out
}

func formatAvg(avg *float64) string {
	if avg == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*avg, 'f', 6, 64)
}

// PrintConsoleReport writes the human-readable end-of-run result lines.
// Average, minimum and maximum print as n/a when nobody was delivered.
func PrintConsoleReport(w io.Writer, sum Summary) {
	fmt.Fprintf(w, "Total passengers: %d\n", sum.Delivered)
	fmt.Fprintf(w, "Total Ticks Traveled: %d\n", sum.TotalTicks)
	fmt.Fprintf(w, "Average Ticks Traveled: %s\n", formatAvg(sum.AvgTicks))
	if sum.Delivered == 0 {
		fmt.Fprintln(w, "Minimum Ticks Traveled: n/a")
		fmt.Fprintln(w, "Maximum Ticks Traveled: n/a")
		return
	}
	fmt.Fprintf(w, "Minimum Ticks Traveled: %d\n", sum.MinTicks)
	fmt.Fprintf(w, "Maximum Ticks Traveled: %d\n", sum.MaxTicks)
}

// StatusPrinter returns an observer that prints each floor's queue sizes
// before every car's dispatch step.
func StatusPrinter(w io.Writer) Observer {
	return func(e Event) {
		if ev, ok := e.(FloorStatusEvent); ok {
			fmt.Fprintf(w, "Floor: %d\nMoving up: %d\nMoving down: %d\n\n", ev.Floor, ev.WaitingUp, ev.WaitingDown)
		}
	}
}

// WriteCSVReport writes a CSV report to the given path or directory.
// If reportPath is a directory, it creates a timestamped file inside.
// If reportPath is a file, a timestamp is suffixed before the extension.
// An empty reportPath writes nothing.
func WriteCSVReport(reportPath string, runs []Summary, total Summary) (string, error) {
	if reportPath == "" {
		return "", nil
	}
	ts := time.Now().Format("20060102-150405")
	outPath := reportPath
	if fi, err := os.Stat(outPath); err == nil && fi.IsDir() {
		outPath = filepath.Join(outPath, fmt.Sprintf("report-%s.csv", ts))
	} else {
		ext := filepath.Ext(outPath)
		base := outPath[:len(outPath)-len(ext)]
		outPath = fmt.Sprintf("%s-%s%s", base, ts, ext)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := writeReport(f, runs, total, ts); err != nil {
		return "", err
	}
	return outPath, nil
}

// writeReport writes the CSV rows to w and closes it.
func writeReport(w io.WriteCloser, runs []Summary, total Summary, ts string) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"section", "seed", "ticks", "generated", "delivered", "total_ticks", "avg_ticks", "min_ticks", "max_ticks", "waiting", "onboard", "timestamp"})
	row := func(section string, s Summary) []string {
		avg := ""
		if s.AvgTicks != nil {
			avg = strconv.FormatFloat(math.Round(*s.AvgTicks*100)/100, 'f', 2, 64)
		}
		return []string{
			section,
			strconv.FormatInt(s.Seed, 10),
			strconv.Itoa(s.Ticks),
			strconv.Itoa(s.Generated),
			strconv.FormatInt(s.Delivered, 10),
			strconv.FormatInt(s.TotalTicks, 10),
			avg,
			strconv.Itoa(s.MinTicks),
			strconv.Itoa(s.MaxTicks),
			strconv.Itoa(s.Waiting),
			strconv.Itoa(s.Onboard),
			ts,
		}
	}
	for _, r := range runs {
		cw.Write(row("run", r))
	}
	cw.Write(row("summary", total))
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}
