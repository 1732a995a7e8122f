package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

type rewriteRequest struct {
	Text string `json:"text"`
}

type rewriteResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

type result struct {
	Sample   string `json:"sample"`
	Chars    int    `json:"chars"`
	Run      int    `json:"run"`
	WallMs   int64  `json:"wall_ms"`
	OutChars int    `json:"out_chars"`
	Error    string `json:"error,omitempty"`
}

func main() {
	url := flag.String("url", "http://localhost:6969", "reword base URL")
	runs := flag.Int("runs", 3, "Number of runs per sample")
	quality := flag.Bool("quality", false, "Quality mode: show input/output for each sample (1 run, no timing table)")
	jsonOut := flag.String("json", "", "Write results to JSON file (e.g. results.json)")
	warmup := flag.Bool("warmup", false, "Run one warmup request per sample before measuring")
	flag.Parse()

	baseURL := strings.TrimRight(*url, "/")
	client := &http.Client{Timeout: 180 * time.Second}

	if *quality {
		os.Exit(runQualityMode(client, baseURL))
	}

	fmt.Printf("Benchmarking %s (%d runs per sample", baseURL, *runs)
	if *warmup {
		fmt.Print(", warmup enabled")
	}
	fmt.Println(")")

	var results []result
	var failures int
	for _, sample := range Samples {
		if *warmup {
			fmt.Printf("  Warming up %s...", sample.Name)
			if w := benchmark(client, baseURL, sample, 0); w.Error != "" {
				fmt.Printf(" FAILED (%s)\n", w.Error)
			} else {
				fmt.Printf(" %dms (discarded)\n", w.WallMs)
			}
		}
		for run := 1; run <= *runs; run++ {
			fmt.Printf("  Running %s (run %d/%d)...", sample.Name, run, *runs)
			r := benchmark(client, baseURL, sample, run)
			results = append(results, r)
			if r.Error != "" {
				fmt.Printf(" FAILED (%s)\n", r.Error)
				failures++
			} else {
				fmt.Printf(" %dms\n", r.WallMs)
			}
		}
	}

	fmt.Println()
	printTable(results)
	printSummary(results)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, results, baseURL); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nResults written to %s\n", *jsonOut)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// rewrite posts text to /rewrite and returns the rewritten text.
func rewrite(client *http.Client, baseURL, text string) (string, error) {
	payload, err := json.Marshal(rewriteRequest{Text: text})
	if err != nil {
		return "", err
	}

	resp, err := client.Post(baseURL+"/rewrite", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var rr rewriteResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, rr.Error)
	}
	return rr.Text, nil
}

func benchmark(client *http.Client, baseURL string, sample Sample, run int) result {
	r := result{Sample: sample.Name, Chars: utf8.RuneCountInString(sample.Text), Run: run}

	start := time.Now()
	out, err := rewrite(client, baseURL, sample.Text)
	r.WallMs = time.Since(start).Milliseconds()

	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.OutChars = utf8.RuneCountInString(out)
	return r
}

func printTable(results []result) {
	fmt.Println("| Sample | Chars | Run | Wall (ms) | Out Chars | Ratio |")
	fmt.Println("|--------|-------|-----|-----------|-----------|-------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("| %-6s | %5d | %d | %9s | %9s | %5s |\n", r.Sample, r.Chars, r.Run, "FAIL", "-", "-")
			continue
		}
		ratio := float64(r.OutChars) / float64(r.Chars)
		fmt.Printf("| %-6s | %5d | %d | %9d | %9d | %5.2f |\n", r.Sample, r.Chars, r.Run, r.WallMs, r.OutChars, ratio)
	}
}

func runQualityMode(client *http.Client, baseURL string) int {
	fmt.Printf("Quality test against %s\n", baseURL)
	fmt.Println(strings.Repeat("=", 72))

	var failures int
	for i, sample := range QualitySamples {
		fmt.Printf("\n--- %d/%d: %s (%d chars) ---\n", i+1, len(QualitySamples), sample.Name, utf8.RuneCountInString(sample.Text))
		fmt.Printf("IN:  %s\n", sample.Text)

		start := time.Now()
		out, err := rewrite(client, baseURL, sample.Text)
		if err != nil {
			fmt.Printf("ERR: %s\n", err)
			failures++
			continue
		}
		fmt.Printf("OUT: %s\n", out)
		fmt.Printf("     [%dms, %d->%d chars]\n", time.Since(start).Milliseconds(), utf8.RuneCountInString(sample.Text), utf8.RuneCountInString(out))
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Done: %d/%d passed\n", len(QualitySamples)-failures, len(QualitySamples))
	if failures > 0 {
		return 1
	}
	return 0
}

func printSummary(results []result) {
	var ok []result
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	var totalMs int64
	var totalChars int
	fastest, slowest := ok[0], ok[0]
	for _, r := range ok {
		totalMs += r.WallMs
		totalChars += r.Chars
		if r.WallMs < fastest.WallMs {
			fastest = r
		}
		if r.WallMs > slowest.WallMs {
			slowest = r
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg ms/char: %.2f\n", float64(totalMs)/float64(totalChars))
	fmt.Printf("- Fastest: %dms (%s)\n", fastest.WallMs, fastest.Sample)
	fmt.Printf("- Slowest: %dms (%s)\n", slowest.WallMs, slowest.Sample)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), len(results)-len(ok))
}

type jsonReport struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Results   []result `json:"results"`
}

func writeJSON(path string, results []result, baseURL string) error {
	data, err := json.MarshalIndent(jsonReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Results:   results,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
