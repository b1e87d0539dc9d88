package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/thinhdanggroup/executor"
	"os"
	"pwd-audit/internal/audit"
	"pwd-audit/internal/util"
	"pwd-audit/pkg/hibp"
	"runtime"
	"strings"
	"sync"
)

var (
	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Audit a newline-separated list of passwords",
		Long: "Audit every password in a file, one per line, writing a masked one-line summary " +
			"per password to the output file. Lookups run concurrently; the breach range cache " +
			"keeps repeated hash prefixes from hitting the API twice.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return batchCommand()
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	batchCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "File with one password per line (required)")
	batchCmd.MarkFlagRequired("in-file")
	batchCmd.Flags().StringVarP(&outFile, "out-file", "o", "", "File the audit summaries are written to (required)")
	batchCmd.MarkFlagRequired("out-file")
	batchCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of parallel audits. Defaults to the number of CPUs")
	batchCmd.Flags().BoolVar(&skipBreach, "skip-breach", false, "Skip the breach lookup and rate on strength alone")

	rootCmd.AddCommand(batchCmd)
}

// disabledChecker stands in for the breach corpus when --skip-breach is
// set. It reports every check as failed so summaries stay honest about
// the missing signal.
type disabledChecker struct{}

func (disabledChecker) Check(_ context.Context, _ string) hibp.Result {
	return hibp.Result{Status: hibp.StatusFailed, Err: errors.New("breach check disabled")}
}

func batchCommand() (err error) {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	s := util.Stats()
	defer s()

	in, err := os.Open(inputFile)
	if err != nil {
		return
	}
	defer func(in *os.File) {
		if err := in.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing input file %s", inputFile)
		}
	}(in)

	out, err := os.Create(outFile)
	if err != nil {
		return
	}
	defer func(out *os.File) {
		if err := out.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing output file %s", outFile)
		}
	}(out)

	var checker audit.BreachChecker = hibp.NewClientWithBaseURL(apiURL)
	if skipBreach {
		log.Warn().Msgf("breach lookups are disabled, ratings are based on strength alone")
		checker = disabledChecker{}
	}
	auditor := audit.NewAuditor(checker, audit.ZxcvbnEstimator{})

	workers := threads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * workers,
		NumWorkers:    workers,
	})
	if err != nil {
		return
	}
	defer pool.Close()

	log.Info().Msgf("auditing passwords from %s with %d threads", inputFile, workers)

	// Writes are synchronized, summaries must not interleave mid-line.
	writer := bufio.NewWriter(out)
	var wm sync.Mutex

	var line, audited int
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line++
		password := scanner.Text()
		if strings.TrimSpace(password) == "" {
			log.Warn().Msgf("skipping blank line %d", line)
			continue
		}

		n := line
		if err = pool.Publish(func(pw string) {
			report := auditor.Run(context.Background(), pw)

			wm.Lock()
			defer wm.Unlock()
			if _, err := writer.WriteString(fmt.Sprintf("line %d: %s\n", n, report.Summary())); err != nil {
				log.Error().Err(err).Msgf("error writing summary for line %d", n)
			}
		}, password); err != nil {
			log.Panic().Err(err).Msgf("there is a programming error here.")
		}
		audited++
	}
	if err = scanner.Err(); err != nil {
		return
	}

	pool.Wait()
	if err = writer.Flush(); err != nil {
		return
	}

	log.Info().Msgf("audited %d passwords, summaries written to %s", audited, outFile)
	return
}
