package cli

import (
	"github.com/spf13/cobra"
	"pwd-audit/pkg/hibp"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdaudit [COMMAND] [OPTIONS]",
		Short: "Audit passwords for guessing resistance and known breaches",
		Long: "Rate passwords by combining keyspace entropy, a pattern-aware strength score and " +
			"a k-anonymity lookup against the Pwned Passwords (haveibeenpwned.com) breach corpus. " +
			"Only the first 5 characters of the password's SHA1 hash ever leave this machine.",
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", hibp.DefaultBaseURL, "Base URL of the breach range API")
}

func Execute() error {
	return rootCmd.Execute()
}
