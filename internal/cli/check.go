package cli

import (
	"context"
	"errors"
	"fmt"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"os"
	"pwd-audit/internal/audit"
	"pwd-audit/internal/util"
	"pwd-audit/pkg/hibp"
	"strings"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check [PASSWORD]",
		Short: "Audit a single password, or run an interactive session",
		Args: func(cmd *cobra.Command, args []string) error {
			if !interactive {
				if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
					return err
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				// Dummy string
				return checkCommand("")
			} else {
				return checkCommand(args[0])
			}
		},
	}
)

func init() {
	checkCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode. Prompts for passwords until 'quit' is entered.")
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(password string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	auditor := audit.NewAuditor(hibp.NewClientWithBaseURL(apiURL), audit.ZxcvbnEstimator{})

	if !interactive {
		if strings.TrimSpace(password) == "" {
			return errors.New("please enter a valid password (cannot be empty)")
		}

		report := auditor.Run(context.Background(), password)
		fmt.Fprint(os.Stdout, report.Render())
		return nil
	}

	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("please enter a valid password (cannot be empty)")
			}
			return nil
		},
	}

	log.Info().Msgf("Running interactive session. Type 'quit' (or ^C) to exit")
	if err := runInteractiveSession(prompt, auditor); err != nil {
		if err.Error() == "^C" || err.Error() == "^D" {
			log.Info().Msgf("Goodbye")
		} else {
			log.Error().Err(err).Msgf("Error during interactive session")
		}
		// No return to avoid the default cobra error message
		return nil
	}

	return nil
}

func runInteractiveSession(prompt promptui.Prompt, auditor *audit.Auditor) error {
	for {
		result, err := prompt.Run()
		if err != nil {
			return err
		}

		if strings.EqualFold(result, "quit") {
			log.Info().Msgf("Goodbye")
			return nil
		}

		report := auditor.Run(context.Background(), result)
		fmt.Fprint(os.Stdout, report.Render())
	}
}
