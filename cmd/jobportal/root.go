package main

import (
	"os"

	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
	baseURL string
	envFile string
	output  outputFormat
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{output: formatTabular}
	var a *app

	root := &cobra.Command{
		Use:           "jobportal",
		Short:         "Command line client for the student job portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(opts.envFile); err != nil {
				return err
			}
			if opts.baseURL != "" {
				if err := os.Setenv("API_BASE_URL", opts.baseURL); err != nil {
					return err
				}
			}
			var err error
			a, err = newApp(config.New(), opts.verbose)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")
	flags.StringVar(&opts.baseURL, "base-url", "", "backend root URL (overrides API_BASE_URL)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load")
	flags.VarP(&opts.output, "format", "o", "output format: tabular or json")

	// Commands resolve the app lazily; it only exists once PersistentPreRunE ran.
	get := func() *app { return a }
	root.AddCommand(
		newLoginCommand(get),
		newRegisterCommand(get),
		newLogoutCommand(get),
		newStatusCommand(get),
		newProfileCommand(get, opts),
		newCVCommand(get, opts),
		newJobsCommand(get, opts),
		newSavedCommand(get, opts),
		newSaveCommand(get),
		newUnsaveCommand(get),
		newFetchCommand(get, opts),
		newAppsCommand(get, opts),
		newApplyCommand(get, opts),
		newAppStatusCommand(get, opts),
		newAppDeleteCommand(get),
		newRecommendCommand(get, opts),
	)
	return root
}
