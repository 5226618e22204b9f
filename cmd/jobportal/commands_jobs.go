package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/jrsteele09/go-student-jobs/portalmodel"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

func writeJobs(cmd *cobra.Command, format outputFormat, jobs []portalmodel.Job) error {
	return write(cmd.OutOrStdout(), format, jobs, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tTYPE\tPOSTED")
		for _, j := range jobs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", j.ID, truncate(j.Title, 40), dash(j.Company), dash(j.Location), dash(j.JobType), dash(j.PostedDate))
		}
	})
}

func newJobsCommand(get func() *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List job listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			return a.call(cmd.Context(), func(ctx context.Context) error {
				jobs, err := a.client.GetJobs(ctx)
				if err != nil {
					return err
				}
				return writeJobs(cmd, opts.output, jobs)
			})
		},
	}
}

func newSavedCommand(get func() *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List the jobs you saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				jobs, err := a.client.GetSavedJobs(ctx)
				if err != nil {
					return err
				}
				return writeJobs(cmd, opts.output, jobs)
			})
		},
	}
}

func newSaveCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <job-id>",
		Short: "Save a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0], "job id")
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				if _, err := a.client.SaveJob(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved job %d\n", id)
				return nil
			})
		},
	}
}

func newUnsaveCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unsave <job-id>",
		Short: "Remove a job from your saved list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0], "job id")
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				if _, err := a.client.UnsaveJob(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed job %d from saved\n", id)
				return nil
			})
		},
	}
}

// newFetchCommand asks the backend to import listings from its job feed.
// Only admin accounts may do this.
func newFetchCommand(get func() *app, opts *rootOptions) *cobra.Command {
	var req portalmodel.FetchJobsRequest
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Import listings from the job feed (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				resp, err := a.client.FetchJobs(ctx, req)
				if err != nil {
					return err
				}
				if opts.output == formatJSON {
					return write(cmd.OutOrStdout(), opts.output, resp, nil)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d jobs (%d new, %d updated)\n", resp.Saved, resp.Created, resp.Updated)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Search, "search", "", "search terms")
	f.StringVar(&req.Location, "location", "", "location")
	f.IntVar(&req.ResultsPerPage, "per-page", 0, "results per page")
	f.IntVar(&req.Page, "page", 0, "page number")
	return cmd
}

func writeApplications(cmd *cobra.Command, format outputFormat, apps []portalmodel.Application) error {
	return write(cmd.OutOrStdout(), format, apps, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tJOB\tTITLE\tCOMPANY\tSTATUS\tUPDATED\tNOTES")
		for _, app := range apps {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n", app.ID, app.Job.ID, truncate(app.Job.Title, 32), dash(app.Job.Company), app.Status, dash(app.UpdatedAt), truncate(dash(app.Notes), 30))
		}
	})
}

func newAppsCommand(get func() *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List your applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				apps, err := a.client.GetApplications(ctx)
				if err != nil {
					return err
				}
				return writeApplications(cmd, opts.output, apps)
			})
		},
	}
}

func newApplyCommand(get func() *app, opts *rootOptions) *cobra.Command {
	var status, notes string
	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Track an application for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0], "job id")
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			req := portalmodel.CreateApplicationRequest{JobID: id, Status: portalmodel.ApplicationStatus(status), Notes: notes}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				app, err := a.client.CreateApplication(ctx, req)
				if err != nil {
					return err
				}
				return writeApplications(cmd, opts.output, []portalmodel.Application{*app})
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "initial status (default applied)")
	cmd.Flags().StringVar(&notes, "notes", "", "free text notes")
	return cmd
}

func newAppStatusCommand(get func() *app, opts *rootOptions) *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "app-status <application-id> <status>",
		Short: "Move an application to a new status",
		Long:  "Statuses: saved, applied, interviewing, offered, rejected.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0], "application id")
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			status := portalmodel.ApplicationStatus(args[1])
			req := portalmodel.UpdateApplicationRequest{Status: &status}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				app, err := a.client.UpdateApplication(ctx, id, req)
				if err != nil {
					return err
				}
				return writeApplications(cmd, opts.output, []portalmodel.Application{*app})
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "replace the notes")
	return cmd
}

func newAppDeleteCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "app-delete <application-id>",
		Short: "Stop tracking an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0], "application id")
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				if err := a.client.DeleteApplication(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted application %d\n", id)
				return nil
			})
		},
	}
}

func newRecommendCommand(get func() *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "List jobs recommended for your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				jobs, err := a.client.GetRecommendations(ctx)
				if err != nil {
					return err
				}
				return write(cmd.OutOrStdout(), opts.output, jobs, func(tw *tabwriter.Writer) {
					fmt.Fprintln(tw, "ID\tSCORE\tTITLE\tCOMPANY\tLOCATION")
					for _, j := range jobs {
						fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", j.ID, j.MatchScore, truncate(j.Title, 40), dash(j.Company), dash(j.Location))
					}
				})
			})
		},
	}
}
