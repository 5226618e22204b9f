package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"github.com/spf13/cobra"
)

func newProfileCommand(get func() *app, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			return a.call(cmd.Context(), func(ctx context.Context) error {
				profile, err := a.session.LoadUser(ctx)
				if err != nil {
					return err
				}
				return writeProfile(cmd, opts.output, profile)
			})
		},
	}
	cmd.AddCommand(newProfileUpdateCommand(get, opts), newSkillsCommand(get, opts))
	return cmd
}

func newProfileUpdateCommand(get func() *app, opts *rootOptions) *cobra.Command {
	var (
		skills                    []int64
		jobType, location, course string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := a.requireLogin(); err != nil {
				return err
			}

			var update portalmodel.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("skills") {
				update.SkillIDs = skills
			}
			if flags.Changed("job-type") {
				update.PreferredJobType = &jobType
			}
			if flags.Changed("location") {
				update.PreferredLocation = &location
			}
			if flags.Changed("course") {
				update.Course = &course
			}

			return a.call(cmd.Context(), func(ctx context.Context) error {
				profile, err := a.client.UpdateProfile(ctx, update)
				if err != nil {
					return err
				}
				return writeProfile(cmd, opts.output, profile)
			})
		},
	}
	f := cmd.Flags()
	f.Int64SliceVar(&skills, "skills", nil, "skill ids, see 'profile skills'")
	f.StringVar(&jobType, "job-type", "", "internship, part_time, graduate or full_time")
	f.StringVar(&location, "location", "", "preferred location")
	f.StringVar(&course, "course", "", "course of study")
	return cmd
}

func newSkillsCommand(get func() *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "skills",
		Short: "List the skills a profile can carry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			return a.call(cmd.Context(), func(ctx context.Context) error {
				skills, err := a.client.GetSkills(ctx)
				if err != nil {
					return err
				}
				return write(cmd.OutOrStdout(), opts.output, skills, func(tw *tabwriter.Writer) {
					fmt.Fprintln(tw, "ID\tSKILL")
					for _, s := range skills {
						fmt.Fprintf(tw, "%d\t%s\n", s.ID, s.Name)
					}
				})
			})
		},
	}
}

func writeProfile(cmd *cobra.Command, format outputFormat, profile *portalmodel.Profile) error {
	return write(cmd.OutOrStdout(), format, profile, func(tw *tabwriter.Writer) {
		names := make([]string, 0, len(profile.Skills))
		for _, s := range profile.Skills {
			names = append(names, s.Name)
		}
		fmt.Fprintf(tw, "Course:\t%s\n", dash(profile.Course))
		fmt.Fprintf(tw, "Job type:\t%s\n", dash(profile.PreferredJobType))
		fmt.Fprintf(tw, "Location:\t%s\n", dash(profile.PreferredLocation))
		fmt.Fprintf(tw, "Skills:\t%s\n", dash(strings.Join(names, ", ")))
	})
}

func newCVCommand(get func() *app, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cv",
		Short: "Show your CV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				cv, err := a.client.GetCV(ctx)
				if err != nil {
					return err
				}
				return write(cmd.OutOrStdout(), opts.output, cv, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "Name:\t%s\n", dash(cv.Name))
					fmt.Fprintf(tw, "Summary:\t%s\n", dash(cv.Summary))
					for _, e := range cv.Education {
						fmt.Fprintf(tw, "Education:\t%s\t%s\t%s\n", e.Institution, dash(e.Degree), dash(e.Subject))
					}
					for _, e := range cv.Experience {
						fmt.Fprintf(tw, "Experience:\t%s\t%s\t%s\n", e.Company, e.Role, dash(e.StartDate))
					}
				})
			})
		},
	}
	cmd.AddCommand(newCVSummaryCommand(get))
	return cmd
}

// newCVSummaryCommand drafts a summary; --save stores it on the CV.
func newCVSummaryCommand(get func() *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Draft a personal statement from your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if err := a.requireLogin(); err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context) error {
				draft, err := a.client.GenerateCVSummary(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), draft.Summary)
				if !save {
					return nil
				}

				cv, err := a.client.GetCV(ctx)
				if err != nil {
					return err
				}
				cv.Summary = draft.Summary
				if _, err := a.client.UpdateCV(ctx, *cv); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Saved to CV")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store the draft as the CV summary")
	return cmd
}
