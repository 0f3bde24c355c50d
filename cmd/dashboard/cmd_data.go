package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"business-dashboard/internal/drafting"
	"business-dashboard/internal/views"
)

var (
	locationGroup string
	draftTopic    string
	draftReply    bool
)

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the dashboard overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.open(cmd.Context())
		if err != nil {
			return err
		}
		s.Dashboard.SelectGroup(locationGroup)
		ov, ok := s.Dashboard.Build()
		if !ok {
			return fmt.Errorf("analytics not available")
		}

		out := cmd.OutOrStdout()
		if outputFmt == "yaml" {
			return printYAML(out, ov)
		}

		h := s.Header()
		fmt.Fprintf(out, "%s\n%s (%s)\n\n", ov.Greeting, h.DisplayName, h.DisplayImage)
		fmt.Fprintf(out, "Period:     %s\nCompare to: %s\n\n", ov.Range, ov.Comparison)

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, c := range ov.Cards {
			fmt.Fprintf(tw, "%s\t%s\n", c.Title, c.Value)
		}
		_ = tw.Flush()

		fmt.Fprintln(out, "\nTop searches:")
		for _, q := range ov.TopQueries {
			fmt.Fprintf(out, "  %s (%s)\n", q.Query, views.FormatCount(q.Count))
		}
		fmt.Fprintln(out, "\nRecent reviews:")
		for _, r := range ov.RecentReviews {
			fmt.Fprintf(out, "  %s %s: %s\n", views.StarRating(r.Rating), r.Author, r.Content)
		}
		fmt.Fprintf(out, "\nLocations (%s):\n", ov.SelectedGroup)
		for _, l := range ov.Locations {
			fmt.Fprintf(out, "  %s\n", l.Name)
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the business profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.open(cmd.Context())
		if err != nil {
			return err
		}
		p, _ := s.Profile.Profile()
		out := cmd.OutOrStdout()
		if outputFmt == "yaml" {
			return printYAML(out, p)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		form := map[string]string{
			"name": p.Name, "category": p.Category, "address": p.Address,
			"phone": p.Phone, "website": p.Website,
		}
		for _, f := range views.ProfileFields {
			fmt.Fprintf(tw, "%s\t%s\n", f.Label, form[f.Name])
		}
		for _, h := range p.Hours {
			fmt.Fprintf(tw, "%s\t%s\n", h.Day, h.Time)
		}
		return tw.Flush()
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set field=value...",
	Short: "Update profile fields (name, category, address, phone, website)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.open(cmd.Context())
		if err != nil {
			return err
		}
		if err := s.Profile.BeginEdit(); err != nil {
			return err
		}
		for _, arg := range args {
			field, value, ok := strings.Cut(arg, "=")
			if !ok {
				s.Profile.Cancel()
				return fmt.Errorf("expected field=value, got %q", arg)
			}
			if err := s.Profile.SetField(field, value); err != nil {
				s.Profile.Cancel()
				return err
			}
		}
		if err := s.Profile.Save(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
		return nil
	},
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List published posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.open(cmd.Context())
		if err != nil {
			return err
		}
		posts := s.Posts.Posts()
		out := cmd.OutOrStdout()
		if outputFmt == "yaml" {
			return printYAML(out, posts)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tVIEWS\tCLICKS\tCONTENT")
		for _, p := range posts {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Date,
				views.FormatCount(p.Views), views.FormatCount(p.Clicks), p.Content)
		}
		return tw.Flush()
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create [content]",
	Short: "Publish a post, or draft one from a topic with --draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.open(cmd.Context())
		if err != nil {
			return err
		}
		s.Posts.Open()
		s.Posts.SetContent(strings.Join(args, " "))
		if draftTopic != "" {
			s.Posts.SetTopic(draftTopic)
			s.Posts.Generate(cmd.Context())
			if s.Posts.Content() == drafting.PostFallback {
				return errors.New(drafting.PostFallback)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Draft:\n%s\n\n", s.Posts.Content())
		}
		if !s.Posts.CanPublish() {
			return fmt.Errorf("post content is empty")
		}
		post, err := s.Posts.Publish(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published post %d.\n", post.ID)
		return nil
	},
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List reviews, unanswered first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.open(cmd.Context())
		if err != nil {
			return err
		}
		unreplied, replied := s.Reviews.Partition()
		out := cmd.OutOrStdout()
		if outputFmt == "yaml" {
			return printYAML(out, map[string]interface{}{"unreplied": unreplied, "replied": replied})
		}
		fmt.Fprintf(out, "Needs a reply (%d):\n", len(unreplied))
		for _, r := range unreplied {
			fmt.Fprintf(out, "  #%d %s %s (%s): %s\n", r.ID, views.StarRating(r.Rating), r.Author, r.Date, r.Content)
		}
		fmt.Fprintf(out, "\nReplied (%d):\n", len(replied))
		for _, r := range replied {
			fmt.Fprintf(out, "  #%d %s %s: %s\n      > %s\n", r.ID, views.StarRating(r.Rating), r.Author, r.Content, r.Reply)
		}
		return nil
	},
}

var reviewsReplyCmd = &cobra.Command{
	Use:   "reply <review-id> [reply]",
	Short: "Reply to a review, or draft the reply with --draft",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid review id %q", args[0])
		}
		s, err := current.open(cmd.Context())
		if err != nil {
			return err
		}
		reply := strings.Join(args[1:], " ")
		if draftReply {
			if reply, err = s.Reviews.Draft(cmd.Context(), id); err != nil {
				return err
			}
			if reply == drafting.ReplyFallback {
				return errors.New(drafting.ReplyFallback)
			}
			tone, err := s.Reviews.Tone(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Draft (%s tone):\n%s\n\n", tone, reply)
		}
		if _, err := s.Reviews.Reply(cmd.Context(), id, reply); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Replied to review %d.\n", id)
		return nil
	},
}

func init() {
	overviewCmd.Flags().StringVar(&locationGroup, "group", "all", "location group to show")
	postsCreateCmd.Flags().StringVar(&draftTopic, "draft", "", "generate the post from this topic before publishing")
	reviewsReplyCmd.Flags().BoolVar(&draftReply, "draft", false, "generate the reply instead of using the given text")

	profileCmd.AddCommand(profileSetCmd)
	postsCmd.AddCommand(postsCreateCmd)
	reviewsCmd.AddCommand(reviewsReplyCmd)
}
