package ikctl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/interviews"
	"github.com/spf13/cobra"
)

const (
	playgroundUserID   = "test_user_001"
	playgroundPassword = "secret_password"
)

// newPlaygroundCommand walks through every storage operation once: user
// creation, interview creation, update, transcript appends, read back and
// listing.
func newPlaygroundCommand(c *cli) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "playground",
		Short: "Run a scripted walkthrough against the datastore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			printSeparator(out, "1. Initializing Database")
			fmt.Fprintf(out, "Using database: %s\n", c.cfg.DatabaseDSN)
			svc, closeDB, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer closeDB()
			fmt.Fprintln(out, "Database initialized successfully.")

			printSeparator(out, "2. Creating User")
			if _, err := svc.Users.GetUser(ctx, userID); err == nil {
				fmt.Fprintf(out, "User '%s' already exists.\n", userID)
			} else if errors.Is(err, common.ErrorNotFound) {
				if _, err := svc.Auth.Register(ctx, userID, playgroundPassword); err != nil {
					return err
				}
				fmt.Fprintf(out, "User '%s' created.\n", userID)
			} else {
				return err
			}

			printSeparator(out, "3. Creating Interview")
			id, err := svc.Interviews.CreateInterview(ctx, userID, map[string]any{
				"created_at": "2025-12-10T10:00:00Z",
				"mode":       "training",
				"setup": map[string]any{
					"interviewType":  "Mock Interview",
					"targetIndustry": "Software Engineering",
				},
				"transcript": []any{},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Interview created with ID: %s\n", id)

			printSeparator(out, "4. Updating Interview")
			if _, err := svc.Interviews.UpdateInterview(ctx, id, map[string]any{
				"last_question":           "Tell me about yourself.",
				"last_question_audio_url": "/static/audio/question_1.mp3",
			}); err != nil {
				return err
			}
			fmt.Fprintln(out, "Interview updated with last question info.")

			printSeparator(out, "5. Appending Transcript")
			if _, err := svc.Interviews.AppendTranscriptEntry(ctx, id, interviews.TranscriptEntry{
				Role:      interviews.RoleUser,
				Content:   "I am a software engineer with 5 years of experience.",
				Timestamp: "2025-12-10T10:01:00Z",
			}); err != nil {
				return err
			}
			fmt.Fprintln(out, "Appended user message.")
			if _, err := svc.Interviews.AppendTranscriptEntry(ctx, id, interviews.TranscriptEntry{
				Role:      interviews.RoleAI,
				Content:   "That's great. What is your strongest technical skill?",
				Timestamp: "2025-12-10T10:01:05Z",
				AudioURL:  "/static/audio/reply_1.mp3",
			}); err != nil {
				return err
			}
			fmt.Fprintln(out, "Appended AI message.")

			printSeparator(out, "6. Retrieving Interview")
			iv, err := svc.Interviews.GetInterview(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Interview ID: %s\n", iv.ID)
			fmt.Fprintf(out, "Mode: %s\n", iv.Mode)
			fmt.Fprintf(out, "Transcript count: %d\n", len(iv.Transcript))
			fmt.Fprintln(out, "Transcript Content:")
			for _, e := range iv.Transcript {
				fmt.Fprintf(out, "  [%s] %s\n", strings.ToUpper(string(e.Role)), e.Content)
			}

			printSeparator(out, "7. Listing User Interviews")
			list, err := svc.Interviews.ListInterviews(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Found %d interviews for user '%s':\n", len(list), userID)
			for _, s := range list {
				fmt.Fprintf(out, " - ID: %s, Date: %s\n", s.ID, s.CreatedAt)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", playgroundUserID, "user to run the walkthrough as")
	return cmd
}
