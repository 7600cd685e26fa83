package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/display"
)

// ApplicantsCmd applies to postings and manages applications
var ApplicantsCmd = &cobra.Command{
	Use:   "applicants",
	Short: "Apply to postings and manage applications",
	Long: `Apply to a posting with attached documents, track your applications, and
for employers review, accept, or decline applicants.

Examples:
  jobport applicants apply --article 7 --phone 0901234567 --file cv.pdf
  jobport applicants mine
  jobport applicants list --article 7 --status SUBMITTED
  jobport applicants score 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var applicantsApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply to a posting",
	RunE: func(cmd *cobra.Command, args []string) error {
		articleID, _ := cmd.Flags().GetInt64("article")
		fullName, _ := cmd.Flags().GetString("full-name")
		phone, _ := cmd.Flags().GetString("phone")
		coverLetter, _ := cmd.Flags().GetString("cover-letter")
		filePaths, _ := cmd.Flags().GetStringSlice("file")

		files := make([]api.Upload, 0, len(filePaths))
		for _, path := range filePaths {
			upload, err := readUpload(path)
			if err != nil {
				return err
			}
			files = append(files, upload)
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if fullName == "" {
			// Default to the cached profile name
			if profile, err := client.CachedProfile(); err == nil && profile != nil {
				fullName = profile.FullName
			}
		}

		payload := api.ApplicantPayload{
			FullName:    fullName,
			Phone:       phone,
			CoverLetter: coverLetter,
			ArticleID:   articleID,
		}
		applicant, err := client.CreateApplicant(cmd.Context(), payload, files)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(applicant)
		}

		pterm.Success.Printf("Application #%d submitted for posting #%d\n", applicant.ID, articleID)
		return nil
	},
}

var applicantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applicants for a posting (employer)",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := pageQueryFromFlags(cmd)
		if err != nil {
			return err
		}
		if articleID, _ := cmd.Flags().GetInt64("article"); articleID > 0 {
			if query.Filters == nil {
				query.Filters = make(map[string]string)
			}
			query.Filters["articleId.equals"] = strconv.FormatInt(articleID, 10)
		}
		status, _ := cmd.Flags().GetString("status")

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		applicants, err := client.Applicants(cmd.Context(), query, api.ApplicantStatus(status))
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(applicants)
		}

		if len(applicants.Data) == 0 {
			pterm.Info.Println("No applicants found")
			return nil
		}
		for _, applicant := range applicants.Data {
			printApplicantLine(applicant)
		}
		pterm.Info.Printf("%d of %d applicants\n", len(applicants.Data), applicants.Total)
		return nil
	},
}

var applicantsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		applicant, err := client.Applicant(cmd.Context(), id)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(applicant)
		}

		printApplicant(applicant)
		return nil
	},
}

var applicantsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		applicants, err := client.MyApplications(cmd.Context())
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(applicants)
		}

		if len(applicants) == 0 {
			pterm.Info.Println("No applications")
			return nil
		}
		for _, applicant := range applicants {
			printApplicantLine(applicant)
		}
		return nil
	},
}

var applicantsAcceptCmd = &cobra.Command{
	Use:   "accept <id>",
	Short: "Accept an application (employer)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.AcceptApplicant(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Application #%d accepted\n", id)
		return nil
	},
}

var applicantsDeclineCmd = &cobra.Command{
	Use:   "decline <id>",
	Short: "Decline an application (employer)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.DeclineApplicant(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Application #%d declined\n", id)
		return nil
	},
}

var applicantsScoreCmd = &cobra.Command{
	Use:   "score <id>",
	Short: "Compute the match score for an application (employer)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		score, err := client.CalculateMatchScore(cmd.Context(), id)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(score)
		}

		printMatchScore(score)
		return nil
	},
}

func printApplicantLine(applicant api.Applicant) {
	pterm.Printf("  %s %s %s %s\n",
		pterm.LightCyan(idRef(applicant.ID)),
		pterm.White(applicant.FullName),
		pterm.Gray("posting "+idRef(applicant.ArticleID)),
		statusColor(string(applicant.Status)))
}

func printApplicant(applicant *api.Applicant) {
	printApplicantLine(*applicant)
	pterm.Printf("  %s %s\n", pterm.Gray("phone:"), orDash(applicant.Phone))
	if applicant.CoverLetter != "" {
		pterm.Printf("  %s %s\n", pterm.Gray("cover letter:"), applicant.CoverLetter)
	}
	for _, doc := range applicant.Documents {
		pterm.Printf("  %s %s\n", pterm.Gray("document:"), doc.FileName)
	}
	if applicant.MatchScore != nil {
		printMatchScore(applicant.MatchScore)
	}
}

func printMatchScore(score *api.MatchScore) {
	pterm.Printf("  %s %s\n", pterm.Gray("match:"), pterm.LightGreen(formatScore(score.Overall)))
	pterm.Printf("    %s %s  %s %s\n",
		pterm.Gray("structure:"), formatScore(score.Structure),
		pterm.Gray("skill:"), formatScore(score.Skill))
	pterm.Printf("    %s %s  %s %s\n",
		pterm.Gray("experience:"), formatScore(score.Experience),
		pterm.Gray("education:"), formatScore(score.Education))
}

func init() {
	applicantsApplyCmd.Flags().Int64("article", 0, "Posting id to apply to")
	applicantsApplyCmd.Flags().String("full-name", "", "Applicant name (defaults to the signed-in profile)")
	applicantsApplyCmd.Flags().String("phone", "", "Contact phone number")
	applicantsApplyCmd.Flags().String("cover-letter", "", "Cover letter text")
	applicantsApplyCmd.Flags().StringSlice("file", nil, "Document to attach, e.g. a CV (repeatable)")
	applicantsApplyCmd.MarkFlagRequired("article")
	applicantsApplyCmd.MarkFlagRequired("file")

	addPagingFlags(applicantsListCmd)
	applicantsListCmd.Flags().Int64("article", 0, "Restrict to one posting")
	applicantsListCmd.Flags().String("status", "", "Filter by status (SUBMITTED, ACCEPTED, DECLINED)")

	ApplicantsCmd.AddCommand(applicantsApplyCmd)
	ApplicantsCmd.AddCommand(applicantsListCmd)
	ApplicantsCmd.AddCommand(applicantsShowCmd)
	ApplicantsCmd.AddCommand(applicantsMineCmd)
	ApplicantsCmd.AddCommand(applicantsAcceptCmd)
	ApplicantsCmd.AddCommand(applicantsDeclineCmd)
	ApplicantsCmd.AddCommand(applicantsScoreCmd)
}
