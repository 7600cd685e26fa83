package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/display"
)

// ReviewCmd moderates pending postings
var ReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Moderate pending postings (admin)",
	Long: `Review the moderation queue: list postings awaiting approval, approve or
reject them, and inspect portal activity counts.

Examples:
  jobport review pending
  jobport review approve 7
  jobport review reject 7 --reason "Duplicate posting"
  jobport review stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var reviewPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List postings awaiting approval",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := pageQueryFromFlags(cmd)
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		articles, err := client.PendingArticles(cmd.Context(), query)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(articles)
		}

		printArticleList(articles)
		return nil
	},
}

var reviewApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending posting",
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

		if err := client.ApproveArticle(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Posting %s approved\n", idRef(id))
		return nil
	},
}

var reviewRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.RejectArticle(cmd.Context(), id, reason); err != nil {
			return err
		}

		pterm.Success.Printf("Posting %s rejected\n", idRef(id))
		return nil
	},
}

var reviewStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show portal activity counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		byCompany, err := client.ArticleCountByCompany(ctx)
		if err != nil {
			return err
		}
		articlesByDate, err := client.ArticleCountByDate(ctx)
		if err != nil {
			return err
		}
		applicantsByDate, err := client.ApplicantCountByDate(ctx)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(map[string]any{
				"articlesByCompany": byCompany,
				"articlesByDate":    articlesByDate,
				"applicantsByDate":  applicantsByDate,
			})
		}

		pterm.DefaultSection.Println("Postings by company")
		for _, row := range byCompany {
			pterm.Printf("  %s %s %s\n",
				pterm.LightCyan(idRef(row.CompanyID)),
				pterm.White(row.CompanyName),
				pterm.Yellow(formatCount(row.Count)))
		}

		pterm.DefaultSection.Println("Postings by date")
		for _, row := range articlesByDate {
			pterm.Printf("  %s %s\n", pterm.Gray(row.Date), pterm.Yellow(formatCount(row.Count)))
		}

		pterm.DefaultSection.Println("Applications by date")
		for _, row := range applicantsByDate {
			pterm.Printf("  %s %s\n", pterm.Gray(row.Date), pterm.Yellow(formatCount(row.Count)))
		}
		return nil
	},
}

func init() {
	addPagingFlags(reviewPendingCmd)
	reviewRejectCmd.Flags().String("reason", "", "Rejection reason sent to the employer")
	reviewRejectCmd.MarkFlagRequired("reason")

	ReviewCmd.AddCommand(reviewPendingCmd)
	ReviewCmd.AddCommand(reviewApproveCmd)
	ReviewCmd.AddCommand(reviewRejectCmd)
	ReviewCmd.AddCommand(reviewStatsCmd)
}
