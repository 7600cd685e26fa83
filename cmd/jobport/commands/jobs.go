package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/display"
	"github.com/hanoivibes/jobport/errors"
)

// JobsCmd browses and manages job postings
var JobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse and manage job postings",
	Long: `Browse the public posting catalog and, for employers, manage your own
postings.

Examples:
  jobport jobs list --size 20 --sort createdAt,desc
  jobport jobs list --filter companyId.equals=3
  jobport jobs show 7
  jobport jobs post --title "Backend Engineer" --due 2026-10-01
  jobport jobs mine --status APPROVED
  jobport jobs tags skills`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List public postings",
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

		articles, err := client.Articles(cmd.Context(), query)
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

var jobsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one posting",
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

		article, err := client.Article(cmd.Context(), id)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(article)
		}

		printArticle(article)
		return nil
	},
}

var jobsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a new posting (employer)",
	Long: `Publish a new posting. The posting enters PENDING state until an
administrator approves it.

Example:
  jobport jobs post --title "Backend Engineer" --description "Go services" \
    --salary-min 1000 --salary-max 2000 --due 2026-10-01 --image logo.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := articlePayloadFromFlags(cmd)
		if err != nil {
			return err
		}

		var image *api.Upload
		if imagePath, _ := cmd.Flags().GetString("image"); imagePath != "" {
			upload, err := readUpload(imagePath)
			if err != nil {
				return err
			}
			image = &upload
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		article, err := client.CreateArticle(cmd.Context(), payload, image)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(article)
		}

		pterm.Success.Printf("Posting created: #%d %s\n", article.ID, article.Title)
		pterm.Info.Println("The posting is pending review")
		return nil
	},
}

var jobsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a posting (employer)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		payload, err := articlePayloadFromFlags(cmd)
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		article, err := client.UpdateArticle(cmd.Context(), id, payload)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(article)
		}

		pterm.Success.Printf("Posting #%d updated\n", article.ID)
		return nil
	},
}

var jobsImageCmd = &cobra.Command{
	Use:   "image <id> <file>",
	Short: "Replace a posting's image (employer)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		image, err := readUpload(args[1])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.UpdateArticleImage(cmd.Context(), id, image); err != nil {
			return err
		}

		pterm.Success.Printf("Image for posting #%d updated\n", id)
		return nil
	},
}

var jobsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own postings (employer)",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		articles, err := client.MyArticles(cmd.Context(), api.ArticleStatus(status))
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(articles)
		}

		if len(articles) == 0 {
			pterm.Info.Println("No postings")
			return nil
		}
		for _, article := range articles {
			printArticleLine(article)
		}
		return nil
	},
}

var jobsCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a posting to new applications (employer)",
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

		if err := client.CloseArticle(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Posting #%d closed\n", id)
		return nil
	},
}

var jobsTagsCmd = &cobra.Command{
	Use:   "tags <industries|levels|models|skills>",
	Short: "List taxonomy values used by postings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		var tags []api.Tag
		switch args[0] {
		case "industries":
			tags, err = client.Industries(cmd.Context())
		case "levels":
			tags, err = client.JobLevels(cmd.Context())
		case "models":
			tags, err = client.WorkingModels(cmd.Context())
		case "skills":
			tags, err = client.Skills(cmd.Context())
		default:
			return errors.Newf("unknown tag kind %q (expected industries, levels, models, or skills)", args[0])
		}
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(tags)
		}

		for _, tag := range tags {
			pterm.Printf("  %s %s\n", pterm.LightCyan(idRef(tag.ID)), tag.Name)
		}
		return nil
	},
}

// pageQueryFromFlags builds a PageQuery from the shared paging flags
func pageQueryFromFlags(cmd *cobra.Command) (api.PageQuery, error) {
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	sort, _ := cmd.Flags().GetString("sort")
	filters, _ := cmd.Flags().GetStringSlice("filter")

	query := api.PageQuery{Page: page, Size: size, Sort: sort}
	for _, filter := range filters {
		key, value, found := strings.Cut(filter, "=")
		if !found {
			return api.PageQuery{}, errors.Newf("invalid filter %q (expected key=value)", filter)
		}
		if query.Filters == nil {
			query.Filters = make(map[string]string)
		}
		query.Filters[key] = value
	}
	return query, nil
}

// addPagingFlags registers the shared paging flags on a list command
func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 0, "Page number (zero-based)")
	cmd.Flags().Int("size", 10, "Page size")
	cmd.Flags().String("sort", "", "Sort order, e.g. createdAt,desc")
	cmd.Flags().StringSlice("filter", nil, "Criteria filter, e.g. companyId.equals=3 (repeatable)")
}

func articlePayloadFromFlags(cmd *cobra.Command) (api.ArticlePayload, error) {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	requirement, _ := cmd.Flags().GetString("requirement")
	due, _ := cmd.Flags().GetString("due")
	industries, _ := cmd.Flags().GetInt64Slice("industry")
	levels, _ := cmd.Flags().GetInt64Slice("level")
	models, _ := cmd.Flags().GetInt64Slice("model")
	skills, _ := cmd.Flags().GetInt64Slice("skill")

	payload := api.ArticlePayload{
		Title:           title,
		Description:     description,
		Requirement:     requirement,
		DueDate:         due,
		IndustryIDs:     industries,
		JobLevelIDs:     levels,
		WorkingModelIDs: models,
		SkillIDs:        skills,
	}
	if cmd.Flags().Changed("salary-min") {
		min, _ := cmd.Flags().GetInt64("salary-min")
		payload.SalaryMin = &min
	}
	if cmd.Flags().Changed("salary-max") {
		max, _ := cmd.Flags().GetInt64("salary-max")
		payload.SalaryMax = &max
	}
	return payload, nil
}

func addArticleFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Posting title")
	cmd.Flags().String("description", "", "Posting description")
	cmd.Flags().String("requirement", "", "Candidate requirements")
	cmd.Flags().Int64("salary-min", 0, "Minimum salary")
	cmd.Flags().Int64("salary-max", 0, "Maximum salary")
	cmd.Flags().String("due", "", "Application deadline (YYYY-MM-DD)")
	cmd.Flags().Int64Slice("industry", nil, "Industry tag id (repeatable)")
	cmd.Flags().Int64Slice("level", nil, "Job level tag id (repeatable)")
	cmd.Flags().Int64Slice("model", nil, "Working model tag id (repeatable)")
	cmd.Flags().Int64Slice("skill", nil, "Skill tag id (repeatable)")
}

func printArticleList(articles api.List[api.Article]) {
	if len(articles.Data) == 0 {
		pterm.Info.Println("No postings found")
		return
	}
	for _, article := range articles.Data {
		printArticleLine(article)
	}
	pterm.Info.Printf("%d of %d postings\n", len(articles.Data), articles.Total)
}

func printArticleLine(article api.Article) {
	company := ""
	if article.Company != nil {
		company = article.Company.Name
	}
	pterm.Printf("  %s %s %s %s\n",
		pterm.LightCyan(idRef(article.ID)),
		pterm.White(article.Title),
		pterm.Gray(orDash(company)),
		statusColor(string(article.Status)))
}

func printArticle(article *api.Article) {
	printArticleLine(*article)
	pterm.Printf("  %s %s\n", pterm.Gray("salary:"), salaryRange(article.SalaryMin, article.SalaryMax))
	pterm.Printf("  %s %s\n", pterm.Gray("due:"), orDash(article.DueDate))
	if article.Description != "" {
		pterm.Printf("  %s %s\n", pterm.Gray("about:"), article.Description)
	}
	if article.Requirement != "" {
		pterm.Printf("  %s %s\n", pterm.Gray("requires:"), article.Requirement)
	}
	for _, group := range []struct {
		label string
		tags  []api.Tag
	}{
		{"industries", article.Industries},
		{"levels", article.JobLevels},
		{"models", article.WorkingModels},
		{"skills", article.Skills},
	} {
		if len(group.tags) == 0 {
			continue
		}
		names := make([]string, len(group.tags))
		for i, tag := range group.tags {
			names[i] = tag.Name
		}
		pterm.Printf("  %s %s\n", pterm.Gray(group.label+":"), pterm.Yellow(strings.Join(names, ", ")))
	}
}

// statusColor renders a lifecycle status with a stable color per state
func statusColor(status string) string {
	switch status {
	case "APPROVED", "ACCEPTED":
		return pterm.LightGreen(status)
	case "PENDING", "SUBMITTED":
		return pterm.Yellow(status)
	case "REJECTED", "DECLINED":
		return pterm.LightRed(status)
	case "CLOSED":
		return pterm.Gray(status)
	case "":
		return ""
	default:
		return status
	}
}

func init() {
	addPagingFlags(jobsListCmd)
	addArticleFlags(jobsPostCmd)
	jobsPostCmd.Flags().String("image", "", "Posting image file")
	jobsPostCmd.MarkFlagRequired("title")
	jobsPostCmd.MarkFlagRequired("due")
	addArticleFlags(jobsUpdateCmd)
	jobsMineCmd.Flags().String("status", "", "Filter by status (PENDING, APPROVED, REJECTED, CLOSED)")

	JobsCmd.AddCommand(jobsListCmd)
	JobsCmd.AddCommand(jobsShowCmd)
	JobsCmd.AddCommand(jobsPostCmd)
	JobsCmd.AddCommand(jobsUpdateCmd)
	JobsCmd.AddCommand(jobsImageCmd)
	JobsCmd.AddCommand(jobsMineCmd)
	JobsCmd.AddCommand(jobsCloseCmd)
	JobsCmd.AddCommand(jobsTagsCmd)
}
