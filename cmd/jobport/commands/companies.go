package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/display"
)

// CompaniesCmd browses and manages companies
var CompaniesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Browse and manage companies",
	Long: `Browse the public company catalog. Administrators can create, update,
enable, and disable companies.

Examples:
  jobport companies list
  jobport companies list --all          # include disabled (admin)
  jobport companies create --name "Acme" --location "Hanoi"
  jobport companies disable 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var companiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := pageQueryFromFlags(cmd)
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		var companies api.List[api.Company]
		if all {
			companies, err = client.Companies(cmd.Context(), query)
		} else {
			companies, err = client.PublicCompanies(cmd.Context(), query)
		}
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(companies)
		}

		if len(companies.Data) == 0 {
			pterm.Info.Println("No companies found")
			return nil
		}
		for _, company := range companies.Data {
			printCompanyLine(company)
		}
		pterm.Info.Printf("%d of %d companies\n", len(companies.Data), companies.Total)
		return nil
	},
}

var companiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := companyPayloadFromFlags(cmd)

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		company, err := client.CreateCompany(cmd.Context(), payload)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(company)
		}

		pterm.Success.Printf("Company created: %s %s\n", idRef(company.ID), company.Name)
		return nil
	},
}

var companiesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a company (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		payload := companyPayloadFromFlags(cmd)

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		company, err := client.UpdateCompany(cmd.Context(), id, payload)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(company)
		}

		pterm.Success.Printf("Company %s updated\n", idRef(company.ID))
		return nil
	},
}

var companiesEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a company (admin)",
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

		if err := client.EnableCompany(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Company %s enabled\n", idRef(id))
		return nil
	},
}

var companiesDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a company (admin)",
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

		if err := client.DisableCompany(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Company %s disabled\n", idRef(id))
		return nil
	},
}

var companiesImageCmd = &cobra.Command{
	Use:   "image <id> <file>",
	Short: "Replace a company's image (admin)",
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

		if err := client.UpdateCompanyImage(cmd.Context(), id, image); err != nil {
			return err
		}

		pterm.Success.Printf("Image for company %s updated\n", idRef(id))
		return nil
	},
}

func companyPayloadFromFlags(cmd *cobra.Command) api.CompanyPayload {
	name, _ := cmd.Flags().GetString("name")
	address, _ := cmd.Flags().GetString("address")
	location, _ := cmd.Flags().GetString("location")
	description, _ := cmd.Flags().GetString("description")
	return api.CompanyPayload{
		Name:        name,
		Address:     address,
		Location:    location,
		Description: description,
	}
}

func addCompanyFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Company name")
	cmd.Flags().String("address", "", "Street address")
	cmd.Flags().String("location", "", "City or region")
	cmd.Flags().String("description", "", "Company description")
}

func printCompanyLine(company api.Company) {
	state := ""
	if !company.Enabled {
		state = pterm.LightRed("disabled")
	}
	pterm.Printf("  %s %s %s %s\n",
		pterm.LightCyan(idRef(company.ID)),
		pterm.White(company.Name),
		pterm.Gray(orDash(company.Location)),
		state)
}

func init() {
	addPagingFlags(companiesListCmd)
	companiesListCmd.Flags().Bool("all", false, "Include disabled companies (admin)")

	addCompanyFlags(companiesCreateCmd)
	companiesCreateCmd.MarkFlagRequired("name")
	addCompanyFlags(companiesUpdateCmd)

	CompaniesCmd.AddCommand(companiesListCmd)
	CompaniesCmd.AddCommand(companiesCreateCmd)
	CompaniesCmd.AddCommand(companiesUpdateCmd)
	CompaniesCmd.AddCommand(companiesEnableCmd)
	CompaniesCmd.AddCommand(companiesDisableCmd)
	CompaniesCmd.AddCommand(companiesImageCmd)
}
