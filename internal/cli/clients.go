package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hawklabs/hawk/internal/client"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage the client ledger",
	Long: `List clients with their payment standing, or manage the ledger with the
add, rm, link and unlink subcommands. The ledger lives in a TOML file;
edits are atomic and keep manual formatting out of harm's way.`,
	RunE: runClientsList,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients with payment standing",
	RunE:  runClientsList,
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client",
	RunE:  runClientsAdd,
}

var clientsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsRm,
}

var clientsLinkCmd = &cobra.Command{
	Use:   "link <project> <client-id>",
	Short: "Link a project to a client",
	Long:  "Link a project to a client. A project belongs to at most one client; linking moves it from any previous owner.",
	Args:  cobra.ExactArgs(2),
	RunE:  runClientsLink,
}

var clientsUnlinkCmd = &cobra.Command{
	Use:   "unlink <project>",
	Short: "Unlink a project from its client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsUnlink,
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsListCmd, clientsAddCmd, clientsRmCmd, clientsLinkCmd, clientsUnlinkCmd)

	clientsAddCmd.Flags().String("id", "", "Unique client id (slug), required")
	clientsAddCmd.Flags().String("name", "", "Display name, required")
	clientsAddCmd.Flags().String("company", "", "Company name")
	clientsAddCmd.Flags().String("email", "", "Contact email")
	clientsAddCmd.Flags().String("phone", "", "Contact phone")
	clientsAddCmd.Flags().String("address", "", "Postal address")
	clientsAddCmd.Flags().String("notes", "", "Free-form notes")
	clientsAddCmd.Flags().String("cycle", client.CycleAnnual, "Billing cycle: annual, monthly or one-time")
	clientsAddCmd.Flags().Int("amount", 0, "Billing amount in whole currency units")
	clientsAddCmd.Flags().String("currency", client.DefaultCurrency, "Billing currency code")
	clientsAddCmd.Flags().String("next-payment", "", "Next payment date, YYYY-MM-DD")
}

func runClientsList(cmd *cobra.Command, _ []string) error {
	clients, err := deps.Store.List()
	if err != nil {
		return fmt.Errorf("list clients: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), clientTable(clients, time.Now()))
	return nil
}

func runClientsAdd(cmd *cobra.Command, _ []string) error {
	c := client.Client{
		ID:           getStringFlag(cmd, "id"),
		Name:         getStringFlag(cmd, "name"),
		Company:      getStringFlag(cmd, "company"),
		Email:        getStringFlag(cmd, "email"),
		Phone:        getStringFlag(cmd, "phone"),
		Address:      getStringFlag(cmd, "address"),
		Notes:        getStringFlag(cmd, "notes"),
		BillingCycle: getStringFlag(cmd, "cycle"),
		Amount:       getIntFlag(cmd, "amount"),
		Currency:     getStringFlag(cmd, "currency"),
		NextPayment:  getStringFlag(cmd, "next-payment"),
	}

	cycles := []string{client.CycleAnnual, client.CycleMonthly, client.CycleOneTime}
	if !slices.Contains(cycles, c.BillingCycle) {
		return fmt.Errorf("invalid --cycle %q: must be one of: %s", c.BillingCycle, strings.Join(cycles, ", "))
	}
	if c.NextPayment != "" {
		if _, err := time.Parse(client.DateLayout, c.NextPayment); err != nil {
			return fmt.Errorf("invalid --next-payment %q: use YYYY-MM-DD", c.NextPayment)
		}
	}
	if c.Amount < 0 {
		return fmt.Errorf("invalid --amount %d: must not be negative", c.Amount)
	}

	if err := deps.Store.Create(c); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s added %s (%s)\n", symOK(), c.Name, c.ID)
	return nil
}

func runClientsRm(cmd *cobra.Command, args []string) error {
	id := args[0]

	// Delete is a no-op for unknown ids; look up first so typos fail loud.
	c, err := deps.Store.Get(id)
	if err != nil {
		return err
	}
	if err := deps.Store.Delete(id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s removed %s (%s)\n", symOK(), c.Name, c.ID)
	return nil
}

func runClientsLink(cmd *cobra.Command, args []string) error {
	projectName, clientID := args[0], args[1]

	if err := deps.Store.LinkProject(projectName, clientID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s linked %s to %s\n", symOK(), projectName, clientID)
	return nil
}

func runClientsUnlink(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	if _, linked, err := deps.Store.ForProject(projectName); err != nil {
		return err
	} else if !linked {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is not linked to any client\n", projectName)
		return nil
	}

	if err := deps.Store.UnlinkProject(projectName); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s unlinked %s\n", symOK(), projectName)
	return nil
}

// getIntFlag retrieves an int flag value from the command.
func getIntFlag(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return val
}
