package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finbooks/ledger/internal/adapter/http/dto"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Ledger CLI tool",
		Long:  `A command line interface for posting and inspecting double-entry transactions.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(transactionCmd())
	rootCmd.AddCommand(entryCmd())
	rootCmd.AddCommand(ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var name, accType string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateAccountRequest{Name: name, Type: strings.ToUpper(accType)}
			var resp dto.AccountResponse
			if err := doPost("/api/v1/accounts", req, &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&accType, "type", "", "Account type: asset, liability, equity, revenue, expense")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("type")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Get an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			if err := doGet("/api/v1/accounts/"+args[0], &resp); err != nil {
				return err
			}
			fmt.Printf("%-26s  %-20s  %-10s  %12s\n", "ID", "NAME", "TYPE", "BALANCE")
			fmt.Printf("%-26s  %-20s  %-10s  %12s\n", resp.ID, truncate(resp.Name, 20), resp.Type, formatAmount(resp.Balance))
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListAccountsResponse
			if err := doGet("/api/v1/accounts", &resp); err != nil {
				return err
			}
			fmt.Printf("%-26s  %-20s  %-10s  %12s\n", "ID", "NAME", "TYPE", "BALANCE")
			for _, a := range resp.Accounts {
				fmt.Printf("%-26s  %-20s  %-10s  %12s\n", a.ID, truncate(a.Name, 20), a.Type, formatAmount(a.Balance))
			}
			return nil
		},
	}

	entriesCmd := &cobra.Command{
		Use:   "entries <account-id>",
		Short: "Show an account with its entry history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountWithEntriesResponse
			if err := doGet("/api/v1/accounts/"+args[0]+"/entries", &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, entriesCmd)
	return cmd
}

func transactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction operations",
	}

	var txnID string
	var entryFlags []string
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced transaction",
		Long: `Post a balanced set of entries as one atomic transaction.

Each --entry takes the form <account-id>:<debit|credit>:<amount>, with the
amount in major currency units, e.g. --entry 01HX...:debit:12.34`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(entryFlags) < 2 {
				return errors.New("at least two --entry flags are required")
			}

			entries := make([]dto.EntryItem, 0, len(entryFlags))
			for _, raw := range entryFlags {
				item, err := parseEntryFlag(raw)
				if err != nil {
					return err
				}
				entries = append(entries, item)
			}

			req := dto.PostTransactionRequest{TransactionID: txnID, Entries: entries}
			var resp dto.TransactionResponse
			if err := doPost("/api/v1/transactions", req, &resp); err != nil {
				return err
			}

			fmt.Printf("Posted transaction %s (%d entries)\n", resp.TransactionID, len(resp.Entries))
			for _, a := range resp.Accounts {
				fmt.Printf("  %-26s  balance %12s\n", a.ID, formatAmount(a.Balance))
			}
			return nil
		},
	}
	postCmd.Flags().StringVar(&txnID, "id", "", "Transaction ID, the client-chosen grouping key")
	postCmd.Flags().StringArrayVar(&entryFlags, "entry", nil, "Entry as <account-id>:<debit|credit>:<amount>, repeatable")
	postCmd.MarkFlagRequired("id")

	getCmd := &cobra.Command{
		Use:   "get <transaction-id>",
		Short: "Get all entries posted under a transaction ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListEntriesResponse
			if err := doGet("/api/v1/transactions/"+args[0], &resp); err != nil {
				return err
			}
			printEntries(resp.Entries)
			return nil
		},
	}

	cmd.AddCommand(postCmd, getCmd)
	return cmd
}

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Entry operations",
	}

	getCmd := &cobra.Command{
		Use:   "get <entry-id>",
		Short: "Get an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.EntryResponse
			if err := doGet("/api/v1/entries/"+args[0], &resp); err != nil {
				return err
			}
			printJSON(resp)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListEntriesResponse
			if err := doGet("/api/v1/entries", &resp); err != nil {
				return err
			}
			printEntries(resp.Entries)
			return nil
		},
	}

	cmd.AddCommand(getCmd, listCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check whole-ledger debit/credit consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ConsistencyResponse
			if err := doGet("/api/v1/ledger/consistency", &resp); err != nil {
				return err
			}

			status := "PASSED"
			if !resp.Consistent {
				status = "FAILED"
			}
			fmt.Printf("Consistency check %s\n", status)
			fmt.Printf("Total debits:  %s\n", formatAmount(resp.TotalDebits))
			fmt.Printf("Total credits: %s\n", formatAmount(resp.TotalCredits))

			if !resp.Consistent {
				return errors.New("ledger is inconsistent")
			}
			return nil
		},
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Replay entries and compare against recorded balances",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				var resp dto.ReconciliationResponse
				if err := doGet("/api/v1/ledger/accounts/"+args[0]+"/reconciliation", &resp); err != nil {
					return err
				}
				printJSON(resp)
				return nil
			}

			var resp []*dto.ReconciliationResponse
			if err := doGet("/api/v1/ledger/reconciliation", &resp); err != nil {
				return err
			}
			fmt.Printf("%-26s  %12s  %12s  %s\n", "ACCOUNT", "RECORDED", "CALCULATED", "OK")
			for _, r := range resp {
				fmt.Printf("%-26s  %12s  %12s  %v\n", r.AccountID, formatAmount(r.RecordedBalance), formatAmount(r.CalculatedBalance), r.Reconciled)
			}
			return nil
		},
	}

	cmd.AddCommand(consistencyCmd, reconcileCmd)
	return cmd
}

// parseEntryFlag parses <account-id>:<debit|credit>:<amount>.
func parseEntryFlag(raw string) (dto.EntryItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return dto.EntryItem{}, fmt.Errorf("invalid entry %q, want <account-id>:<debit|credit>:<amount>", raw)
	}

	amount, err := parseAmount(parts[2])
	if err != nil {
		return dto.EntryItem{}, fmt.Errorf("invalid amount in entry %q: %w", raw, err)
	}

	return dto.EntryItem{
		AccountID: parts[0],
		Direction: strings.ToUpper(parts[1]),
		Amount:    amount,
	}, nil
}

// parseAmount converts a major-unit decimal string into minor units.
func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	minor := d.Mul(decimal.NewFromInt(100))
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than two decimal places", s)
	}

	return minor.IntPart(), nil
}

// formatAmount renders minor units as a major-unit decimal string.
func formatAmount(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func printEntries(entries []*dto.EntryResponse) {
	fmt.Printf("%-26s  %-26s  %-6s  %12s  %-26s\n", "ID", "TRANSACTION", "DIR", "AMOUNT", "ACCOUNT")
	for _, e := range entries {
		fmt.Printf("%-26s  %-26s  %-6s  %12s  %-26s\n", e.ID, e.TransactionID, e.Direction, formatAmount(e.Amount), e.AccountID)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func doGet(path string, out any) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func doPost(path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr dto.ErrorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return fmt.Errorf("%s: %s (status %d)", apiErr.Error, apiErr.Message, resp.StatusCode)
			}
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(data, out)
}
