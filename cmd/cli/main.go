package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "walletledger-cli",
		Short: "Wallet ledger CLI tool",
		Long:  `A command line interface for interacting with the wallet ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wallet ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	conservationCmd := &cobra.Command{
		Use:   "conservation",
		Short: "Check that holder balances match the entry history",
		Run: func(cmd *cobra.Command, args []string) {
			checkConservation()
		},
	}

	ledgerCmd.AddCommand(conservationCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Holder commands
	holderCmd := &cobra.Command{
		Use:   "holder",
		Short: "Holder operations",
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <holder-id>",
		Short: "Show a holder's balances",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(args[0])
		},
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile <holder-id>",
		Short: "Recompute a holder's balance from its ledger entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reconcileHolder(args[0])
		},
	}

	holderCmd.AddCommand(balanceCmd)
	holderCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(holderCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkConservation() {
	status, body := get("/api/v1/ledger/conservation")

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if status != http.StatusOK {
		fmt.Printf("Conservation check FAILED (Status: %d)\n", status)
		printJSON(result)
		os.Exit(1)
	}

	fmt.Printf("Conservation check PASSED\n")
	if conserved, ok := result["conserved"].(bool); ok {
		fmt.Printf("Conserved: %v\n", conserved)
	}
	fmt.Printf("Status: %s\n", result["status"])
}

func showBalance(holderID string) {
	status, body := get("/api/v1/holders/" + holderID)

	if status != http.StatusOK {
		fmt.Printf("Failed to fetch holder (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var holder map[string]any
	if err := json.Unmarshal(body, &holder); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Holder:    %s (%s)\n", holder["id"], holder["type"])
	fmt.Printf("Balance:   %v %v\n", holder["balance"], holder["currency"])
	fmt.Printf("Pending:   %v\n", holder["pending_balance"])
	fmt.Printf("Available: %v\n", holder["available_balance"])
}

func reconcileHolder(holderID string) {
	status, body := get("/api/v1/holders/" + holderID + "/reconciliation")

	if status != http.StatusOK {
		fmt.Printf("Failed to reconcile holder (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)

	if reconciled, ok := result["is_reconciled"].(bool); ok && !reconciled {
		fmt.Println("Holder is NOT reconciled")
		os.Exit(1)
	}
}

func get(path string) (int, []byte) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
