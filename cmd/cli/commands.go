package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	membersCmd.Flags().String("gender", "", "Show the ranking for MALE or FEMALE")
	membersCmd.Flags().Bool("by-name", false, "Sort the roster by name")
	registerCmd.Flags().String("gender", "", "MALE or FEMALE (required)")
	_ = registerCmd.MarkFlagRequired("gender")
	removeCmd.Flags().BoolP("yes", "y", false, "Remove without asking for confirmation")

	recordCmd.Flags().StringSlice("winners", nil, "Winning member ids (one or two)")
	recordCmd.Flags().StringSlice("losers", nil, "Losing member ids (one or two)")
	recordCmd.Flags().String("score", "", `Score such as "6-4"`)
	recordCmd.Flags().String("type", "", "MALE_DOUBLES, FEMALE_DOUBLES or MIXED_DOUBLES")
	recordCmd.Flags().String("court-type", "", "GRASS, HARD or CLAY")
	recordCmd.Flags().String("court", "", "Court name")
	recordCmd.Flags().String("date", "", "Match date, defaults to the selected or current date")
	for _, name := range []string{"winners", "losers", "score", "type"} {
		_ = recordCmd.MarkFlagRequired(name)
	}

	matchesCmd.Flags().String("date", "", "Only show matches on this date")
	selectableCmd.Flags().String("type", "", "Match type to filter by (required)")
	_ = selectableCmd.MarkFlagRequired("type")
	publishCmd.Flags().String("gender", "", "Only publish this gender's leaderboard")

	attendanceCmd.AddCommand(attendanceGetCmd, attendanceSetCmd, attendanceToggleCmd, selectableCmd)

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(attendanceCmd)
	rootCmd.AddCommand(selectDateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil, nil)
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the roster, or a gender's ranking with --gender",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if gender, _ := cmd.Flags().GetString("gender"); gender != "" {
			query.Set("gender", gender)
		}
		if byName, _ := cmd.Flags().GetBool("by-name"); byName {
			query.Set("sort", "name")
		}
		return performRequest(http.MethodGet, "/members", query, nil)
	},
}

var memberCmd = &cobra.Command{
	Use:   "member <id>",
	Short: "Show a member's statistics and match history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/members/"+url.PathEscape(args[0]), nil, nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a new member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gender, _ := cmd.Flags().GetString("gender")
		return performRequest(http.MethodPost, "/members", nil, map[string]string{
			"name":   args[0],
			"gender": gender,
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a member from the roster. Their matches stay in the ledger.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), fmt.Sprintf("Remove member %s? Their past matches stay in the ledger.", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
		return performRequest(http.MethodDelete, "/members/"+url.PathEscape(args[0]), url.Values{"confirm": {"true"}}, nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a match result",
	RunE: func(cmd *cobra.Command, args []string) error {
		winners, _ := cmd.Flags().GetStringSlice("winners")
		losers, _ := cmd.Flags().GetStringSlice("losers")
		score, _ := cmd.Flags().GetString("score")
		matchType, _ := cmd.Flags().GetString("type")
		courtType, _ := cmd.Flags().GetString("court-type")
		court, _ := cmd.Flags().GetString("court")
		date, _ := cmd.Flags().GetString("date")

		return performRequest(http.MethodPost, "/matches", nil, map[string]any{
			"winnerIds": winners,
			"loserIds":  losers,
			"score":     score,
			"matchType": matchType,
			"courtType": courtType,
			"courtName": court,
			"date":      date,
		})
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List recorded matches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if date, _ := cmd.Flags().GetString("date"); date != "" {
			query.Set("date", date)
		}
		return performRequest(http.MethodGet, "/matches", query, nil)
	},
}

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Manage who showed up on a date",
}

var attendanceGetCmd = &cobra.Command{
	Use:   "get <date>",
	Short: "Show the members present on a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/attendance/"+url.PathEscape(args[0]), nil, nil)
	},
}

var attendanceSetCmd = &cobra.Command{
	Use:   "set <date> [member-id...]",
	Short: "Replace the attendance list for a date",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPut, "/attendance/"+url.PathEscape(args[0]), nil, map[string]any{
			"memberIds": args[1:],
		})
	},
}

var attendanceToggleCmd = &cobra.Command{
	Use:   "toggle <date> <member-id>",
	Short: "Mark a member present, or absent if they already were",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("/attendance/%s/toggle/%s", url.PathEscape(args[0]), url.PathEscape(args[1]))
		return performRequest(http.MethodPost, path, nil, nil)
	},
}

var selectableCmd = &cobra.Command{
	Use:   "selectable <date>",
	Short: "List the present members who may play a match type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matchType, _ := cmd.Flags().GetString("type")
		return performRequest(http.MethodGet, "/attendance/"+url.PathEscape(args[0])+"/selectable", url.Values{"matchType": {matchType}}, nil)
	},
}

var selectDateCmd = &cobra.Command{
	Use:   "select-date [date]",
	Short: "Show the selected date, or set it. An empty string clears it.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return performRequest(http.MethodGet, "/selected-date", nil, nil)
		}
		return performRequest(http.MethodPut, "/selected-date", nil, map[string]string{"date": args[0]})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare cached member totals with the match ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/verify", nil, nil)
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Post the leaderboards to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if gender, _ := cmd.Flags().GetString("gender"); gender != "" {
			query.Set("gender", gender)
		}
		return performRequest(http.MethodPost, "/leaderboard/publish", query, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil, nil)
	},
}

// confirm asks a yes/no question on stdout and reads the answer from in.
// Anything but y or yes counts as no.
func confirm(in io.Reader, question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func performRequest(method, endpoint string, query url.Values, payload any) error {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	printBody(respBody)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

// printBody pretty-prints JSON responses and prints anything else as is.
func printBody(body []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err == nil {
		pretty.WriteTo(os.Stdout)
		fmt.Println()
		return
	}
	fmt.Println(string(body))
}
