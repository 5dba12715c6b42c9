package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bogo-app/bogo/internal/config"
)

type reportView struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Session   string   `json:"session"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Keywords  []string `json:"keywords"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Status    string   `json:"status"`
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// --- submit ---

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the current draft as a report",
	Long: `Submit the current draft as a report.

Fields given as flags are merged into the draft first, so a report can
be written and submitted in one step:

  bogo submit --title "오전 업무" --content "회의 준비 및 버그 수정 진행"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		session, _ := cmd.Flags().GetString("session")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		patch := map[string]any{}
		if title != "" {
			patch["title"] = title
		}
		if content != "" {
			patch["content"] = content
		}
		if session != "" {
			patch["session"] = session
		}
		if len(patch) > 0 {
			printStep("Saving draft...")
			resp, err := client.patch("/draft", patch)
			if err != nil {
				return err
			}
			var draft any
			if err := decodeJSON(resp, &draft); err != nil {
				return err
			}
		}

		printStep("Submitting...")
		resp, err := client.post("/submit", nil)
		if err != nil {
			return err
		}

		var created reportView
		if err := decodeJSON(resp, &created); err != nil {
			return err
		}

		printSuccess("Submitted report %s", shortID(created.ID))
		if len(created.Keywords) > 0 {
			printStatus("Keywords", "%v", created.Keywords)
		}
		return nil
	},
}

func init() {
	submitCmd.Flags().String("title", "", "report title")
	submitCmd.Flags().String("content", "", "report content")
	submitCmd.Flags().String("session", "", "session (AM or PM; default follows the clock)")
}

// --- list ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get("/reports")
		if err != nil {
			return err
		}

		var list []reportView
		if err := decodeJSON(resp, &list); err != nil {
			return err
		}

		if len(list) == 0 {
			fmt.Println("No reports found.")
			return nil
		}
		if limit > 0 && len(list) > limit {
			list = list[:limit]
		}

		for _, r := range list {
			session := r.Session
			if session == "" {
				session = "--"
			}
			fmt.Printf("%s  %s  %-2s  %s\n",
				colorize(colorCyan, shortID(r.ID)),
				r.CreatedAt,
				session,
				r.Title,
			)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Int("limit", 10, "maximum number of reports to list")
}

// --- show ---

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		share, _ := cmd.Flags().GetBool("share")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		if share {
			resp, err := client.get("/reports/" + args[0] + "/share")
			if err != nil {
				return err
			}
			var result map[string]string
			if err := decodeJSON(resp, &result); err != nil {
				return err
			}
			fmt.Println(result["text"])
			return nil
		}

		resp, err := client.get("/reports/" + args[0])
		if err != nil {
			return err
		}

		var r reportView
		if err := decodeJSON(resp, &r); err != nil {
			return err
		}

		fmt.Printf("%s\n", colorize(colorBold, r.Title))
		printStatus("ID", "%s", r.ID)
		printStatus("Type", "%s", r.Type)
		if r.Session != "" {
			printStatus("Session", "%s", r.Session)
		}
		printStatus("Status", "%s", r.Status)
		printStatus("Created", "%s", r.CreatedAt)
		if len(r.Keywords) > 0 {
			printStatus("Keywords", "%v", r.Keywords)
		}
		fmt.Printf("\n%s\n", r.Content)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("share", false, "print the shareable plain-text rendering")
}

// --- delete ---

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Archive a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete("/reports/" + args[0])
		if err != nil {
			return err
		}

		var result map[string]bool
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Archived report %s", shortID(args[0]))
		return nil
	},
}

// --- today ---

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's submission status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get("/reports/today")
		if err != nil {
			return err
		}

		var status struct {
			Date           string      `json:"date"`
			ActiveSession  string      `json:"activeSession"`
			WorkStart      string      `json:"workStart"`
			WarningTime    string      `json:"warningTime"`
			ShowAMWarning  bool        `json:"showAmWarning"`
			AMReport       *reportView `json:"amReport"`
			PMReport       *reportView `json:"pmReport"`
			HasBothReports bool        `json:"hasBothReports"`
		}
		if err := decodeJSON(resp, &status); err != nil {
			return err
		}

		printStatus("Date", "%s", status.Date)
		printStatus("Session", "%s", status.ActiveSession)
		printStatus("Work start", "%s", status.WorkStart)
		if status.AMReport != nil {
			printStatus("AM", "%s", status.AMReport.Title)
		} else {
			printStatus("AM", "not submitted")
		}
		if status.PMReport != nil {
			printStatus("PM", "%s", status.PMReport.Title)
		} else {
			printStatus("PM", "not submitted")
		}
		if status.ShowAMWarning {
			printWarning("Morning report not submitted (deadline %s)", status.WorkStart)
		}
		if status.HasBothReports {
			printSuccess("Both reports submitted")
		}
		return nil
	},
}

// --- draft ---

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage the working draft",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current draft as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get("/draft")
		if err != nil {
			return err
		}

		var draft any
		if err := decodeJSON(resp, &draft); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(draft)
	},
}

var draftSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update draft fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		reportType, _ := cmd.Flags().GetString("type")
		session, _ := cmd.Flags().GetString("session")

		patch := map[string]any{}
		if title != "" {
			patch["title"] = title
		}
		if content != "" {
			patch["content"] = content
		}
		if reportType != "" {
			patch["type"] = reportType
		}
		if session != "" {
			patch["session"] = session
		}
		if len(patch) == 0 {
			return fmt.Errorf("nothing to set; use --title, --content, --type or --session")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.patch("/draft", patch)
		if err != nil {
			return err
		}

		var draft any
		if err := decodeJSON(resp, &draft); err != nil {
			return err
		}

		printSuccess("Draft updated")
		return nil
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the current draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete("/draft")
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}

		printSuccess("Draft cleared")
		return nil
	},
}

func init() {
	draftSetCmd.Flags().String("title", "", "draft title")
	draftSetCmd.Flags().String("content", "", "draft content")
	draftSetCmd.Flags().String("type", "", "report type (daily, weekly, monthly)")
	draftSetCmd.Flags().String("session", "", "session (AM or PM)")
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftSetCmd)
	draftCmd.AddCommand(draftClearCmd)
}

// --- templates ---

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List report templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get("/templates")
		if err != nil {
			return err
		}

		var templates []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Content string `json:"content"`
		}
		if err := decodeJSON(resp, &templates); err != nil {
			return err
		}

		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		for _, t := range templates {
			fmt.Printf("\n%s  %s\n", colorize(colorCyan, shortID(t.ID)), colorize(colorBold, t.Name))
			fmt.Println(t.Content)
		}
		return nil
	},
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
