package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"reminder-engine/internal/catalog"
	"reminder-engine/internal/config"
	"reminder-engine/internal/engine"
	"reminder-engine/internal/model"
	"reminder-engine/internal/service"
)

func computeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute reminders for a patient document (YAML or JSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			asJSON, _ := cmd.Flags().GetBool("json")
			now, _ := cmd.Flags().GetString("now")
			profileFlag, _ := cmd.Flags().GetString("profile")
			includeOptional, _ := cmd.Flags().GetBool("include-optional")

			req, err := loadDocument(file)
			if err != nil {
				return err
			}
			if now != "" {
				req.Now = now
			}
			if profileFlag != "" {
				req.ScheduleProfile = model.ScheduleProfile(profileFlag)
			}
			if includeOptional {
				req.IncludeOptional = true
			}

			svc, done, err := commandService(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			resp, err := svc.Evaluate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return printReminders(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringP("file", "f", "", "Path to a patient document (.yaml, .yml or .json)")
	cmd.Flags().Bool("json", false, "Print the full response envelope as JSON")
	cmd.Flags().String("now", "", "Evaluation instant (ISO date or RFC 3339); defaults to the current time")
	cmd.Flags().String("profile", "", "Schedule profile override (AUSTRIA or GLOBAL)")
	cmd.Flags().Bool("include-optional", false, "Include opt-in families such as hepatitis A")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// loadDocument reads a reminder request from disk. Files ending in .json
// are decoded as JSON, everything else as YAML.
func loadDocument(path string) (*model.ReminderRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var req model.ReminderRequest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &req)
	} else {
		err = yaml.Unmarshal(data, &req)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &req, nil
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printReminders(w io.Writer, resp *model.ReminderResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Profile: %s\n\n", resp.CalculationMetadata.ScheduleProfile)
	fmt.Fprintln(tw, "STATUS\tFAMILY\tNEXT DUE\tMESSAGE")
	for _, r := range resp.CalculationResult.Reminders {
		next := r.NextDueDate
		if next == "" {
			next = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Status, r.Title, next, r.Message)
	}
	for _, m := range resp.CalculationResult.Messages {
		fmt.Fprintf(tw, "\n%s %s: %s", m.Level, m.Code, m.Message)
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Read or store a patient's schedule profile override",
	}

	getCmd := &cobra.Command{
		Use:   "get <patient-id>",
		Short: "Show the stored override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := commandService(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			resp, err := svc.GetProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if resp.Profile == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no override\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], resp.Profile)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <patient-id> <AUSTRIA|GLOBAL>",
		Short: "Store an override",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := commandService(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			if err := svc.SetProfile(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], strings.ToUpper(strings.TrimSpace(args[1])))
			return nil
		},
	}

	cmd.AddCommand(getCmd, setCmd)
	return cmd
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the vaccine families the engine recognizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCatalog(cmd.OutOrStdout(), catalog.Default().Entries())
		},
	}
}

func printCatalog(w io.Writer, entries []catalog.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tRECOMMENDATION\tPROTECTS AGAINST")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Key, e.Label, e.Recommendation, e.ProtectsAgainst)
	}
	return tw.Flush()
}

func commandService(ctx context.Context) (*service.Service, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return service.New(engine.Default(), store, service.WithLogger(commandLogger(cfg))), closeStore, nil
}
