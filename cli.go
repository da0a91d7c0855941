package main

import (
	"fmt"
	"licaca-meal-log/client"
	"licaca-meal-log/draft"
	"licaca-meal-log/listview"
	"licaca-meal-log/utils"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func baseURL(configFile, server string) string {
	if server != "" {
		return server
	}
	initEnv(configFile)
	return utils.EnvConfig.Client.BaseURL
}

func addCmd(configFile *string) *cobra.Command {
	var (
		server string
		items  []string
		entry  = draft.New()
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a meal on a running server",
		Example: `  licaca add --foods "Toast" --type breakfast --time 08:00 --pain 2 --item "Toast:4"
  licaca add --foods "Curry, rice" --type dinner --time 19:30 --pain 6 \
      --item "Curry:2:too spicy" --item "Rice:4" --symptom-start 21:00 --symptom-end 22:15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := withItems(entry, items)
			if err != nil {
				return err
			}
			_, mealEntity, err := d.Submit(client.New(baseURL(*configFile, server)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "meal %s recorded with %d item(s)\n", mealEntity.ID, len(mealEntity.Items))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&server, "server", "", "meal service base URL (default client.base_url)")
	flags.StringVar(&entry.Foods, "foods", "", "summary of what was eaten")
	flags.StringVar(&entry.MealType, "type", entry.MealType, "breakfast, lunch, dinner, snack or other")
	flags.StringVar(&entry.Time, "time", "", "time of the meal (HH:MM)")
	flags.StringVar(&entry.Notes, "notes", "", "free text notes")
	flags.StringVar(&entry.SymptomTime, "symptom-start", "", "when symptoms started (HH:MM)")
	flags.StringVar(&entry.SymptomEnd, "symptom-end", "", "when symptoms ended (HH:MM)")
	flags.IntVar(&entry.PainRating, "pain", entry.PainRating, "discomfort after the meal, 0-10")
	flags.StringArrayVar(&items, "item", nil, `food feeling as "food:rating[:notes]", repeatable`)

	return cmd
}

func listCmd(configFile *string) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recorded meals, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := listview.Mount(client.New(baseURL(*configFile, server)))
			if err := view.Render(cmd.OutOrStdout()); err != nil {
				return err
			}
			if view.Status == listview.Failed {
				return view.Err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "meal service base URL (default client.base_url)")
	return cmd
}

// withItems fills the draft rows from --item values.
func withItems(d draft.Draft, items []string) (draft.Draft, error) {
	for i, raw := range items {
		food, rating, notes, err := parseItem(raw)
		if err != nil {
			return d, err
		}
		if i > 0 {
			d = d.AddRow()
		}
		d = d.UpdateRow(i, draft.Patch{Food: &food, Rating: &rating, Notes: &notes})
	}
	return d, nil
}

func parseItem(raw string) (string, int, string, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return "", 0, "", fmt.Errorf("item %q: expected food:rating[:notes]", raw)
	}
	rating, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", 0, "", fmt.Errorf("item %q: rating must be a number", raw)
	}
	notes := ""
	if len(parts) == 3 {
		notes = parts[2]
	}
	return strings.TrimSpace(parts[0]), rating, notes, nil
}
