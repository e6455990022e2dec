package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ojmarte/construction-api/internal/domain/models"
	"github.com/ojmarte/construction-api/pkg/clients/costapi"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var parentID string

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List the documents of a resource",
		Long:  "Lists every document of a resource, or with --by only those referencing the given parent id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := costapi.Lookup(args[0])
			if err != nil {
				return err
			}

			client := opts.client()
			var docs []costapi.Document
			if parentID != "" {
				docs, err = client.ListByReference(cmd.Context(), res, parentID)
			} else {
				docs, err = client.List(cmd.Context(), res)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, docs)
		},
	}

	cmd.Flags().StringVar(&parentID, "by", "", "Only list documents referencing this parent id")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := costapi.Lookup(args[0])
			if err != nil {
				return err
			}

			doc, err := opts.client().Get(cmd.Context(), res, args[1])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, doc)
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := costapi.Lookup(args[0])
			if err != nil {
				return err
			}

			if err := opts.client().Delete(cmd.Context(), res, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", res.Name, args[1])
			return nil
		},
	}
}

type addEntryFlags struct {
	amount float64
	date   string
}

func newAddEntryCmd(opts *rootOptions) *cobra.Command {
	var flags addEntryFlags

	cmd := &cobra.Command{
		Use:   "add-entry <resource> <id>",
		Short: "Append a dated price or rate",
		Long:  "Appends a price (materials, tools, equipment) or a rate (labour, workers) to a document.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := costapi.Lookup(args[0])
			if err != nil {
				return err
			}
			if !res.HasEntries() {
				return fmt.Errorf("%s does not keep prices or rates", res.Name)
			}

			date, err := entryDate(flags.date)
			if err != nil {
				return err
			}

			entry := map[string]any{res.EntryField: flags.amount, "date": date}
			doc, err := opts.client().AppendEntry(cmd.Context(), res, args[1], entry)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, doc)
		},
	}

	cmd.Flags().Float64Var(&flags.amount, "amount", 0, "Price or rate value")
	cmd.Flags().StringVar(&flags.date, "date", "", "Entry date, RFC 3339 or YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func entryDate(value string) (models.Timestamp, error) {
	if strings.TrimSpace(value) == "" {
		return models.NewTimestamp(time.Now().Truncate(24 * time.Hour)), nil
	}
	return models.ParseTimestamp(value)
}

func newResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resource names accepted by the other commands",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range costapi.Names() {
				res, _ := costapi.Lookup(name)
				var extras []string
				if res.HasEntries() {
					extras = append(extras, "entries")
				}
				if res.HasReference() {
					extras = append(extras, "by reference")
				}
				if len(extras) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", name, strings.Join(extras, ", "))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
