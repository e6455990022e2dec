package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ojmarte/construction-api/internal/domain/models"
	"github.com/ojmarte/construction-api/pkg/clients/costapi"
)

func newRefsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "Report references to documents that do not exist",
		Long: "The API stores references between documents without checking them. " +
			"This command walks jobs, equipment performances and material yields " +
			"and reports every reference whose target is missing.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &refChecker{client: opts.client(), out: cmd.OutOrStdout(), known: map[string]map[string]bool{}}
			return c.run(cmd.Context())
		},
	}
}

type refChecker struct {
	client   *costapi.Client
	out      io.Writer
	known    map[string]map[string]bool
	dangling int
}

func (c *refChecker) run(ctx context.Context) error {
	if err := c.checkJobs(ctx); err != nil {
		return err
	}

	performances, err := listAs[models.EquipmentPerformance](ctx, c.client, costapi.EquipmentPerformance)
	if err != nil {
		return err
	}
	for _, p := range performances {
		owner := fmt.Sprintf("equipment-performance %s", p.ID.Hex())
		if err := c.expect(ctx, owner, costapi.Equipment, p.EquipmentID); err != nil {
			return err
		}
	}

	yields, err := listAs[models.MaterialYield](ctx, c.client, costapi.MaterialYields)
	if err != nil {
		return err
	}
	for _, y := range yields {
		owner := fmt.Sprintf("material-yield %s", y.ID.Hex())
		if err := c.expect(ctx, owner, costapi.Materials, y.MaterialID); err != nil {
			return err
		}
	}

	if c.dangling > 0 {
		return fmt.Errorf("found %d dangling reference(s)", c.dangling)
	}
	fmt.Fprintln(c.out, "All references resolve.")
	return nil
}

func (c *refChecker) checkJobs(ctx context.Context) error {
	jobs, err := listAs[models.Job](ctx, c.client, costapi.Jobs)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		refs := job.References()
		names := make([]string, 0, len(refs))
		for name := range refs {
			names = append(names, name)
		}
		sort.Strings(names)

		owner := fmt.Sprintf("job %s (%s)", job.ID.Hex(), job.JobName)
		for _, name := range names {
			target, err := costapi.Lookup(name)
			if err != nil {
				return err
			}
			for _, ref := range refs[name] {
				if err := c.expect(ctx, owner, target, ref); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *refChecker) expect(ctx context.Context, owner string, target costapi.Resource, ref models.Ref) error {
	if ref.IsZero() {
		return nil
	}

	ids, ok := c.known[target.Name]
	if !ok {
		docs, err := c.client.List(ctx, target)
		if err != nil {
			return err
		}
		ids = make(map[string]bool, len(docs))
		for _, doc := range docs {
			ids[doc.ID()] = true
		}
		c.known[target.Name] = ids
	}

	if !ids[ref.String()] {
		c.dangling++
		fmt.Fprintf(c.out, "%s: missing %s %s\n", owner, target.Name, ref)
	}
	return nil
}

// listAs lists r and decodes every document into T.
func listAs[T any](ctx context.Context, client *costapi.Client, r costapi.Resource) ([]T, error) {
	docs, err := client.List(ctx, r)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s: %w", r.Name, doc.ID(), err)
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decoding %s %s: %w", r.Name, doc.ID(), err)
		}
		out = append(out, v)
	}
	return out, nil
}
