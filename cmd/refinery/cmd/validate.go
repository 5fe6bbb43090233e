package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lodeworks/refinery/internal/config"
	"github.com/lodeworks/refinery/pkg/audit"
	"github.com/lodeworks/refinery/pkg/errors"
	"github.com/lodeworks/refinery/pkg/sources"
	"github.com/lodeworks/refinery/pkg/tables"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the manifest, raw extracts, and published output",
	Long: `Validate loads the manifest, reads every declared raw extract to verify it
exists and carries the entity's expected column set, and then audits the
published silver tables against the reconciliation invariants: natural-key
uniqueness, canonical-vocabulary closure, scrubbed strings, sales
non-negativity, and product interval contiguity.

Everything is read-side only; nothing is written. Silver tables that were
never produced are reported and skipped.

Examples:
  refinery validate
  refinery validate --manifest etc/refinery.yaml
  refinery validate --skip-extracts`,
	RunE: validateManifest,
}

var skipExtracts bool

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&skipExtracts, "skip-extracts", false,
		"audit only the published silver tables")
}

func validateManifest(cmd *cobra.Command, _ []string) error {
	manifest, err := config.Load(config.ManifestPath(manifestFile, defaultManifest))
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	extractsOK := true
	if !skipExtracts {
		extractsOK = validateExtracts(ctx, manifest)
	}

	outputOK, err := auditWarehouse(ctx, manifest)
	if err != nil {
		return err
	}

	switch {
	case !extractsOK && !outputOK:
		return errors.New("extract validation and output audit both failed")
	case !extractsOK:
		return errors.New("one or more extracts failed validation")
	case !outputOK:
		return errors.New("one or more silver tables violate reconciliation invariants")
	}

	if !quiet {
		fmt.Println("Manifest, extracts and published output are valid.")
	}
	return nil
}

// validateExtracts reads every declared raw extract end to end.
func validateExtracts(ctx context.Context, manifest *config.Manifest) bool {
	set := manifest.Sources()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tEXTRACT\tROWS\tSTATUS")

	ok := true
	ok = checkExtract(ctx, w, tables.EntityCustomers, manifest.Extracts.Customers, set.Customers) && ok
	ok = checkExtract(ctx, w, tables.EntityProducts, manifest.Extracts.Products, set.Products) && ok
	ok = checkExtract(ctx, w, tables.EntitySales, manifest.Extracts.Sales, set.Sales) && ok
	ok = checkExtract(ctx, w, tables.EntityDemographics, manifest.Extracts.Demographics, set.Demographics) && ok
	ok = checkExtract(ctx, w, tables.EntityLocations, manifest.Extracts.Locations, set.Locations) && ok
	ok = checkExtract(ctx, w, tables.EntityCategories, manifest.Extracts.Categories, set.Categories) && ok

	_ = w.Flush()
	return ok
}

// checkExtract reads one declared extract end to end. Unconfigured entities
// are reported as skipped and do not fail validation.
func checkExtract[T any](ctx context.Context, w io.Writer, entity tables.Entity, path string, src sources.Source[T]) bool {
	if src == nil {
		fmt.Fprintf(w, "%s\t-\t-\tskipped\n", entity)
		return true
	}

	rows, err := src.Fetch(ctx)
	if err != nil {
		fmt.Fprintf(w, "%s\t%s\t-\t%s\n", entity, path, err)
		return false
	}

	fmt.Fprintf(w, "%s\t%s\t%d\tok\n", entity, path, len(rows))
	return true
}

// auditWarehouse re-checks the reconciliation invariants against every
// published silver table.
func auditWarehouse(ctx context.Context, manifest *config.Manifest) (bool, error) {
	wh, closeWarehouse, err := manifest.Open()
	if err != nil {
		return false, err
	}
	defer func() { _ = closeWarehouse() }()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS\tVIOLATIONS\tSTATUS")

	ok := true
	for _, entity := range tables.Entities() {
		batch, err := wh.Read(ctx, entity.Table())
		if errors.IsNotFound(err) {
			fmt.Fprintf(w, "%s\t-\t-\tnot produced\n", entity.Table())
			continue
		}
		if err != nil {
			return false, err
		}

		violations := audit.Batch(entity, batch)
		if len(violations) == 0 {
			fmt.Fprintf(w, "%s\t%d\t0\tok\n", entity.Table(), batch.Len())
			continue
		}

		ok = false
		fmt.Fprintf(w, "%s\t%d\t%d\tinvalid\n", entity.Table(), batch.Len(), len(violations))
		for _, v := range violations {
			fmt.Fprintf(w, "\t\t\t%s\n", v)
		}
	}

	_ = w.Flush()
	return ok, nil
}
