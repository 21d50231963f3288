package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reusemarket/storefront/internal/domain"
	"github.com/reusemarket/storefront/internal/facet"
	"github.com/reusemarket/storefront/internal/logger"
	"github.com/reusemarket/storefront/internal/storefront"
	"github.com/reusemarket/storefront/internal/validation"
)

// options are the flags shared by every command.
type options struct {
	input    string
	logLevel string
	log      *logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "facetctl",
		Short: "Filter and count storefront products by metafield",
		Long: `facetctl runs the storefront facet engine over saved product data.

Input is either a JSON array of products or a saved Storefront API
response for a collection or catalog query. Output is JSON.

Examples:
  facetctl filter -i chairs.json --filter condition=good --filter has_warranty=true
  facetctl counts -i chairs.json --key condition
  facetctl summary -i chairs.json --definitions configs/facets.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.log = logger.New(logger.Config{
				Writer:    cmd.ErrOrStderr(),
				Format:    "pretty",
				Level:     logger.ParseLevel(opts.logLevel),
				AddSource: false,
			})
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.input, "input", "i", "-", "Product file, - for stdin")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newFilterCmd(opts),
		newValuesCmd(opts),
		newCountsCmd(opts),
		newSummaryCmd(opts),
	)
	return root
}

func newFilterCmd(opts *options) *cobra.Command {
	var (
		pairs []string
		query string
		match string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the products matching every filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := facet.ParseMatchMode(match)
			if err != nil {
				return err
			}
			filters, err := buildFilters(pairs, query)
			if err != nil {
				return err
			}
			products, err := opts.readProducts(cmd)
			if err != nil {
				return err
			}

			matched := facet.ApplyFiltersWith(products, filters, mode)
			opts.log.Debug("filtered products",
				"filters", len(filters),
				"total", len(products),
				"matched", len(matched),
			)
			return writeJSON(cmd.OutOrStdout(), matched)
		},
	}

	cmd.Flags().StringArrayVarP(&pairs, "filter", "f", nil, "Filter as key=value (repeatable)")
	cmd.Flags().StringVar(&query, "query", "", "Filters as a URL query string, e.g. condition=good&is_used=true")
	cmd.Flags().StringVar(&match, "match", "all", "all: every filter must match; any: OR within a key")
	return cmd
}

func newValuesCmd(opts *options) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "values",
		Short: "Print the distinct values of a metafield",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := opts.readProducts(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), facet.FilterValues(products, key))
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Metafield key")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newCountsCmd(opts *options) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Print how many products carry each value of a metafield",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := opts.readProducts(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), facet.FilterCounts(products, key))
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Metafield key")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

// summaryOutput is what the collection page renders beside the products.
type summaryOutput struct {
	Facets []facet.Group       `json:"facets"`
	Price  *facet.PriceSummary `json:"price,omitempty"`
	Total  int                 `json:"total"`
}

func newSummaryCmd(opts *options) *cobra.Command {
	var (
		definitions string
		pairs       []string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print facet groups with counts and the price range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs := facet.DefaultDefinitions()
			if definitions != "" {
				loaded, err := facet.LoadDefinitions(definitions)
				if err != nil {
					return err
				}
				defs = loaded
			}
			selected, err := buildFilters(pairs, "")
			if err != nil {
				return err
			}
			products, err := opts.readProducts(cmd)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), summaryOutput{
				Facets: facet.Summarize(products, selected, defs),
				Price:  facet.SummarizePrices(products),
				Total:  len(products),
			})
		},
	}

	cmd.Flags().StringVarP(&definitions, "definitions", "d", "", "Facet definitions YAML (default: built-in)")
	cmd.Flags().StringArrayVarP(&pairs, "filter", "f", nil, "Mark key=value as selected (repeatable)")
	return cmd
}

// buildFilters combines --filter pairs and a --query string, pairs first.
func buildFilters(pairs []string, query string) (facet.Filters, error) {
	filters := make(facet.Filters, 0, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q (want key=value)", pair)
		}
		filters = append(filters, facet.Filter{Key: key, Value: value})
	}
	return append(filters, facet.ParseQuery(query)...), nil
}

// readProducts loads the input as a product array or a saved API response.
func (o *options) readProducts(cmd *cobra.Command) ([]domain.Product, error) {
	var (
		data []byte
		err  error
	)
	if o.input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(o.input)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("input %s is empty", o.input)
	}
	if trimmed[0] != '[' {
		return storefront.DecodePayload(trimmed, o.log.Logger)
	}

	var raw []domain.Product
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	v := validation.New()
	products := make([]domain.Product, 0, len(raw))
	for _, p := range raw {
		if err := v.Validate(p); err != nil {
			o.log.Warn("skipping invalid product", "id", p.ID, "error", err)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
