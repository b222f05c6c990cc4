package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/bizdex/internal/version"
	bizdex "github.com/kailas-cloud/bizdex/pkg/sdk"
)

func newSeedCmd(g *globalFlags, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the reference business data set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDirectory(cmd, g, open, func(d directory, out io.Writer) error {
				res, err := d.Seed(cmd.Context())
				if err != nil {
					return err
				}
				return printBatch(out, g.output, res)
			})
		},
	}
}

type searchFlags struct {
	category string
	query    string
	lat      float64
	lng      float64
	radius   float64
	remote   bool
	limit    int
	explain  bool
}

func newSearchCmd(g *globalFlags, open opener) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search and rank businesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := f.params(cmd)
			if err != nil {
				return err
			}
			return withDirectory(cmd, g, open, func(d directory, out io.Writer) error {
				if f.explain {
					res, err := d.Explain(cmd.Context(), params)
					if err != nil {
						return err
					}
					return printExplanations(out, g.output, res)
				}
				res, err := d.Search(cmd.Context(), params)
				if err != nil {
					return err
				}
				return printBusinesses(out, g.output, res)
			})
		},
	}

	cmd.Flags().StringVar(&f.category, "category", "", "category id")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "free-text query; every term must match")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "caller latitude")
	cmd.Flags().Float64Var(&f.lng, "lng", 0, "caller longitude")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "radius in km; requires --lat/--lng")
	cmd.Flags().BoolVar(&f.remote, "remote", false, "only remote-capable businesses")
	cmd.Flags().IntVar(&f.limit, "limit", 12, "maximum results (0 = all)")
	cmd.Flags().BoolVar(&f.explain, "explain", false, "show the score breakdown")

	return cmd
}

func (f *searchFlags) params(cmd *cobra.Command) (bizdex.SearchParams, error) {
	near, err := coordsFlags(cmd, f.lat, f.lng)
	if err != nil {
		return bizdex.SearchParams{}, err
	}
	p := bizdex.SearchParams{
		CategoryID: f.category,
		Query:      f.query,
		Near:       near,
		RemoteOnly: f.remote,
		Limit:      f.limit,
	}
	if cmd.Flags().Changed("radius") {
		if near == nil {
			return bizdex.SearchParams{}, errors.New("--radius requires --lat and --lng")
		}
		p.RadiusKm = bizdex.Float(f.radius)
	}
	return p, nil
}

func newFeaturedCmd(g *globalFlags, open opener) *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show the top featured businesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			near, err := coordsFlags(cmd, lat, lng)
			if err != nil {
				return err
			}
			return withDirectory(cmd, g, open, func(d directory, out io.Writer) error {
				res, err := d.Featured(cmd.Context(), near)
				if err != nil {
					return err
				}
				return printBusinesses(out, g.output, res)
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "caller latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "caller longitude")
	return cmd
}

func newGetCmd(g *globalFlags, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, g, open, func(d directory, out io.Writer) error {
				b, err := d.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printBusiness(out, g.output, &b)
			})
		},
	}
}

func newSimilarCmd(g *globalFlags, open opener) *cobra.Command {
	var (
		lat, lng float64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "similar <id>",
		Short: "Show businesses in the same category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			near, err := coordsFlags(cmd, lat, lng)
			if err != nil {
				return err
			}
			return withDirectory(cmd, g, open, func(d directory, out io.Writer) error {
				res, err := d.Similar(cmd.Context(), args[0], near, limit)
				if err != nil {
					return err
				}
				return printBusinesses(out, g.output, res)
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "caller latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "caller longitude")
	cmd.Flags().IntVar(&limit, "limit", 4, "maximum results")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
}

// coordsFlags returns the --lat/--lng pair, nil when neither is set.
func coordsFlags(cmd *cobra.Command, lat, lng float64) (*bizdex.Coordinates, error) {
	latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
	switch {
	case !latSet && !lngSet:
		return nil, nil
	case latSet != lngSet:
		return nil, errors.New("--lat and --lng must be given together")
	}
	return &bizdex.Coordinates{Lat: lat, Lng: lng}, nil
}
