package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rendis/mealee/internal/config"
	"github.com/rendis/mealee/internal/engine/search"
	"github.com/rendis/mealee/internal/model"
)

func Fetch(cfg *config.Config) *cobra.Command {
	var (
		location, term, format string
		minTier, maxTier       string
		limit                  int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one pool of businesses and print it",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`fetch runs a single search with the same request the game
			makes and prints the businesses to stdout, as a JSON array or
			as CSV. Price tiers go from 1 ($) to 4 ($$$$) and both ends
			are included.`),
		Example: heredoc.Doc(`
			mealee fetch --location Madrid --term tacos
			mealee fetch --location 28004 --term ramen --min 2 --max 3 --limit 16 --format csv`),

		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("limit") {
				cfg.Limit = limit
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			criteria, err := fetchCriteria(location, term, minTier, maxTier)
			if err != nil {
				return err
			}

			var write func(io.Writer, []model.Business) error
			switch format {
			case "json":
				write = writeJSON
			case "csv":
				write = writeCSV
			default:
				return fmt.Errorf("unsupported format: %s (json or csv)", format)
			}

			client, err := newClient(*cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
			s.Suffix = fmt.Sprintf(" Finding %q near %s...", criteria.Term, criteria.Location)
			s.Start()
			businesses, err := client.FetchBusinesses(ctx, criteria, cfg.Limit)
			s.Stop()

			if err != nil {
				logrus.WithError(err).Error("fetch failed")
				if search.IsFetchFailure(err) {
					return fmt.Errorf("%s (%w)", search.NoBusinessesMessage, err)
				}
				return err
			}

			logrus.WithField("count", len(businesses)).Info("fetch done")
			return write(cmd.OutOrStdout(), businesses)
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "City, neighborhood, address or zip code (required)")
	cmd.Flags().StringVarP(&term, "term", "s", "", "What to search for (required)")
	cmd.Flags().StringVar(&minTier, "min", "1", "Lowest price tier, 1-4")
	cmd.Flags().StringVar(&maxTier, "max", "4", "Highest price tier, 1-4")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Pool size (default from MEALEE_LIMIT or 8)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or csv")

	return cmd
}

// fetchCriteria turns the inclusive tier flags into the form's half-open
// price range.
func fetchCriteria(location, term, minTier, maxTier string) (search.Criteria, error) {
	low, err := search.ParseTier(minTier)
	if err != nil {
		return search.Criteria{}, fmt.Errorf("--min: %w", err)
	}
	high, err := search.ParseTier(maxTier)
	if err != nil {
		return search.Criteria{}, fmt.Errorf("--max: %w", err)
	}
	if low > high {
		return search.Criteria{}, fmt.Errorf("--min %d is above --max %d", low, high)
	}

	c := search.Criteria{
		Location: search.NormalizeInput(location),
		Term:     search.NormalizeInput(term),
		PriceMin: strconv.Itoa(int(low)),
		PriceMax: strconv.Itoa(int(high) + 1),
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func writeJSON(w io.Writer, businesses []model.Business) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(businesses)
}

var csvHeader = []string{
	"id", "name", "rating", "review_count", "price", "categories",
	"address", "phone", "url", "lat", "lng", "image_url",
}

func writeCSV(w io.Writer, businesses []model.Business) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, b := range businesses {
		var lat, lng string
		if p, ok := b.Coordinates(); ok {
			lng = strconv.FormatFloat(p.Lon(), 'f', 6, 64)
			lat = strconv.FormatFloat(p.Lat(), 'f', 6, 64)
		}
		rating := ""
		if b.Rating() > 0 {
			rating = strconv.FormatFloat(b.Rating(), 'f', 1, 64)
		}
		if err := cw.Write([]string{
			b.ID(),
			b.Name(),
			rating,
			strconv.Itoa(b.ReviewCount()),
			b.Price(),
			strings.Join(b.Categories(), "; "),
			b.Address(),
			b.Phone(),
			b.URL(),
			lat,
			lng,
			b.ImageURL(),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
