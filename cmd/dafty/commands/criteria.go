package commands

import (
	"github.com/spf13/cobra"

	"github.com/amineremache/dafty-mcp/pkg/listing"
)

// addCriteriaFlags registers the search filter flags on cmd.
func addCriteriaFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	// StringArray, not StringSlice: "Carrigaline, Cork" is one location.
	flags.StringArrayP("location", "l", nil, "area to search (can be repeated)")
	flags.Float64("min-price", 0, "minimum monthly rent in euro")
	flags.Float64("max-price", 0, "maximum monthly rent in euro")
	flags.Int("beds", 0, "exact number of bedrooms")
	flags.StringP("type", "t", "", "property type, e.g. apartment or house")
}

// criteriaFromFlags builds criteria from the flags the user actually set,
// so an explicit 0 is kept and an absent flag stays unconstrained.
func criteriaFromFlags(cmd *cobra.Command) (listing.Criteria, error) {
	flags := cmd.Flags()
	var c listing.Criteria

	locations, err := flags.GetStringArray("location")
	if err != nil {
		return c, err
	}
	c.Locations = locations

	if flags.Changed("min-price") {
		v, err := flags.GetFloat64("min-price")
		if err != nil {
			return c, err
		}
		c.MinPrice = &v
	}
	if flags.Changed("max-price") {
		v, err := flags.GetFloat64("max-price")
		if err != nil {
			return c, err
		}
		c.MaxPrice = &v
	}
	if flags.Changed("beds") {
		n, err := flags.GetInt("beds")
		if err != nil {
			return c, err
		}
		c.Beds = &n
	}
	if c.PropertyType, err = flags.GetString("type"); err != nil {
		return c, err
	}

	return c, c.Validate()
}
