package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/filtering"
	"github.com/spigell/course-finder/internal/logger"
	"github.com/spigell/course-finder/internal/profile"
	"github.com/spigell/course-finder/internal/recommend"
	"github.com/spigell/course-finder/internal/session"
	"github.com/spigell/course-finder/internal/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// profileFlags maps recommend flags to raw profile keys.
var profileFlags = map[string]string{
	"role":        profile.KeyRole,
	"status":      profile.KeyCurrentStatus,
	"home-state":  profile.KeyHomeState,
	"gpa":         profile.KeyGPA,
	"degree":      profile.KeyDegreeLevels,
	"interest":    profile.KeyInterestAreas,
	"max-tuition": profile.KeyMaxTuition,
	"sat":         profile.KeySATScore,
	"act":         profile.KeyACTScore,
	"location":    profile.KeyLocationPref,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend programs for a profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	flags := recommendCmd.Flags()
	flags.String("role", "", "who is searching: student or parent")
	flags.String("status", "", "current education status")
	flags.String("home-state", "", "two-letter home state code, e.g. CA")
	flags.String("gpa", "", "GPA on a 4.0 scale")
	flags.StringSlice("degree", nil, "acceptable degree levels (Certificate, Associate, Bachelor's)")
	flags.StringSlice("interest", nil, "interest areas, e.g. Engineering")
	flags.String("max-tuition", "", "maximum comfortable annual tuition in dollars")
	flags.String("sat", "", "SAT score")
	flags.String("act", "", "ACT score")
	flags.String("location", "", "location preference: instate, out_of_state_ok or anywhere")
	flags.Bool("no-session", false, "do not read or write the saved profile")

	flags.String("catalog", "", "path to the programs JSON file (default programs.json)")
	flags.StringP("output", "o", "", "output format: text or json")
	flags.String("sort-by", "", "display order: fit_desc, tuition_asc or tuition_desc")
	flags.Int("limit", 0, "show at most this many programs")
	flags.String("show-degree", "", "only show programs with this degree level")
	flags.Float64("show-max-tuition", 0, "hide programs with known tuition above this amount")

	viper.BindPFlag("catalog", flags.Lookup("catalog"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("view.sort-by", flags.Lookup("sort-by"))
	viper.BindPFlag("view.limit", flags.Lookup("limit"))
	viper.BindPFlag("view.degree-level", flags.Lookup("show-degree"))
	viper.BindPFlag("view.max-tuition", flags.Lookup("show-max-tuition"))
}

func runRecommend(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the course-finder", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	noSession, _ := cmd.Flags().GetBool("no-session")

	var store *session.Store
	var saved *profile.Profile
	if !noSession {
		store = session.New(config.SessionFile)
		saved, err = store.Load()
		if err != nil {
			logger.Warn("ignoring saved profile", zap.Error(err), zap.String("filename", store.Path()))
		}
	}

	p := buildProfile(saved, config.Profile, flagValues(cmd))
	logger.Info("profile",
		zap.Int("completeness", profile.Completeness(p)),
		zap.Bool("from_session", saved != nil),
	)

	for _, status := range filtering.Describe(&p, filtering.Default()) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	c := loadCatalog(config.Catalog, logger)

	result, err := recommend.New(c, logger).Recommend(p)
	if err != nil {
		if errors.Is(err, catalog.ErrNoData) {
			logger.Fatal("nothing to recommend from",
				zap.Error(err),
				zap.String("hint", "point the 'catalog' key or COURSE_FINDER_CATALOG to a JSON array of programs"),
			)
		}
		logger.Fatal("recommending programs", zap.Error(err))
	}

	logger.Info("found programs", zap.Int("count", result.Len()), zap.Int("top_fit_score", result.TopScore()))

	visible, err := config.View.Apply(result.Recommendations)
	if err != nil {
		logger.Fatal("applying the view", zap.Error(err))
	}

	if err := render(cmd.OutOrStdout(), config.Output, result, visible); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}

	if !profile.Complete(p) {
		logger.Info("profile is incomplete",
			zap.Int("completeness", profile.Completeness(p)),
			zap.String("hint", "run 'course-finder profile' to fill in the rest"),
		)
	}

	if store != nil {
		if err := store.Save(p); err != nil {
			logger.Warn("saving profile", zap.Error(err), zap.String("filename", store.Path()))
			return
		}
		logger.Debug("saved profile", zap.String("filename", store.Path()))
	}
}

// loadCatalog never fails: a broken catalog is reported and treated as empty.
func loadCatalog(path string, logger *zap.Logger) *catalog.Catalog {
	c, err := catalog.Load(path)
	if err != nil {
		logger.Warn("loading catalog", zap.Error(err), zap.String("filename", path))
		return catalog.New(nil)
	}

	for _, warning := range c.Warnings() {
		logger.Warn("degraded catalog record", zap.Error(warning), zap.String("filename", path))
	}

	logger.Info("loaded catalog", zap.String("filename", path), zap.Int("programs", c.Len()))
	return c
}

// buildProfile layers the profile sources. Flags win over the config
// profile, which wins over the saved snapshot.
func buildProfile(saved *profile.Profile, fromConfig map[string]any, fromFlags profile.Values) profile.Profile {
	values := profile.Values{}
	if saved != nil {
		values = saved.Values()
	}

	values = values.Merge(profile.FromMap(fromConfig)).Merge(fromFlags)
	return profile.Normalize(values)
}

// flagValues returns only the profile flags the user actually set.
func flagValues(cmd *cobra.Command) profile.Values {
	values := profile.Values{}
	for name, key := range profileFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		if key == profile.KeyDegreeLevels || key == profile.KeyInterestAreas {
			list, _ := cmd.Flags().GetStringSlice(name)
			values.Set(key, list...)
			continue
		}
		values.Set(key, flag.Value.String())
	}
	return values
}

func render(w io.Writer, format string, result *recommend.Result, visible []recommend.Recommendation) error {
	switch strings.ToLower(format) {
	case OutputJSON:
		out := *result
		out.Recommendations = visible

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "", OutputText:
		return renderText(w, result, visible)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, result *recommend.Result, visible []recommend.Recommendation) error {
	var b strings.Builder

	if result.ProfileSummary != "" {
		fmt.Fprintf(&b, "Profile: %s\n", result.ProfileSummary)
	}
	if result.ConstraintsSummary != "" {
		fmt.Fprintf(&b, "Constraints: %s\n", result.ConstraintsSummary)
	}
	fmt.Fprintf(&b, "Showing %d of %d matching programs (catalog: %d)\n", len(visible), result.Len(), result.CatalogSize)

	if len(visible) == 0 {
		b.WriteString("\nNo programs match. Try relaxing the degree, interest, budget or location constraints.\n")
	}

	for i, r := range visible {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%d. %s", i+1, r.Name)
		if r.Institution != "" {
			fmt.Fprintf(&b, ", %s", r.Institution)
		}
		fmt.Fprintf(&b, "  [fit %d]\n", r.FitScore)

		fmt.Fprintf(&b, "   %s | %s | %s\n", nonEmpty(r.Level(), "Degree unknown"), location(&r.Program), tuition(&r.Program))
		fmt.Fprintf(&b, "   Interests: %s\n", r.Rationale.Interests)
		fmt.Fprintf(&b, "   Academic:  %s\n", r.Academic)
		fmt.Fprintf(&b, "   Practical: %s\n", r.Practical)
		if r.URL != "" {
			fmt.Fprintf(&b, "   %s\n", r.URL)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func location(p *catalog.Program) string {
	switch {
	case p.City != "" && p.State != "":
		return p.City + ", " + p.State
	case p.State != "":
		return p.State
	default:
		return "Location unknown"
	}
}

func tuition(p *catalog.Program) string {
	if v, ok := p.Tuition(); ok {
		return utils.Dollars(v) + "/year"
	}
	return "Tuition unknown"
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
