package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/logger"
	"github.com/spigell/course-finder/internal/profile"
	"github.com/spigell/course-finder/internal/session"
	"github.com/spigell/course-finder/internal/summary"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptSkip = "skip"
	PromptDone = "done"
)

var locationChoices = []struct {
	Label string
	Value profile.LocationPref
}{
	{Label: "No preference", Value: profile.LocationUnset},
	{Label: "In my home state only", Value: profile.LocationInState},
	{Label: "In-state or out-of-state", Value: profile.LocationOutOfStateOK},
	{Label: "Anywhere in the U.S.", Value: profile.LocationAnywhere},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Fill in your profile interactively and save it for later runs",
	Run: func(cmd *cobra.Command, _ []string) {
		runProfile(cmd)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := session.New(config.SessionFile)
	saved, err := store.Load()
	if err != nil {
		logger.Warn("ignoring saved profile", zap.Error(err), zap.String("filename", store.Path()))
	}

	current := profile.Values{}
	if saved != nil {
		current = saved.Values()
	}

	answers, err := askProfile(current)
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			logger.Info("exiting", zap.String("reason", "questionnaire interrupted"))
			return
		}
		logger.Fatal("asking profile questions", zap.Error(err))
	}

	p := profile.Normalize(answers)

	if err := store.Save(p); err != nil {
		logger.Fatal("saving profile", zap.Error(err), zap.String("filename", store.Path()))
	}
	logger.Info("saved profile", zap.String("filename", store.Path()))

	if err := renderProfile(cmd.OutOrStdout(), p); err != nil {
		logger.Fatal("writing profile", zap.Error(err))
	}
}

func renderProfile(w io.Writer, p profile.Profile) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Profile: %s\n", nonEmpty(summary.Profile(&p), "nothing specified"))
	fmt.Fprintf(&b, "Constraints: %s\n", nonEmpty(summary.Constraints(&p), "none"))
	fmt.Fprintf(&b, "Profile completeness: %d%%\n", profile.Completeness(p))
	if !profile.Complete(p) {
		b.WriteString("Add your role, status, home state, GPA, degree levels and interests for better matches.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// askProfile walks through the questionnaire, offering current answers as
// defaults, and returns the raw answers.
func askProfile(current profile.Values) (profile.Values, error) {
	answers := profile.Values{}

	role, err := selectOne("Are you a student or a parent?", []string{"student", "parent"}, current.Get(profile.KeyRole))
	if err != nil {
		return nil, err
	}
	answers.Set(profile.KeyRole, role)

	text := []struct {
		key      string
		label    string
		validate promptui.ValidateFunc
	}{
		{profile.KeyCurrentStatus, "Current status (e.g. high school junior)", nil},
		{profile.KeyHomeState, "Home state (two-letter code)", validateState},
		{profile.KeyGPA, "GPA on a 4.0 scale", validateNumber},
	}
	for _, q := range text {
		answer, err := ask(q.label, current.Get(q.key), q.validate)
		if err != nil {
			return nil, err
		}
		answers.Set(q.key, answer)
	}

	degrees, err := selectMany("Degree levels you would consider", catalog.DegreeOptions, current.GetList(profile.KeyDegreeLevels))
	if err != nil {
		return nil, err
	}
	answers.Set(profile.KeyDegreeLevels, degrees...)

	interests, err := selectMany("Interest areas", catalog.InterestOptions, current.GetList(profile.KeyInterestAreas))
	if err != nil {
		return nil, err
	}
	answers.Set(profile.KeyInterestAreas, interests...)

	optional := []struct {
		key   string
		label string
	}{
		{profile.KeyMaxTuition, "Maximum comfortable annual tuition in dollars"},
		{profile.KeySATScore, "SAT score"},
		{profile.KeyACTScore, "ACT score"},
	}
	for _, q := range optional {
		answer, err := ask(q.label, current.Get(q.key), validateNumber)
		if err != nil {
			return nil, err
		}
		answers.Set(q.key, answer)
	}

	location, err := selectLocation(profile.LocationPref(current.Get(profile.KeyLocationPref)))
	if err != nil {
		return nil, err
	}
	answers.Set(profile.KeyLocationPref, string(location))

	return answers, nil
}

func ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Validate:  validate,
	}
	return prompt.Run()
}

// selectOne returns the chosen item, or an empty string when skipped.
func selectOne(label string, items []string, current string) (string, error) {
	options := append(slices.Clone(items), PromptSkip)

	prompt := promptui.Select{
		Label:     label,
		Items:     options,
		CursorPos: max(slices.Index(options, current), 0),
	}

	_, selected, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if selected == PromptSkip {
		return "", nil
	}
	return selected, nil
}

// selectMany toggles items on and off until done is chosen.
func selectMany(label string, items, current []string) ([]string, error) {
	chosen := make([]string, 0, len(items))
	for _, item := range items {
		if slices.Contains(current, item) {
			chosen = append(chosen, item)
		}
	}

	for {
		options := make([]string, 0, len(items)+1)
		options = append(options, PromptDone)
		for _, item := range items {
			mark := "[ ]"
			if slices.Contains(chosen, item) {
				mark = "[x]"
			}
			options = append(options, mark+" "+item)
		}

		prompt := promptui.Select{
			Label: label,
			Items: options,
			Size:  len(options),
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			return chosen, nil
		}

		chosen = toggle(chosen, items[idx-1], items)
	}
}

// toggle adds or removes item, keeping the result in vocabulary order.
func toggle(chosen []string, item string, vocabulary []string) []string {
	if i := slices.Index(chosen, item); i >= 0 {
		return slices.Delete(slices.Clone(chosen), i, i+1)
	}

	result := make([]string, 0, len(chosen)+1)
	for _, v := range vocabulary {
		if v == item || slices.Contains(chosen, v) {
			result = append(result, v)
		}
	}
	return result
}

func selectLocation(current profile.LocationPref) (profile.LocationPref, error) {
	labels := make([]string, 0, len(locationChoices))
	pos := 0
	for i, c := range locationChoices {
		labels = append(labels, c.Label)
		if c.Value == current {
			pos = i
		}
	}

	prompt := promptui.Select{
		Label:     "Where would you study?",
		Items:     labels,
		CursorPos: pos,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return profile.LocationUnset, err
	}
	return locationChoices[idx].Value, nil
}

func validateState(input string) error {
	input = strings.ToUpper(strings.TrimSpace(input))
	if input == "" || slices.Contains(catalog.USStates, input) {
		return nil
	}
	return fmt.Errorf("unknown state code %q", input)
}

func validateNumber(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if _, ok := profile.ParseFloat(input); !ok {
		return errors.New("enter a number or leave empty")
	}
	return nil
}
