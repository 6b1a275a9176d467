package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/profile"
)

// maxParallelVariants bounds concurrent requests for --variants.
const maxParallelVariants = 3

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a learning path without the TUI",
	Example: `  edustream generate --goal "AP Biology" --level Intermediate --hours 8 --style Visual
  edustream generate --goal Chess --interest openings --interest endgames --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}
		variants, _ := cmd.Flags().GetInt("variants")
		if variants < 1 {
			return fmt.Errorf("--variants must be at least 1, got %d", variants)
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		gen := e.generator()
		paths := make([]*curriculum.LearningPath, variants)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(maxParallelVariants)
		for i := range paths {
			g.Go(func() error {
				path, err := gen.Generate(ctx, p)
				if err != nil {
					return err
				}
				paths[i] = path
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			var verr *curriculum.ValidationError
			if errors.As(err, &verr) {
				return verr
			}
			return fmt.Errorf("%s: %w", curriculum.GenerationMessage, err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, paths)
		}
		for i, path := range paths {
			if variants > 1 {
				fmt.Fprintf(out, "=== Variant %d of %d ===\n\n", i+1, variants)
			}
			printPath(out, path)
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.String("goal", "", "What you want to learn (required)")
	f.String("name", "", "Learner name")
	f.String("age-group", profile.DefaultAgeGroup, "Age group, e.g. \"High School\"")
	f.String("level", string(curriculum.Beginner), "Current level: Beginner, Intermediate or Advanced")
	f.Int("hours", profile.DefaultHours, fmt.Sprintf("Hours available per week (%d-%d)", profile.MinHours, profile.MaxHours))
	f.String("style", string(curriculum.ReadingWriting), "Learning style: Visual, Auditory, Reading/Writing or Kinesthetic")
	f.StringArray("interest", nil, "An interest to weave in (repeatable)")
	f.String("prior", "", "What you already know")
	f.Bool("json", false, "Print the path as JSON")
	f.Int("variants", 1, "Generate this many alternative paths concurrently")
}

// profileFromFlags fills a planner form from flags and submits it, so the
// same validation applies as in the TUI.
func profileFromFlags(cmd *cobra.Command) (curriculum.Profile, error) {
	f := cmd.Flags()
	form := profile.NewForm()

	name, _ := f.GetString("name")
	goal, _ := f.GetString("goal")
	age, _ := f.GetString("age-group")
	prior, _ := f.GetString("prior")
	hours, _ := f.GetInt("hours")
	interests, _ := f.GetStringArray("interest")
	levelFlag, _ := f.GetString("level")
	styleFlag, _ := f.GetString("style")

	level, ok := matchOption(curriculum.Levels, levelFlag)
	if !ok {
		return curriculum.Profile{}, fmt.Errorf("unknown level %q", levelFlag)
	}
	style, ok := matchOption(curriculum.LearningStyles, styleFlag)
	if !ok {
		return curriculum.Profile{}, fmt.Errorf("unknown learning style %q", styleFlag)
	}

	form.SetName(name)
	form.SetGoal(goal)
	form.SetAgeGroup(age)
	form.SetLevel(level)
	form.SetLearningStyle(style)
	form.SetHours(hours)
	form.SetPriorKnowledge(prior)
	for _, in := range interests {
		form.AddInterest(in)
	}
	return form.Submit()
}

// matchOption finds s in opts ignoring case.
func matchOption[T ~string](opts []T, s string) (T, bool) {
	for _, o := range opts {
		if strings.EqualFold(string(o), strings.TrimSpace(s)) {
			return o, true
		}
	}
	var zero T
	return zero, false
}

func writeJSON(w io.Writer, paths []*curriculum.LearningPath) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(paths) == 1 {
		return enc.Encode(paths[0])
	}
	return enc.Encode(paths)
}

func printPath(w io.Writer, p *curriculum.LearningPath) {
	sep := strings.Repeat("\u2500", 60)

	fmt.Fprintln(w, p.Topic)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, p.Summary)
	fmt.Fprintf(w, "\nEstimated: %s · %d modules\n", p.TotalEstimatedWeeks, len(p.Modules))

	printList(w, "Prerequisites", p.Prerequisites)
	printList(w, "Outcomes", p.Outcomes)

	for i, m := range p.Modules {
		fmt.Fprintf(w, "\n%d. %s  [%s, %s]\n", i+1, m.Title, m.Difficulty, m.Duration)
		fmt.Fprintf(w, "   %s\n", m.Description)
		for _, a := range m.Activities {
			fmt.Fprintf(w, "   - %s\n", a)
		}
		for _, r := range m.Resources {
			fmt.Fprintf(w, "   > %-7s %s  %s\n", r.Type, r.Name, r.URL)
		}
		if m.Project.Title != "" {
			fmt.Fprintf(w, "   Project: %s. %s\n", m.Project.Title, m.Project.Description)
		}
	}
	fmt.Fprintln(w)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}
