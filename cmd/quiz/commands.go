package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/caarlos0/env/v10"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
	"github.com/gokatarajesh/bc-quiz/internal/logging"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
	"github.com/gokatarajesh/bc-quiz/internal/tui"
)

// cliEnv is the subset of the API environment the terminal commands honor.
type cliEnv struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	RuleSet string `env:"QUIZ_DEFAULT_RULE_SET" envDefault:"classic"`
}

// loadCLIEnv never fails; a bad environment falls back to the defaults.
func loadCLIEnv() cliEnv {
	var c cliEnv
	if err := env.Parse(&c); err != nil {
		c = cliEnv{}
	}
	if c.Env == "" {
		c.Env = "development"
	}
	if c.RuleSet == "" {
		c.RuleSet = recommend.RuleSetClassic
	}
	return c
}

type rootOptions struct {
	ruleSet  string
	logLevel string
	logger   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	envCfg := loadCLIEnv()

	root := &cobra.Command{
		Use:   "quiz",
		Short: "Birth control method questionnaire",
		Long: `quiz asks a short series of yes/no questions and lists the birth control
methods that fit the answers, followed by the remaining options.

Run without arguments to start the interactive terminal quiz.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = logging.NewWithWriter(cmd.ErrOrStderr(), "bc-quiz", envCfg.Env, opts.logLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.ruleSet, "rule-set", envCfg.RuleSet,
		fmt.Sprintf("question set to use (%s)", strings.Join(recommend.Names(), "|")))
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		newPlayCmd(opts),
		newRecommendCmd(opts),
		newMethodsCmd(),
		newQuestionsCmd(opts),
	)
	return root
}

func (o *rootOptions) engine() (*recommend.Engine, error) {
	rs, err := recommend.Lookup(o.ruleSet)
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(catalog.Default(), rs)
}

func newPlayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Take the quiz in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}
}

func runPlay(cmd *cobra.Command, opts *rootOptions) error {
	engine, err := opts.engine()
	if err != nil {
		return err
	}
	opts.logger.Debug().Str("rule_set", engine.RuleSet().Name).Msg("starting terminal quiz")
	return tui.Run(engine, opts.logger,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var (
		sex    string
		yes    []string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Score one set of answers without the interactive quiz",
		Long: `Score one set of answers. Questions listed with --yes are answered yes,
every other question is answered no.

Example:
  quiz recommend --sex female --yes noEstrogen,noDaily --rule-set extended`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			answers, err := buildAnswers(engine.RuleSet(), sex, yes)
			if err != nil {
				return err
			}
			res := engine.Recommend(answers)
			opts.logger.Debug().Strs("suggested", res.Suggested).Msg("answers scored")

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printResult(cmd.OutOrStdout(), engine.Catalog(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&sex, "sex", "", "Female or Male")
	cmd.Flags().StringSliceVar(&yes, "yes", nil, "question ids answered yes (see: quiz questions)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("sex")
	return cmd
}

// buildAnswers turns flag values into a closed AnswerSet; unknown ids are
// rejected rather than ignored.
func buildAnswers(rs recommend.RuleSet, rawSex string, yes []string) (recommend.AnswerSet, error) {
	sex, err := recommend.ParseSex(rawSex)
	if err != nil {
		return recommend.AnswerSet{}, fmt.Errorf("--sex %q: %w", rawSex, err)
	}
	known := make(map[string]bool, len(rs.Questions))
	for _, q := range rs.Questions {
		known[q.ID] = true
	}
	picked := make([]string, 0, len(yes))
	for _, id := range yes {
		id = strings.TrimSpace(id)
		if !known[id] {
			return recommend.AnswerSet{}, fmt.Errorf("unknown question %q for rule set %s", id, rs.Name)
		}
		picked = append(picked, id)
	}

	answers := recommend.NewAnswerSet(sex, nil)
	// male runs never see the yes/no questions
	if sex == recommend.SexMale {
		return answers, nil
	}
	for _, q := range rs.Questions {
		answers.Answers[q.ID] = false
	}
	for _, id := range picked {
		answers.Answers[id] = true
	}
	return answers, nil
}

func printResult(w io.Writer, cat *catalog.Catalog, res recommend.Result) {
	fmt.Fprintln(w, "Suggested methods")
	if len(res.Suggested) == 0 {
		fmt.Fprintln(w, "  (none matched these answers)")
	}
	printMethods(w, cat, res.Suggested, res.Sex)
	if res.Others != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Other methods")
		printMethods(w, cat, res.Others, res.Sex)
	}
}

func printMethods(w io.Writer, cat *catalog.Catalog, names []string, sex recommend.Sex) {
	for _, name := range names {
		m, ok := cat.Lookup(name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "- %s\n", name)
		for _, f := range recommend.Fields(m, sex) {
			fmt.Fprintf(w, "    %s: %s\n", f.Label, f.Value)
		}
	}
}

func newMethodsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List the method reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			methods := catalog.Default().Methods()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), methods)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tEFFICACY")
			for _, m := range methods {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name, m.Category, m.Efficacy)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")
	return cmd
}

func newQuestionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the questions of the selected rule set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := recommend.Lookup(opts.ruleSet)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", rs.Name, rs.Description)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, q := range rs.Questions {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, q.ID, q.Text)
			}
			return tw.Flush()
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
