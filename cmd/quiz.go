package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/session"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a quiz session in plain line mode",
	Long: `Ask questions one at a time on standard input and output.

Answer with the option number or letter. Enter "s" to skip a question and
"q" to stop; answers given so far are kept. Ctrl+C and end of input stop the
session the same way.`,
	Args: cobra.NoArgs,
	RunE: runQuizCmd,
}

func init() {
	quizCmd.Flags().StringP("category", "c", "", "Only ask questions from this category")
	quizCmd.Flags().String("mode", "standard", "Session mode: standard or verify")
	quizCmd.Flags().Bool("verify", false, "Shorthand for --mode verify")
	quizCmd.Flags().Bool("review", false, "Only ask questions last answered incorrectly")
	quizCmd.Flags().IntP("count", "n", 0, "Stop after this many questions (0 asks them all)")
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	rt, err := commandRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts, err := quizOptions(cmd, rt.engine)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return runQuiz(ctx, rt.engine, opts, cmd.InOrStdin(), cmd.OutOrStdout())
}

func quizOptions(cmd *cobra.Command, svc engine.Service) (session.Options, error) {
	var opts session.Options
	category, _ := cmd.Flags().GetString("category")
	if category != "" {
		name, err := matchCategory(svc.Categories(), category)
		if err != nil {
			return opts, err
		}
		opts.Category = name
	}
	modeName, _ := cmd.Flags().GetString("mode")
	verify, _ := cmd.Flags().GetBool("verify")
	mode, err := resolveMode(modeName, verify)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	opts.ReviewOnly, _ = cmd.Flags().GetBool("review")

	count, _ := cmd.Flags().GetInt("count")
	if count < 0 {
		return opts, fmt.Errorf("--count must not be negative")
	}
	opts.Limit = count
	return opts, nil
}

// resolveMode reads --mode; --verify wins over it.
func resolveMode(name string, verify bool) (session.Mode, error) {
	if verify {
		return session.ModeVerify, nil
	}
	mode, ok := session.ParseMode(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return mode, fmt.Errorf("unknown mode %q (want standard or verify)", name)
	}
	return mode, nil
}

// matchCategory resolves a category name case-insensitively.
func matchCategory(categories []string, name string) (string, error) {
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (see \"linuxplus categories\")", name)
}

type quizAction int

const (
	actionAnswer quizAction = iota
	actionSkip
	actionQuit
)

// runQuiz drives one session over a line-oriented reader and writer. It
// returns when the session is exhausted, the user quits, input ends or ctx
// is cancelled. In every case answers given so far are saved.
func runQuiz(ctx context.Context, svc engine.Service, opts session.Options, in io.Reader, out io.Writer) error {
	s, err := svc.StartSession(opts)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	lines := scanLines(done, in)

	fmt.Fprintf(out, "%s: %d question(s), %s mode\n", opts.FilterLabel(), s.Position().Total, opts.Mode)
	fmt.Fprintln(out, `Answer with a number or letter, "s" to skip, "q" to quit.`)
	fmt.Fprintln(out)

	for q := s.Current(); q != nil; {
		printQuestion(out, q, s.Position())

		action, choice := readAction(ctx, lines, out, len(q.Options))
		switch action {
		case actionQuit:
			return quitQuiz(s, out)
		case actionSkip:
			if err := s.Skip(); err != nil {
				return err
			}
			fmt.Fprintln(out, "(skipped)")
		case actionAnswer:
			outcome, err := s.Submit(choice)
			if err != nil {
				return err
			}
			printOutcome(out, outcome)
		}
		fmt.Fprintln(out)

		if q, err = s.Next(); err != nil {
			return err
		}
	}

	sum, err := s.End()
	printSummary(out, sum)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// readAction prompts until it gets a valid answer, a skip or a quit.
func readAction(ctx context.Context, lines <-chan string, out io.Writer, numOptions int) (quizAction, int) {
	for {
		fmt.Fprint(out, "Your answer: ")

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			return actionQuit, 0
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "":
			continue
		case "q", "quit", "exit":
			return actionQuit, 0
		case "s", "skip":
			return actionSkip, 0
		}
		if choice, ok := parseChoice(input, numOptions); ok {
			return actionAnswer, choice
		}
		fmt.Fprintf(out, "Enter 1-%d or A-%s, \"s\" to skip, \"q\" to quit.\n",
			numOptions, questionbank.OptionLetter(numOptions-1))
	}
}

// parseChoice accepts a 1-based option number or an option letter.
func parseChoice(input string, numOptions int) (int, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= numOptions {
			return n - 1, true
		}
		return 0, false
	}
	if i := questionbank.LetterIndex(input); i >= 0 && i < numOptions {
		return i, true
	}
	return 0, false
}

func quitQuiz(s *engine.Session, out io.Writer) error {
	err := s.Quit()
	sum, _ := s.End()
	fmt.Fprintln(out, "Session stopped.")
	printSummary(out, sum)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// scanLines feeds lines from r into the returned channel until r is
// exhausted or done is closed.
func scanLines(done <-chan struct{}, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}

func printQuestion(out io.Writer, q *session.Question, pos session.Progress) {
	fmt.Fprintf(out, "── Question %d/%d ── %s\n", pos.Number, pos.Total, q.Category)
	fmt.Fprintln(out, q.Prompt)
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s. %s\n", i+1, questionbank.OptionLetter(i), opt)
	}
}

func printOutcome(out io.Writer, o session.AnswerOutcome) {
	if !o.Revealed {
		fmt.Fprintf(out, "Recorded %s.\n", questionbank.OptionLetter(o.Choice))
		return
	}
	if o.Correct {
		fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		return
	}
	fmt.Fprintf(out, "\033[31m✗ Incorrect.\033[0m Answer: %s. %s\n",
		questionbank.OptionLetter(o.CorrectIndex), o.CorrectOption)
	if o.Explanation != "" {
		fmt.Fprintf(out, "Explanation: %s\n", o.Explanation)
	}
}

func printSummary(out io.Writer, sum session.Summary) {
	fmt.Fprintf(out, "── Summary: %d/%d correct", sum.Score, sum.Answered)
	if sum.Answered > 0 {
		fmt.Fprintf(out, " (%.0f%%)", sum.Accuracy*100)
	}
	fmt.Fprintln(out, " ──")
	if sum.Skipped > 0 {
		fmt.Fprintf(out, "Skipped: %d\n", sum.Skipped)
	}

	if sum.Mode != session.ModeVerify {
		return
	}
	missed := sum.Missed()
	if len(missed) == 0 {
		if sum.Answered > 0 {
			fmt.Fprintln(out, "No incorrect answers.")
		}
		return
	}
	fmt.Fprintln(out, "\nIncorrect answers:")
	for i, e := range missed {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, e.Question.Prompt)
		fmt.Fprintf(out, "   Your answer: %s. %s\n",
			questionbank.OptionLetter(e.Choice), e.Question.Options[e.Choice])
		fmt.Fprintf(out, "   Correct:     %s. %s\n",
			questionbank.OptionLetter(e.Question.CorrectIndex), e.Question.CorrectOption())
		if e.Question.Explanation != "" {
			fmt.Fprintf(out, "   %s\n", e.Question.Explanation)
		}
	}
}
