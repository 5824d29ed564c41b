package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/pathrecall/internal/content"
	"github.com/abhisek/pathrecall/internal/review"
	"github.com/abhisek/pathrecall/internal/spacedrep"
	"github.com/abhisek/pathrecall/internal/ui/theme"
)

// parseRating accepts h/g/e, hard/good/easy, or a number from 1 to 5.
func parseRating(s string) (spacedrep.Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "hard":
		return spacedrep.RatingHard, nil
	case "g", "good":
		return spacedrep.RatingGood, nil
	case "e", "easy":
		return spacedrep.RatingEasy, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 5 {
		return 0, fmt.Errorf("invalid rating %q: use hard, good, easy or 1-5", s)
	}
	return spacedrep.Rating(n), nil
}

func isQuit(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "q" || s == "quit"
}

// runSession walks the queue interactively and returns how many items
// were rated. The cursor moves on as soon as a rating is given; the
// progress writes finish in the background.
func runSession(ctx context.Context, in io.Reader, out io.Writer, m *review.Manager, q *review.Queue, now func() time.Time) (int, error) {
	scanner := bufio.NewScanner(in)
	rated := 0

	for !q.Done() {
		e, _ := q.Current()
		renderCard(out, e, q.Position()+1, q.Len())

		fmt.Fprint(out, theme.Hint.Render("Press Enter to reveal the answer (q to stop): "))
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		if isQuit(scanner.Text()) {
			break
		}
		if e.Item.Prompt.Answer != "" {
			fmt.Fprintf(out, "Answer: %s\n", theme.Answer.Render(e.Item.Prompt.Answer))
		}

		rating, ok := promptRating(scanner, out)
		if !ok {
			break
		}

		at := now()
		if err := m.Rate(ctx, q, rating); err != nil {
			return rated, err
		}
		rated++

		next := spacedrep.Advance(e.Record, rating, at)
		fmt.Fprintf(out, "%s  mastery %d, next review in %s\n\n",
			theme.RatingStyle(rating).Render(rating.String()),
			next.MasteryLevel,
			pluralDays(next.CurrentIntervalDays()))
	}

	fmt.Fprintf(out, "── Session: %d/%d rated ──\n", rated, q.Len())
	return rated, nil
}

// promptRating reads until a valid rating is entered. It reports false
// when the learner quits or input ends.
func promptRating(scanner *bufio.Scanner, out io.Writer) (spacedrep.Rating, bool) {
	for {
		fmt.Fprint(out, "Rate [h]ard / [g]ood / [e]asy: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return 0, false
		}
		text := scanner.Text()
		if isQuit(text) {
			return 0, false
		}
		r, err := parseRating(text)
		if err != nil {
			fmt.Fprintln(out, theme.Incorrect.Render(err.Error()))
			continue
		}
		return r, true
	}
}

func renderCard(out io.Writer, e review.Entry, n, total int) {
	header := fmt.Sprintf("── %d/%d · %s · %s ──", n, total, e.Item.Topic, e.Item.Kind)
	fmt.Fprintln(out, theme.Title.Render(header))

	body := e.Item.Prompt.Question
	if e.Item.Kind == content.KindQuiz && len(e.Item.Prompt.Options) > 0 {
		var b strings.Builder
		b.WriteString(body)
		for i, o := range e.Item.Prompt.Options {
			fmt.Fprintf(&b, "\n  %d) %s", i+1, o)
		}
		body = b.String()
	}
	fmt.Fprintln(out, theme.Card.Render(body))
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
