package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mmynk/chorechart/internal/models"
	"github.com/mmynk/chorechart/internal/service"
	"github.com/mmynk/chorechart/internal/validation"
)

// shell is the interactive menu. Every action reads its input line by
// line, prints rejected input and asks again, and returns to the menu on
// domain errors. Only end of input or a read failure stops it early.
type shell struct {
	svc    *service.ChoreService
	limits validation.Limits
	in     *bufio.Scanner
	out    io.Writer
}

func newShell(svc *service.ChoreService, in io.Reader, out io.Writer) *shell {
	return &shell{
		svc:    svc,
		limits: svc.Limits(),
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run shows the menu until the user quits or input ends.
func (s *shell) Run(ctx context.Context) error {
	actions := map[string]func(context.Context) error{
		"A": s.about,
		"C": s.create,
		"E": s.add,
		"R": s.remove,
		"W": s.wipe,
		"V": s.view,
		"L": s.logChores,
		"S": s.leaderboard,
	}

	for {
		fmt.Fprintln(s.out, "\n"+renderMenu())
		option, err := s.prompt("Enter an option: ")
		if err != nil {
			return s.finish(err)
		}
		// the first letter selects, so "create" works like "C"
		first, _ := utf8.DecodeRuneInString(option)
		option = strings.ToUpper(string(first))
		if option == "Q" {
			return s.finish(io.EOF)
		}
		action, ok := actions[option]
		if !ok {
			continue
		}

		if err := action(ctx); err != nil {
			return s.finish(err)
		}
		if _, err := s.prompt("\nPress Enter to return to menu: "); err != nil {
			return s.finish(err)
		}
	}
}

func (s *shell) finish(err error) error {
	fmt.Fprintln(s.out, "\n\nBye, bye.")
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// prompt prints label and returns the next trimmed input line.
func (s *shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *shell) printErr(err error) {
	fmt.Fprintln(s.out, renderError(err))
}

func (s *shell) about(context.Context) error {
	fmt.Fprintln(s.out, "\n"+renderAbout())
	return nil
}

func (s *shell) create(ctx context.Context) error {
	var name string
	for {
		var err error
		if name, err = s.prompt("\nEnter household name: "); err != nil {
			return err
		}
		if err := s.limits.ValidateHouseholdName(name); err != nil {
			s.printErr(err)
			continue
		}
		break
	}

	exists, err := s.svc.HouseholdExists(ctx, name)
	if err != nil {
		s.printErr(err)
		return nil
	}
	if exists {
		fmt.Fprintf(s.out, "Household %s already exists, returning to the menu.\n", name)
		return nil
	}

	people := service.NewParticipantCollector(s.limits, nil)
	if err := s.collectParticipants(people); err != nil {
		return err
	}
	chores := service.NewChoreCollector(s.limits, nil)
	if err := s.collectChores(chores); err != nil {
		return err
	}

	h, err := s.svc.CreateHousehold(ctx, name, people.Items(), chores.Items())
	if err != nil {
		s.printErr(err)
		return nil
	}
	fmt.Fprintln(s.out, "\n"+renderHousehold(h))
	return nil
}

func (s *shell) add(ctx context.Context) error {
	name, ok, err := s.pickHousehold(ctx)
	if err != nil || !ok {
		return err
	}
	h, err := s.svc.ViewHousehold(ctx, name)
	if err != nil {
		s.printErr(err)
		return nil
	}
	fmt.Fprintln(s.out, "\n"+renderHousehold(h))

	people, chores := service.NewAddCollectors(s.limits, h)
	if err := s.collectParticipants(people); err != nil {
		return err
	}
	if err := s.collectChores(chores); err != nil {
		return err
	}
	if len(people.Items()) == 0 && len(chores.Items()) == 0 {
		fmt.Fprintln(s.out, "Nothing added.")
		return nil
	}

	updated, err := s.svc.AddToHousehold(ctx, name, people.Items(), chores.Items())
	if err != nil {
		s.printErr(err)
		return nil
	}
	fmt.Fprintln(s.out, "\n"+renderHousehold(updated))
	return nil
}

func (s *shell) remove(ctx context.Context) error {
	name, ok, err := s.pickHousehold(ctx)
	if err != nil || !ok {
		return err
	}

	raw, err := s.prompt("\nRemove participant (P), chore (C) or both (B): ")
	if err != nil {
		return err
	}
	kind, err := service.ParseRemovalKind(raw)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid input.")
		return nil
	}

	var participant, chore string
	if kind == service.RemoveParticipant || kind == service.RemoveBoth {
		if participant, err = s.prompt("\nEnter the name of the participant you would like to remove: "); err != nil {
			return err
		}
	}
	if kind == service.RemoveChore || kind == service.RemoveBoth {
		if chore, err = s.prompt("\nEnter the name of the chore you would like to remove: "); err != nil {
			return err
		}
	}

	res, err := s.svc.RemoveFromHousehold(ctx, name, kind, participant, chore)
	printRemoval(s.out, res)
	if err != nil {
		s.printErr(err)
	}
	return nil
}

func (s *shell) view(ctx context.Context) error {
	name, ok, err := s.pickHousehold(ctx)
	if err != nil || !ok {
		return err
	}
	h, err := s.svc.ViewHousehold(ctx, name)
	if err != nil {
		s.printErr(err)
		return nil
	}
	fmt.Fprintln(s.out, "\n"+renderHousehold(h))
	return nil
}

func (s *shell) logChores(ctx context.Context) error {
	name, ok, err := s.pickHousehold(ctx)
	if err != nil || !ok {
		return err
	}
	board, err := s.svc.Leaderboard(ctx, name)
	if err != nil {
		s.printErr(err)
		return nil
	}
	if len(board.Standings) == 0 || len(board.Standings[0].Scores) == 0 {
		fmt.Fprintf(s.out, "Household %s has nothing to log yet.\n", name)
		return nil
	}

	participants := make([]string, len(board.Standings))
	for i, st := range board.Standings {
		participants[i] = st.Participant
	}
	fmt.Fprintln(s.out, "\n"+renderList("Participants", participants))
	participant, err := s.choose("\nEnter the participant number: ", participants)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nYou are logging %s's chores.\n", participant)

	standing := board.For(participant)
	chores := make([]string, len(standing.Scores))
	for i, cs := range standing.Scores {
		chores[i] = cs.Chore
	}
	fmt.Fprintln(s.out, "\n"+renderList("Weekly chores", chores))
	chore, err := s.choose("\nEnter the chore number: ", chores)
	if err != nil {
		return err
	}
	current := standing.Scores[slices.Index(chores, chore)].Score
	fmt.Fprintf(s.out, "\n%s has done %s %d times.\n", participant, chore, current)

	var increment int
	for {
		raw, err := s.prompt(fmt.Sprintf("\nHow many more times has %s done %s: ", participant, chore))
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fmt.Fprintln(s.out, renderError(fmt.Errorf("%w: enter a whole number of zero or more", models.ErrNegativeScore)))
			continue
		}
		increment = n
		break
	}

	res, err := s.svc.LogCompletion(ctx, name, participant, chore, increment)
	if err != nil {
		s.printErr(err)
		return nil
	}
	fmt.Fprintf(s.out, "\n%s has now done %s %d times.\n", res.Participant, res.Chore, res.After)
	return nil
}

func (s *shell) leaderboard(ctx context.Context) error {
	name, ok, err := s.pickHousehold(ctx)
	if err != nil || !ok {
		return err
	}
	board, err := s.svc.Leaderboard(ctx, name)
	if err != nil {
		s.printErr(err)
		return nil
	}
	fmt.Fprintln(s.out, "\n"+renderLeaderboard(board, board.Standings))
	return nil
}

func (s *shell) wipe(ctx context.Context) error {
	answer, err := s.prompt("\nAre you sure you want to remove all data?\nEnter <" +
		service.WipeConfirmation + "> to wipe, otherwise input any other character: ")
	if err != nil {
		return err
	}

	switch err := s.svc.Wipe(ctx, answer); {
	case errors.Is(err, models.ErrNotConfirmed):
		fmt.Fprintln(s.out, "\nData has not been wiped.")
	case err != nil:
		s.printErr(err)
	default:
		fmt.Fprintln(s.out, "\nData has been wiped.")
	}
	return nil
}

// pickHousehold lists the households and asks for one by name. ok is false
// when there is nothing to pick or the name is unknown.
func (s *shell) pickHousehold(ctx context.Context) (name string, ok bool, err error) {
	names, err := s.svc.ListHouseholds(ctx)
	if err != nil {
		s.printErr(err)
		return "", false, nil
	}
	fmt.Fprintln(s.out, "\n"+renderList("Households", names))
	if len(names) == 0 {
		fmt.Fprintln(s.out, "Create a household first.")
		return "", false, nil
	}

	name, err = s.prompt("\nEnter the desired household name: ")
	if err != nil {
		return "", false, err
	}
	if !slices.Contains(names, name) {
		fmt.Fprintf(s.out, "Household %s does not exist, returning to the menu.\n", name)
		return "", false, nil
	}
	return name, true, nil
}

// choose asks for one of options by list number or by name.
func (s *shell) choose(label string, options []string) (string, error) {
	for {
		raw, err := s.prompt(label)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		if slices.Contains(options, raw) {
			return raw, nil
		}
		fmt.Fprintf(s.out, "Enter a number between 1 and %d.\n", len(options))
	}
}

// collectParticipants reads names until a blank line once enough are
// collected, or until the household is full.
func (s *shell) collectParticipants(c *service.Collector[string]) error {
	_, max := s.limits.Bounds(c.Kind())
	for c.Total() < max {
		name, err := s.prompt(fmt.Sprintf("\nEnter the name of participant %d (blank to finish): ", c.Total()+1))
		if err != nil {
			return err
		}
		if validation.IsBlank(name) {
			if err := c.Done(); err != nil {
				s.printErr(err)
				continue
			}
			return nil
		}
		if err := c.Offer(name); err != nil {
			s.printErr(err)
		}
	}
	return nil
}

// collectChores is collectParticipants for chores. The name is checked
// before the weekly frequency is asked for.
func (s *shell) collectChores(c *service.Collector[models.Chore]) error {
	_, max := s.limits.Bounds(c.Kind())
	for c.Total() < max {
		name, err := s.prompt(fmt.Sprintf("\nEnter the name of chore %d (blank to finish): ", c.Total()+1))
		if err != nil {
			return err
		}
		if validation.IsBlank(name) {
			if err := c.Done(); err != nil {
				s.printErr(err)
				continue
			}
			return nil
		}
		if err := c.CheckName(name); err != nil {
			s.printErr(err)
			continue
		}

		freq, err := s.frequency()
		if err != nil {
			return err
		}
		if err := c.Offer(models.Chore{Name: name, Frequency: freq}); err != nil {
			s.printErr(err)
		}
	}
	return nil
}

func (s *shell) frequency() (int, error) {
	for {
		raw, err := s.prompt("\tTimes per week: ")
		if err != nil {
			return 0, err
		}
		freq, err := s.limits.ParseFrequency(raw)
		if err != nil {
			s.printErr(err)
			continue
		}
		return freq, nil
	}
}

func printRemoval(w io.Writer, res *service.RemovalResult) {
	if res == nil {
		return
	}
	if res.Participant != "" {
		fmt.Fprintf(w, "%s has been removed from the household.\n", res.Participant)
	}
	if res.Chore != "" {
		fmt.Fprintf(w, "%s has been removed from the household.\n", res.Chore)
	}
}
