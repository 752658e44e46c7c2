package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/chorechart/internal/calculator"
	"github.com/mmynk/chorechart/internal/models"
	"github.com/mmynk/chorechart/internal/service"
	"github.com/mmynk/chorechart/internal/validation"
)

func aboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Describe chorechart",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), renderAbout())
		},
	}
}

func menuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newShell(a.svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List households",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.svc.ListHouseholds(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderList("Households", names))
			return nil
		},
	}
}

func createCmd(a *app) *cobra.Command {
	var members, choreSpecs []string

	cmd := &cobra.Command{
		Use:     "create NAME",
		Short:   "Create a household with its participants and chores",
		Example: "  chorechart create Flatshare --member Ann --member Bob --chore Dishes=3 --chore \"Take out bins\"=1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chores, err := parseChores(a.svc.Limits(), choreSpecs)
			if err != nil {
				return err
			}
			h, err := a.svc.CreateHousehold(cmd.Context(), args[0], members, chores)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHousehold(h))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&members, "member", "m", nil, "participant name (repeatable)")
	cmd.Flags().StringArrayVarP(&choreSpecs, "chore", "c", nil, "chore as NAME=TIMES_PER_WEEK (repeatable)")
	return cmd
}

func addCmd(a *app) *cobra.Command {
	var members, choreSpecs []string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add participants and/or chores to a household",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chores, err := parseChores(a.svc.Limits(), choreSpecs)
			if err != nil {
				return err
			}
			h, err := a.svc.AddToHousehold(cmd.Context(), args[0], members, chores)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHousehold(h))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&members, "member", "m", nil, "participant name (repeatable)")
	cmd.Flags().StringArrayVarP(&choreSpecs, "chore", "c", nil, "chore as NAME=TIMES_PER_WEEK (repeatable)")
	return cmd
}

func removeCmd(a *app) *cobra.Command {
	var participant, chore string

	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a participant, a chore, or one of each from a household",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind service.RemovalKind
			switch {
			case participant != "" && chore != "":
				kind = service.RemoveBoth
			case participant != "":
				kind = service.RemoveParticipant
			case chore != "":
				kind = service.RemoveChore
			default:
				return errors.New("give --participant, --chore or both")
			}

			res, err := a.svc.RemoveFromHousehold(cmd.Context(), args[0], kind, participant, chore)
			printRemoval(cmd.OutOrStdout(), res)
			return err
		},
	}
	cmd.Flags().StringVarP(&participant, "participant", "p", "", "participant to remove")
	cmd.Flags().StringVarP(&chore, "chore", "c", "", "chore to remove")
	return cmd
}

func viewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view NAME",
		Short: "Show a household's participants and chores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.svc.ViewHousehold(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHousehold(h))
			return nil
		},
	}
}

func logCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log NAME PARTICIPANT CHORE [COUNT]",
		Short: "Record that a participant did a chore COUNT more times (default 1)",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 1
			if len(args) == 4 {
				n, err := strconv.Atoi(args[3])
				if err != nil {
					return fmt.Errorf("count %q is not a whole number", args[3])
				}
				count = n
			}

			res, err := a.svc.LogCompletion(cmd.Context(), args[0], args[1], args[2], count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s has now done %s %d times (was %d).\n",
				res.Participant, res.Chore, res.After, res.Before)
			return nil
		},
	}
}

func leaderboardCmd(a *app) *cobra.Command {
	var ranked bool

	cmd := &cobra.Command{
		Use:   "leaderboard NAME",
		Short: "Show how many times each participant has done each chore",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.svc.Leaderboard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			standings := board.Standings
			if ranked {
				standings = calculator.RankByTotal(board)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLeaderboard(board, standings))
			return nil
		},
	}
	cmd.Flags().BoolVar(&ranked, "ranked", false, "order participants by total completions")
	return cmd
}

func wipeCmd(a *app) *cobra.Command {
	var confirm string

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every household",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Wipe(cmd.Context(), confirm); err != nil {
				if errors.Is(err, models.ErrNotConfirmed) {
					return fmt.Errorf("data has not been wiped: %w; pass --confirm %s", err, service.WipeConfirmation)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Data has been wiped.")
			return nil
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "", "must be \""+service.WipeConfirmation+"\"")
	return cmd
}

// parseChores converts NAME=FREQ flag values into chores. The split is on
// the last '=' so the name keeps any spaces.
func parseChores(limits validation.Limits, values []string) ([]models.Chore, error) {
	chores := make([]models.Chore, 0, len(values))
	for _, raw := range values {
		i := strings.LastIndex(raw, "=")
		if i < 0 {
			return nil, fmt.Errorf("%w: chore %q must be NAME=TIMES_PER_WEEK", models.ErrInvalidFrequency, raw)
		}
		freq, err := limits.ParseFrequency(raw[i+1:])
		if err != nil {
			return nil, err
		}
		chores = append(chores, models.Chore{Name: strings.TrimSpace(raw[:i]), Frequency: freq})
	}
	return chores, nil
}
