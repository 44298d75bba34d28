package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/models"
	"github.com/showfinder/showfinder/internal/parser"
	"github.com/showfinder/showfinder/internal/render"
	"github.com/showfinder/showfinder/internal/widget"
)

var errEmptyQuery = errors.New("search query is empty")

func newSearchCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search shows by title and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if parser.NormalizeQuery(query) == "" {
				return errEmptyQuery
			}

			tvmaze := d.newClient(config.GetConfig())
			defer tvmaze.Close()

			wg := widget.New(tvmaze)
			if err := wg.Search(cmd.Context(), query); err != nil {
				return err
			}
			return render.ShowsText(cmd.OutOrStdout(), wg.Shows().Items)
		},
	}
}

func newEpisodesCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes <show-id>",
		Short: "Print the episode list of a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tvmaze := d.newClient(config.GetConfig())
			defer tvmaze.Close()

			wg := widget.New(tvmaze)
			if err := wg.Episodes(cmd.Context(), models.ShowID(strings.TrimSpace(args[0]))); err != nil {
				return err
			}
			return render.EpisodesText(cmd.OutOrStdout(), wg.EpisodeList().Items)
		},
	}
}
