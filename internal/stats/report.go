package stats

import (
	"context"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/model"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/store"
)

// DefaultTopWords is the number of words listed when the config leaves it unset.
const DefaultTopWords = 20

// Report contains precomputed data for stats rendering.
type Report struct {
	Games    []model.GameAggregate
	Summary  Summary
	TopWords []model.WordAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}
	top := cfg.Top
	if top <= 0 {
		top = DefaultTopWords
	}
	words, err := st.TopWords(ctx, gameIDs(games), top)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Games:    games,
		Summary:  Summarize(games),
		TopWords: words,
	}, nil
}

func gameIDs(games []model.GameAggregate) []int64 {
	ids := make([]int64, len(games))
	for i, g := range games {
		ids[i] = g.GameID
	}
	return ids
}
