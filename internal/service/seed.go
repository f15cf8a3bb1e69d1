package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/repository"
)

// SeedContent inserts the welcome notice and story on a cold start if
// none exist. The count-then-insert check makes re-runs no-ops but is
// not atomic: two instances cold-starting at the same instant can both
// pass the count and insert duplicates. Duplicated editorial content is
// harmless and admins can delete it, so the window is accepted rather
// than locked around. The class catalog, where duplicates would matter,
// is seeded by migration with conflict-free inserts instead.
func SeedContent(ctx context.Context, notices *repository.NoticeRepository, stories *repository.StoryRepository, log zerolog.Logger) error {
	n, err := notices.Count(ctx)
	if err != nil {
		return fmt.Errorf("count notices: %w", err)
	}
	if n == 0 {
		welcome := &model.Notice{
			Title:  "Welcome to the new school portal",
			Body:   "Admission applications for the upcoming session are now open. Apply through the admission form.",
			Author: "School Administration",
		}
		if err := notices.Create(ctx, welcome); err != nil {
			return fmt.Errorf("seed welcome notice: %w", err)
		}
		log.Info().Msg("Seeded welcome notice")
	}

	n, err = stories.Count(ctx)
	if err != nil {
		return fmt.Errorf("count stories: %w", err)
	}
	if n == 0 {
		first := &model.Story{
			Title:      "Our school, our story",
			Content:    "From a single classroom to sixteen grades, a short history of how our school grew with its students.",
			AuthorName: "School Administration",
		}
		if err := stories.Create(ctx, first); err != nil {
			return fmt.Errorf("seed first story: %w", err)
		}
		log.Info().Msg("Seeded first story")
	}

	return nil
}
