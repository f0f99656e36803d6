package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"skill-swap/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("Seeder | done name=%s took=%s", s.Name(), time.Since(start).Round(time.Millisecond))
		}
	}
	return nil
}
