package worker

// relance_cron.go
// Background goroutine that periodically looks for unpaid factures past
// their due date and enqueues a reminder email per subscriber.

import (
	"context"
	"fmt"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	relanceTickInterval = 12 * time.Hour
	relanceBatchSize    = 50
)

// RelanceCronConfig holds the dependencies of the reminder goroutine.
type RelanceCronConfig struct {
	FactureRepo repository.FactureRepository
	Dispatcher  *Dispatcher
	NomCave     string
	Devise      string
}

// StartRelanceCron launches a goroutine that ticks twice a day and sends
// payment reminders for overdue factures. Respects ctx for shutdown.
func StartRelanceCron(ctx context.Context, cfg RelanceCronConfig) {
	go func() {
		ticker := time.NewTicker(relanceTickInterval)
		defer ticker.Stop()

		log.Info().Msg("relance_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("relance_cron: shutting down")
				return
			case <-ticker.C:
				processRelances(ctx, cfg)
			}
		}
	}()
}

func processRelances(ctx context.Context, cfg RelanceCronConfig) {
	factures, err := cfg.FactureRepo.ListEchues(ctx, time.Now(), relanceBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("relance_cron: failed to query overdue factures")
		return
	}
	if len(factures) == 0 {
		return
	}

	log.Info().Int("count", len(factures)).Msg("relance_cron: processing overdue factures")

	for i := range factures {
		f := &factures[i]
		// Only remind past the due date, not merely unpaid.
		if f.DateEcheance == nil || f.DateEcheance.After(time.Now()) {
			continue
		}
		if f.Abonne == nil || f.Abonne.Email == nil || *f.Abonne.Email == "" {
			continue
		}

		reste := f.ResteAPayer()
		err := cfg.Dispatcher.EnqueueEmail(ctx, EmailJobPayload{
			ToEmail: *f.Abonne.Email,
			Subject: "Rappel: facture " + f.NumeroFacture + " en attente de paiement",
			Body: fmt.Sprintf("Bonjour %s,\n\nVotre facture %s du %s reste impayée: %s %s à régler.\n\n%s",
				f.Abonne.NomComplet(), f.NumeroFacture,
				f.DateEmission.Format("02/01/2006"), reste.StringFixed(2), cfg.Devise, cfg.NomCave),
		})
		if err != nil {
			log.Error().Err(err).Str("facture", f.NumeroFacture).Msg("relance_cron: failed to enqueue reminder")
		}
	}
}
