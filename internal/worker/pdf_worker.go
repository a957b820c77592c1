package worker

// pdf_worker.go
// Processes PDF jobs from QueueFacturePDF: renders the invoice, stores the
// path on the facture, then chains an email job when the subscriber has an
// address on file.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/infra"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"

	"github.com/rs/zerolog/log"
)

// FacturePDFPayload is the job envelope sent to QueueFacturePDF.
type FacturePDFPayload struct {
	FactureID uint `json:"facture_id"`
}

type PDFWorker struct {
	factureRepo    repository.FactureRepository
	parametresRepo repository.ParametresRepository
	dispatcher     *Dispatcher
	storagePath    string
}

func NewPDFWorker(
	factureRepo repository.FactureRepository,
	parametresRepo repository.ParametresRepository,
	dispatcher *Dispatcher,
	storagePath string,
) *PDFWorker {
	return &PDFWorker{
		factureRepo:    factureRepo,
		parametresRepo: parametresRepo,
		dispatcher:     dispatcher,
		storagePath:    storagePath,
	}
}

func (w *PDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload FacturePDFPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	f, err := w.factureRepo.FindByID(ctx, payload.FactureID)
	if err != nil {
		return fmt.Errorf("pdf_worker: facture %d: %w", payload.FactureID, err)
	}

	nomCave, devise := "Cave Gestion", "FCFA"
	if params, perr := w.parametresRepo.Get(ctx); perr == nil {
		nomCave, devise = params.NomCave, params.Devise
	}

	path, err := infra.GenerateFacturePDF(f, nomCave, devise, w.storagePath)
	if err != nil {
		return fmt.Errorf("pdf_worker: generate: %w", err)
	}
	if err := w.factureRepo.SetPDFPath(ctx, f.ID, path); err != nil {
		return fmt.Errorf("pdf_worker: save path: %w", err)
	}

	log.Info().Str("facture", f.NumeroFacture).Str("path", path).Msg("pdf_worker: facture PDF generated")

	if f.Abonne != nil && f.Abonne.Email != nil && *f.Abonne.Email != "" {
		if err := w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
			ToEmail: *f.Abonne.Email,
			Subject: "Votre facture " + f.NumeroFacture,
			Body: fmt.Sprintf("Bonjour %s,\n\nVeuillez trouver ci-joint votre facture %s d'un montant de %s %s.\n\n%s",
				f.Abonne.NomComplet(), f.NumeroFacture, f.MontantTTC.StringFixed(2), devise, nomCave),
			PDFPath: path,
		}); err != nil {
			log.Warn().Err(err).Str("facture", f.NumeroFacture).Msg("pdf_worker: failed to enqueue email")
		}
	}
	return nil
}
