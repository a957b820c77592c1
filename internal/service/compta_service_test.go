package service_test

import (
	"context"
	"testing"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildComptaSvc() (service.ComptaService, *stubComptaRepo, *stubJournalRepo) {
	comptaRepo := &stubComptaRepo{}
	journalRepo := &stubJournalRepo{}
	params := &stubParametresRepo{}
	_ = params.Seed(context.Background(), "Cave Test", "FCFA", decimal.NewFromInt(18))
	return service.NewComptaService(comptaRepo, params, journalRepo), comptaRepo, journalRepo
}

func TestEnregistrerEcriture(t *testing.T) {
	svc, comptaRepo, journalRepo := buildComptaSvc()

	resp, err := svc.Enregistrer(context.Background(), testActeur(), dto.CreerEcritureRequest{
		Type:        model.ComptaDepense,
		Montant:     decimal.NewFromInt(25000),
		Commentaire: "achat de casiers",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComptaDepense, resp.Type)
	assert.Equal(t, "25000", resp.Montant.String())
	require.Len(t, comptaRepo.ecritures, 1)
	require.NotEmpty(t, journalRepo.entrees)
}

func TestEnregistrerEcriture_MontantNonPositif(t *testing.T) {
	svc, _, _ := buildComptaSvc()

	_, err := svc.Enregistrer(context.Background(), testActeur(), dto.CreerEcritureRequest{
		Type:    model.ComptaRecette,
		Montant: decimal.NewFromInt(-5),
	})
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidInput, service.KindOf(err))
}

func TestSoldeCompta(t *testing.T) {
	svc, comptaRepo, _ := buildComptaSvc()
	_ = comptaRepo.Create(context.Background(), &model.EcritureCompta{Type: model.ComptaRecette, Montant: decimal.NewFromInt(1770)})
	_ = comptaRepo.Create(context.Background(), &model.EcritureCompta{Type: model.ComptaRecette, Montant: decimal.NewFromInt(500)})
	_ = comptaRepo.Create(context.Background(), &model.EcritureCompta{Type: model.ComptaDepense, Montant: decimal.NewFromInt(800)})

	resp, err := svc.Solde(context.Background())
	require.NoError(t, err)
	// 2270 de recettes − 800 de dépenses
	assert.Equal(t, "1470", resp.Solde.String())
	assert.Equal(t, "FCFA", resp.Devise)
}

func TestRapportCompta(t *testing.T) {
	svc, comptaRepo, _ := buildComptaSvc()
	_ = comptaRepo.Create(context.Background(), &model.EcritureCompta{Type: model.ComptaRecette, Montant: decimal.NewFromInt(1000)})

	resp, err := svc.Rapport(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, "1000", resp.TotalRecettes.String())
	assert.Equal(t, "1000", resp.Solde.String())
	assert.NotEmpty(t, resp.DernieresOps)
}
