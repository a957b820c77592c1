package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paiementFixture struct {
	svc          service.PaiementService
	paiementRepo *stubPaiementRepo
	factureRepo  *stubFactureRepo
	comptaRepo   *stubComptaRepo
	journalRepo  *stubJournalRepo
}

func buildPaiementFixture() *paiementFixture {
	f := &paiementFixture{
		paiementRepo: newStubPaiementRepo(),
		factureRepo:  newStubFactureRepo(),
		comptaRepo:   &stubComptaRepo{},
		journalRepo:  &stubJournalRepo{},
	}
	f.factureRepo.paiements = f.paiementRepo
	f.svc = service.NewPaiementService(f.paiementRepo, f.factureRepo, f.comptaRepo, f.journalRepo)
	return f
}

// seedFacture creates an en_attente facture of 1500 HT + 18% TVA = 1770 TTC.
func (f *paiementFixture) seedFacture() *model.Facture {
	facture := &model.Facture{
		NumeroFacture: "FAC-202608-0001",
		AbonneID:      1,
		MontantHT:     decimal.NewFromInt(1500),
		TauxTVA:       decimal.NewFromInt(18),
		MontantTVA:    decimal.NewFromInt(270),
		MontantTTC:    decimal.NewFromInt(1770),
		Statut:        model.FactureEnAttente,
		DateEmission:  time.Now(),
	}
	_ = f.factureRepo.CreateTx(nil, facture)
	return facture
}

func TestAppliquerPaiement_Total(t *testing.T) {
	f := buildPaiementFixture()
	facture := f.seedFacture()

	resp, err := f.svc.Appliquer(context.Background(), testActeur(), dto.AppliquerPaiementRequest{
		FactureID: facture.ID,
		Montant:   decimal.NewFromInt(1770),
		Mode:      "especes",
	})
	require.NoError(t, err)
	assert.Equal(t, model.FacturePayee, facture.Statut)
	assert.Equal(t, model.FacturePayee, resp.FactureStatut)
	assert.True(t, resp.ResteAPayer.IsZero())
	assert.Equal(t, "gerant1", resp.RecuPar)

	// One recette in the ledger referencing the facture.
	require.Len(t, f.comptaRepo.ecritures, 1)
	assert.Equal(t, model.ComptaRecette, f.comptaRepo.ecritures[0].Type)
	assert.Equal(t, "1770", f.comptaRepo.ecritures[0].Montant.String())
	assert.Equal(t, "FAC-202608-0001", f.comptaRepo.ecritures[0].Reference)
}

func TestAppliquerPaiement_Partiel(t *testing.T) {
	f := buildPaiementFixture()
	facture := f.seedFacture()

	resp, err := f.svc.Appliquer(context.Background(), testActeur(), dto.AppliquerPaiementRequest{
		FactureID: facture.ID,
		Montant:   decimal.NewFromInt(1000),
		Mode:      "mobile_money",
	})
	require.NoError(t, err)
	assert.Equal(t, model.FacturePartiellementPayee, facture.Statut)
	assert.Equal(t, "770", resp.ResteAPayer.String())
}

func TestAppliquerPaiement_SurpaiementRefuse(t *testing.T) {
	f := buildPaiementFixture()
	facture := f.seedFacture()

	// 1270 already paid, reste 500; 600 must be rejected outright.
	_, err := f.svc.Appliquer(context.Background(), testActeur(), dto.AppliquerPaiementRequest{
		FactureID: facture.ID, Montant: decimal.NewFromInt(1270), Mode: "especes",
	})
	require.NoError(t, err)

	_, err = f.svc.Appliquer(context.Background(), testActeur(), dto.AppliquerPaiementRequest{
		FactureID: facture.ID, Montant: decimal.NewFromInt(600), Mode: "especes",
	})
	require.Error(t, err)
	assert.Equal(t, service.KindOverpaymentRejected, service.KindOf(err))
	assert.ErrorContains(t, err, "reste à payer")

	// Only the first payment stands; a 500 settlement still goes through.
	assert.Len(t, f.paiementRepo.paiements, 1)
	_, err = f.svc.Appliquer(context.Background(), testActeur(), dto.AppliquerPaiementRequest{
		FactureID: facture.ID, Montant: decimal.NewFromInt(500), Mode: "carte",
	})
	require.NoError(t, err)
	assert.Equal(t, model.FacturePayee, facture.Statut)
}

func TestAppliquerPaiement_MontantNonPositif(t *testing.T) {
	f := buildPaiementFixture()
	facture := f.seedFacture()

	_, err := f.svc.Appliquer(context.Background(), testActeur(), dto.AppliquerPaiementRequest{
		FactureID: facture.ID, Montant: decimal.Zero, Mode: "especes",
	})
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidInput, service.KindOf(err))
}

func TestAppliquerPaiement_FacturePayee(t *testing.T) {
	f := buildPaiementFixture()
	facture := f.seedFacture()
	facture.Statut = model.FacturePayee

	_, err := f.svc.Appliquer(context.Background(), testActeur(), dto.AppliquerPaiementRequest{
		FactureID: facture.ID, Montant: decimal.NewFromInt(10), Mode: "especes",
	})
	require.Error(t, err)
	assert.Equal(t, service.KindStateConflict, service.KindOf(err))
}

func TestSupprimerPaiement_RederiveStatutEtCompense(t *testing.T) {
	f := buildPaiementFixture()
	facture := f.seedFacture()

	resp, err := f.svc.Appliquer(context.Background(), testActeur(), dto.AppliquerPaiementRequest{
		FactureID: facture.ID, Montant: decimal.NewFromInt(1770), Mode: "especes",
	})
	require.NoError(t, err)
	require.Equal(t, model.FacturePayee, facture.Statut)

	require.NoError(t, f.svc.Supprimer(context.Background(), testActeur(), resp.ID))

	// Status falls back to en_attente, ledger gets a compensating depense.
	assert.Equal(t, model.FactureEnAttente, facture.Statut)
	require.Len(t, f.comptaRepo.ecritures, 2)
	assert.Equal(t, model.ComptaDepense, f.comptaRepo.ecritures[1].Type)
	assert.Equal(t, "1770", f.comptaRepo.ecritures[1].Montant.String())

	recettes, depenses, _ := f.comptaRepo.Totaux(context.Background(), "", "")
	assert.True(t, recettes.Equal(depenses))
}
