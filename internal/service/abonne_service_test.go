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

func buildAbonneSvc() (service.AbonneService, *stubAbonneRepo, *stubJournalRepo) {
	repo := newStubAbonneRepo()
	journal := &stubJournalRepo{}
	return service.NewAbonneService(repo, journal), repo, journal
}

func TestCreerAbonne_NumeroGenere(t *testing.T) {
	svc, _, journal := buildAbonneSvc()

	resp, err := svc.Creer(context.Background(), testActeur(), dto.CreerAbonneRequest{
		Nom:       "Ouedraogo",
		Prenom:    "Issa",
		Telephone: "70000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "ABN00001", resp.NumeroAbonne)
	assert.Equal(t, "Ouedraogo Issa", resp.NomComplet)
	assert.True(t, resp.Actif)
	require.NotEmpty(t, journal.entrees)
	assert.Equal(t, "ABONNE_CREATE", journal.entrees[0].Action)
}

func TestCreerAbonne_NumeroExpliciteDejaPris(t *testing.T) {
	svc, _, _ := buildAbonneSvc()
	numero := "ABN00042"

	_, err := svc.Creer(context.Background(), testActeur(), dto.CreerAbonneRequest{
		NumeroAbonne: &numero, Nom: "Kabore", Telephone: "70000001",
	})
	require.NoError(t, err)

	_, err = svc.Creer(context.Background(), testActeur(), dto.CreerAbonneRequest{
		NumeroAbonne: &numero, Nom: "Sawadogo", Telephone: "70000002",
	})
	require.Error(t, err)
	assert.Equal(t, service.KindStateConflict, service.KindOf(err))
}

func TestGetAbonne_SoldeDu(t *testing.T) {
	svc, repo, _ := buildAbonneSvc()
	a := &model.Abonne{NumeroAbonne: "ABN00001", Nom: "Zongo", Telephone: "70000000", Actif: true}
	require.NoError(t, repo.Create(context.Background(), a))

	// Two factures: one fully paid, one with 770 outstanding.
	a.Factures = []model.Facture{
		{
			ID: 1, NumeroFacture: "FAC-202607-0001", AbonneID: a.ID,
			MontantTTC: decimal.NewFromInt(1180), Statut: model.FacturePayee,
			DateEmission: time.Now().AddDate(0, -1, 0),
			Paiements:    []model.Paiement{{Montant: decimal.NewFromInt(1180)}},
		},
		{
			ID: 2, NumeroFacture: "FAC-202608-0002", AbonneID: a.ID,
			MontantTTC: decimal.NewFromInt(1770), Statut: model.FacturePartiellementPayee,
			DateEmission: time.Now(),
			Paiements:    []model.Paiement{{Montant: decimal.NewFromInt(1000)}},
		},
	}

	resp, err := svc.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "770", resp.SoldeDu.String())
	assert.Len(t, resp.Factures, 2)
}

func TestActualiserAbonne_LimiteCreditNegative(t *testing.T) {
	svc, repo, _ := buildAbonneSvc()
	a := &model.Abonne{NumeroAbonne: "ABN00001", Nom: "Zongo", Telephone: "70000000", Actif: true}
	require.NoError(t, repo.Create(context.Background(), a))

	negative := decimal.NewFromInt(-100)
	_, err := svc.Actualiser(context.Background(), testActeur(), a.ID, dto.ActualiserAbonneRequest{
		LimiteCredit: &negative,
	})
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidInput, service.KindOf(err))
}

func TestDesactiverReactiverAbonne(t *testing.T) {
	svc, repo, _ := buildAbonneSvc()
	a := &model.Abonne{NumeroAbonne: "ABN00001", Nom: "Zongo", Telephone: "70000000", Actif: true}
	require.NoError(t, repo.Create(context.Background(), a))

	require.NoError(t, svc.Desactiver(context.Background(), testActeur(), a.ID))
	assert.False(t, a.Actif)

	require.NoError(t, svc.Reactiver(context.Background(), testActeur(), a.ID))
	assert.True(t, a.Actif)
}
