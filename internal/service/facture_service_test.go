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

type factureFixture struct {
	svc         service.FactureService
	factureRepo *stubFactureRepo
	consoRepo   *stubConsommationRepo
	abonneRepo  *stubAbonneRepo
	journalRepo *stubJournalRepo
}

func buildFactureFixture() *factureFixture {
	f := &factureFixture{
		factureRepo: newStubFactureRepo(),
		consoRepo:   newStubConsommationRepo(),
		abonneRepo:  newStubAbonneRepo(),
		journalRepo: &stubJournalRepo{},
	}
	params := &stubParametresRepo{}
	_ = params.Seed(context.Background(), "Cave Test", "FCFA", decimal.NewFromInt(18))
	// Nil dispatcher: billing never depends on the PDF queue.
	f.svc = service.NewFactureService(f.factureRepo, f.consoRepo, f.abonneRepo, params, f.journalRepo, nil)
	return f
}

func (f *factureFixture) seedAbonne() *model.Abonne {
	a := &model.Abonne{NumeroAbonne: "ABN00001", Nom: "Kabore", Telephone: "70000000", Actif: true}
	_ = f.abonneRepo.Create(context.Background(), a)
	return a
}

func (f *factureFixture) seedConso(abonneID uint, montant int64) *model.Consommation {
	c := &model.Consommation{
		AbonneID:     abonneID,
		ProduitID:    1,
		Quantite:     1,
		PrixUnitaire: decimal.NewFromInt(montant),
		MontantTotal: decimal.NewFromInt(montant),
	}
	_ = f.consoRepo.CreateTx(nil, c)
	return c
}

func TestCreerFacture_RegroupeConsommations(t *testing.T) {
	f := buildFactureFixture()
	abonne := f.seedAbonne()
	c1 := f.seedConso(abonne.ID, 1000)
	c2 := f.seedConso(abonne.ID, 500)

	resp, err := f.svc.Creer(context.Background(), testActeur(), dto.CreerFactureRequest{
		AbonneID:        abonne.ID,
		ConsommationIDs: []uint{c1.ID, c2.ID},
	})
	require.NoError(t, err)

	assert.Contains(t, resp.NumeroFacture, "FAC-")
	assert.Equal(t, "1500", resp.MontantHT.String())
	assert.Equal(t, "270", resp.MontantTVA.String())
	assert.Equal(t, "1770", resp.MontantTTC.String())
	assert.Equal(t, model.FactureEnAttente, resp.Statut)

	// Both lines now carry the facture id.
	require.NotNil(t, c1.FactureID)
	require.NotNil(t, c2.FactureID)
	assert.Equal(t, *c1.FactureID, *c2.FactureID)
}

func TestCreerFacture_ConsommationDejaFacturee(t *testing.T) {
	f := buildFactureFixture()
	abonne := f.seedAbonne()
	c := f.seedConso(abonne.ID, 1000)
	deja := uint(99)
	c.FactureID = &deja

	_, err := f.svc.Creer(context.Background(), testActeur(), dto.CreerFactureRequest{
		AbonneID:        abonne.ID,
		ConsommationIDs: []uint{c.ID},
	})
	require.Error(t, err)
	assert.Equal(t, service.KindStateConflict, service.KindOf(err))
}

func TestCreerFacture_ConsommationAutreAbonne(t *testing.T) {
	f := buildFactureFixture()
	abonne := f.seedAbonne()
	autre := &model.Abonne{NumeroAbonne: "ABN00002", Nom: "Sawadogo", Telephone: "71111111", Actif: true}
	_ = f.abonneRepo.Create(context.Background(), autre)
	c := f.seedConso(autre.ID, 1000)

	_, err := f.svc.Creer(context.Background(), testActeur(), dto.CreerFactureRequest{
		AbonneID:        abonne.ID,
		ConsommationIDs: []uint{c.ID},
	})
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidInput, service.KindOf(err))
}

func TestCreerFacture_EcheanceInvalide(t *testing.T) {
	f := buildFactureFixture()
	abonne := f.seedAbonne()
	c := f.seedConso(abonne.ID, 1000)

	_, err := f.svc.Creer(context.Background(), testActeur(), dto.CreerFactureRequest{
		AbonneID:        abonne.ID,
		ConsommationIDs: []uint{c.ID},
		DateEcheance:    "31/12/2026",
	})
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidInput, service.KindOf(err))
}

func TestSupprimerFacture_AvecPaiementRefuse(t *testing.T) {
	f := buildFactureFixture()
	facture := &model.Facture{
		NumeroFacture: "FAC-202608-0001",
		AbonneID:      1,
		MontantTTC:    decimal.NewFromInt(1770),
		Statut:        model.FacturePartiellementPayee,
		DateEmission:  time.Now(),
		Paiements:     []model.Paiement{{Montant: decimal.NewFromInt(500), Mode: "especes"}},
	}
	_ = f.factureRepo.CreateTx(nil, facture)

	err := f.svc.Supprimer(context.Background(), testActeur(), facture.ID)
	require.Error(t, err)
	assert.Equal(t, service.KindStateConflict, service.KindOf(err))
}

func TestSupprimerFacture_DetacheConsommations(t *testing.T) {
	f := buildFactureFixture()
	abonne := f.seedAbonne()
	c1 := f.seedConso(abonne.ID, 1000)

	resp, err := f.svc.Creer(context.Background(), testActeur(), dto.CreerFactureRequest{
		AbonneID:        abonne.ID,
		ConsommationIDs: []uint{c1.ID},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Supprimer(context.Background(), testActeur(), resp.ID))

	// The line returns to the unbilled pool.
	assert.Nil(t, c1.FactureID)
	nonFacturees, err := f.svc.NonFacturees(context.Background(), abonne.ID)
	require.NoError(t, err)
	require.Len(t, nonFacturees, 1)
	assert.Equal(t, c1.ID, nonFacturees[0].ID)
}

func TestPDFPath_NonGenere(t *testing.T) {
	f := buildFactureFixture()
	facture := &model.Facture{NumeroFacture: "FAC-202608-0001", AbonneID: 1, DateEmission: time.Now(), Statut: model.FactureEnAttente}
	_ = f.factureRepo.CreateTx(nil, facture)

	_, err := f.svc.PDFPath(context.Background(), facture.ID)
	require.Error(t, err)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	require.NoError(t, f.factureRepo.SetPDFPath(context.Background(), facture.ID, "/tmp/cave/pdfs/facture_FAC-202608-0001.pdf"))
	chemin, err := f.svc.PDFPath(context.Background(), facture.ID)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cave/pdfs/facture_FAC-202608-0001.pdf", chemin)
}
