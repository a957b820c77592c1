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

type consoFixture struct {
	svc           service.ConsommationService
	consoRepo     *stubConsommationRepo
	abonneRepo    *stubAbonneRepo
	produitRepo   *stubProduitRepo
	factureRepo   *stubFactureRepo
	paiementRepo  *stubPaiementRepo
	mouvementRepo *stubMouvementRepo
	journalRepo   *stubJournalRepo
}

func buildConsoFixture() *consoFixture {
	f := &consoFixture{
		consoRepo:     newStubConsommationRepo(),
		abonneRepo:    newStubAbonneRepo(),
		produitRepo:   newStubProduitRepo(),
		factureRepo:   newStubFactureRepo(),
		paiementRepo:  newStubPaiementRepo(),
		mouvementRepo: &stubMouvementRepo{},
		journalRepo:   &stubJournalRepo{},
	}
	f.factureRepo.paiements = f.paiementRepo
	params := &stubParametresRepo{}
	_ = params.Seed(context.Background(), "Cave Test", "FCFA", decimal.NewFromInt(18))

	stockSvc := service.NewStockService(f.produitRepo, f.mouvementRepo, f.journalRepo)
	f.svc = service.NewConsommationService(
		f.consoRepo, f.abonneRepo, f.produitRepo, f.factureRepo, params, f.journalRepo, stockSvc)
	return f
}

func (f *consoFixture) seedAbonne(actif bool) *model.Abonne {
	a := &model.Abonne{
		NumeroAbonne: "ABN00001",
		Nom:          "Ouedraogo",
		Prenom:       "Issa",
		Telephone:    "70000000",
		Actif:        actif,
	}
	_ = f.abonneRepo.Create(context.Background(), a)
	return a
}

func TestEnregistrerConsommation_PrixFigeEtStock(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	produit := seedProduit(f.produitRepo, "Bordeaux 750ml", 10, 500)

	resp, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID:  abonne.ID,
		ProduitID: produit.ID,
		Quantite:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, "500", resp.PrixUnitaire.String())
	assert.Equal(t, "1500", resp.MontantTotal.String())
	require.NotNil(t, resp.StockRestant)
	assert.Equal(t, 7, *resp.StockRestant)
	assert.Equal(t, 7, produit.Stock)

	// One sortie movement with snapshots.
	require.Len(t, f.mouvementRepo.mouvements, 1)
	mvt := f.mouvementRepo.mouvements[0]
	assert.Equal(t, model.MouvementSortie, mvt.Type)
	assert.Equal(t, -3, mvt.Quantite)
	assert.Equal(t, 10, mvt.StockAvant)
	assert.Equal(t, 7, mvt.StockApres)

	// Attached to a fresh facture, amounts recomputed at 18% TVA.
	require.NotNil(t, resp.FactureID)
	facture, ferr := f.factureRepo.FindByID(context.Background(), *resp.FactureID)
	require.NoError(t, ferr)
	assert.Equal(t, "1500", facture.MontantHT.String())
	assert.Equal(t, "270", facture.MontantTVA.String())
	assert.Equal(t, "1770", facture.MontantTTC.String())
	assert.Equal(t, model.FactureEnAttente, facture.Statut)
}

func TestEnregistrerConsommation_PrixFigeApresChangement(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	produit := seedProduit(f.produitRepo, "Brakina 65cl", 50, 600)

	resp, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID:  abonne.ID,
		ProduitID: produit.ID,
		Quantite:  2,
	})
	require.NoError(t, err)

	// Price rises afterwards; the recorded line keeps the old price.
	produit.PrixVente = decimal.NewFromInt(800)
	conso, cerr := f.consoRepo.FindByID(context.Background(), resp.ID)
	require.NoError(t, cerr)
	assert.Equal(t, "600", conso.PrixUnitaire.String())
	assert.Equal(t, "1200", conso.MontantTotal.String())
}

func TestEnregistrerConsommation_StockInsuffisant(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	produit := seedProduit(f.produitRepo, "Champagne", 2, 15000)

	_, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID:  abonne.ID,
		ProduitID: produit.ID,
		Quantite:  5,
	})
	require.Error(t, err)
	assert.Equal(t, service.KindInsufficientStock, service.KindOf(err))

	// No partial writes: stock intact, no movement recorded.
	assert.Equal(t, 2, produit.Stock)
	assert.Empty(t, f.mouvementRepo.mouvements)
}

func TestEnregistrerConsommation_AbonneInactif(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(false)
	produit := seedProduit(f.produitRepo, "Vin blanc", 10, 400)

	_, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID:  abonne.ID,
		ProduitID: produit.ID,
		Quantite:  1,
	})
	require.Error(t, err)
	assert.Equal(t, service.KindStateConflict, service.KindOf(err))
}

func TestEnregistrerConsommation_QuantiteInvalide(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	produit := seedProduit(f.produitRepo, "Vin rouge", 10, 400)

	_, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID:  abonne.ID,
		ProduitID: produit.ID,
		Quantite:  0,
	})
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidInput, service.KindOf(err))
}

func TestEnregistrerConsommation_FactureOuverteReutilisee(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	produit := seedProduit(f.produitRepo, "Bordeaux", 20, 500)

	r1, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID: abonne.ID, ProduitID: produit.ID, Quantite: 2,
	})
	require.NoError(t, err)
	r2, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID: abonne.ID, ProduitID: produit.ID, Quantite: 1,
	})
	require.NoError(t, err)

	// Both lines land on the same open facture; HT cumulates.
	require.NotNil(t, r1.FactureID)
	require.NotNil(t, r2.FactureID)
	assert.Equal(t, *r1.FactureID, *r2.FactureID)

	facture, _ := f.factureRepo.FindByID(context.Background(), *r1.FactureID)
	assert.Equal(t, "1500", facture.MontantHT.String())
}

func TestEnregistrerConsommation_NouvelleFactureApresPaiement(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	produit := seedProduit(f.produitRepo, "Bordeaux", 20, 500)

	r1, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID: abonne.ID, ProduitID: produit.ID, Quantite: 2,
	})
	require.NoError(t, err)

	// A payment lands on the facture; it is no longer "open".
	_ = f.paiementRepo.CreateTx(nil, &model.Paiement{
		FactureID: *r1.FactureID,
		Montant:   decimal.NewFromInt(100),
		Mode:      "especes",
	})

	r2, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID: abonne.ID, ProduitID: produit.ID, Quantite: 1,
	})
	require.NoError(t, err)
	assert.NotEqual(t, *r1.FactureID, *r2.FactureID)
}

func TestActualiserConsommation_QuantiteAjusteStockEtFacture(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	produit := seedProduit(f.produitRepo, "Bordeaux", 10, 500)

	r, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID: abonne.ID, ProduitID: produit.ID, Quantite: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, produit.Stock)

	// 3 → 5: two more units leave stock, facture grows by 1000 HT.
	cinq := 5
	resp, err := f.svc.Actualiser(context.Background(), testActeur(), r.ID, dto.ActualiserConsommationRequest{
		Quantite: &cinq,
	})
	require.NoError(t, err)
	assert.Equal(t, "2500", resp.MontantTotal.String())
	assert.Equal(t, 5, produit.Stock)

	facture, _ := f.factureRepo.FindByID(context.Background(), *r.FactureID)
	assert.Equal(t, "2500", facture.MontantHT.String())
	assert.Equal(t, "2950", facture.MontantTTC.String())
}

func TestSupprimerConsommation_RestaureStock(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	produit := seedProduit(f.produitRepo, "Bordeaux", 10, 500)

	r, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
		AbonneID: abonne.ID, ProduitID: produit.ID, Quantite: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, produit.Stock)

	require.NoError(t, f.svc.Supprimer(context.Background(), testActeur(), r.ID))

	assert.Equal(t, 10, produit.Stock)
	_, err = f.consoRepo.FindByID(context.Background(), r.ID)
	assert.Error(t, err)

	facture, _ := f.factureRepo.FindByID(context.Background(), *r.FactureID)
	assert.True(t, facture.MontantHT.IsZero())
}

func TestStatsConsommations(t *testing.T) {
	f := buildConsoFixture()
	abonne := f.seedAbonne(true)
	bordeaux := seedProduit(f.produitRepo, "Bordeaux", 50, 500)
	fanta := seedProduit(f.produitRepo, "Fanta", 50, 300)

	for _, c := range []struct {
		produitID uint
		qte       int
	}{{bordeaux.ID, 4}, {fanta.ID, 2}, {bordeaux.ID, 1}} {
		_, err := f.svc.Enregistrer(context.Background(), testActeur(), dto.EnregistrerConsommationRequest{
			AbonneID: abonne.ID, ProduitID: c.produitID, Quantite: c.qte,
		})
		require.NoError(t, err)
	}

	stats, err := f.svc.Stats(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalConsommations)
	assert.Equal(t, int64(7), stats.TotalItemsVendus)
	// 5×500 + 2×300 = 3100
	assert.Equal(t, "3100", stats.MontantTotalVentes.String())
	require.NotEmpty(t, stats.TopProduits)
	assert.Equal(t, "Bordeaux", stats.TopProduits[0].Nom)
	assert.Equal(t, 5, stats.TopProduits[0].Quantite)
}
