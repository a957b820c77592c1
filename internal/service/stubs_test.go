package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
//
// In-memory repositories. Every DB() returns nil so services run their
// transactional closures with a nil tx.

type stubProduitRepo struct {
	produits map[uint]*model.Produit
	seq      uint
}

func newStubProduitRepo() *stubProduitRepo {
	return &stubProduitRepo{produits: make(map[uint]*model.Produit)}
}

func (r *stubProduitRepo) Create(_ context.Context, p *model.Produit) error {
	return r.CreateTx(nil, p)
}

func (r *stubProduitRepo) CreateTx(_ *gorm.DB, p *model.Produit) error {
	r.seq++
	p.ID = r.seq
	r.produits[p.ID] = p
	return nil
}

func (r *stubProduitRepo) FindByID(_ context.Context, id uint) (*model.Produit, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubProduitRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Produit, error) {
	p, ok := r.produits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProduitRepo) List(_ context.Context, _ dto.ProduitFilter) ([]model.Produit, int64, error) {
	out := make([]model.Produit, 0, len(r.produits))
	for _, p := range r.produits {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProduitRepo) ListActifs(_ context.Context) ([]model.Produit, error) {
	out := make([]model.Produit, 0, len(r.produits))
	for _, p := range r.produits {
		if p.Actif {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProduitRepo) Update(_ context.Context, p *model.Produit) error {
	r.produits[p.ID] = p
	return nil
}

func (r *stubProduitRepo) SoftDelete(_ context.Context, id uint) error {
	p, ok := r.produits[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Actif = false
	return nil
}

func (r *stubProduitRepo) Reactiver(_ context.Context, id uint) error {
	p, ok := r.produits[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Actif = true
	return nil
}

func (r *stubProduitRepo) UpdateStockTx(_ *gorm.DB, id uint, delta int) error {
	p, ok := r.produits[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProduitRepo) DB() *gorm.DB { return nil }

var _ repository.ProduitRepository = (*stubProduitRepo)(nil)

type stubAbonneRepo struct {
	abonnes map[uint]*model.Abonne
	seq     uint
}

func newStubAbonneRepo() *stubAbonneRepo {
	return &stubAbonneRepo{abonnes: make(map[uint]*model.Abonne)}
}

func (r *stubAbonneRepo) Create(_ context.Context, a *model.Abonne) error {
	r.seq++
	a.ID = r.seq
	r.abonnes[a.ID] = a
	return nil
}

func (r *stubAbonneRepo) FindByID(_ context.Context, id uint) (*model.Abonne, error) {
	a, ok := r.abonnes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAbonneRepo) FindByIDAvecFactures(ctx context.Context, id uint) (*model.Abonne, error) {
	return r.FindByID(ctx, id)
}

func (r *stubAbonneRepo) FindByNumero(_ context.Context, numero string) (*model.Abonne, error) {
	for _, a := range r.abonnes {
		if a.NumeroAbonne == numero {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAbonneRepo) List(_ context.Context, _ dto.AbonneFilter) ([]model.Abonne, int64, error) {
	out := make([]model.Abonne, 0, len(r.abonnes))
	for _, a := range r.abonnes {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAbonneRepo) Update(_ context.Context, a *model.Abonne) error {
	r.abonnes[a.ID] = a
	return nil
}

func (r *stubAbonneRepo) SoftDelete(_ context.Context, id uint) error {
	a, ok := r.abonnes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Actif = false
	return nil
}

func (r *stubAbonneRepo) Reactiver(_ context.Context, id uint) error {
	a, ok := r.abonnes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Actif = true
	return nil
}

func (r *stubAbonneRepo) NextNumero(_ context.Context) (string, error) {
	return fmt.Sprintf("ABN%05d", r.seq+1), nil
}

func (r *stubAbonneRepo) DB() *gorm.DB { return nil }

var _ repository.AbonneRepository = (*stubAbonneRepo)(nil)

type stubFactureRepo struct {
	factures  map[uint]*model.Facture
	seq       uint
	numeroSeq int
	// paiements lets FindOuverteByAbonneTx honor the "no payment yet" rule.
	paiements *stubPaiementRepo
}

func newStubFactureRepo() *stubFactureRepo {
	return &stubFactureRepo{factures: make(map[uint]*model.Facture)}
}

func (r *stubFactureRepo) CreateTx(_ *gorm.DB, f *model.Facture) error {
	r.seq++
	f.ID = r.seq
	r.factures[f.ID] = f
	return nil
}

func (r *stubFactureRepo) FindByID(_ context.Context, id uint) (*model.Facture, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubFactureRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Facture, error) {
	f, ok := r.factures[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubFactureRepo) FindOuverteByAbonneTx(_ *gorm.DB, abonneID uint) (*model.Facture, error) {
	var ouverte *model.Facture
	for _, f := range r.factures {
		if f.AbonneID != abonneID || f.Statut != model.FactureEnAttente {
			continue
		}
		if r.paiements != nil && r.paiements.totalFacture(f.ID).IsPositive() {
			continue
		}
		if ouverte == nil || f.DateEmission.After(ouverte.DateEmission) {
			ouverte = f
		}
	}
	if ouverte == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return ouverte, nil
}

func (r *stubFactureRepo) List(_ context.Context, _ dto.FactureFilter) ([]model.Facture, int64, error) {
	out := make([]model.Facture, 0, len(r.factures))
	for _, f := range r.factures {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *stubFactureRepo) ListEchues(_ context.Context, avant time.Time, _ int) ([]model.Facture, error) {
	var out []model.Facture
	for _, f := range r.factures {
		if f.Statut != model.FacturePayee && f.DateEmission.Before(avant) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubFactureRepo) UpdateTx(_ *gorm.DB, f *model.Facture) error {
	r.factures[f.ID] = f
	return nil
}

func (r *stubFactureRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.factures, id)
	return nil
}

func (r *stubFactureRepo) SetPDFPath(_ context.Context, id uint, chemin string) error {
	f, ok := r.factures[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.PDFPath = &chemin
	return nil
}

func (r *stubFactureRepo) NextNumero(_ *gorm.DB, maintenant time.Time) (string, error) {
	r.numeroSeq++
	return fmt.Sprintf("FAC-%s-%04d", maintenant.Format("200601"), r.numeroSeq), nil
}

func (r *stubFactureRepo) DB() *gorm.DB { return nil }

var _ repository.FactureRepository = (*stubFactureRepo)(nil)

type stubConsommationRepo struct {
	consos map[uint]*model.Consommation
	seq    uint
}

func newStubConsommationRepo() *stubConsommationRepo {
	return &stubConsommationRepo{consos: make(map[uint]*model.Consommation)}
}

func (r *stubConsommationRepo) CreateTx(_ *gorm.DB, c *model.Consommation) error {
	r.seq++
	c.ID = r.seq
	if c.Date.IsZero() {
		c.Date = time.Now()
	}
	r.consos[c.ID] = c
	return nil
}

func (r *stubConsommationRepo) FindByID(_ context.Context, id uint) (*model.Consommation, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubConsommationRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Consommation, error) {
	c, ok := r.consos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubConsommationRepo) List(_ context.Context, _ dto.ConsommationFilter) ([]model.Consommation, int64, error) {
	out := make([]model.Consommation, 0, len(r.consos))
	for _, c := range r.consos {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubConsommationRepo) ListPeriode(_ context.Context, _, _ string) ([]model.Consommation, error) {
	out := make([]model.Consommation, 0, len(r.consos))
	for _, c := range r.consos {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubConsommationRepo) ListNonFactureesByAbonne(_ context.Context, abonneID uint) ([]model.Consommation, error) {
	var out []model.Consommation
	for _, c := range r.consos {
		if c.AbonneID == abonneID && c.FactureID == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubConsommationRepo) UpdateTx(_ *gorm.DB, c *model.Consommation) error {
	r.consos[c.ID] = c
	return nil
}

func (r *stubConsommationRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.consos, id)
	return nil
}

func (r *stubConsommationRepo) AttacherFactureTx(_ *gorm.DB, consoID, factureID uint) error {
	c, ok := r.consos[consoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if c.FactureID == nil {
		c.FactureID = &factureID
	}
	return nil
}

func (r *stubConsommationRepo) DetacherFactureTx(_ *gorm.DB, factureID uint) error {
	for _, c := range r.consos {
		if c.FactureID != nil && *c.FactureID == factureID {
			c.FactureID = nil
		}
	}
	return nil
}

func (r *stubConsommationRepo) DB() *gorm.DB { return nil }

var _ repository.ConsommationRepository = (*stubConsommationRepo)(nil)

type stubPaiementRepo struct {
	paiements map[uint]*model.Paiement
	seq       uint
}

func newStubPaiementRepo() *stubPaiementRepo {
	return &stubPaiementRepo{paiements: make(map[uint]*model.Paiement)}
}

func (r *stubPaiementRepo) totalFacture(factureID uint) decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.paiements {
		if p.FactureID == factureID {
			total = total.Add(p.Montant)
		}
	}
	return total
}

func (r *stubPaiementRepo) CreateTx(_ *gorm.DB, p *model.Paiement) error {
	r.seq++
	p.ID = r.seq
	if p.DatePaiement.IsZero() {
		p.DatePaiement = time.Now()
	}
	r.paiements[p.ID] = p
	return nil
}

func (r *stubPaiementRepo) FindByID(_ context.Context, id uint) (*model.Paiement, error) {
	p, ok := r.paiements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPaiementRepo) List(_ context.Context, _ dto.PaiementFilter) ([]model.Paiement, int64, error) {
	out := make([]model.Paiement, 0, len(r.paiements))
	for _, p := range r.paiements {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPaiementRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.paiements, id)
	return nil
}

func (r *stubPaiementRepo) SumByFactureTx(_ *gorm.DB, factureID uint) (decimal.Decimal, error) {
	return r.totalFacture(factureID), nil
}

func (r *stubPaiementRepo) DB() *gorm.DB { return nil }

var _ repository.PaiementRepository = (*stubPaiementRepo)(nil)

type stubMouvementRepo struct {
	mouvements []model.MouvementStock
}

func (r *stubMouvementRepo) CreateTx(_ *gorm.DB, m *model.MouvementStock) error {
	m.ID = uint(len(r.mouvements) + 1)
	m.CreatedAt = time.Now()
	r.mouvements = append(r.mouvements, *m)
	return nil
}

func (r *stubMouvementRepo) List(_ context.Context, _ dto.MouvementStockFilter) ([]model.MouvementStock, int64, error) {
	return r.mouvements, int64(len(r.mouvements)), nil
}

func (r *stubMouvementRepo) DB() *gorm.DB { return nil }

var _ repository.MouvementStockRepository = (*stubMouvementRepo)(nil)

type stubComptaRepo struct {
	ecritures []model.EcritureCompta
}

func (r *stubComptaRepo) Create(_ context.Context, e *model.EcritureCompta) error {
	return r.CreateTx(nil, e)
}

func (r *stubComptaRepo) CreateTx(_ *gorm.DB, e *model.EcritureCompta) error {
	e.ID = uint(len(r.ecritures) + 1)
	r.ecritures = append(r.ecritures, *e)
	return nil
}

func (r *stubComptaRepo) List(_ context.Context, _ dto.ComptaFilter) ([]model.EcritureCompta, int64, error) {
	return r.ecritures, int64(len(r.ecritures)), nil
}

func (r *stubComptaRepo) Totaux(_ context.Context, _, _ string) (decimal.Decimal, decimal.Decimal, error) {
	recettes, depenses := decimal.Zero, decimal.Zero
	for _, e := range r.ecritures {
		if e.Type == model.ComptaRecette {
			recettes = recettes.Add(e.Montant)
		} else {
			depenses = depenses.Add(e.Montant)
		}
	}
	return recettes, depenses, nil
}

func (r *stubComptaRepo) DB() *gorm.DB { return nil }

var _ repository.ComptaRepository = (*stubComptaRepo)(nil)

type stubFournisseurRepo struct {
	fournisseurs map[uint]*model.Fournisseur
	seq          uint
}

func newStubFournisseurRepo() *stubFournisseurRepo {
	return &stubFournisseurRepo{fournisseurs: make(map[uint]*model.Fournisseur)}
}

func (r *stubFournisseurRepo) Create(_ context.Context, f *model.Fournisseur) error {
	r.seq++
	f.ID = r.seq
	r.fournisseurs[f.ID] = f
	return nil
}

func (r *stubFournisseurRepo) FindByID(_ context.Context, id uint) (*model.Fournisseur, error) {
	f, ok := r.fournisseurs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubFournisseurRepo) List(_ context.Context, _ dto.FournisseurFilter) ([]model.Fournisseur, int64, error) {
	out := make([]model.Fournisseur, 0, len(r.fournisseurs))
	for _, f := range r.fournisseurs {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *stubFournisseurRepo) Update(_ context.Context, f *model.Fournisseur) error {
	r.fournisseurs[f.ID] = f
	return nil
}

func (r *stubFournisseurRepo) SoftDelete(_ context.Context, id uint) error {
	if f, ok := r.fournisseurs[id]; ok {
		f.Actif = false
	}
	return nil
}

func (r *stubFournisseurRepo) Reactiver(_ context.Context, id uint) error {
	if f, ok := r.fournisseurs[id]; ok {
		f.Actif = true
	}
	return nil
}

func (r *stubFournisseurRepo) DB() *gorm.DB { return nil }

var _ repository.FournisseurRepository = (*stubFournisseurRepo)(nil)

type stubJournalRepo struct {
	entrees []model.JournalLog
}

func (r *stubJournalRepo) Append(_ context.Context, e *model.JournalLog) error {
	return r.AppendTx(nil, e)
}

func (r *stubJournalRepo) AppendTx(_ *gorm.DB, e *model.JournalLog) error {
	e.ID = uint(len(r.entrees) + 1)
	r.entrees = append(r.entrees, *e)
	return nil
}

func (r *stubJournalRepo) List(_ context.Context, _ dto.JournalFilter) ([]model.JournalLog, int64, error) {
	return r.entrees, int64(len(r.entrees)), nil
}

func (r *stubJournalRepo) DB() *gorm.DB { return nil }

var _ repository.JournalRepository = (*stubJournalRepo)(nil)

type stubParametresRepo struct {
	params *model.Parametres
}

func (r *stubParametresRepo) Get(_ context.Context) (*model.Parametres, error) {
	if r.params == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.params, nil
}

func (r *stubParametresRepo) Update(_ context.Context, p *model.Parametres) error {
	r.params = p
	return nil
}

func (r *stubParametresRepo) Seed(_ context.Context, nomCave, devise string, tauxTVA decimal.Decimal) error {
	if r.params == nil {
		r.params = &model.Parametres{NomCave: nomCave, Devise: devise, TauxTVADefaut: tauxTVA}
	}
	return nil
}

func (r *stubParametresRepo) DB() *gorm.DB { return nil }

var _ repository.ParametresRepository = (*stubParametresRepo)(nil)

type stubUtilisateurRepo struct {
	utilisateurs map[uint]*model.Utilisateur
	seq          uint
}

func newStubUtilisateurRepo() *stubUtilisateurRepo {
	return &stubUtilisateurRepo{utilisateurs: make(map[uint]*model.Utilisateur)}
}

func (r *stubUtilisateurRepo) Create(_ context.Context, u *model.Utilisateur) error {
	r.seq++
	u.ID = r.seq
	r.utilisateurs[u.ID] = u
	return nil
}

func (r *stubUtilisateurRepo) FindByID(_ context.Context, id uint) (*model.Utilisateur, error) {
	u, ok := r.utilisateurs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUtilisateurRepo) FindByUsername(_ context.Context, username string) (*model.Utilisateur, error) {
	for _, u := range r.utilisateurs {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUtilisateurRepo) List(_ context.Context) ([]model.Utilisateur, error) {
	out := make([]model.Utilisateur, 0, len(r.utilisateurs))
	for _, u := range r.utilisateurs {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUtilisateurRepo) Update(_ context.Context, u *model.Utilisateur) error {
	r.utilisateurs[u.ID] = u
	return nil
}

func (r *stubUtilisateurRepo) SetDerniereConnexion(_ context.Context, id uint, quand time.Time) error {
	u, ok := r.utilisateurs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.DerniereConnexion = &quand
	return nil
}

func (r *stubUtilisateurRepo) Desactiver(_ context.Context, id uint) error {
	u, ok := r.utilisateurs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Actif = false
	return nil
}

func (r *stubUtilisateurRepo) DB() *gorm.DB { return nil }

var _ repository.UtilisateurRepository = (*stubUtilisateurRepo)(nil)
