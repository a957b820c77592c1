package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateFacturePDF writes an A4 invoice for a facture whose Abonne,
// Consommations and Paiements are preloaded. Returns the absolute path of
// the generated file.
func GenerateFacturePDF(f *model.Facture, nomCave, devise, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("facture_%s.pdf", f.NumeroFacture)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, nomCave, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Facture "+f.NumeroFacture, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Émise le "+f.DateEmission.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if f.DateEcheance != nil {
		pdf.CellFormat(contentW, 6, "Échéance le "+f.DateEcheance.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if f.Abonne != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 6, "Abonné", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, f.Abonne.NumeroAbonne+" — "+f.Abonne.NomComplet(), "", 1, "L", false, 0, "")
		if f.Abonne.Telephone != "" {
			pdf.CellFormat(contentW, 5, "Tél: "+f.Abonne.Telephone, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	col1 := contentW * 0.46 // produit
	col2 := contentW * 0.12 // quantité
	col3 := contentW * 0.21 // prix unitaire
	col4 := contentW * 0.21 // montant

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Produit", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Qté", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "P.U.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Montant", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, c := range f.Consommations {
		nom := ""
		if c.Produit != nil {
			nom = c.Produit.Nom
		}
		if len(nom) > 40 {
			nom = nom[:39] + "…"
		}
		pdf.CellFormat(col1, 6, nom, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", c.Quantite), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, c.PrixUnitaire.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, c.MontantTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1+col2+col3, 6, "Montant HT:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, f.MontantHT.StringFixed(2)+" "+devise, "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3, 6, fmt.Sprintf("TVA (%s%%):", f.TauxTVA.StringFixed(0)), "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, f.MontantTVA.StringFixed(2)+" "+devise, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL TTC:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, f.MontantTTC.StringFixed(2)+" "+devise, "", 1, "R", false, 0, "")

	if len(f.Paiements) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 9)
		for _, p := range f.Paiements {
			pdf.CellFormat(col1+col2+col3, 5, "Payé ("+p.Mode+"):", "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 5, p.Montant.StringFixed(2)+" "+devise, "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1+col2+col3, 5, "Reste à payer:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, f.ResteAPayer().StringFixed(2)+" "+devise, "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Merci de votre confiance.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
