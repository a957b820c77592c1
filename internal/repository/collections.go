package repository

import (
	"fmt"
	"regexp"
)

// collections maps every collection name the API may touch to the set of
// column identifiers callers are allowed to reference in dynamic query parts
// (sort, filter). Anything outside this registry is rejected before it can
// reach SQL — malformed input never becomes an identifier.
var collections = map[string]map[string]bool{
	"produits": {
		"id": true, "nom": true, "categorie": true, "prix_achat": true,
		"prix_vente": true, "stock": true, "stock_alerte": true, "created_at": true,
	},
	"abonnes": {
		"id": true, "numero_abonne": true, "nom": true, "prenom": true,
		"telephone": true, "created_at": true,
	},
	"consommations": {
		"id": true, "abonne_id": true, "produit_id": true, "quantite": true,
		"montant_total": true, "date": true,
	},
	"factures": {
		"id": true, "numero_facture": true, "abonne_id": true, "montant_ttc": true,
		"statut": true, "date_emission": true, "date_echeance": true,
	},
	"paiements": {
		"id": true, "facture_id": true, "montant": true, "mode": true, "date_paiement": true,
	},
	"mouvements_stock": {
		"id": true, "produit_id": true, "type": true, "created_at": true,
	},
	"compta": {
		"id": true, "type": true, "montant": true, "date_operation": true,
	},
	"journal_log": {
		"id": true, "utilisateur_id": true, "action": true, "created_at": true,
	},
	"fournisseurs": {
		"id": true, "nom": true, "created_at": true,
	},
	"utilisateurs": {
		"id": true, "username": true, "role": true, "created_at": true,
	},
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidateCollection rejects unknown collection names.
func ValidateCollection(name string) error {
	if _, ok := collections[name]; !ok {
		return fmt.Errorf("collection inconnue: %q", name)
	}
	return nil
}

// ValidateColumn rejects column identifiers not declared for the collection.
func ValidateColumn(collection, column string) error {
	cols, ok := collections[collection]
	if !ok {
		return fmt.Errorf("collection inconnue: %q", collection)
	}
	if !identRe.MatchString(column) || !cols[column] {
		return fmt.Errorf("colonne invalide pour %s: %q", collection, column)
	}
	return nil
}

// SortColumn returns a safe ORDER BY column: the validated caller-supplied
// column, or fallback when none was supplied.
func SortColumn(collection, requested, fallback string) (string, error) {
	if requested == "" {
		return fallback, nil
	}
	if err := ValidateColumn(collection, requested); err != nil {
		return "", err
	}
	return requested, nil
}
