package service_test

import (
	"context"
	"testing"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func buildUtilisateurSvc() (service.UtilisateurService, *stubUtilisateurRepo) {
	repo := newStubUtilisateurRepo()
	return service.NewUtilisateurService(repo, &stubJournalRepo{}), repo
}

func TestCreerUtilisateur(t *testing.T) {
	svc, repo := buildUtilisateurSvc()

	resp, err := svc.Creer(context.Background(), testActeur(), dto.CreerUtilisateurRequest{
		Username:   "vendeur2",
		NomComplet: "Awa Traore",
		Password:   "motdepasse8",
		Role:       "vendeur",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendeur2", resp.Username)
	assert.True(t, resp.Actif)

	// Stored hash verifies against the clear password.
	u, _ := repo.FindByUsername(context.Background(), "vendeur2")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("motdepasse8")))
}

func TestCreerUtilisateur_UsernamePris(t *testing.T) {
	svc, _ := buildUtilisateurSvc()
	req := dto.CreerUtilisateurRequest{
		Username: "gerant1", NomComplet: "G. Un", Password: "motdepasse8", Role: "gerant",
	}
	_, err := svc.Creer(context.Background(), testActeur(), req)
	require.NoError(t, err)

	_, err = svc.Creer(context.Background(), testActeur(), req)
	require.Error(t, err)
	assert.Equal(t, service.KindStateConflict, service.KindOf(err))
}

func TestDesactiverUtilisateur_ProprecompteRefuse(t *testing.T) {
	svc, repo := buildUtilisateurSvc()
	u := seedUtilisateur(repo, "admin1", "motdepasse8", "admin", true)

	acteur := service.Acteur{ID: &u.ID, Username: u.Username}
	err := svc.Desactiver(context.Background(), acteur, u.ID)
	require.Error(t, err)
	assert.Equal(t, service.KindStateConflict, service.KindOf(err))
	assert.True(t, u.Actif)
}

func TestDesactiverUtilisateur_AutreCompte(t *testing.T) {
	svc, repo := buildUtilisateurSvc()
	admin := seedUtilisateur(repo, "admin1", "motdepasse8", "admin", true)
	u := seedUtilisateur(repo, "vendeur1", "motdepasse8", "vendeur", true)

	acteur := service.Acteur{ID: &admin.ID, Username: admin.Username}
	require.NoError(t, svc.Desactiver(context.Background(), acteur, u.ID))
	assert.False(t, u.Actif)
}
